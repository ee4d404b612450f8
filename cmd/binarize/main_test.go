package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/synth"
)

func TestRun(t *testing.T) {
	const payload = "binarize me"
	dir := t.TempDir()
	truth, err := synth.QR(payload, 150)
	if err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "qr.png")
	truthPath := filepath.Join(dir, "qr.truth.png")
	if err := imaging.Save(synth.Render(truth, 40, 210), input); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(binbench.MatrixToImage(truth), truthPath); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out.png")
	diff := filepath.Join(dir, "diff.png")
	hist := filepath.Join(dir, "hist.png")
	var stdout bytes.Buffer
	args := []string{"-truth", truthPath, "-out", out, "-diff", diff, "-diff-radius", "2", "-histogram", hist, input}
	if err := run(args, &stdout); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Global [Otsu]", "score:    0.000000", "decoded:  " + payload} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}
	for _, p := range []string{out, diff, hist} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", filepath.Base(p), err)
		}
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	m, err := binbench.ImageToMatrix(img)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equals(truth) {
		t.Error("written output does not match the truth")
	}
}

func TestRunErrors(t *testing.T) {
	var stdout bytes.Buffer
	tests := [][]string{
		{},
		{"-strategy", "magic", "x.png"},
		{"-diff", "d.png", "x.png"},
		{"-scale", "0", "x.png"},
		{"-strategy", "simplewindow", "-fraction", "-1", "x.png"},
		{filepath.Join(t.TempDir(), "missing.png")},
	}
	for _, args := range tests {
		if err := run(args, &stdout); err == nil {
			t.Errorf("run(%q) should fail", args)
		}
	}
}
