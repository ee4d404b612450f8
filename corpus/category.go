// Package corpus walks a directory of photographed symbols and loads each
// image, its optional ground truth and its expected payload as an evaluation
// case.
//
// Images are organised as root/phone/light/barcode/shadow/..., where the
// barcode folder name contains "bg" for a printed background and "al" or
// "paper" for the print medium.
package corpus

import (
	"path/filepath"
	"strings"
)

// CSVHeader names the columns of Category.Fields.
var CSVHeader = []string{"Phone", "Light", "Shadow", "Barcode", "Background"}

// Category describes the capture conditions of an image.
type Category struct {
	Phone      string
	Light      string
	Shadow     string
	Barcode    string
	Background string
}

// CategoryFromPath derives the category from a path relative to the corpus
// root. Missing path components leave their fields empty.
func CategoryFromPath(rel string) Category {
	tokens := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	at := func(i int) string {
		if i < len(tokens) && tokens[i] != "." {
			return tokens[i]
		}
		return ""
	}
	c := Category{Phone: at(0), Light: at(1), Shadow: at(3)}
	kind := at(2)
	if kind == "" {
		return c
	}
	c.Background = "blank"
	if strings.Contains(kind, "bg") {
		c.Background = "pamphlet"
	}
	switch {
	case strings.Contains(kind, "al"):
		c.Barcode = "al"
	case strings.Contains(kind, "paper"):
		c.Barcode = "paper"
	}
	return c
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(group string) Category {
	f := strings.SplitN(group, "/", len(CSVHeader))
	for len(f) < len(CSVHeader) {
		f = append(f, "")
	}
	return Category{Phone: f[0], Light: f[1], Shadow: f[2], Barcode: f[3], Background: f[4]}
}

// Fields returns the values in CSVHeader order.
func (c Category) Fields() []string {
	return []string{c.Phone, c.Light, c.Shadow, c.Barcode, c.Background}
}

func (c Category) String() string {
	return strings.Join(c.Fields(), "/")
}
