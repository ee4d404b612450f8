// Package threshold selects a luminance threshold from a histogram.
//
// Every Finder is a pure function of its input: it returns a bucket index in
// [0, len(h)) and returns 0 for a histogram with no samples.
package threshold

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownFinder is returned by Lookup for an unrecognised name.
var ErrUnknownFinder = errors.New("threshold: unknown finder")

// Finder picks a threshold bucket from a histogram. Buckets below the
// returned index are foreground.
type Finder interface {
	FindThreshold(h []int) int
	String() string
}

// Lookup resolves a finder by case-insensitive name: average, median, otsu,
// kittler, kapur, twopeak (or zxing) and fixed:<n>.
func Lookup(name string) (Finder, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "average", "mean":
		return Average{}, nil
	case "median":
		return Median{}, nil
	case "otsu":
		return Otsu{}, nil
	case "kittler":
		return Kittler{}, nil
	case "kapur":
		return Kapur{}, nil
	case "twopeak", "zxing":
		return TwoPeak{}, nil
	}
	if rest, ok := strings.CutPrefix(n, "fixed:"); ok {
		v, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownFinder, name, err)
		}
		return Fixed(v), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFinder, name)
}

func moments(h []int) (total, weighted int) {
	for i, c := range h {
		total += c
		weighted += i * c
	}
	return total, weighted
}

// Average returns the mean bucket index.
type Average struct{}

func (Average) FindThreshold(h []int) int {
	total, weighted := moments(h)
	if total == 0 {
		return 0
	}
	return weighted / total
}

func (Average) String() string { return "Average" }

// Median returns the first bucket at which the cumulative count reaches half
// of the total.
type Median struct{}

func (Median) FindThreshold(h []int) int {
	total, _ := moments(h)
	if total == 0 {
		return 0
	}
	count := 0
	for i, c := range h {
		count += c
		if count*2 >= total {
			return i
		}
	}
	return len(h) - 1
}

func (Median) String() string { return "Median" }

// Otsu maximises the between-class variance Pf*Pb*(mf-mb)^2 over the split
// [0,T) / [T,N). Ties keep the lowest T.
type Otsu struct{}

func (Otsu) FindThreshold(h []int) int {
	total, weighted := moments(h)
	best := 0
	bestScore := 0.0
	hf, mf := 0, 0
	for t := 1; t < len(h); t++ {
		hf += h[t-1]
		mf += (t - 1) * h[t-1]
		hb := total - hf
		if hf == 0 || hb == 0 {
			continue
		}
		muF := float64(mf) / float64(hf)
		muB := float64(weighted-mf) / float64(hb)
		pf := float64(hf) / float64(total)
		pb := float64(hb) / float64(total)
		between := pf * pb * (muF - muB) * (muF - muB)
		if between > bestScore {
			bestScore = between
			best = t
		}
	}
	return best
}

func (Otsu) String() string { return "Otsu" }

// Kittler minimises the Kittler-Illingworth minimum error criterion
// J = 1 + Pf ln vf + Pb ln vb - 2 Pf ln Pf - 2 Pb ln Pb. Only positive, finite
// values of J are considered.
type Kittler struct{}

func (Kittler) FindThreshold(h []int) int {
	total, weighted := moments(h)
	best := 0
	bestJ := math.Inf(1)
	hf, mf := 0, 0
	for t := 1; t < len(h); t++ {
		hf += h[t-1]
		mf += (t - 1) * h[t-1]
		hb := total - hf
		if hf == 0 || hb == 0 {
			continue
		}
		muF := float64(mf) / float64(hf)
		muB := float64(weighted-mf) / float64(hb)
		varF := classVariance(h[:t], 0, muF) / float64(hf)
		varB := classVariance(h[t:], t, muB) / float64(hb)
		if varF == 0 || varB == 0 {
			continue
		}
		pf := float64(hf) / float64(total)
		pb := float64(hb) / float64(total)
		j := 1 + pf*math.Log(varF) + pb*math.Log(varB) - 2*pf*math.Log(pf) - 2*pb*math.Log(pb)
		if math.IsNaN(j) || math.IsInf(j, 0) {
			continue
		}
		if j > 0 && j < bestJ {
			bestJ = j
			best = t
		}
	}
	return best
}

func classVariance(h []int, offset int, mean float64) float64 {
	v := 0.0
	for i, c := range h {
		d := float64(i+offset) - mean
		v += d * d * float64(c)
	}
	return v
}

func (Kittler) String() string { return "Kittler" }

// Kapur maximises the summed entropy of the two classes.
type Kapur struct{}

func (Kapur) FindThreshold(h []int) int {
	total, _ := moments(h)
	if total == 0 {
		return 0
	}
	p := make([]float64, len(h))
	for i, c := range h {
		p[i] = float64(c) / float64(total)
	}
	best := 0
	bestScore := math.Inf(-1)
	for t := 1; t < len(h); t++ {
		s1a, s1b := entropySums(p[:t])
		s2a, s2b := entropySums(p[t:])
		if s1a == 0 || s2a == 0 {
			continue
		}
		v := math.Log(s1a) + math.Log(s2a) - s1b/s1a - s2b/s2a
		if v > bestScore {
			bestScore = v
			best = t
		}
	}
	return best
}

func entropySums(p []float64) (sum, plogp float64) {
	for _, v := range p {
		if v > 0 {
			sum += v
			plogp += v * math.Log(v)
		}
	}
	return sum, plogp
}

func (Kapur) String() string { return "Kapur" }

// TwoPeak is the ZXing global histogram black point estimate: the tallest
// bucket, a second peak favouring distance from the first, and the lowest
// valley between them biased towards the lighter peak.
//
// Low-contrast images are not rejected; the result then falls back to one
// bucket below the lighter peak.
type TwoPeak struct{}

func (TwoPeak) FindThreshold(buckets []int) int {
	numBuckets := len(buckets)
	maxBucketCount := 0
	firstPeak := 0
	firstPeakSize := 0
	for x := 0; x < numBuckets; x++ {
		if buckets[x] > firstPeakSize {
			firstPeak = x
			firstPeakSize = buckets[x]
		}
		if buckets[x] > maxBucketCount {
			maxBucketCount = buckets[x]
		}
	}

	secondPeak := 0
	secondPeakScore := 0
	for x := 0; x < numBuckets; x++ {
		dist := x - firstPeak
		score := buckets[x] * dist * dist
		if score > secondPeakScore {
			secondPeak = x
			secondPeakScore = score
		}
	}

	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}

	bestValley := secondPeak - 1
	bestValleyScore := -1
	for x := secondPeak - 1; x > firstPeak; x-- {
		fromFirst := x - firstPeak
		score := fromFirst * fromFirst * (secondPeak - x) * (maxBucketCount - buckets[x])
		if score > bestValleyScore {
			bestValley = x
			bestValleyScore = score
		}
	}
	if bestValley < 0 {
		return 0
	}
	return bestValley
}

func (TwoPeak) String() string { return "TwoPeak" }

// Fixed always returns the same bucket, clamped to the histogram.
type Fixed int

func (f Fixed) FindThreshold(h []int) int {
	switch {
	case len(h) == 0 || f < 0:
		return 0
	case int(f) >= len(h):
		return len(h) - 1
	}
	return int(f)
}

func (f Fixed) String() string { return fmt.Sprintf("Fixed(%d)", int(f)) }
