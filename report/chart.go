package report

import (
	"errors"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ericlevine/binbench/eval"
	"github.com/ericlevine/binbench/threshold"
)

// ErrNoData is returned when a chart would have no bars.
var ErrNoData = errors.New("report: nothing to plot")

// Metric selects the value plotted per strategy.
type Metric int

const (
	// DecodeRate plots the fraction of decoded cases.
	DecodeRate Metric = iota
	// Accuracy plots one minus the mean score.
	Accuracy
)

func (m Metric) value(s eval.Summary) float64 {
	if m == Accuracy {
		return 1 - s.MeanScore
	}
	return s.DecodeRate()
}

func (m Metric) String() string {
	if m == Accuracy {
		return "Pixel accuracy"
	}
	return "Decode rate"
}

var (
	barStyle       = chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue, StrokeWidth: 1}
	thresholdStyle = chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed, StrokeWidth: 1}
)

// ScoreChart renders one bar per strategy total. Group summaries are
// ignored, and so are strategies without scored results when plotting
// Accuracy.
func ScoreChart(w io.Writer, summaries []eval.Summary, m Metric) error {
	var bars []chart.Value
	for _, s := range summaries {
		if s.Group != "" || (m == Accuracy && s.Scored == 0) {
			continue
		}
		bars = append(bars, chart.Value{Label: s.Strategy, Value: m.value(s), Style: barStyle})
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	bc := chart.BarChart{
		Title:      m.String(),
		Width:      max(640, 160*len(bars)),
		Height:     480,
		BarWidth:   80,
		BarSpacing: 40,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// HistogramChart renders a luminance histogram with the bucket at black
// point highlighted. A negative black point highlights nothing.
func HistogramChart(w io.Writer, h *threshold.Histogram, blackPoint int) error {
	peak := 0
	for _, c := range h.Counts {
		peak = max(peak, c)
	}
	if peak == 0 {
		return ErrNoData
	}
	mark := -1
	if blackPoint >= 0 {
		mark = blackPoint >> threshold.LuminanceShift
	}
	bars := make([]chart.Value, len(h.Counts))
	for i, c := range h.Counts {
		bars[i] = chart.Value{Value: float64(c), Style: barStyle}
		if i%8 == 0 {
			bars[i].Label = strconv.Itoa(i << threshold.LuminanceShift)
		}
		if i == mark {
			bars[i].Style = thresholdStyle
		}
	}
	bc := chart.BarChart{
		Width:      1024,
		Height:     400,
		BarWidth:   12,
		BarSpacing: 2,
		Canvas:     chart.Style{FillColor: drawing.ColorWhite},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}
