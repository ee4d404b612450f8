package report

import (
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ericlevine/binbench/eval"
)

// WriteSummary prints an aligned table of summaries, with numbers formatted
// for tag. Group rows are indented under their strategy. ERRORS is the mean
// score, or "-" when nothing was compared with a ground truth.
func WriteSummary(w io.Writer, summaries []eval.Summary, tag language.Tag) error {
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p.Fprintf(tw, "STRATEGY\tCASES\tDECODED\tRATE\tERRORS\tFAILED\tBINARIZE\tTOTAL\n")
	for _, s := range summaries {
		name := s.Strategy
		if s.Group != "" {
			name = "  " + s.Group
		}
		score := "-"
		if s.Scored > 0 {
			score = p.Sprintf("%.4f", s.MeanScore)
		}
		p.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%s\t%d\t%s\t%s\n",
			name, s.Cases, s.Decoded, 100*s.DecodeRate(), score, s.Failed,
			micros(p, s.MeanBinarize), micros(p, s.MeanTotal))
	}
	return tw.Flush()
}

func micros(p *message.Printer, d time.Duration) string {
	return p.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
}
