// Package report writes evaluation results as CSV, text summaries and PNG
// charts.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ericlevine/binbench/eval"
)

// Layout controls the leading columns of a CSV row, which describe the case
// group.
type Layout struct {
	Header []string
	Split  func(group string) []string
}

// GroupLayout writes the group as a single column.
var GroupLayout = Layout{
	Header: []string{"Group"},
	Split:  func(group string) []string { return []string{group} },
}

// WriteCSV writes one row per case with four columns per strategy: decoded
// (0 or 1), binarize time, total time (both in nanoseconds) and score. The
// score is left empty for results without a ground truth comparison.
// Cases and strategies keep their order of first appearance.
func WriteCSV(w io.Writer, results []eval.Result, layout Layout) error {
	if layout.Split == nil {
		layout = GroupLayout
	}
	var strategies, cases []string
	seenStrategy := make(map[string]bool)
	byCase := make(map[string]map[string]eval.Result)
	groups := make(map[string]string)
	for _, r := range results {
		if !seenStrategy[r.Strategy] {
			seenStrategy[r.Strategy] = true
			strategies = append(strategies, r.Strategy)
		}
		row, ok := byCase[r.Case]
		if !ok {
			row = make(map[string]eval.Result)
			byCase[r.Case] = row
			cases = append(cases, r.Case)
			groups[r.Case] = r.Group
		}
		row[r.Strategy] = r
	}

	cw := csv.NewWriter(w)
	header := append(append([]string{}, layout.Header...), "File")
	for _, s := range strategies {
		header = append(header, s, s+"-T", s+"-TT", s+"-S")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	width := len(layout.Header)
	for _, c := range cases {
		lead := layout.Split(groups[c])
		record := make([]string, width, len(header))
		copy(record, lead)
		record = append(record, c)
		for _, s := range strategies {
			r, ok := byCase[c][s]
			if !ok {
				record = append(record, "", "", "", "")
				continue
			}
			decoded := "0"
			if r.Decoded {
				decoded = "1"
			}
			score := ""
			if r.Scored() {
				score = strconv.FormatFloat(r.Score(), 'f', 6, 64)
			}
			record = append(record,
				decoded,
				strconv.FormatInt(r.BinarizeTime.Nanoseconds(), 10),
				strconv.FormatInt(r.TotalTime.Nanoseconds(), 10),
				score,
			)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
