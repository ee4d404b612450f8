package eval

import (
	"sort"
	"time"
)

// Summary aggregates the results of one strategy, optionally restricted to a
// group of cases.
type Summary struct {
	Strategy     string
	Group        string
	Cases        int
	Decoded      int
	Failed       int
	Scored       int
	MeanScore    float64 // over Scored results only
	MeanBinarize time.Duration
	MeanTotal    time.Duration
}

// DecodeRate returns the fraction of cases decoded.
func (s Summary) DecodeRate() float64 {
	if s.Cases == 0 {
		return 0
	}
	return float64(s.Decoded) / float64(s.Cases)
}

// Summarize aggregates results per strategy, in order of first appearance.
// When cases carry groups, a per-group summary follows each strategy total.
func Summarize(results []Result) []Summary {
	type key struct{ strategy, group string }
	type acc struct {
		s        Summary
		score    float64
		binarize time.Duration
		total    time.Duration
	}
	accs := make(map[key]*acc)
	var strategies []string
	groups := make(map[string][]string)

	add := func(k key, r Result) {
		a, ok := accs[k]
		if !ok {
			a = &acc{s: Summary{Strategy: k.strategy, Group: k.group}}
			accs[k] = a
			if k.group == "" {
				strategies = append(strategies, k.strategy)
			} else {
				groups[k.strategy] = append(groups[k.strategy], k.group)
			}
		}
		a.s.Cases++
		if r.Decoded {
			a.s.Decoded++
		}
		if r.Err != nil {
			a.s.Failed++
		}
		if r.Scored() {
			a.s.Scored++
			a.score += r.Score()
		}
		a.binarize += r.BinarizeTime
		a.total += r.TotalTime
	}
	for _, r := range results {
		add(key{r.Strategy, ""}, r)
		if r.Group != "" {
			add(key{r.Strategy, r.Group}, r)
		}
	}

	var out []Summary
	emit := func(k key) {
		a := accs[k]
		n := a.s.Cases
		if a.s.Scored > 0 {
			a.s.MeanScore = a.score / float64(a.s.Scored)
		}
		a.s.MeanBinarize = a.binarize / time.Duration(n)
		a.s.MeanTotal = a.total / time.Duration(n)
		out = append(out, a.s)
	}
	for _, s := range strategies {
		emit(key{s, ""})
		g := groups[s]
		sort.Strings(g)
		for _, group := range g {
			emit(key{s, group})
		}
	}
	return out
}
