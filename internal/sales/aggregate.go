package sales

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Entry is one group of a ranking.
type Entry struct {
	Category string
	Total    decimal.Decimal
}

// Ranked is a ranking sorted by Total descending. Equal totals keep the order
// in which their group was first seen during the scan.
type Ranked []Entry

// Aggregate scans t once, keeps rows accepted by pred, sums measure per key
// and ranks the groups. A nil pred accepts every row.
func Aggregate(t *Table, pred Predicate, key func(Observation) string, measure func(Observation) decimal.Decimal) Ranked {
	if pred == nil {
		pred = AcceptAll
	}
	index := map[string]int{}
	out := Ranked{}
	t.Each(func(o Observation) {
		if !pred(o) {
			return
		}
		k := key(o)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Entry{Category: k, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(measure(o))
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// RankByCategory sums Amount per Category.
func RankByCategory(t *Table, pred Predicate) Ranked {
	return Aggregate(t, pred,
		func(o Observation) string { return o.Category },
		func(o Observation) decimal.Decimal { return o.Amount },
	)
}

// Top returns at most the first n entries.
func (r Ranked) Top(n int) Ranked {
	if n < 0 {
		n = 0
	}
	if len(r) <= n {
		return r
	}
	return r[:n]
}

// Total sums every entry.
func (r Ranked) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range r {
		sum = sum.Add(e.Total)
	}
	return sum
}

// Empty reports whether nothing passed the filters.
func (r Ranked) Empty() bool { return len(r) == 0 }
