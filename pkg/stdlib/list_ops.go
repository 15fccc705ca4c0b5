package stdlib

import (
	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/interp"
)

// Small segments fall back to insertion sort.
const sortThreshold = 16

func (l *Lib) listNatives() []native {
	return []native{
		{"sort", l.listSort},
		{"shuffle", l.listShuffle},
	}
}

// sort orders a list in place with a hybrid merge/insertion sort. Mixed
// numeric elements compare by value; strings compare lexically; anything
// else keeps its relative position.
func (l *Lib) listSort(args []interp.Value) interp.Value {
	if len(args) != 1 || args[0].Kind != interp.KindList {
		l.rep.Report(diagnostics.Argument, "sort() expects 1 list", "Usage: sort(myList)")
		return interp.Null()
	}
	items := args[0].Elems
	if len(items) > 1 {
		hybridSort(items, 0, len(items)-1)
	}
	return interp.Null()
}

// shuffle permutes a list in place with a Fisher-Yates pass driven by the
// shared random engine.
func (l *Lib) listShuffle(args []interp.Value) interp.Value {
	if len(args) != 1 || args[0].Kind != interp.KindList {
		l.rep.Report(diagnostics.Argument, "shuffle() expects 1 list", "Usage: shuffle(myList)")
		return interp.Null()
	}
	items := args[0].Elems
	for i := len(items) - 1; i > 0; i-- {
		j := int(l.rng.next() % uint64(i+1))
		items[i], items[j] = items[j], items[i]
	}
	return interp.Null()
}

func valueLess(a, b interp.Value) bool {
	switch {
	case a.Kind == interp.KindInt && b.Kind == interp.KindInt:
		return a.Int < b.Int
	case a.Kind == interp.KindFloat && b.Kind == interp.KindFloat:
		return a.Float < b.Float
	case a.Kind == interp.KindInt && b.Kind == interp.KindFloat:
		return float64(a.Int) < b.Float
	case a.Kind == interp.KindFloat && b.Kind == interp.KindInt:
		return a.Float < float64(b.Int)
	case a.Kind == interp.KindString && b.Kind == interp.KindString:
		return a.Str < b.Str
	}
	return false
}

func insertionSort(items []interp.Value, left, right int) {
	for i := left + 1; i <= right; i++ {
		key := items[i]
		j := i - 1
		for j >= left && valueLess(key, items[j]) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}

func mergeRuns(items []interp.Value, l, m, r int) {
	left := append([]interp.Value(nil), items[l:m+1]...)
	right := append([]interp.Value(nil), items[m+1:r+1]...)

	i, j, k := 0, 0, l
	for i < len(left) && j < len(right) {
		if !valueLess(right[j], left[i]) {
			items[k] = left[i]
			i++
		} else {
			items[k] = right[j]
			j++
		}
		k++
	}
	for i < len(left) {
		items[k] = left[i]
		i++
		k++
	}
	for j < len(right) {
		items[k] = right[j]
		j++
		k++
	}
}

func hybridSort(items []interp.Value, l, r int) {
	if l >= r {
		return
	}
	if r-l < sortThreshold {
		insertionSort(items, l, r)
		return
	}
	m := l + (r-l)/2
	hybridSort(items, l, m)
	hybridSort(items, m+1, r)
	mergeRuns(items, l, m, r)
}
