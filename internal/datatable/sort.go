package datatable

import "slices"

// Sort returns a copy of records ordered by the value at path. The input
// slice is never reordered. A nil Comparer compares strings by their bytes.
//
// Direct (single segment) paths compare lexically when both values are
// strings and numerically otherwise. Related paths compare lexically. When
// sorting a related path descending, a right-hand value that is present and
// empty always places the left-hand record first.
func Sort(records []Record, path string, dir Direction, cmp Comparer) []Record {
	sorted := slices.Clone(records)

	fp := ParsePath(path)
	if len(fp) == 0 || len(sorted) < 2 {
		return sorted
	}
	if cmp == nil {
		cmp = Binary
	}

	slices.SortStableFunc(sorted, comparator(fp, dir, cmp))
	return sorted
}

func comparator(fp FieldPath, dir Direction, cmp Comparer) func(a, b Record) int {
	if fp.Related() {
		return relatedComparator(fp, dir, cmp)
	}
	return directComparator(fp, dir, cmp)
}

func relatedComparator(fp FieldPath, dir Direction, cmp Comparer) func(a, b Record) int {
	return func(a, b Record) int {
		av, aok := lookupPath(a, fp)
		bv, bok := lookupPath(b, fp)

		if dir == Descending {
			if s, ok := stringValue(bv); bok && ok && s == "" {
				return -1
			}
			return cmp.Compare(lexicalValue(bv, bok), lexicalValue(av, aok))
		}
		return cmp.Compare(lexicalValue(av, aok), lexicalValue(bv, bok))
	}
}

func directComparator(fp FieldPath, dir Direction, cmp Comparer) func(a, b Record) int {
	return func(a, b Record) int {
		if dir == Descending {
			a, b = b, a
		}
		// A present nil leaf stays present so it coerces to 0.
		av, aok := lookupKey(a, fp)
		bv, bok := lookupKey(b, fp)

		as, aStr := stringValue(av)
		bs, bStr := stringValue(bv)
		if aok && bok && aStr && bStr {
			return cmp.Compare(as, bs)
		}

		// NaN on either side compares equal.
		diff := toNumber(av, aok) - toNumber(bv, bok)
		switch {
		case diff < 0:
			return -1
		case diff > 0:
			return 1
		default:
			return 0
		}
	}
}
