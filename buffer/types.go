package buffer

// Pos points into the document by (row, col) in runes.
type Pos struct {
	Row int
	Col int
}

// Range is a half-open span [Start, End) in document order.
type Range struct {
	Start Pos
	End   Pos
}

func ComparePos(a, b Pos) int {
	switch {
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPos clamps p into a document with rowCount rows whose lengths are
// reported by lineLen. rowCount is treated as at least 1.
func ClampPos(p Pos, rowCount int, lineLen func(row int) int) Pos {
	if rowCount <= 0 {
		rowCount = 1
	}
	row := clampInt(p.Row, 0, rowCount-1)
	maxCol := 0
	if lineLen != nil {
		maxCol = max(lineLen(row), 0)
	}
	return Pos{Row: row, Col: clampInt(p.Col, 0, maxCol)}
}

func ClampRange(r Range, rowCount int, lineLen func(row int) int) Range {
	return Range{
		Start: ClampPos(r.Start, rowCount, lineLen),
		End:   ClampPos(r.End, rowCount, lineLen),
	}
}
