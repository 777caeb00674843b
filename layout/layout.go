package layout

type Dimension struct {
	Lines   int64
	Columns int64
}

func (d Dimension) Max(other Dimension) Dimension {
	if other.Lines > d.Lines {
		d.Lines = other.Lines
	}
	if other.Columns > d.Columns {
		d.Columns = other.Columns
	}
	return d
}

func (d Dimension) Contains(pos Position) bool {
	return pos.Line >= 1 && pos.Line <= d.Lines && pos.Column >= 1 && pos.Column <= d.Columns
}

func (d Dimension) Bounds() *Range {
	var (
		start = Position{Line: 1, Column: 1}
		end   = Position{Line: d.Lines, Column: d.Columns}
	)
	return NewRange(start, end)
}
