package datatable

// SortState records the direction the next sort of each column will use and
// which column was sorted last. It is a value: Toggle returns a new state and
// leaves the receiver untouched.
type SortState struct {
	active     ColumnID
	directions map[ColumnID]Direction
}

// NewSortState starts every column ascending with no active column.
func NewSortState(columns []Column) SortState {
	directions := make(map[ColumnID]Direction, len(columns))
	for _, c := range columns {
		directions[c.ID] = Ascending
	}
	return SortState{directions: directions}
}

// Active returns the column sorted last, or "" before the first sort.
func (s SortState) Active() ColumnID {
	return s.active
}

// Direction returns the direction the next sort of id will use.
func (s SortState) Direction(id ColumnID) Direction {
	if d, ok := s.directions[id]; ok {
		return d
	}
	return Ascending
}

// Toggle marks id active and flips its direction for the next sort.
func (s SortState) Toggle(id ColumnID) SortState {
	directions := make(map[ColumnID]Direction, len(s.directions))
	for k, v := range s.directions {
		directions[k] = v
	}
	directions[id] = s.Direction(id).Reverse()

	return SortState{active: id, directions: directions}
}
