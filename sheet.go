package sheetengine

// Sheet owns the Position -> Cell mapping and orchestrates the cycle
// check, dependency rewire, and cache invalidation that must happen on
// every write (spec.md §4.5 — "the hard component"). A Cell exists in the
// map only if it has been set directly or auto-inserted as Empty to honor
// invariant 5 (every formula referent must resolve).
type Sheet struct {
	cells map[Position]*Cell
}

// NewSheet creates an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[Position]*Cell)}
}

// valueAt implements CellResolver for the AST evaluator: resolving a
// cell's current value by position, or reporting that no cell is present
// at all (spec.md §4.2 CellRefNode contract: "if Sheet.Get(p) is absent ->
// 0").
func (s *Sheet) valueAt(pos Position) (CellValue, bool) {
	cell, ok := s.cells[pos]
	if !ok {
		return CellValue{}, false
	}
	return cell.GetValue(), true
}

// SetCell parses text and, if it denotes a formula, stages it and runs the
// cycle check before touching any committed state (spec.md §4.5, §5
// Atomicity: "Implementers must stage the new cell ... before touching
// the graph"). Only once the staged content is known not to introduce a
// cycle does this method mutate the map, rewire forward/reverse edges,
// auto-insert any newly-referenced Empty cells, and invalidate the
// transitive closure of dependents.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Pos: pos}
	}

	staged, err := stageContent(text)
	if err != nil {
		return err
	}

	if staged.kind == contentFormula {
		if err := detectCycle(s, pos, staged.referencedCells()); err != nil {
			return err
		}
	}

	var oldRefs []Position
	cell, existed := s.cells[pos]
	if existed {
		oldRefs = cell.GetReferencedCells()
	} else {
		cell = newCell(s)
		s.cells[pos] = cell
	}

	cell.content = staged
	cell.invalidate()

	newRefs := staged.referencedCells()
	for _, ref := range newRefs {
		if _, exists := s.cells[ref]; !exists {
			s.cells[ref] = newCell(s)
		}
	}

	s.rewireDependencies(pos, oldRefs, newRefs)
	s.invalidateDownstream(pos)

	return nil
}

// GetCell returns the cell at pos, or nil if none has been set or
// auto-inserted there.
func (s *Sheet) GetCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &InvalidPositionError{Pos: pos}
	}
	return s.cells[pos], nil
}

// IsReferenced reports whether any other cell's formula currently mentions
// pos (SPEC_FULL.md §5.5, grounded on the original's Cell::IsReferenced).
func (s *Sheet) IsReferenced(pos Position) bool {
	cell, ok := s.cells[pos]
	return ok && len(cell.reverseDeps) > 0
}

// ClearCell resets the cell at pos to Empty. If other cells still
// reference pos, the map entry is kept as a live Empty handle so those
// referrers keep resolving (spec.md §3 Lifecycle, §9 open question); only
// once no reverse edges remain is the entry removed outright.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Pos: pos}
	}

	cell, ok := s.cells[pos]
	if !ok {
		return nil
	}

	oldRefs := cell.GetReferencedCells()
	cell.content = cellContent{kind: contentEmpty}
	cell.invalidate()

	s.rewireDependencies(pos, oldRefs, nil)
	s.invalidateDownstream(pos)

	if len(cell.reverseDeps) == 0 {
		delete(s.cells, pos)
	}
	return nil
}

// rewireDependencies drops pos's reverse edge from every position in
// oldRefs and adds it to every position in newRefs (spec.md §4.5 step 7).
// Every position passed here is guaranteed present in s.cells: oldRefs
// cells can't have been removed while pos still held a reverse edge into
// them, and newRefs cells were just auto-inserted by the caller if
// missing.
func (s *Sheet) rewireDependencies(pos Position, oldRefs, newRefs []Position) {
	for _, ref := range oldRefs {
		if cell, ok := s.cells[ref]; ok {
			delete(cell.reverseDeps, pos)
		}
	}
	for _, ref := range newRefs {
		if cell, ok := s.cells[ref]; ok {
			cell.reverseDeps[pos] = struct{}{}
		}
	}
}

// invalidateDownstream marks pos's own cache and every cache transitively
// reachable via reverse edges as invalid (spec.md §4.5 step 8, invariant
// 4).
func (s *Sheet) invalidateDownstream(pos Position) {
	for _, affected := range collectInvalidationClosure(s, pos) {
		if cell, ok := s.cells[affected]; ok {
			cell.invalidate()
		}
	}
}

// GetPrintableSize returns the bounding rectangle over every present cell,
// including auto-inserted Empty ones (spec.md §4.5, §9 open question:
// "the observed behavior includes them").
func (s *Sheet) GetPrintableSize() Size {
	var size Size
	for pos := range s.cells {
		if pos.Row+1 > size.Rows {
			size.Rows = pos.Row + 1
		}
		if pos.Col+1 > size.Cols {
			size.Cols = pos.Col + 1
		}
	}
	return size
}
