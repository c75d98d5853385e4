package sheetengine

// dfsColor is the three-state marking spec.md §4.5 calls for: "Run a
// three-colour DFS (white/grey/black) over the prospective forward
// graph."
type dfsColor uint8

const (
	dfsWhite dfsColor = iota
	dfsGrey
	dfsBlack
)

// detectCycle runs the cycle check spec.md §4.5 step 4 describes: the
// target position is marked grey up front, then every position in
// stagedRefs — the referent list of the *not-yet-committed* scratch
// content — is explored as if it were already target's forward edge set.
// Every other cell's forward edges come from its already-committed
// content, via sheet's live map. A position with no cell in the map is a
// leaf with no further edges (spec.md: "DFS treats positions whose cells
// do not yet exist as leaves").
//
// This operates on a proposed edge set layered over committed state
// rather than on committed state itself, per spec.md §9's "cycle-check
// staging" design note: no cell is touched, only a colors map built for
// the duration of this call.
func detectCycle(sheet *Sheet, target Position, stagedRefs []Position) error {
	colors := make(map[Position]dfsColor)
	colors[target] = dfsGrey

	var visit func(pos Position) error
	visit = func(pos Position) error {
		switch colors[pos] {
		case dfsBlack:
			return nil
		case dfsGrey:
			return &CircularDependencyError{Pos: pos}
		}

		colors[pos] = dfsGrey
		cell, ok := sheet.cells[pos]
		if ok {
			for _, ref := range cell.GetReferencedCells() {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}
		colors[pos] = dfsBlack
		return nil
	}

	for _, ref := range stagedRefs {
		if err := visit(ref); err != nil {
			return err
		}
	}

	colors[target] = dfsBlack
	return nil
}

// collectInvalidationClosure returns every position transitively reachable
// from start by following reverse edges (spec.md invariant 4, §4.5 step 8):
// start itself plus every cell that (directly or indirectly) depends on
// it. Order is unspecified; callers only use this to mark caches invalid,
// which is commutative.
func collectInvalidationClosure(sheet *Sheet, start Position) []Position {
	visited := map[Position]struct{}{start: {}}
	order := []Position{start}

	for i := 0; i < len(order); i++ {
		cell, ok := sheet.cells[order[i]]
		if !ok {
			continue
		}
		for dependent := range cell.reverseDeps {
			if _, seen := visited[dependent]; seen {
				continue
			}
			visited[dependent] = struct{}{}
			order = append(order, dependent)
		}
	}

	return order
}
