package sheetengine

import "strings"

// PrintValues renders the bounding rectangle's computed values, columns
// tab-separated, rows newline-terminated (spec.md §4.5, §6). Absent cells
// print as the empty string.
func (s *Sheet) PrintValues() string {
	return s.printGrid(func(cell *Cell) string {
		return cell.GetValue().String()
	})
}

// PrintTexts renders the bounding rectangle's raw text in the same
// layout as PrintValues.
func (s *Sheet) PrintTexts() string {
	return s.printGrid(func(cell *Cell) string {
		return cell.GetText()
	})
}

func (s *Sheet) printGrid(render func(*Cell) string) string {
	size := s.GetPrintableSize()

	var sb strings.Builder
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				sb.WriteByte('\t')
			}
			if cell, ok := s.cells[Position{Row: row, Col: col}]; ok {
				sb.WriteString(render(cell))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
