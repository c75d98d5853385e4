package sheetengine

import (
	"fmt"
	"testing"
)

func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewSheet()
		for row := 0; row < 100; row++ {
			for col := 0; col < 26; col++ {
				s.SetCell(Position{Row: row, Col: col}, fmt.Sprintf("%d", row*col))
			}
		}
	}
}

func BenchmarkFormulaDependencyChain(b *testing.B) {
	s := NewSheet()
	s.SetCell(Position{Row: 0, Col: 0}, "1")
	for row := 1; row < 100; row++ {
		s.SetCell(Position{Row: row, Col: 0}, fmt.Sprintf("=A%d+1", row))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cell, _ := s.GetCell(Position{Row: 99, Col: 0})
		cell.invalidate()
		cell.GetValue()
	}
}

func BenchmarkWideDependencyFanOut(b *testing.B) {
	s := NewSheet()
	s.SetCell(Position{Row: 0, Col: 0}, "100")
	for row := 1; row < 500; row++ {
		s.SetCell(Position{Row: row, Col: 1}, "=A1*2")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i))
		for row := 1; row < 500; row++ {
			cell, _ := s.GetCell(Position{Row: row, Col: 1})
			cell.GetValue()
		}
	}
}

func BenchmarkCascadingUpdates(b *testing.B) {
	s := NewSheet()
	for row := 0; row < 50; row++ {
		for col := 0; col < 10; col++ {
			pos := Position{Row: row, Col: col}
			if col == 0 {
				s.SetCell(pos, fmt.Sprintf("%d", row))
			} else {
				prev := Position{Row: row, Col: col - 1}
				s.SetCell(pos, fmt.Sprintf("=%s*2", prev.String()))
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i%100))
		for col := 0; col < 10; col++ {
			cell, _ := s.GetCell(Position{Row: 0, Col: col})
			cell.GetValue()
		}
	}
}

func BenchmarkCircularReferenceDetection(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewSheet()
		s.SetCell(Position{Row: 0, Col: 0}, "=B1+C1")
		s.SetCell(Position{Row: 0, Col: 1}, "=C1+D1")
		s.SetCell(Position{Row: 0, Col: 2}, "=D1+E1")
		s.SetCell(Position{Row: 0, Col: 3}, "=E1+F1")
		s.SetCell(Position{Row: 0, Col: 4}, "=F1+G1")
		s.SetCell(Position{Row: 0, Col: 5}, "=G1+H1")
		s.SetCell(Position{Row: 0, Col: 6}, "=H1+A1")
		s.SetCell(Position{Row: 0, Col: 7}, "=A1")
	}
}

func BenchmarkManySmallFormulas(b *testing.B) {
	s := NewSheet()
	for row := 0; row < 100; row++ {
		s.SetCell(Position{Row: row, Col: 0}, fmt.Sprintf("%d", row))
		s.SetCell(Position{Row: row, Col: 1}, fmt.Sprintf("=A%d*2", row+1))
		s.SetCell(Position{Row: row, Col: 2}, fmt.Sprintf("=B%d+A%d", row+1, row+1))
		s.SetCell(Position{Row: row, Col: 3}, fmt.Sprintf("=C%d/2", row+1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := 0; row < 100; row++ {
			cell, _ := s.GetCell(Position{Row: row, Col: 3})
			cell.invalidate()
			cell.GetValue()
		}
	}
}

func BenchmarkDirtyPropagation(b *testing.B) {
	s := NewSheet()
	grid := 20
	for row := 0; row < grid; row++ {
		for col := 0; col < grid; col++ {
			pos := Position{Row: row, Col: col}
			switch {
			case row == 0 && col == 0:
				s.SetCell(pos, "1")
			case row == 0:
				s.SetCell(pos, fmt.Sprintf("=%s+1", (Position{Row: row, Col: col - 1}).String()))
			case col == 0:
				s.SetCell(pos, fmt.Sprintf("=%s+1", (Position{Row: row - 1, Col: col}).String()))
			default:
				s.SetCell(pos, fmt.Sprintf("=%s+%s",
					(Position{Row: row, Col: col - 1}).String(),
					(Position{Row: row - 1, Col: col}).String()))
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SetCell(Position{Row: 0, Col: 0}, fmt.Sprintf("%d", i%100))
		cell, _ := s.GetCell(Position{Row: grid - 1, Col: grid - 1})
		cell.GetValue()
	}
}
