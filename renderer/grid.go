// renderer/grid.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

// Grid is a rows x cols array of rendered cells, produced fresh each
// frame and blitted by the display layer.
type Grid struct {
	Rows, Cols int
	cells      []Cell
}

func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidGridSize
	}
	return &Grid{Rows: rows, Cols: cols, cells: make([]Cell, rows*cols)}, nil
}

func (g *Grid) At(row, col int) *Cell {
	return &g.cells[row*g.Cols+col]
}

// Resize adjusts the grid dimensions, reallocating only when it grows.
// Called when the terminal is resized.
func (g *Grid) Resize(rows, cols int) {
	if n := rows * cols; n > cap(g.cells) {
		g.cells = make([]Cell, n)
	} else {
		g.cells = g.cells[:n]
	}
	g.Rows, g.Cols = rows, cols
}
