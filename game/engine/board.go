package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is returned for a cell index outside [0, size²)
var ErrInvalidIndex = errors.New("invalid cell index")

// Board is a square N×N grid. Cells are addressed by index = row*N + col.
type Board struct {
	Size int `json:"size"`
}

// Cells returns the number of cells on the board
func (b Board) Cells() int {
	return b.Size * b.Size
}

// Contains reports whether index addresses a cell of the board
func (b Board) Contains(index int) bool {
	return index >= 0 && index < b.Cells()
}

// RowOf returns the row of a cell index
func RowOf(index, size int) int {
	return index / size
}

// ColOf returns the column of a cell index
func ColOf(index, size int) int {
	return index % size
}

// IndexOf returns the cell index of a row/column pair
func IndexOf(row, col, size int) int {
	return row*size + col
}

// InBounds reports whether a row/column pair lies on a size×size board
func InBounds(row, col, size int) bool {
	return row >= 0 && row < size && col >= 0 && col < size
}

// ClassifyEdge returns the border classification of a cell. Corners take
// precedence over edges.
func ClassifyEdge(index, size int) (Edge, error) {
	if size <= 0 || index < 0 || index >= size*size {
		return "", fmt.Errorf("%w: %d on board of size %d", ErrInvalidIndex, index, size)
	}

	row, col := RowOf(index, size), ColOf(index, size)
	last := size - 1

	switch {
	case row == 0 && col == 0:
		return TopLeft, nil
	case row == 0 && col == last:
		return TopRight, nil
	case row == last && col == 0:
		return BottomLeft, nil
	case row == last && col == last:
		return BottomRight, nil
	case row == 0:
		return Top, nil
	case row == last:
		return Bottom, nil
	case col == 0:
		return Left, nil
	case col == last:
		return Right, nil
	default:
		return Center, nil
	}
}

// ColumnCells returns every cell index in the given columns, ascending
func ColumnCells(size int, columns ...int) []int {
	var cells []int
	for i := 0; i < size*size; i++ {
		col := ColOf(i, size)
		for _, c := range columns {
			if col == c {
				cells = append(cells, i)
				break
			}
		}
	}
	return cells
}
