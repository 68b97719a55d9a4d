package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const DefaultBoardSize = 3

var (
	ErrOutOfBounds  = errors.New("cell is outside the map")
	ErrCellClaimed  = errors.New("cell is already claimed")
	ErrUnknownOwner = errors.New("unknown owner")
	ErrBadCell      = errors.New("enter a cell as: row col")
)

// Owner is the state of one territory cell.
type Owner int

const (
	Unclaimed Owner = iota
	Player1
	Player2
)

// OwnerOf maps a player's seat (0 or 1) to its owner value.
func OwnerOf(seat int) Owner {
	return Player1 + Owner(seat)
}

func (o Owner) Glyph() byte {
	switch o {
	case Player1:
		return 'X'
	case Player2:
		return 'O'
	}
	return '.'
}

// Board is a square map of cells. A claimed cell stays claimed for the
// rest of the match.
type Board struct {
	size  int
	cells [][]Owner
}

func NewBoard(size int) *Board {
	if size < 1 {
		size = DefaultBoardSize
	}
	cells := make([][]Owner, size)
	for i := range cells {
		cells[i] = make([]Owner, size)
	}
	return &Board{size: size, cells: cells}
}

func (b *Board) Size() int { return b.size }

func (b *Board) Inside(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b *Board) Owner(row, col int) Owner {
	if !b.Inside(row, col) {
		return Unclaimed
	}
	return b.cells[row][col]
}

// Claim marks the cell for owner. Nothing changes when it fails.
func (b *Board) Claim(owner Owner, row, col int) error {
	if owner != Player1 && owner != Player2 {
		return ErrUnknownOwner
	}
	if !b.Inside(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	if b.cells[row][col] != Unclaimed {
		return fmt.Errorf("%w: (%d, %d)", ErrCellClaimed, row, col)
	}
	b.cells[row][col] = owner
	return nil
}

// Count returns the number of cells held by owner.
func (b *Board) Count(owner Owner) int {
	n := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == owner {
				n++
			}
		}
	}
	return n
}

func (b *Board) Free() int {
	return b.Count(Unclaimed)
}

// Render draws the map with column indexes on top and row indexes on the left.
func (b *Board) Render() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < b.size; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteString("\n")
	for row, cells := range b.cells {
		fmt.Fprintf(&sb, "%2d ", row)
		for _, cell := range cells {
			sb.WriteByte(' ')
			sb.WriteByte(cell.Glyph())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParseCell reads "row col" (any separator) into coordinates.
func ParseCell(raw string) (row, col int, err error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, ErrBadCell
	}
	if row, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, ErrBadCell
	}
	if col, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, ErrBadCell
	}
	return row, col, nil
}
