// Package gomoku provides functionality for pairing 2 players into games of five in a row over TCP
// board.go implements the game board and win detection
package gomoku

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
)

const (
	DEFAULT_BOARD_SIZE = 15
	MIN_BOARD_SIZE     = 5
	WIN_LENGTH         = 5
)

// Cell is the state of a single board tile
type Cell uint8

const (
	Empty Cell = iota
	First
	Second
)

var (
	ErrOutOfBounds  = errors.New("Out of bounds")
	ErrCellOccupied = errors.New("Cell occupied")
)

// Symbol returns the wire symbol of the cell
func (c Cell) Symbol() string {
	switch c {
	case First:
		return "X"
	case Second:
		return "O"
	}
	return "."
}

// Opponent returns the cell of the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case First:
		return Second
	case Second:
		return First
	}
	return Empty
}

// Board is a square grid of cells. Row and column indices are in [0, size).
type Board struct {
	size  int
	cells []Cell
}

// NewBoard creates and returns a new empty board
func NewBoard(size int) *Board {
	if size < MIN_BOARD_SIZE {
		size = MIN_BOARD_SIZE
	}
	return &Board{size: size, cells: make([]Cell, size*size)}
}

// Size returns the number of rows (and columns) of the board
func (b *Board) Size() int {
	return b.size
}

// InBounds checks if the position lies on the board
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At returns the cell at the position. Positions off the board read as Empty.
func (b *Board) At(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.size+col]
}

// Apply writes the cell at the position if it is on the board and empty
func (b *Board) Apply(row, col int, c Cell) error {
	if !b.InBounds(row, col) {
		return ErrOutOfBounds
	}
	if b.cells[row*b.size+col] != Empty {
		return ErrCellOccupied
	}
	b.cells[row*b.size+col] = c
	return nil
}

// remove empties a single cell. Only the client uses it, to take back a move
// the server rejected.
func (b *Board) remove(row, col int) {
	if b.InBounds(row, col) {
		b.cells[row*b.size+col] = Empty
	}
}

// Reset clears every cell
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
}

// IsFull checks if no empty cell remains
func (b *Board) IsFull() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of occupied cells
func (b *Board) Count() int {
	n := 0
	for _, c := range b.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// CheckWin checks if the stone at the position completes a winning line.
// A line wins with WIN_LENGTH or more stones unless both of its ends are
// capped by the opponent. The board edge and empty cells never cap a line.
func (b *Board) CheckWin(row, col int) bool {
	mark := b.At(row, col)
	if mark == Empty {
		return false
	}
	opp := mark.Opponent()
	for _, d := range directions {
		// forward
		fr, fc := row+d[0], col+d[1]
		forward := 0
		for b.InBounds(fr, fc) && b.At(fr, fc) == mark {
			forward++
			fr += d[0]
			fc += d[1]
		}
		// backward
		br, bc := row-d[0], col-d[1]
		backward := 0
		for b.InBounds(br, bc) && b.At(br, bc) == mark {
			backward++
			br -= d[0]
			bc -= d[1]
		}
		if 1+forward+backward < WIN_LENGTH {
			continue
		}
		blockedFwd := b.InBounds(fr, fc) && b.At(fr, fc) == opp
		blockedBack := b.InBounds(br, bc) && b.At(br, bc) == opp
		if !(blockedFwd && blockedBack) {
			return true
		}
	}
	return false
}

// String renders the board with row and column indices
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for c := 0; c < b.size; c++ {
		fmt.Fprintf(&sb, "%-2d ", c)
	}
	sb.WriteString("\n")
	for r := 0; r < b.size; r++ {
		fmt.Fprintf(&sb, "%-2d ", r)
		for c := 0; c < b.size; c++ {
			fmt.Fprintf(&sb, "%-2s ", b.At(r, c).Symbol())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// clearCommand returns the command that clears the terminal, or nil when the
// platform has none
var clearCommand = func() *exec.Cmd {
	switch runtime.GOOS {
	case "linux", "darwin":
		return exec.Command("clear")
	case "windows":
		return exec.Command("cmd", "/c", "cls")
	}
	return nil
}

// Clear clears the terminal that w draws to
func Clear(w io.Writer) {
	cmd := clearCommand()
	if cmd == nil {
		return
	}
	cmd.Stdout = w
	cmd.Run()
}

//!--
