// Package gomoku provides functionality for pairing 2 players into games of five in a row over TCP
// utility.go contains private utility functions for the package
package gomoku

import (
	"log"

	"github.com/google/uuid"
)

// Generates an identifier for a new match session
func newSessionID() string {
	return uuid.NewString()
}

// Returns the index of the other player in a pair
func other(i int) int {
	return 1 - i
}

// Returns the cell a player in the given pair slot places
func cellFor(i int) Cell {
	if i == 0 {
		return First
	}
	return Second
}

// Returns the logger to use, falling back to the standard logger
func loggerOr(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}

//!--
