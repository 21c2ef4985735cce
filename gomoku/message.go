// Package gomoku provides functionality for pairing 2 players into games of five in a row over TCP
// message.go defines the lines passed between client and server
package gomoku

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Server to client lines
const (
	MsgStart        = "START"
	MsgReset        = "RESET"
	MsgYourTurn     = "YOUR TURN"
	MsgOpponent     = "OPPONENT"
	MsgInvalid      = "INVALID"
	MsgWin          = "WIN"
	MsgLose         = "LOSE"
	MsgDraw         = "DRAW"
	MsgOpponentLeft = "OPPONENT_LEFT"
	MsgChat         = "CHAT"
)

// Client to server commands
const (
	CmdMove    = "MOVE"
	CmdChat    = "CHAT"
	CmdRematch = "REMATCH"
	CmdExit    = "EXIT"
)

// RematchNotice is relayed as a chat line when a player asks for a rematch
const RematchNotice = "[System]: Opponent wants a rematch!"

// Command is a parsed client line
type Command struct {
	Name string
	Row  int
	Col  int
	Text string // Chat text, verbatim
}

// ParseCommand parses a single client line. The name and MOVE fields may be
// separated by any whitespace. Chat text is everything after the single
// separator that follows CHAT. Lines that are empty, unknown or have
// malformed fields are reported with ok set to false.
func ParseCommand(line string) (cmd Command, ok bool) {
	line = strings.TrimLeftFunc(strings.TrimRight(line, "\r\n"), unicode.IsSpace)
	tok := strings.Fields(line)
	if len(tok) == 0 {
		return Command{}, false
	}
	switch tok[0] {
	case CmdChat:
		text := line[len(CmdChat):]
		_, sep := utf8.DecodeRuneInString(text)
		text = text[sep:]
		return Command{Name: CmdChat, Text: text}, true
	case CmdMove:
		if len(tok) != 3 {
			return Command{}, false
		}
		row, err := strconv.Atoi(tok[1])
		if err != nil {
			return Command{}, false
		}
		col, err := strconv.Atoi(tok[2])
		if err != nil {
			return Command{}, false
		}
		return Command{Name: CmdMove, Row: row, Col: col}, true
	case CmdRematch, CmdExit:
		if len(tok) != 1 {
			return Command{}, false
		}
		return Command{Name: tok[0]}, true
	}
	return Command{}, false
}

func startMessage(c Cell) string {
	return MsgStart + " " + c.Symbol()
}

func opponentMessage(row, col int) string {
	return fmt.Sprintf("%s %d %d", MsgOpponent, row, col)
}

func invalidMessage(err error) string {
	return MsgInvalid + " " + err.Error()
}

func chatMessage(text string) string {
	return MsgChat + " " + text
}

// Client side helpers

// MoveCommand formats a move line
func MoveCommand(row, col int) string {
	return fmt.Sprintf("%s %d %d", CmdMove, row, col)
}

// ChatCommand formats a chat line
func ChatCommand(text string) string {
	return CmdChat + " " + text
}

//!--
