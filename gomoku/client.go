// Package gomoku provides functionality for pairing 2 players into games of five in a row over TCP
// client.go implements a terminal client that connects to the server
package gomoku

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	TIMEOUT        = 10 // Number of seconds till dial timeout
	MAX_CHAT_LINES = 8
)

type Client struct {
	board   *Board    // The client's local copy of the board
	conn    net.Conn  // The client's connection to the server
	symbol  Cell      // The symbol assigned by the server
	myTurn  bool      // Server granted us the turn
	pending []int     // Row and column of a move the server has not confirmed
	status  string    // Last status line shown above the board
	chat    []string  // Recent chat lines
	in      io.Reader // User input
	out     io.Writer // Screen
	clear   bool      // Clear the terminal before each redraw
}

// NewClient creates and returns a new client reading commands from in and drawing to out
func NewClient(in io.Reader, out io.Writer, clear bool) *Client {
	return &Client{
		board:  NewBoard(DEFAULT_BOARD_SIZE),
		in:     in,
		out:    out,
		clear:  clear,
		status: "Connecting to server...",
	}
}

// Connect attempts to connect the client to the server
func (c *Client) Connect(host, port string) error {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), TIMEOUT*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	c.conn = conn
	c.status = "Waiting for an opponent..."
	return nil
}

// Start plays until the opponent leaves, the server closes the connection or the user exits
func (c *Client) Start(ctx context.Context) error {
	defer c.conn.Close()
	done := make(chan struct{})
	defer close(done)

	serverLines := make(chan string)
	serverErr := make(chan error, 1)
	go func() {
		defer close(serverLines)
		server := bufio.NewScanner(c.conn)
		for server.Scan() {
			select {
			case serverLines <- server.Text():
			case <-done:
				return
			}
		}
		serverErr <- server.Err()
	}()

	inputLines := make(chan string)
	go func() {
		defer close(inputLines)
		input := bufio.NewScanner(c.in)
		for input.Scan() {
			select {
			case inputLines <- input.Text():
			case <-done:
				return
			}
		}
	}()

	c.render()
	for {
		select {
		case <-ctx.Done():
			c.send(CmdExit)
			return nil
		case line, ok := <-serverLines:
			if !ok {
				select {
				case err := <-serverErr:
					if err != nil {
						return fmt.Errorf("lost connection: %w", err)
					}
				default:
				}
				c.status = "Disconnected from server."
				c.render()
				return nil
			}
			finished := c.handleServer(line)
			c.render()
			if finished {
				return nil
			}
		case line, ok := <-inputLines:
			if !ok {
				c.send(CmdExit)
				return nil
			}
			quit, err := c.handleInput(line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			c.render()
		}
	}
}

// handleServer updates the local view from a server line. Returns true once
// the session is over.
func (c *Client) handleServer(line string) bool {
	name, rest, _ := strings.Cut(strings.TrimRight(line, "\r"), " ")
	switch {
	case line == MsgYourTurn:
		c.myTurn = true
		c.status = "It's your turn."
	case name == MsgStart:
		c.symbol = First
		if rest == Second.Symbol() {
			c.symbol = Second
		}
		c.status = fmt.Sprintf("Game started! You are '%s'.", c.symbol.Symbol())
	case name == MsgReset:
		c.board.Reset()
		c.myTurn = false
		c.pending = nil
	case name == MsgOpponent:
		tok := strings.Fields(rest)
		if len(tok) != 2 {
			return false
		}
		row, err1 := strconv.Atoi(tok[0])
		col, err2 := strconv.Atoi(tok[1])
		if err1 != nil || err2 != nil {
			return false
		}
		c.board.Apply(row, col, c.symbol.Opponent())
		c.pending = nil
		c.status = fmt.Sprintf("Opponent moved to (%d, %d)", row, col)
	case name == MsgInvalid:
		// Revert the optimistic update, the turn is still ours
		if c.pending != nil {
			c.board.remove(c.pending[0], c.pending[1])
			c.pending = nil
		}
		c.myTurn = true
		c.status = fmt.Sprintf("Invalid move: %s. It's still your turn.", rest)
	case name == MsgWin:
		c.endRound("You win!")
	case name == MsgLose:
		c.endRound("You lose!")
	case name == MsgDraw:
		c.endRound("Game is a draw.")
	case name == MsgOpponentLeft:
		c.myTurn = false
		c.status = "Opponent disconnected."
		return true
	case name == MsgChat:
		c.chat = append(c.chat, "Opponent: "+rest)
		if len(c.chat) > MAX_CHAT_LINES {
			c.chat = c.chat[len(c.chat)-MAX_CHAT_LINES:]
		}
	}
	return false
}

func (c *Client) endRound(result string) {
	c.myTurn = false
	c.pending = nil
	c.status = result + " Type /rematch to play again or /exit to quit."
}

// handleInput turns a line typed by the user into a command for the server.
// Returns true if the user quit.
func (c *Client) handleInput(line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false, nil
	case line == "/exit":
		return true, c.send(CmdExit)
	case line == "/rematch":
		c.status = "Rematch requested, waiting for opponent..."
		return false, c.send(CmdRematch)
	case strings.HasPrefix(line, "/chat "):
		text := strings.TrimPrefix(line, "/chat ")
		c.chat = append(c.chat, "You: "+text)
		if len(c.chat) > MAX_CHAT_LINES {
			c.chat = c.chat[len(c.chat)-MAX_CHAT_LINES:]
		}
		return false, c.send(ChatCommand(text))
	}
	if !c.myTurn {
		c.status = "Not your turn."
		return false, nil
	}
	tok := strings.Fields(line)
	if len(tok) != 2 {
		c.status = "Enter a row and column (eg. 7 7). Try again."
		return false, nil
	}
	row, err := strconv.Atoi(tok[0])
	if err != nil {
		c.status = "Bad row. Try again."
		return false, nil
	}
	col, err := strconv.Atoi(tok[1])
	if err != nil {
		c.status = "Bad column. Try again."
		return false, nil
	}
	if !c.board.InBounds(row, col) {
		c.status = fmt.Sprintf("Coordinates must be between 0 and %d. Try again.", c.board.Size()-1)
		return false, nil
	}
	if c.board.At(row, col) != Empty {
		c.status = "Cell is already occupied. Try again."
		return false, nil
	}
	if err := c.send(MoveCommand(row, col)); err != nil {
		return false, err
	}
	// Optimistic update, reverted if the server answers INVALID
	c.board.Apply(row, col, c.symbol)
	c.pending = []int{row, col}
	c.myTurn = false
	c.status = "Move sent, waiting for opponent..."
	return false, nil
}

func (c *Client) send(line string) error {
	if _, err := fmt.Fprintln(c.conn, line); err != nil {
		return fmt.Errorf("failed to send %q: %w", line, err)
	}
	return nil
}

// render redraws the status line, board and chat
func (c *Client) render() {
	if c.clear {
		Clear(c.out)
	}
	fmt.Fprintln(c.out, "--- GOMOKU ---")
	fmt.Fprintf(c.out, "\n[STATUS]: %s\n\n", c.status)
	fmt.Fprint(c.out, c.board.String())
	if len(c.chat) > 0 {
		fmt.Fprintln(c.out)
		for _, l := range c.chat {
			fmt.Fprintln(c.out, l)
		}
	}
	fmt.Fprintln(c.out, "\nCommands: <row> <col> | /chat <text> | /rematch | /exit")
}

//!--
