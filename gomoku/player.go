// Package gomoku provides functionality for pairing 2 players into games of five in a row over TCP
// player.go bridges a player's connection to the channel the session listens on
package gomoku

import (
	"bufio"
	"io"
	"net"
	"sync"
	"time"
)

const (
	DEFAULT_MAX_LINE_BYTES = 4096
	WRITE_TIMEOUT          = 10 * time.Second // Number of seconds a single write may block
)

// inbound is a single line read off a player connection. Once err is set the
// connection is unusable and no further lines follow.
type inbound struct {
	line string
	err  error
}

type player struct {
	conn    net.Conn
	cell    Cell         // Fixed for the life of the session
	rematch bool         // Player asked for another round
	in      chan inbound // Lines read from the connection
	done    chan struct{}
	once    sync.Once
	maxLine int
}

func newPlayer(conn net.Conn, cell Cell, maxLine int) *player {
	if maxLine <= 0 {
		maxLine = DEFAULT_MAX_LINE_BYTES
	}
	return &player{
		conn:    conn,
		cell:    cell,
		in:      make(chan inbound),
		done:    make(chan struct{}),
		maxLine: maxLine,
	}
}

// listen reads lines from the connection and forwards them to the session
// until the connection fails or the player is closed
func (p *player) listen() {
	defer close(p.in)
	client := bufio.NewScanner(p.conn)
	client.Buffer(make([]byte, 0, min(256, p.maxLine)), p.maxLine)
	for client.Scan() {
		select {
		case p.in <- inbound{line: client.Text()}:
		case <-p.done:
			return
		}
	}
	err := client.Err()
	if err == nil {
		err = io.EOF
	}
	select {
	case p.in <- inbound{err: err}:
	case <-p.done:
	}
}

// send writes a single line to the player. A failed write closes the
// connection so the failure surfaces through listen.
func (p *player) send(line string) error {
	p.conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
	_, err := io.WriteString(p.conn, line+"\n")
	if err != nil {
		p.conn.Close()
	}
	return err
}

// close stops the listener and closes the connection. Safe to call more than once.
func (p *player) close() {
	p.once.Do(func() {
		close(p.done)
		p.conn.Close()
	})
}

func (p *player) addr() string {
	if a := p.conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return "unknown"
}

//!--
