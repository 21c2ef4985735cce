// Package gomoku provides functionality for pairing 2 players into games of five in a row over TCP
// session.go implements a match between two paired players
package gomoku

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hlin91/gomoku"

var errTurnTimeout = errors.New("turn timed out")

type sessionState uint8

const (
	stateInit sessionState = iota
	stateAwaitingMove
	stateRoundOver
	stateAwaitingRematch
	stateTerminated
)

func (st sessionState) String() string {
	switch st {
	case stateInit:
		return "init"
	case stateAwaitingMove:
		return "awaiting move"
	case stateRoundOver:
		return "round over"
	case stateAwaitingRematch:
		return "awaiting rematch"
	case stateTerminated:
		return "terminated"
	}
	return "unknown"
}

// SessionConfig controls a single match
type SessionConfig struct {
	BoardSize    int
	IdleTimeout  time.Duration // Longest a player may hold the turn, 0 waits forever
	MaxLineBytes int
	Logger       *log.Logger
}

// Session owns two connections and the board they play on. It is driven by a
// single goroutine so moves are applied one at a time.
type Session struct {
	ID      string
	players [2]*player // First and second in queue order
	board   *Board
	state   sessionState
	turn    int // Index of the player holding the turn
	round   int
	prefer  int // Player polled first on the next read
	idle    time.Duration
	timer   *time.Timer
	logger  *log.Logger
	span    trace.Span
}

// NewSession creates a session for a pair. The first connection plays X.
func NewSession(first, second net.Conn, cfg SessionConfig) *Session {
	size := cfg.BoardSize
	if size == 0 {
		size = DEFAULT_BOARD_SIZE
	}
	return &Session{
		ID: newSessionID(),
		players: [2]*player{
			newPlayer(first, cellFor(0), cfg.MaxLineBytes),
			newPlayer(second, cellFor(1), cfg.MaxLineBytes),
		},
		board:  NewBoard(size),
		idle:   cfg.IdleTimeout,
		logger: loggerOr(cfg.Logger),
		span:   trace.SpanFromContext(context.Background()),
	}
}

// Run plays rounds until a player leaves or ctx is cancelled. Both
// connections are closed when Run returns. The error is nil unless the
// session was cut short by ctx.
func (s *Session) Run(ctx context.Context) error {
	ctx, s.span = otel.Tracer(tracerName).Start(ctx, "gomoku.session", trace.WithAttributes(
		attribute.String("gomoku.session.id", s.ID),
		attribute.String("gomoku.player.first", s.players[0].addr()),
		attribute.String("gomoku.player.second", s.players[1].addr()),
	))
	defer s.span.End()
	defer s.close()

	for _, p := range s.players {
		go p.listen()
	}
	s.logger.Printf("session %s: started with %s (X) and %s (O)", s.ID, s.players[0].addr(), s.players[1].addr())
	s.startRound()
	for s.state != stateTerminated {
		i, in, err := s.next(ctx)
		switch {
		case errors.Is(err, errTurnTimeout):
			s.logger.Printf("session %s: player %s timed out", s.ID, s.players[i].addr())
			s.leave(i, "timeout")
		case err != nil:
			s.logger.Printf("session %s: shutting down: %v", s.ID, err)
			s.terminate("shutdown")
			return err
		default:
			s.prefer = other(i)
			s.handle(i, in)
		}
	}
	return nil
}

// next waits for the next line from either player. When both players have a
// line ready the one not served last goes first.
func (s *Session) next(ctx context.Context) (int, inbound, error) {
	first, second := s.prefer, other(s.prefer)
	for _, i := range [2]int{first, second} {
		select {
		case in, ok := <-s.players[i].in:
			return i, received(in, ok), nil
		default:
		}
	}
	select {
	case <-ctx.Done():
		return 0, inbound{}, ctx.Err()
	case <-s.expired():
		return s.turn, inbound{}, errTurnTimeout
	case in, ok := <-s.players[first].in:
		return first, received(in, ok), nil
	case in, ok := <-s.players[second].in:
		return second, received(in, ok), nil
	}
}

func received(in inbound, ok bool) inbound {
	if !ok {
		return inbound{err: io.EOF}
	}
	return in
}

// handle applies a single line from player i
func (s *Session) handle(i int, in inbound) {
	if s.state == stateTerminated {
		return
	}
	if in.err != nil {
		s.logger.Printf("session %s: player %s disconnected: %v", s.ID, s.players[i].addr(), in.err)
		s.leave(i, "disconnect")
		return
	}
	cmd, ok := ParseCommand(in.line)
	if !ok {
		return
	}
	switch cmd.Name {
	case CmdMove:
		s.move(i, cmd.Row, cmd.Col)
	case CmdChat:
		s.players[other(i)].send(chatMessage(cmd.Text))
	case CmdRematch:
		s.requestRematch(i)
	case CmdExit:
		s.logger.Printf("session %s: player %s exited", s.ID, s.players[i].addr())
		s.leave(i, "exit")
	}
}

func (s *Session) move(i, row, col int) {
	if s.state != stateAwaitingMove || i != s.turn {
		return
	}
	p, opp := s.players[i], s.players[other(i)]
	if err := s.board.Apply(row, col, p.cell); err != nil {
		p.send(invalidMessage(err))
		return
	}
	opp.send(opponentMessage(row, col))
	switch {
	case s.board.CheckWin(row, col):
		p.send(MsgWin)
		opp.send(MsgLose)
		s.endRound("win", p.cell)
	case s.board.IsFull():
		p.send(MsgDraw)
		opp.send(MsgDraw)
		s.endRound("draw", Empty)
	default:
		opp.send(MsgYourTurn)
		s.turn = other(i)
		s.armTimer()
	}
}

func (s *Session) requestRematch(i int) {
	if s.state != stateRoundOver && s.state != stateAwaitingRematch {
		return
	}
	s.players[i].rematch = true
	s.state = stateAwaitingRematch
	s.players[other(i)].send(chatMessage(RematchNotice))
	if !s.players[0].rematch || !s.players[1].rematch {
		return
	}
	s.logger.Printf("session %s: rematch accepted", s.ID)
	s.span.AddEvent("rematch", trace.WithAttributes(attribute.Int("gomoku.round", s.round+1)))
	s.startRound()
}

// startRound clears the board and both rematch flags, then tells the players a
// new round has begun. Symbols never change.
func (s *Session) startRound() {
	s.board.Reset()
	for _, p := range s.players {
		p.rematch = false
	}
	s.round++
	s.turn = 0
	s.state = stateAwaitingMove
	for _, p := range s.players {
		p.send(startMessage(p.cell))
	}
	for _, p := range s.players {
		p.send(MsgReset)
	}
	s.players[0].send(MsgYourTurn)
	s.armTimer()
}

func (s *Session) endRound(outcome string, winner Cell) {
	s.state = stateRoundOver
	s.stopTimer()
	s.logger.Printf("session %s: round %d over: %s %s", s.ID, s.round, outcome, winner.Symbol())
	s.span.AddEvent("round over", trace.WithAttributes(
		attribute.Int("gomoku.round", s.round),
		attribute.String("gomoku.outcome", outcome),
		attribute.String("gomoku.winner", winner.Symbol()),
		attribute.Int("gomoku.moves", s.board.Count()),
	))
}

// leave ends the session on behalf of player i and tells the other player
func (s *Session) leave(i int, reason string) {
	s.players[other(i)].send(MsgOpponentLeft)
	s.terminate(reason)
}

func (s *Session) terminate(reason string) {
	s.state = stateTerminated
	s.stopTimer()
	s.span.AddEvent("terminated", trace.WithAttributes(attribute.String("gomoku.reason", reason)))
	s.close()
}

func (s *Session) close() {
	for _, p := range s.players {
		p.close()
	}
}

func (s *Session) armTimer() {
	if s.idle <= 0 {
		return
	}
	s.stopTimer()
	s.timer = time.NewTimer(s.idle)
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// expired fires when the player holding the turn has run out of time
func (s *Session) expired() <-chan time.Time {
	if s.timer == nil || s.state != stateAwaitingMove {
		return nil
	}
	return s.timer.C
}

//!--
