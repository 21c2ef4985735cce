// Package gomoku provides functionality for pairing 2 players into games of five in a row over TCP
// queue.go implements the matchmaking queue
package gomoku

import (
	"errors"
	"net"
	"sync"
)

var ErrAlreadyQueued = errors.New("connection is already waiting")

// Queue pairs waiting connections in arrival order
type Queue struct {
	mu      sync.Mutex
	waiting []net.Conn
	queued  map[net.Conn]struct{}
	start   func(first, second net.Conn) // Called with the lock held, must not block
}

// NewQueue creates a queue that hands every formed pair to start
func NewQueue(start func(first, second net.Conn)) *Queue {
	return &Queue{
		queued: make(map[net.Conn]struct{}),
		start:  start,
	}
}

// Enqueue adds a connection. Once two connections are waiting the two oldest
// are removed and passed to start, the earlier arrival first.
func (q *Queue) Enqueue(conn net.Conn) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.queued[conn]; ok {
		return ErrAlreadyQueued
	}
	q.waiting = append(q.waiting, conn)
	q.queued[conn] = struct{}{}
	if len(q.waiting) < 2 {
		return nil
	}
	first, second := q.waiting[0], q.waiting[1]
	q.waiting[0], q.waiting[1] = nil, nil
	q.waiting = q.waiting[2:]
	delete(q.queued, first)
	delete(q.queued, second)
	q.start(first, second)
	return nil
}

// Len returns the number of waiting connections
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

// Drain removes and returns every waiting connection
func (q *Queue) Drain() []net.Conn {
	q.mu.Lock()
	defer q.mu.Unlock()
	conns := q.waiting
	q.waiting = nil
	clear(q.queued)
	return conns
}

//!--
