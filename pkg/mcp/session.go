package mcp

import (
	"sync"

	"github.com/mholzen/lifo/pkg/collections"
)

// Session serializes access to one stack shared by every tool call.
type Session struct {
	mu    sync.Mutex
	stack collections.LIFO
}

func NewSession(stack collections.LIFO) *Session {
	return &Session{stack: stack}
}

func (s *Session) Push(values ...int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		s.stack.Push(v)
	}
}

func (s *Session) Pop() (int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack.Pop()
}

func (s *Session) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack.IsEmpty()
}

func (s *Session) Drop() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack.Drop()
}
