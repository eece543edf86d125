package collections

// LIFO is the operation set shared by Stack and ArenaStack.
type LIFO interface {
	Push(elem int32)
	Pop() (int32, bool)
	IsEmpty() bool
	Drop() int
}

// link is either Empty (nil node) or owns exactly one node.
type link struct {
	node *node
}

type node struct {
	elem int32
	next link
}

// take moves the link out, leaving Empty in its place.
func (l *link) take() link {
	taken := *l
	*l = link{}
	return taken
}

func (l link) isEmpty() bool {
	return l.node == nil
}

// Stack is a LIFO stack of int32 values on a singly-linked chain.
// It is not safe for concurrent use.
type Stack struct {
	head link
}

func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) IsEmpty() bool {
	return s.head.isEmpty()
}

func (s *Stack) Push(elem int32) {
	n := &node{
		elem: elem,
		next: s.head.take(),
	}
	s.head = link{node: n}
}

// Pop removes the top value. The second result is false when the stack is empty.
func (s *Stack) Pop() (int32, bool) {
	top := s.head.take()
	if top.isEmpty() {
		return 0, false
	}
	s.head = top.node.next.take()
	return top.node.elem, true
}

// Drop releases every node one at a time and returns how many were released.
// Each node's next is cleared before the node is let go, so no released node
// keeps the rest of the chain reachable. The stack is empty afterwards.
func (s *Stack) Drop() int {
	released := 0
	cursor := s.head.take()
	for !cursor.isEmpty() {
		current := cursor.node
		cursor = current.next.take()
		released++
	}
	return released
}
