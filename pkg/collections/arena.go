package collections

const emptySlot = -1

type slot struct {
	elem int32
	next int
}

// ArenaStack keeps its nodes in one slice and links them by index.
// Popped slots go on a free list and are reused by later pushes.
type ArenaStack struct {
	slots []slot
	head  int
	free  int
}

func NewArenaStack() *ArenaStack {
	return &ArenaStack{head: emptySlot, free: emptySlot}
}

func (s *ArenaStack) IsEmpty() bool {
	return s.head == emptySlot
}

func (s *ArenaStack) Push(elem int32) {
	idx := s.alloc()
	s.slots[idx] = slot{elem: elem, next: s.head}
	s.head = idx
}

func (s *ArenaStack) Pop() (int32, bool) {
	if s.head == emptySlot {
		return 0, false
	}
	idx := s.head
	top := s.slots[idx]
	s.head = top.next
	s.release(idx)
	return top.elem, true
}

// Drop counts the live nodes and releases the arena in one step.
func (s *ArenaStack) Drop() int {
	released := 0
	for idx := s.head; idx != emptySlot; idx = s.slots[idx].next {
		released++
	}
	s.slots = nil
	s.head = emptySlot
	s.free = emptySlot
	return released
}

func (s *ArenaStack) alloc() int {
	if s.free == emptySlot {
		s.slots = append(s.slots, slot{})
		return len(s.slots) - 1
	}
	idx := s.free
	s.free = s.slots[idx].next
	return idx
}

func (s *ArenaStack) release(idx int) {
	s.slots[idx] = slot{next: s.free}
	s.free = idx
}

// capacity is the number of slots allocated, live or free.
func (s *ArenaStack) capacity() int {
	return len(s.slots)
}
