package sim

import (
	"errors"
	"fmt"
)

// ErrActiveTop is returned when appending while the top block still moves.
var ErrActiveTop = errors.New("sim: top block is still active")

// Stack is the append-only arena of blocks for one run. Slice position i
// holds the block with Index i+1, so the predecessor of any block is a plain
// index lookup.
type Stack struct {
	blocks []*Block
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Len returns the number of blocks, including any active or missed top.
func (s *Stack) Len() int {
	return len(s.blocks)
}

// Top returns the last block, or nil for an empty stack.
func (s *Stack) Top() *Block {
	if len(s.blocks) == 0 {
		return nil
	}
	return s.blocks[len(s.blocks)-1]
}

// ByIndex returns the block with the given Index, or nil.
func (s *Stack) ByIndex(index int) *Block {
	if index < 1 || index > len(s.blocks) {
		return nil
	}
	return s.blocks[index-1]
}

// Predecessor returns the block directly beneath b, or nil for the foundation.
func (s *Stack) Predecessor(b *Block) *Block {
	return s.ByIndex(b.Index - 1)
}

// Active returns the moving block, or nil.
func (s *Stack) Active() *Block {
	if top := s.Top(); top != nil && top.State == BlockActive {
		return top
	}
	return nil
}

// TopMissed reports whether the last commit missed.
func (s *Stack) TopMissed() bool {
	top := s.Top()
	return top != nil && top.State == BlockMissed
}

// Append adds b on top. The next index must follow the current top and
// the current top must have settled.
func (s *Stack) Append(b *Block) error {
	if s.Active() != nil {
		return ErrActiveTop
	}
	if b.Index != len(s.blocks)+1 {
		return fmt.Errorf("sim: block index %d does not follow stack of %d", b.Index, len(s.blocks))
	}
	s.blocks = append(s.blocks, b)
	return nil
}

// Score counts the placed blocks above the foundation.
func (s *Stack) Score() int {
	n := 0
	for _, b := range s.blocks[min(1, len(s.blocks)):] {
		if b.State == BlockStopped {
			n++
		}
	}
	return n
}

// Blocks returns a value copy of every block, bottom first.
func (s *Stack) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = *b
	}
	return out
}

// Clear drops every block and returns how many were disposed.
func (s *Stack) Clear() int {
	n := len(s.blocks)
	s.blocks = nil
	return n
}
