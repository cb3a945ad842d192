package movement

import (
	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/KweezyCode/NoCheatPlus/utils"
)

// History holds the recent moves of one entity. The move under evaluation is the current move; once
// finished it becomes past move 0. A History must only be written by one goroutine.
type History struct {
	moves *utils.CircularQueue[Record]
	// open is set between Push and Finish.
	open bool
}

// NewHistory returns a history keeping at most capacity moves, the current one included.
func NewHistory(capacity int) *History {
	return &History{moves: utils.NewCircularQueue[Record](capacity)}
}

// Push makes r the current move. A current move that was not finished yet becomes a past move.
func (h *History) Push(r Record) {
	h.moves.Append(r)
	h.open = true
}

// Finish ends the current move.
func (h *History) Finish() {
	h.open = false
}

// Current returns the move under evaluation.
func (h *History) Current() (Record, error) {
	if !h.open {
		return Record{}, oerror.IndexOutOfRange(0, 0)
	}
	return h.moves.Newest(0)
}

// CorrectCurrent lets f change the lost ground fields of the current move.
func (h *History) CorrectCurrent(f func(c *Correction)) error {
	if !h.open {
		return oerror.IndexOutOfRange(0, 0)
	}
	r, err := h.moves.Ptr(h.moves.Len() - 1)
	if err != nil {
		return err
	}
	c := Correction{TouchedGroundWorkaround: r.TouchedGroundWorkaround, BunnyHop: r.BunnyHop}
	f(&c)
	r.TouchedGroundWorkaround, r.BunnyHop = c.TouchedGroundWorkaround, c.BunnyHop
	return nil
}

// MarkInvalid clears the Valid flag of the current move.
func (h *History) MarkInvalid() error {
	if !h.open {
		return oerror.IndexOutOfRange(0, 0)
	}
	r, err := h.moves.Ptr(h.moves.Len() - 1)
	if err != nil {
		return err
	}
	r.Valid = false
	return nil
}

// PastMove returns the i-th most recent finished move, 0 being the latest.
func (h *History) PastMove(i int) (Record, error) {
	n := h.NumberOfPastMoves()
	if i < 0 || i >= n {
		return Record{}, oerror.IndexOutOfRange(i, n)
	}
	return h.moves.Newest(i + h.offset())
}

// FirstPastMove returns PastMove(0).
func (h *History) FirstPastMove() (Record, error) {
	return h.PastMove(0)
}

// SecondPastMove returns PastMove(1).
func (h *History) SecondPastMove() (Record, error) {
	return h.PastMove(1)
}

// NumberOfPastMoves returns the amount of finished moves kept.
func (h *History) NumberOfPastMoves() int {
	return h.moves.Len() - h.offset()
}

// Capacity returns the maximum amount of moves kept.
func (h *History) Capacity() int {
	return h.moves.Cap()
}

// Clear drops every move.
func (h *History) Clear() {
	h.moves.Clear()
	h.open = false
}

func (h *History) offset() int {
	if h.open {
		return 1
	}
	return 0
}
