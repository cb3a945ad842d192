package utils

import (
	"errors"
	"slices"
	"testing"

	"github.com/KweezyCode/NoCheatPlus/oerror"
)

func TestCircularQueueAppend(t *testing.T) {
	q := NewCircularQueue[int](3)
	for i := 1; i <= 3; i++ {
		if q.Append(i) {
			t.Fatalf("append %d evicted below capacity", i)
		}
	}
	if !q.Append(4) {
		t.Fatalf("expected eviction on full queue")
	}
	if q.Len() != 3 || q.Cap() != 3 {
		t.Fatalf("unexpected len %d cap %d", q.Len(), q.Cap())
	}
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []int{4, 3, 2}) {
		t.Fatalf("expected newest first [4 3 2], got %v", got)
	}
	if v, _ := q.Get(0); v != 2 {
		t.Fatalf("expected oldest 2, got %d", v)
	}
	if v, _ := q.Newest(0); v != 4 {
		t.Fatalf("expected newest 4, got %d", v)
	}
	if v, _ := q.Newest(2); v != 2 {
		t.Fatalf("expected third newest 2, got %d", v)
	}
}

func TestCircularQueueBounds(t *testing.T) {
	q := NewCircularQueue[int](4)
	q.Append(1)
	for _, index := range []int{-1, 1, 4} {
		if _, err := q.Get(index); !errors.Is(err, oerror.ErrIndexOutOfRange) {
			t.Fatalf("Get(%d): expected IndexOutOfRange, got %v", index, err)
		}
	}
	if _, err := q.Newest(1); !errors.Is(err, oerror.ErrIndexOutOfRange) {
		t.Fatalf("Newest(1): expected IndexOutOfRange, got %v", err)
	}
	if err := q.Set(2, 5); !errors.Is(err, oerror.ErrIndexOutOfRange) {
		t.Fatalf("Set(2): expected IndexOutOfRange, got %v", err)
	}
}

func TestCircularQueuePopAndPtr(t *testing.T) {
	q := NewCircularQueue[int](2)
	q.Append(1)
	q.Append(2)
	p, err := q.Ptr(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	*p = 20
	if v, ok := q.Pop(); !ok || v != 1 {
		t.Fatalf("expected to pop 1, got %d (%v)", v, ok)
	}
	if v, _ := q.Newest(0); v != 20 {
		t.Fatalf("expected pointer write to stick, got %d", v)
	}
	q.Clear()
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected empty queue after clear")
	}
}

func TestCircularQueueZeroCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on zero capacity")
		}
	}()
	NewCircularQueue[int](0)
}
