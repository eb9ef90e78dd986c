package queue

import "testing"

func TestQueueFIFO(t *testing.T) {
	q := New[int]()
	if _, ok := q.Pull(); ok {
		t.Fatal("pull on empty queue should fail")
	}
	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	for i := 0; i < 5; i++ {
		v, ok := q.Pull()
		if !ok || v != i {
			t.Fatalf("pull #%d: expected %d, got %d (ok=%v)", i, i, v, ok)
		}
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue, got %d pending", q.Len())
	}
}

func TestQueueGrowsWhileWrapped(t *testing.T) {
	var q Queue[int]
	next, expected := 0, 0
	// interleave pushes and pulls so the ring wraps before it grows
	for round := 0; round < 50; round++ {
		for i := 0; i < 3; i++ {
			q.Push(next)
			next++
		}
		v, ok := q.Pull()
		if !ok || v != expected {
			t.Fatalf("round %d: expected %d, got %d (ok=%v)", round, expected, v, ok)
		}
		expected++
	}
	if q.Len() != next-expected {
		t.Fatalf("expected %d pending, got %d", next-expected, q.Len())
	}
	for q.Len() > 0 {
		v, _ := q.Pull()
		if v != expected {
			t.Fatalf("expected %d, got %d", expected, v)
		}
		expected++
	}
	if expected != next {
		t.Errorf("drained %d items, pushed %d", expected, next)
	}
}
