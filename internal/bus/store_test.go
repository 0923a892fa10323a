package bus

import (
	"errors"
	"fmt"
	"testing"
)

type entry struct {
	Key string
	Val int
}

func entryKey(e entry) string { return e.Key }

func TestStoreGetNotFound(t *testing.T) {
	s := NewStore(NewDispatcher(0), entryKey)
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := s.Ingest(entry{Key: "a", Val: 1}); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	got, err := s.Get("a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Val != 1 {
		t.Fatalf("value: got %d", got.Val)
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	s := NewStore(NewDispatcher(0), entryKey)
	var seen []int
	s.Subscribe(ListenerFunc[entry](func(e entry) error {
		seen = append(seen, e.Val)
		return nil
	}))
	_ = s.Ingest(entry{Key: "a", Val: 1})
	_ = s.Ingest(entry{Key: "a", Val: 2})
	got, _ := s.Get("a")
	if got.Val != 2 {
		t.Fatalf("value: got %d want 2", got.Val)
	}
	if s.Len() != 1 {
		t.Fatalf("len: got %d want 1", s.Len())
	}
	if len(seen) != 2 {
		t.Fatalf("every ingest notifies: got %d", len(seen))
	}
}

func TestStorePutSilent(t *testing.T) {
	s := NewStore(NewDispatcher(0), entryKey)
	notified := 0
	s.Subscribe(ListenerFunc[entry](func(entry) error {
		notified++
		return nil
	}))
	s.Put(entry{Key: "a", Val: 1})
	if notified != 0 {
		t.Fatalf("put should not notify, got %d", notified)
	}
	if got, err := s.Get("a"); err != nil || got.Val != 1 {
		t.Fatalf("get after put: %v %v", got, err)
	}
}

func TestDispatchRegistrationOrder(t *testing.T) {
	s := NewStore(NewDispatcher(0), entryKey)
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		s.Subscribe(ListenerFunc[entry](func(entry) error {
			order = append(order, name)
			return nil
		}))
	}
	_ = s.Ingest(entry{Key: "a"})
	want := []string{"first", "second", "third"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Fatalf("dispatch order: got %v want %v", order, want)
	}
}

// A three-store pipeline where each listener ingests downstream. The
// outermost ingest must drive the whole chain to completion, and jobs
// must run in FIFO order across stores.
func TestDispatchChainCompletes(t *testing.T) {
	d := NewDispatcher(0)
	a := NewStore(d, entryKey)
	b := NewStore(d, entryKey)
	c := NewStore(d, entryKey)

	var trace []string
	a.Subscribe(ListenerFunc[entry](func(e entry) error {
		trace = append(trace, "a1")
		return b.Ingest(e)
	}))
	a.Subscribe(ListenerFunc[entry](func(entry) error {
		trace = append(trace, "a2")
		return nil
	}))
	b.Subscribe(ListenerFunc[entry](func(e entry) error {
		trace = append(trace, "b")
		return c.Ingest(e)
	}))
	c.Subscribe(ListenerFunc[entry](func(entry) error {
		trace = append(trace, "c")
		return nil
	}))

	if err := a.Ingest(entry{Key: "x"}); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	// a1 enqueues b's job behind a2, so the downstream hop runs after
	// a's remaining subscriber, not nested inside a1.
	want := []string{"a1", "a2", "b", "c"}
	if fmt.Sprint(trace) != fmt.Sprint(want) {
		t.Fatalf("trace: got %v want %v", trace, want)
	}
	if _, err := c.Get("x"); err != nil {
		t.Fatalf("chain did not complete: %v", err)
	}
}

func TestDispatchQueueFull(t *testing.T) {
	d := NewDispatcher(2)
	s := NewStore(d, entryKey)
	for i := 0; i < 3; i++ {
		s.Subscribe(ListenerFunc[entry](func(entry) error { return nil }))
	}
	if err := s.Ingest(entry{Key: "a"}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("want ErrQueueFull, got %v", err)
	}
}

func TestDispatchListenerErrorClearsQueue(t *testing.T) {
	d := NewDispatcher(0)
	s := NewStore(d, entryKey)
	boom := errors.New("boom")
	ran := 0
	s.Subscribe(ListenerFunc[entry](func(entry) error { return boom }))
	s.Subscribe(ListenerFunc[entry](func(entry) error {
		ran++
		return nil
	}))
	if err := s.Ingest(entry{Key: "a"}); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if ran != 0 {
		t.Fatal("jobs after a failed one must be dropped")
	}
	// the pipeline stays usable for the next event
	if err := s.Ingest(entry{Key: "b"}); !errors.Is(err, boom) {
		t.Fatalf("second ingest: %v", err)
	}
	if ran != 0 {
		t.Fatal("second event aborted before the second listener")
	}
}

func TestDispatcherDepthHook(t *testing.T) {
	d := NewDispatcher(0)
	high := 0
	d.OnDepth(func(depth int) {
		if depth > high {
			high = depth
		}
	})
	s := NewStore(d, entryKey)
	for i := 0; i < 4; i++ {
		s.Subscribe(ListenerFunc[entry](func(entry) error { return nil }))
	}
	_ = s.Ingest(entry{Key: "a"})
	if high != 4 {
		t.Fatalf("high-water mark: got %d want 4", high)
	}
}
