package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapGetReturnsCachedPointer(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("x")
	b := m.Get("x")
	if a != b {
		t.Errorf("Expected cached pointer for repeated Get")
	}
	if !m.Has("x") || m.Has("y") {
		t.Errorf("Expected Has to report only registered keys")
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get(EngineFrames).Add(1)
		}()
	}
	wg.Wait()
	if got := m.Get(EngineFrames).Load(); got != 16 {
		t.Errorf("Expected 16, got %d", got)
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(EngineLive).Store(42)
	r.Bools.Get(EngineRunning).Store(true)
	r.Strings.Get(SchedulerState).Store("held")

	s := r.Snapshot()
	if s.Ints[EngineLive] != 42 {
		t.Errorf("Expected live 42, got %d", s.Ints[EngineLive])
	}
	if !s.Bools[EngineRunning] {
		t.Errorf("Expected running true")
	}
	if s.Strings[SchedulerState] != "held" {
		t.Errorf("Expected state held, got %q", s.Strings[SchedulerState])
	}
	if r.TotalCount() != 3 {
		t.Errorf("Expected 3 metrics, got %d", r.TotalCount())
	}
}

func TestAtomicStringTruncatesOnRuneBoundary(t *testing.T) {
	var s AtomicString
	s.Store("abcdefghijklmnopqrstuvw€€")
	got := s.Load()
	if len(got) > MaxStringLen {
		t.Errorf("Expected at most %d bytes, got %d", MaxStringLen, len(got))
	}
	if got != "abcdefghijklmnopqrstuvw" {
		t.Errorf("Expected cut before partial rune, got %q", got)
	}
}

func TestMetricMapRangeInKeyOrder(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	for _, k := range []string{SchedulerShown, EngineLive, FeedEvents, EngineFrames} {
		m.Get(k)
	}

	var got []string
	m.Range(func(k string, _ *atomic.Int64) { got = append(got, k) })

	want := []string{EngineFrames, EngineLive, FeedEvents, SchedulerShown}
	if len(got) != len(want) {
		t.Fatalf("Expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected key %d to be %s, got %s", i, want[i], got[i])
		}
	}
}
