package figure

import (
	"sync"
	"testing"
)

func TestStateCurrentFigure(t *testing.T) {
	canvas := &stubCanvas{}
	s := NewState(canvas)

	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}

	implicit := s.Gcf()
	if s.Len() != 1 || implicit.Canvas() != canvas {
		t.Fatal("Gcf() should create a figure with the state canvas")
	}

	a := s.NewFigure(1, 1)
	b := s.NewFigure(2, 2)
	if s.Gcf() != b {
		t.Error("newest figure should be current")
	}
	if a.Number() != 2 || b.Number() != 3 {
		t.Errorf("numbers = %d, %d, want 2, 3", a.Number(), b.Number())
	}

	s.SetCurrent(a)
	if s.Gcf() != a {
		t.Error("SetCurrent() did not activate a")
	}

	s.SetCurrent(New(1, 1))
	if s.Gcf() != a {
		t.Error("SetCurrent() with an unregistered figure should be ignored")
	}
}

func TestStateClose(t *testing.T) {
	s := NewState(&stubCanvas{})
	first := s.NewFigure(0, 0)
	second := s.NewFigure(0, 0)
	tmp := s.NewFigure(0, 0)

	s.SetCurrent(first)
	s.Close(tmp)
	if s.Gcf() != first {
		t.Error("closing a non-current figure should keep the current one")
	}
	if !tmp.Closed() || s.Len() != 2 {
		t.Errorf("Close() left %d figures, closed = %v", s.Len(), tmp.Closed())
	}

	s.Close(first)
	if s.Gcf() != second {
		t.Error("closing the current figure should activate the previously active one")
	}

	s.CloseAll()
	if s.Len() != 0 || !second.Closed() {
		t.Error("CloseAll() should close every figure")
	}
	if s.Gcf() == second {
		t.Error("Gcf() after CloseAll() should open a fresh figure")
	}
}

func TestStateCloseRestoresPreviouslyActive(t *testing.T) {
	s := NewState(&stubCanvas{})
	older := s.NewFigure(0, 0)
	newer := s.NewFigure(0, 0)

	s.SetCurrent(older)
	tmp := s.NewFigure(0, 0)
	s.Close(tmp)

	if got := s.Gcf(); got != older {
		t.Errorf("current after Close = figure %d, want figure %d", got.Number(), older.Number())
	}

	s.Close(older)
	if s.Gcf() != newer {
		t.Error("closing the current figure should fall back to the remaining one")
	}
}

func TestStateConcurrentUse(t *testing.T) {
	s := NewState(&stubCanvas{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := s.NewFigure(0, 0)
			s.SetCurrent(f)
			s.Close(f)
		}()
	}
	wg.Wait()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after concurrent open/close, want 0", s.Len())
	}
}

func TestDefaultState(t *testing.T) {
	if DefaultState() != DefaultState() {
		t.Error("DefaultState() should return a single registry")
	}
	if DefaultState().Canvas() != nil {
		t.Error("default registry has no canvas")
	}
}
