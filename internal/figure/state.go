package figure

import "sync"

// State tracks open figures and which one is current. Package-level
// helpers share DefaultState; callers that need isolation create their own.
type State struct {
	mu     sync.Mutex
	canvas Canvas
	// figures is kept in activation order, most recently activated last.
	figures []*Figure
	current *Figure
	next    int
}

// NewState creates a registry whose new figures print with canvas.
func NewState(canvas Canvas) *State {
	return &State{canvas: canvas, next: 1}
}

var (
	defaultState     *State
	defaultStateOnce sync.Once
)

// DefaultState returns the process-wide registry. Its figures have no
// canvas until one is attached; the export helpers attach their backend.
func DefaultState() *State {
	defaultStateOnce.Do(func() {
		defaultState = NewState(nil)
	})
	return defaultState
}

// Canvas returns the canvas attached to new figures.
func (s *State) Canvas() Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// NewFigure creates, registers and activates a figure.
func (s *State) NewFigure(width, height float64) *Figure {
	f := New(width, height)

	s.mu.Lock()
	defer s.mu.Unlock()

	f.number = s.next
	s.next++
	f.canvas = s.canvas
	s.figures = append(s.figures, f)
	s.current = f
	return f
}

// Gcf returns the current figure, creating one when none is open.
func (s *State) Gcf() *Figure {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()
	if cur != nil {
		return cur
	}
	return s.NewFigure(DefaultWidth, DefaultHeight)
}

// SetCurrent activates a registered figure and moves it to the end of the
// activation order. Unregistered figures are ignored.
func (s *State) SetCurrent(f *Figure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.figures {
		if g == f {
			s.figures = append(append(s.figures[:i], s.figures[i+1:]...), f)
			s.current = f
			return
		}
	}
}

// Close unregisters and closes f. When f was current, the most recently
// activated remaining figure becomes current.
func (s *State) Close(f *Figure) {
	s.mu.Lock()
	for i, g := range s.figures {
		if g == f {
			s.figures = append(s.figures[:i], s.figures[i+1:]...)
			break
		}
	}
	if s.current == f {
		s.current = nil
		if n := len(s.figures); n > 0 {
			s.current = s.figures[n-1]
		}
	}
	s.mu.Unlock()

	f.Close()
}

// CloseAll closes every registered figure.
func (s *State) CloseAll() {
	s.mu.Lock()
	figs := s.figures
	s.figures = nil
	s.current = nil
	s.mu.Unlock()

	for _, f := range figs {
		f.Close()
	}
}

// Len returns the number of open figures.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.figures)
}
