package overlay

import tea "github.com/charmbracelet/bubbletea"

// Disposer releases a resource. Calling it more than once has no effect.
type Disposer func()

// KeyScope routes key presses to at most one installed Handler.
type KeyScope struct {
	gen       uint64
	h         Handler
	installs  int
	disposals int
}

// Install makes h the active handler and returns the disposer that detaches
// it. A disposer only detaches the handler it was returned for; once a newer
// handler is installed the old disposer no longer touches the scope.
func (s *KeyScope) Install(h Handler) Disposer {
	s.gen++
	gen := s.gen
	s.h = h
	s.installs++

	done := false
	return func() {
		if done {
			return
		}
		done = true
		s.disposals++
		if s.gen == gen {
			s.h = nil
		}
	}
}

// Dispatch hands msg to the active handler.
func (s *KeyScope) Dispatch(msg tea.KeyMsg) (bool, tea.Cmd) {
	if s.h == nil {
		return false, nil
	}
	return s.h(msg)
}

// Active reports whether a handler is installed.
func (s *KeyScope) Active() bool { return s.h != nil }

// Balanced reports whether every install has been disposed.
func (s *KeyScope) Balanced() bool { return s.installs == s.disposals }
