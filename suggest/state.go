package suggest

import tea "github.com/charmbracelet/bubbletea"

// State is the lifecycle state of a session.
type State uint8

const (
	Idle State = iota
	AwaitingDebounce
	RequestInFlight
	SuggestionActive
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingDebounce:
		return "awaiting-debounce"
	case RequestInFlight:
		return "request-in-flight"
	case SuggestionActive:
		return "suggestion-active"
	default:
		return "unknown"
	}
}

// InputKind classifies an input event the way browsers report inputType.
type InputKind uint8

const (
	InputInsertText InputKind = iota
	InputInsertLineBreak
	InputPaste
	InputDeleteBackward
	InputDeleteForward
	// InputProgrammatic is a change made by code, including accepted
	// suggestions. It never starts a request.
	InputProgrammatic
)

// User reports whether k comes from the user typing.
func (k InputKind) User() bool { return k != InputProgrammatic }

func (k InputKind) String() string {
	switch k {
	case InputInsertText:
		return "insert-text"
	case InputInsertLineBreak:
		return "insert-line-break"
	case InputPaste:
		return "paste"
	case InputDeleteBackward:
		return "delete-backward"
	case InputDeleteForward:
		return "delete-forward"
	default:
		return "programmatic"
	}
}

// KindOf classifies a key press that a text widget turns into an edit. ok is
// false for keys that do not change text, such as cursor movement.
func KindOf(msg tea.KeyMsg) (kind InputKind, ok bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste {
			return InputPaste, true
		}
		return InputInsertText, true
	case tea.KeySpace:
		return InputInsertText, true
	case tea.KeyEnter:
		return InputInsertLineBreak, true
	case tea.KeyBackspace, tea.KeyCtrlW, tea.KeyCtrlU:
		return InputDeleteBackward, true
	case tea.KeyDelete, tea.KeyCtrlK:
		return InputDeleteForward, true
	}
	return 0, false
}

// InputEvent reports that the text of Target changed.
type InputEvent struct {
	Target any
	Kind   InputKind
}

// Reason says why a suggestion is being dismissed.
type Reason uint8

const (
	ReasonEscape Reason = iota
	ReasonEnter
	ReasonNavigate
	ReasonSubmit
	ReasonBlur
)

func (r Reason) String() string {
	switch r {
	case ReasonEscape:
		return "escape"
	case ReasonEnter:
		return "enter"
	case ReasonNavigate:
		return "navigate"
	case ReasonSubmit:
		return "submit"
	default:
		return "blur"
	}
}

// yields reports whether the dismissal gives way to a user typing mid-word
// through the suggestion. Escape never yields.
func (r Reason) yields() bool {
	return r == ReasonEnter || r == ReasonNavigate || r == ReasonSubmit
}
