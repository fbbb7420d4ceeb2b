package overlay

// StatusKind distinguishes status messages.
type StatusKind uint8

const (
	StatusLoading StatusKind = iota
	StatusError
)

// Status is a message shown in the status slot. Status messages never take
// key presses.
type Status struct {
	Kind StatusKind
	Text string
	// Persistent errors stay until the next input instead of expiring.
	Persistent bool
	seq        uint64
}

// LoadingText is shown while a completion request is in flight.
const LoadingText = "thinking…"

// Loading returns the in-flight status.
func Loading() Status { return Status{Kind: StatusLoading, Text: LoadingText} }

// Error returns an error status.
func Error(text string, persistent bool) Status {
	return Status{Kind: StatusError, Text: text, Persistent: persistent}
}

// SetStatus fills the status slot and returns a token identifying this
// message for ClearStatusIf.
func (r *Renderer) SetStatus(s Status) uint64 {
	r.seq++
	s.seq = r.seq
	r.status = &s
	return s.seq
}

// Status returns the current status message.
func (r *Renderer) Status() (Status, bool) {
	if r.status == nil {
		return Status{}, false
	}
	return *r.status, true
}

// ClearStatus empties the status slot.
func (r *Renderer) ClearStatus() { r.status = nil }

// ClearStatusIf empties the status slot when it still holds the message
// identified by token.
func (r *Renderer) ClearStatusIf(token uint64) bool {
	if r.status == nil || r.status.seq != token {
		return false
	}
	r.status = nil
	return true
}
