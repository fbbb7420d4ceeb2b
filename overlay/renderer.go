package overlay

// DefaultMaxWidth caps the tooltip width in cells.
const DefaultMaxWidth = 60

// Config configures a Renderer.
type Config struct {
	Mode     Mode
	Styles   *Styles
	Hints    *Hints
	MaxWidth int
}

// Renderer owns the suggestion overlay and the status slot of one field.
type Renderer struct {
	mode     Mode
	styles   Styles
	hints    Hints
	maxWidth int

	keys   KeyScope
	seq    uint64
	cur    *Overlay
	status *Status
}

// NewRenderer returns a Renderer with cfg applied over the defaults.
func NewRenderer(cfg Config) *Renderer {
	r := &Renderer{
		mode:     cfg.Mode,
		styles:   DefaultStyles(),
		hints:    DefaultHints(),
		maxWidth: cfg.MaxWidth,
	}
	if cfg.Styles != nil {
		r.styles = *cfg.Styles
	}
	if cfg.Hints != nil {
		r.hints = *cfg.Hints
	}
	if r.maxWidth <= 0 {
		r.maxWidth = DefaultMaxWidth
	}
	return r
}

// Mode returns the mode used for the next Show.
func (r *Renderer) Mode() Mode { return r.mode }

// SetMode changes the mode. A shown overlay switches on its next Update.
func (r *Renderer) SetMode(m Mode) { r.mode = m }

// Keys returns the scope that routes key presses to the shown overlay.
func (r *Renderer) Keys() *KeyScope { return &r.keys }

// Current returns the shown overlay, or nil.
func (r *Renderer) Current() *Overlay { return r.cur }

// Show replaces any shown overlay with one drawing c and installs h for its
// lifetime. When c is empty nothing is shown, no handler is installed and
// Show returns false.
func (r *Renderer) Show(c Content, h Handler) (*Overlay, bool) {
	r.Remove()
	if c.Empty() {
		return nil, false
	}
	r.seq++
	o := &Overlay{id: r.seq, mode: r.mode, content: c}
	if h != nil {
		o.dispose = r.keys.Install(h)
	}
	r.cur = o
	return o, true
}

// Update redraws the shown overlay with c, keeping its handler. An empty c
// removes the overlay. It reports whether an overlay is still shown.
func (r *Renderer) Update(c Content) bool {
	if r.cur == nil {
		return false
	}
	if c.Empty() {
		r.Remove()
		return false
	}
	r.cur.content = c
	r.cur.mode = r.mode
	return true
}

// Remove takes down the shown overlay and disposes its handler. It is safe to
// call with nothing shown.
func (r *Renderer) Remove() {
	if r.cur == nil {
		return
	}
	r.cur.remove()
	r.cur = nil
}

// Render composites the status slot and the suggestion overlay over base.
func (r *Renderer) Render(base string, f Frame) string {
	if base == "" || (r.cur == nil && r.status == nil) {
		return base
	}
	f = f.withViewport(base)
	if f.Viewport.Width <= 0 || f.Viewport.Height <= 0 {
		return base
	}

	view := base
	if r.status != nil {
		if box, ok := r.statusBox(*r.status, f); ok {
			x, y := r.boxPosition(box, f)
			view = composite(box, view, x, y)
		}
	}
	if r.cur == nil {
		return view
	}

	switch r.cur.mode {
	case ModeGhost:
		if text, x, y, ok := r.ghost(r.cur.content, f); ok {
			view = composite(text, view, x, y)
		}
	default:
		if box, ok := r.tooltip(r.cur.content, f); ok {
			x, y := r.boxPosition(box, f)
			view = composite(box, view, x, y)
		}
	}
	return view
}
