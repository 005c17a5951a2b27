package keyboard

// Highlight is a single-slot signal holding at most one lit key. The last
// write wins.
type Highlight struct {
	label string
	gen   uint64
}

// Set lights label and returns a token for Release.
func (h *Highlight) Set(label string) uint64 {
	h.gen++
	h.label = label
	return h.gen
}

// Release clears the slot if nothing was written after the token was issued.
func (h *Highlight) Release(token uint64) bool {
	if token != h.gen || h.label == "" {
		return false
	}
	h.label = ""
	return true
}

// Clear empties the slot unconditionally.
func (h *Highlight) Clear() {
	h.gen++
	h.label = ""
}

// Label returns the lit key, or "" when nothing is lit.
func (h *Highlight) Label() string {
	return h.label
}
