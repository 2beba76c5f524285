package diagnostics

// Messages is the diagnostic sink of one analysis unit. Emission goes to the
// current sink; Discard temporarily swaps in a scratch sink whose contents
// are dropped.
type Messages struct {
	file string
	unit string
	kept []*DiagnosticError
	sink *[]*DiagnosticError
}

// NewMessages creates the sink for the unit read from file.
func NewMessages(file, unit string) *Messages {
	m := &Messages{file: file, unit: unit}
	m.sink = &m.kept
	return m
}

// Say records a diagnostic in the current sink and returns it.
func (m *Messages) Say(code ErrorCode, args ...interface{}) *DiagnosticError {
	d := NewError(code, m.file, args...)
	d.Unit = m.unit
	*m.sink = append(*m.sink, d)
	return d
}

// Discard redirects emission to a scratch sink until the returned restore
// function runs. Guards nest; each restore reinstates the sink that was
// current when its Discard was called.
//
//	restore := messages.Discard()
//	defer restore()
func (m *Messages) Discard() (restore func()) {
	prev := m.sink
	scratch := make([]*DiagnosticError, 0)
	m.sink = &scratch
	return func() { m.sink = prev }
}

// Discarding reports whether a Discard guard is active.
func (m *Messages) Discarding() bool {
	return m.sink != &m.kept
}

// Errors returns the diagnostics that were not discarded.
func (m *Messages) Errors() []*DiagnosticError {
	return m.kept
}

func (m *Messages) Len() int { return len(m.kept) }
