package diagnostics

import (
	"strings"
	"testing"
)

func TestSayRecords(t *testing.T) {
	m := NewMessages("unit.yaml", "u1")
	d := m.Say(ErrF001, 40)
	if d.Code != ErrF001 || d.Unit != "u1" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if !strings.Contains(d.Error(), "POS=40 out of range for BTEST") {
		t.Errorf("message = %q", d.Error())
	}
	if !strings.HasPrefix(d.Error(), "unit.yaml: error[F001]") {
		t.Errorf("missing file prefix: %q", d.Error())
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestDiscardNested(t *testing.T) {
	m := NewMessages("", "")
	m.Say(ErrF001, 1)

	outer := m.Discard()
	m.Say(ErrF001, 2)
	inner := m.Discard()
	m.Say(ErrF001, 3)
	if !m.Discarding() {
		t.Errorf("expected discarding inside guards")
	}
	inner()
	m.Say(ErrF001, 4)
	outer()

	m.Say(ErrF002, 5, 1)
	if m.Discarding() {
		t.Errorf("guards should be released")
	}
	errs := m.Errors()
	if len(errs) != 2 {
		t.Fatalf("kept %d diagnostics, want 2", len(errs))
	}
	if errs[0].Code != ErrF001 || errs[1].Code != ErrF002 {
		t.Errorf("unexpected codes %s, %s", errs[0].Code, errs[1].Code)
	}
}

func TestDiscardRestoresOnEarlyReturn(t *testing.T) {
	m := NewMessages("", "")
	probe := func(fail bool) bool {
		restore := m.Discard()
		defer restore()
		m.Say(ErrF001, 99)
		if fail {
			return false
		}
		return true
	}
	probe(true)
	probe(false)
	if m.Discarding() || m.Len() != 0 {
		t.Errorf("probe leaked: discarding=%v len=%d", m.Discarding(), m.Len())
	}
}
