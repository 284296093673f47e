package edit

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/utcalc/lang"
)

func TestMemo(t *testing.T) {
	t.Parallel()

	c := newMemo(2)
	one := lang.Records{{Expression: lang.NewTimestamp(1)}}
	two := lang.Records{{Expression: lang.NewTimestamp(2)}}

	c.put("1", 0, one)
	c.put("2", 0, two)

	if rs, ok := c.get("1", 0); !ok || len(rs) != 1 || !rs[0].Expression.Equal(one[0].Expression) {
		t.Fatalf("get(1) = %v, %v", rs, ok)
	}

	if _, ok := c.get("1", 5); ok {
		t.Error("get(1) at a different now hit")
	}

	c.put("3", 0, one)

	if _, ok := c.get("1", 0); ok {
		t.Error("oldest entry was not evicted")
	}

	if c.len() != 2 {
		t.Errorf("len() = %d, want 2", c.len())
	}
}

func TestMemoUndoReusesRecords(t *testing.T) {
	t.Parallel()

	m := testModel(t, "1h")
	if m.memo.len() != 1 {
		t.Fatalf("memo.len() = %d after newModel, want 1", m.memo.len())
	}

	m = typeText(t, m, "m")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	if m.memo.len() != 2 {
		t.Errorf("memo.len() = %d, want 2", m.memo.len())
	}

	if got := m.records[0].Display(); got != "1h" {
		t.Errorf("records[0].Display() = %q, want %q", got, "1h")
	}
}
