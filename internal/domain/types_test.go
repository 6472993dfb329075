package domain

import "testing"

func TestParsePriority(t *testing.T) {
	cases := map[string]struct {
		want Priority
		ok   bool
	}{
		"high":     {PriorityHigh, true},
		" Medium ": {PriorityMedium, true},
		"LOW":      {PriorityLow, true},
		"urgent":   {"", false},
		"":         {"", false},
	}
	for in, c := range cases {
		got, ok := ParsePriority(in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParsePriority(%q) = %q, %v; want %q, %v", in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseEventType(t *testing.T) {
	if got, ok := ParseEventType("Health"); !ok || got != EventHealth {
		t.Fatalf("ParseEventType(Health) = %q, %v", got, ok)
	}
	if _, ok := ParseEventType("party"); ok {
		t.Fatalf("expected party to be rejected")
	}
}

func TestAppStateCloneIsIndependent(t *testing.T) {
	orig := AppState{
		Tasks:  []Task{{ID: "1", Title: "a"}},
		Events: []CalendarEvent{{ID: "e1", Title: "sync"}},
		Messages: []ChatMessage{{
			ID:   "m1",
			Logs: []AgentLog{{ID: "l1", Role: RolePlanner}},
		}},
		IsProcessing: true,
	}

	cp := orig.Clone()
	cp.Tasks[0].Title = "changed"
	cp.Events[0].Title = "changed"
	cp.Messages[0].Logs[0].Content = "changed"

	if orig.Tasks[0].Title != "a" || orig.Events[0].Title != "sync" {
		t.Fatalf("clone shares task/event storage with original")
	}
	if orig.Messages[0].Logs[0].Content != "" {
		t.Fatalf("clone shares message logs with original")
	}
	if !cp.IsProcessing {
		t.Fatalf("expected IsProcessing to be copied")
	}
}
