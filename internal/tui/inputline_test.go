package tui

import "testing"

func TestInputLine_AddToHistory(t *testing.T) {
	il := NewInputLine()

	if il.AddToHistory("") {
		t.Error("empty string should not be added to history")
	}

	il.AddToHistory("list")
	il.AddToHistory("set work on")
	il.AddToHistory("help")

	h := il.History()
	if len(h) != 3 {
		t.Fatalf("history length = %d, want 3", len(h))
	}
	if h[0] != "list" || h[2] != "help" {
		t.Errorf("history = %q, want oldest first", h)
	}
}

func TestInputLine_AddToHistory_DuplicatePrevention(t *testing.T) {
	il := NewInputLine()

	il.AddToHistory("list")
	if il.AddToHistory("list") {
		t.Error("consecutive duplicate should not be added")
	}
	if len(il.history) != 1 {
		t.Errorf("duplicate entry should not be added, got length %d", len(il.history))
	}

	il.AddToHistory("help")
	il.AddToHistory("list")
	if len(il.history) != 3 {
		t.Errorf("non-consecutive duplicate should be added, got length %d", len(il.history))
	}
}

func TestInputLine_AddToHistory_MaxSize(t *testing.T) {
	il := NewInputLine()

	for i := 0; i < maxHistorySize+10; i++ {
		il.AddToHistory(string(rune('a' + i%26)))
	}

	if len(il.history) != maxHistorySize {
		t.Errorf("history length = %d, want %d", len(il.history), maxHistorySize)
	}
}

func TestInputLine_SetHistory(t *testing.T) {
	il := NewInputLine()

	entries := make([]string, maxHistorySize+5)
	for i := range entries {
		entries[i] = string(rune('a' + i%26))
	}
	il.SetHistory(entries)

	h := il.History()
	if len(h) != maxHistorySize {
		t.Fatalf("history length = %d, want %d", len(h), maxHistorySize)
	}
	if h[len(h)-1] != entries[len(entries)-1] {
		t.Errorf("newest entry = %q, want %q", h[len(h)-1], entries[len(entries)-1])
	}
}

func TestInputLine_HistoryNavigation(t *testing.T) {
	il := NewInputLine()

	if il.HistoryUp() {
		t.Error("HistoryUp should return false with empty history")
	}
	if il.HistoryDown() {
		t.Error("HistoryDown should return false with empty history")
	}

	il.AddToHistory("first")
	il.AddToHistory("second")
	il.AddToHistory("third")
	il.SetValue("current")

	for _, want := range []string{"third", "second", "first"} {
		if !il.HistoryUp() {
			t.Fatal("HistoryUp should return true")
		}
		if il.Value() != want {
			t.Errorf("after HistoryUp, value = %q, want %q", il.Value(), want)
		}
	}

	if il.HistoryUp() {
		t.Error("HistoryUp at oldest entry should return false")
	}
	if il.Value() != "first" {
		t.Errorf("value should still be %q, got %q", "first", il.Value())
	}

	for _, want := range []string{"second", "third", "current"} {
		if !il.HistoryDown() {
			t.Fatal("HistoryDown should return true")
		}
		if il.Value() != want {
			t.Errorf("after HistoryDown, value = %q, want %q", il.Value(), want)
		}
	}

	if il.HistoryDown() {
		t.Error("HistoryDown when not browsing should return false")
	}
}
