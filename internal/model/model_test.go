package model

import "testing"

func TestValidDueDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"2026-09-01", true},
		{"2024-02-29", true},  // leap day
		{"2026-02-29", false}, // not a leap year
		{"2026-13-01", false},
		{"2026-00-10", false},
		{"2026-9-1", false},
		{"09-01-2026", false},
		{"tomorrow", false},
		{"2026-09-01 ", false},
	}
	for _, c := range cases {
		if got := ValidDueDate(c.in); got != c.want {
			t.Fatalf("ValidDueDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPrioritySortRank(t *testing.T) {
	order := []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityNone}
	for i := 1; i < len(order); i++ {
		if order[i-1].SortRank() >= order[i].SortRank() {
			t.Fatalf("%q should rank before %q", order[i-1], order[i])
		}
	}
	if Priority("whenever").SortRank() != PriorityNone.SortRank() {
		t.Fatal("unknown priority should rank with unset")
	}
}

func TestPriorityKnown(t *testing.T) {
	if PriorityNone.Known() {
		t.Fatal("empty priority is not a named level")
	}
	if !PriorityMedium.Known() {
		t.Fatal("medium is a named level")
	}
	if Priority("urgent").Known() {
		t.Fatal("arbitrary strings are not named levels")
	}
}

func TestParseSortMode(t *testing.T) {
	for _, s := range []string{"none", "priority", "due_date", " priority "} {
		if _, ok := ParseSortMode(s); !ok {
			t.Fatalf("ParseSortMode(%q) rejected", s)
		}
	}
	if mode, ok := ParseSortMode("due-date"); ok {
		t.Fatalf("ParseSortMode accepted %q as %q", "due-date", mode)
	}
	if mode, _ := ParseSortMode("nope"); mode != SortNone {
		t.Fatalf("rejected input should fall back to SortNone, got %q", mode)
	}
}

func TestRowRefIsSubtask(t *testing.T) {
	if (RowRef{Task: 0, Subtask: -1}).IsSubtask() {
		t.Fatal("-1 marks a task row")
	}
	if !(RowRef{Task: 0, Subtask: 0}).IsSubtask() {
		t.Fatal("0 marks the first subtask")
	}
}
