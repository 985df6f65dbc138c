package domain

import (
	"testing"
	"time"
)

func TestWeekSpanForEveryWeekday(t *testing.T) {
	monday := DateOf(2025, time.March, 3)
	friday := DateOf(2025, time.March, 7)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		span := WeekSpanFor(d)
		if !span.Start.Equal(monday) || !span.End.Equal(friday) {
			t.Fatalf("WeekSpanFor(%v)=%v-%v want %v-%v", d, span.Start, span.End, monday, friday)
		}
	}
}

func TestWeekSpanLabel(t *testing.T) {
	span := WeekSpanFor(DateOf(2025, time.March, 5))
	if got := span.Label(); got != "03 Mar 2025 - 07 Mar 2025" {
		t.Fatalf("Label=%q", got)
	}
}

func TestWeekSpanContains(t *testing.T) {
	span := WeekSpanFor(DateOf(2025, time.March, 3))
	if !span.Contains(DateOf(2025, time.March, 3)) || !span.Contains(DateOf(2025, time.March, 7)) {
		t.Fatalf("span should contain its endpoints")
	}
	if span.Contains(DateOf(2025, time.March, 8)) || span.Contains(DateOf(2025, time.March, 2)) {
		t.Fatalf("span should exclude days outside it")
	}
}

func TestParseWeekLabelRoundTrip(t *testing.T) {
	span := WeekSpanFor(DateOf(2025, time.March, 4))
	got, ok := ParseWeekLabel(span.Label())
	if !ok {
		t.Fatalf("ParseWeekLabel(%q) failed", span.Label())
	}
	if !got.Start.Equal(span.Start) || !got.End.Equal(span.End) {
		t.Fatalf("got %v-%v want %v-%v", got.Start, got.End, span.Start, span.End)
	}
}

func TestParseWeekLabelRejects(t *testing.T) {
	cases := []string{
		"Project",
		"03 March 2025",
		"07 Mar 2025 - 03 Mar 2025", // inverted
	}
	for _, in := range cases {
		if _, ok := ParseWeekLabel(in); ok {
			t.Fatalf("ParseWeekLabel(%q) unexpectedly succeeded", in)
		}
	}
}

// A span crossing a month boundary keeps its true interval; the label alone
// does not decide which sheet the span lives on.
func TestWeekSpanCrossingMonthBoundary(t *testing.T) {
	span := WeekSpanFor(DateOf(2025, time.March, 31))
	if !span.Start.Equal(DateOf(2025, time.March, 31)) || !span.End.Equal(DateOf(2025, time.April, 4)) {
		t.Fatalf("got %v-%v", span.Start, span.End)
	}
	if !span.Contains(DateOf(2025, time.April, 2)) {
		t.Fatalf("span should contain 02 April 2025")
	}
}
