package jobs

import (
	"testing"
	"time"
)

func TestNextRunAtSameDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	now := time.Date(2025, 5, 10, 23, 0, 0, 0, loc)
	next := NextRunAt(now, loc, 23, 30)
	if next.Day() != 10 || next.Hour() != 23 || next.Minute() != 30 {
		t.Fatalf("expected same-day 23:30, got %v", next)
	}
}

func TestNextRunAtRollsToTomorrow(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	now := time.Date(2025, 5, 10, 0, 5, 0, 0, loc)
	next := NextRunAt(now, loc, 0, 5)
	if next.Day() != 11 || next.Hour() != 0 || next.Minute() != 5 {
		t.Fatalf("exact hit must schedule tomorrow, got %v", next)
	}

	later := NextRunAt(time.Date(2025, 5, 10, 7, 0, 0, 0, loc), loc, 0, 5)
	if later.Day() != 11 {
		t.Fatalf("past time must schedule tomorrow, got %v", later)
	}
}

func TestNextRunAtCrossesZones(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 2025-05-10 20:00 UTC is already 01:30 on the 11th in Kolkata.
	now := time.Date(2025, 5, 10, 20, 0, 0, 0, time.UTC)
	next := NextRunAt(now, loc, 0, 5)
	if next.Day() != 12 || next.Location() != loc {
		t.Fatalf("expected 12th 00:05 IST, got %v", next)
	}
}
