package domain

import (
	"testing"
	"time"
)

func TestDailyRecordValid(t *testing.T) {
	base := DailyRecord{Project: "Apollo", Resource: "Asha", Date: DateOf(2025, time.March, 3)}
	if !base.Valid() {
		t.Fatalf("complete record should be valid")
	}
	cases := []DailyRecord{
		{Resource: "Asha", Date: base.Date},
		{Project: "Apollo", Date: base.Date},
		{Project: "Apollo", Resource: "Asha"},
		{Project: "  ", Resource: "Asha", Date: base.Date},
	}
	for i, rec := range cases {
		if rec.Valid() {
			t.Fatalf("case %d: incomplete record should be invalid", i)
		}
	}
}

func TestWeeklyRecordValid(t *testing.T) {
	start := DateOf(2025, time.March, 3)
	end := DateOf(2025, time.March, 7)
	base := WeeklyRecord{Project: "Atlas", StartDate: start, EndDate: end, HasAttachment: true}
	if !base.Valid() {
		t.Fatalf("complete record should be valid")
	}
	cases := []WeeklyRecord{
		{StartDate: start, EndDate: end, HasAttachment: true},
		{Project: "Atlas", EndDate: end, HasAttachment: true},
		{Project: "Atlas", StartDate: start, HasAttachment: true},
		{Project: "Atlas", StartDate: end, EndDate: start, HasAttachment: true},
		{Project: "Atlas", StartDate: start, EndDate: end},
	}
	for i, rec := range cases {
		if rec.Valid() {
			t.Fatalf("case %d: incomplete record should be invalid", i)
		}
	}
}
