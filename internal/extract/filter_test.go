package extract

import (
	"testing"

	"reportledger/pkg/domain"
)

func TestScanSkipsProcessedMessages(t *testing.T) {
	daily := "Daily Status Report - 03 March 2025\nProject Name: Apollo\nResource Name: Asha\n"
	msgs := []domain.Message{
		{ID: "old", Subject: "DSR", Body: daily},
		{ID: "new", Subject: "DSR", Body: daily},
		{ID: "w1", Subject: "WSR - Atlas", Body: "from 03 March 2025 to 07 March 2025", HasAttachment: true},
	}
	processed := map[string]struct{}{"old": {}}

	batch := Scan(msgs, processed)
	if len(batch.Daily) != 1 {
		t.Fatalf("got %d daily records, want 1: %+v", len(batch.Daily), batch.Daily)
	}
	if batch.Daily[0].SourceMessageID != "new" {
		t.Fatalf("got id %q, want new", batch.Daily[0].SourceMessageID)
	}
	if len(batch.Weekly) != 1 || batch.Weekly[0].SourceMessageID != "w1" {
		t.Fatalf("got weekly %+v", batch.Weekly)
	}
}

func TestScanOneMessageManyBlocks(t *testing.T) {
	body := "Daily Status Report - 03 March 2025\nProject Name: Apollo\nResource Name: Asha\n" +
		"Daily Status Report - 04 March 2025\nProject Name: Apollo\nResource Name: Ben\n"
	batch := Scan([]domain.Message{{ID: "m1", Body: body}}, nil)
	if len(batch.Daily) != 2 {
		t.Fatalf("got %d daily records, want 2", len(batch.Daily))
	}
	for _, rec := range batch.Daily {
		if rec.SourceMessageID != "m1" {
			t.Fatalf("record not attributed to source message: %+v", rec)
		}
	}
}
