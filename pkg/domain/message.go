// Package domain defines the core value types and date heuristics shared by
// the report extraction and ledger merge layers.
package domain

import (
	"strings"
	"time"
)

// Message is an immutable mail message as delivered by the message source.
// The core never mutates messages; extraction reads them and moves on.
type Message struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"` // HTML or plain text
	From          string    `json:"from"`
	ReceivedAt    time.Time `json:"received_at"`
	HasAttachment bool      `json:"has_attachment"`
}

// DailyRecord is a candidate daily-report fact pending operator review.
type DailyRecord struct {
	SourceMessageID string    `json:"message_id"`
	From            string    `json:"from,omitempty"`
	Subject         string    `json:"subject,omitempty"`
	Project         string    `json:"project"`
	Resource        string    `json:"resource"`
	Date            time.Time `json:"date"`
}

// Valid reports whether the record carries every field required at commit
// time. Invalid records are skipped, never merged.
func (r DailyRecord) Valid() bool {
	return strings.TrimSpace(r.Project) != "" &&
		strings.TrimSpace(r.Resource) != "" &&
		!r.Date.IsZero()
}

// WeeklyRecord is a candidate weekly-report fact pending operator review.
// HasAttachment records the corroborating signal from the source message;
// a weekly record without it is invalid by contract.
type WeeklyRecord struct {
	SourceMessageID string    `json:"message_id"`
	From            string    `json:"from,omitempty"`
	Subject         string    `json:"subject,omitempty"`
	Project         string    `json:"project"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	HasAttachment   bool      `json:"has_attachment"`
}

// Valid reports whether the weekly record is committable.
func (r WeeklyRecord) Valid() bool {
	return strings.TrimSpace(r.Project) != "" &&
		!r.StartDate.IsZero() && !r.EndDate.IsZero() &&
		!r.EndDate.Before(r.StartDate) &&
		r.HasAttachment
}
