package extract

import "reportledger/pkg/domain"

// Batch holds the candidate records produced by one inbox scan, split by
// report kind. Both slices preserve message order.
type Batch struct {
	Daily  []domain.DailyRecord
	Weekly []domain.WeeklyRecord
}

// Scan filters out already-processed messages and delegates the remainder to
// the two extractors. A single message may contribute several daily records
// (concatenated thread) and at most one weekly record.
func Scan(msgs []domain.Message, processed map[string]struct{}) Batch {
	var batch Batch
	for _, msg := range msgs {
		if _, done := processed[msg.ID]; done {
			continue
		}
		for _, fact := range ExtractDaily(msg.Body) {
			batch.Daily = append(batch.Daily, domain.DailyRecord{
				SourceMessageID: msg.ID,
				From:            msg.From,
				Subject:         msg.Subject,
				Project:         fact.Project,
				Resource:        fact.Resource,
				Date:            fact.Date,
			})
		}
		if rec, ok := ExtractWeekly(msg); ok {
			batch.Weekly = append(batch.Weekly, rec)
		}
	}
	return batch
}
