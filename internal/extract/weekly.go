package extract

import (
	"regexp"
	"strings"
	"time"

	"reportledger/pkg/domain"
)

var (
	replyPrefixPattern = regexp.MustCompile(`(?i)^(re|fw|fwd)\s*:\s*`)
	dashNormalizer     = strings.NewReplacer("–", "-", "—", "-")
)

// normalizeSubject unifies en/em dashes to hyphens and strips one leading
// reply/forward prefix. Case is preserved; classification lowercases on top.
func normalizeSubject(subject string) string {
	s := dashNormalizer.Replace(strings.TrimSpace(subject))
	return strings.TrimSpace(replyPrefixPattern.ReplaceAllString(s, ""))
}

// ClassifyWeeklySubject reports whether a subject line announces a weekly
// status report. The subject alone is a weak signal; callers must also
// require an attachment before trusting it.
func ClassifyWeeklySubject(subject string) bool {
	s := strings.ToLower(normalizeSubject(subject))
	return strings.Contains(s, "wsr -") ||
		strings.Contains(s, "wsr-") ||
		strings.Contains(s, "weekly status report")
}

// WeeklyProject extracts the project from a weekly subject: everything after
// the first hyphen, trimmed. Empty when there is no hyphen or no remainder.
func WeeklyProject(subject string) string {
	s := normalizeSubject(subject)
	_, rest, found := strings.Cut(s, "-")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

// WeeklyDateRange strips markup, collapses whitespace, and resolves a
// (start, end) pair from the body.
func WeeklyDateRange(body string) (start, end time.Time, ok bool) {
	return domain.ResolveRange(FlatText(body))
}

// ExtractWeekly builds a weekly candidate from a message. All four signals
// are mandatory: recognized subject, attachment present, project extracted,
// and an ordered date range resolved from the body.
func ExtractWeekly(msg domain.Message) (domain.WeeklyRecord, bool) {
	if !ClassifyWeeklySubject(msg.Subject) || !msg.HasAttachment {
		return domain.WeeklyRecord{}, false
	}
	project := WeeklyProject(msg.Subject)
	if project == "" {
		return domain.WeeklyRecord{}, false
	}
	start, end, ok := WeeklyDateRange(msg.Body)
	if !ok || end.Before(start) {
		return domain.WeeklyRecord{}, false
	}
	return domain.WeeklyRecord{
		SourceMessageID: msg.ID,
		From:            msg.From,
		Subject:         msg.Subject,
		Project:         project,
		StartDate:       start,
		EndDate:         end,
		HasAttachment:   true,
	}, true
}
