// Package tracker orchestrates the scan → review → commit workflow over the
// mail source, the drive holding the ledgers, and the processed-id store.
// State is request-scoped: a Preview belongs to the caller, and nothing is
// persisted until an explicit commit.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reportledger/internal/blob"
	"reportledger/internal/extract"
	"reportledger/internal/ledger"
	"reportledger/internal/mail"
	"reportledger/internal/procstore"
	"reportledger/pkg/domain"
)

// Config holds the well-known remote file names and scan bounds.
type Config struct {
	DailyFileName  string // default DSR.xlsx
	WeeklyFileName string // default WSR.xlsx
	Folder         string // mail folder display name; empty scans the inbox
	InboxLimit     int    // default 300
}

func (c Config) withDefaults() Config {
	if c.DailyFileName == "" {
		c.DailyFileName = "DSR.xlsx"
	}
	if c.WeeklyFileName == "" {
		c.WeeklyFileName = "WSR.xlsx"
	}
	if c.InboxLimit <= 0 {
		c.InboxLimit = 300
	}
	return c
}

// Service wires the collaborators together. It borrows the ledger bytes and
// the processed-id set for the duration of one operation and hands updated
// state back; it never retains live handles between operations.
//
// Known limitation: two operators committing against the same remote ledger
// concurrently race last-write-wins at the storage layer. The idempotent
// merge absorbs the duplicate records such a race re-surfaces.
type Service struct {
	source  mail.Source
	drive   blob.Drive
	proc    procstore.Store
	cfg     Config
	metrics MetricsRecorder
	tracer  Tracer
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithMetrics installs a metrics recorder.
func WithMetrics(m MetricsRecorder) Option { return func(s *Service) { s.metrics = m } }

// WithTracer installs a tracer.
func WithTracer(t Tracer) Option { return func(s *Service) { s.tracer = t } }

// NewService constructs the tracker service.
func NewService(source mail.Source, drive blob.Drive, proc procstore.Store, cfg Config, opts ...Option) *Service {
	s := &Service{
		source:  source,
		drive:   drive,
		proc:    proc,
		cfg:     cfg.withDefaults(),
		metrics: nopMetrics{},
		tracer:  nopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DailyRow is an operator-editable daily candidate. Dates travel as ISO
// strings so edited values re-parse through the same resolver at commit.
type DailyRow struct {
	MessageID string `json:"message_id"`
	From      string `json:"from,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Project   string `json:"project"`
	Resource  string `json:"resource"`
	Date      string `json:"date"`
}

// WeeklyRow is an operator-editable weekly candidate.
type WeeklyRow struct {
	MessageID     string `json:"message_id"`
	From          string `json:"from,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Project       string `json:"project"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	HasAttachment bool   `json:"has_attachment"`
}

// Preview is one scan's candidate batch, pending review. Abandoning it has
// no side effects.
type Preview struct {
	Daily  []DailyRow  `json:"daily"`
	Weekly []WeeklyRow `json:"weekly"`
}

const isoDate = "2006-01-02"

// Scan lists messages, drops the already-processed ones, and extracts both
// candidate batches. Nothing is written anywhere.
func (s *Service) Scan(ctx context.Context) (preview *Preview, err error) {
	ctx, finish := s.begin(ctx, "scan")
	defer func() { finish(err) }()

	set, err := s.proc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load processed ids: %w", err)
	}
	msgs, err := s.listMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	batch := extract.Scan(msgs, set)

	preview = &Preview{}
	for _, rec := range batch.Daily {
		preview.Daily = append(preview.Daily, DailyRow{
			MessageID: rec.SourceMessageID,
			From:      rec.From,
			Subject:   rec.Subject,
			Project:   rec.Project,
			Resource:  rec.Resource,
			Date:      rec.Date.Format(isoDate),
		})
	}
	for _, rec := range batch.Weekly {
		preview.Weekly = append(preview.Weekly, WeeklyRow{
			MessageID:     rec.SourceMessageID,
			From:          rec.From,
			Subject:       rec.Subject,
			Project:       rec.Project,
			StartDate:     rec.StartDate.Format(isoDate),
			EndDate:       rec.EndDate.Format(isoDate),
			HasAttachment: rec.HasAttachment,
		})
	}
	return preview, nil
}

func (s *Service) listMessages(ctx context.Context) ([]domain.Message, error) {
	if s.cfg.Folder != "" {
		return s.source.ListFolder(ctx, s.cfg.Folder, s.cfg.InboxLimit)
	}
	return s.source.ListInbox(ctx, s.cfg.InboxLimit)
}

// CommitDaily re-validates the (possibly edited) rows and runs the
// atomic-intent sequence: load processed ids, load ledger, merge in memory,
// write ledger back, then record the committed message ids. If the final
// processed-id write fails the ledger is already updated; the next scan will
// re-surface those records and the merge counts them as duplicates.
func (s *Service) CommitDaily(ctx context.Context, rows []DailyRow) (rep ledger.Report, err error) {
	ctx, finish := s.begin(ctx, "commit_daily")
	defer func() { finish(err) }()

	set, err := s.proc.Load(ctx)
	if err != nil {
		return rep, fmt.Errorf("load processed ids: %w", err)
	}

	var records []domain.DailyRecord
	var ids []string
	for i, row := range rows {
		if set.Has(row.MessageID) {
			continue
		}
		date, ok := domain.ResolveDate(row.Date)
		if !ok || strings.TrimSpace(row.Project) == "" || strings.TrimSpace(row.Resource) == "" {
			rep.Skipped = append(rep.Skipped, fmt.Sprintf("row %d: missing project, resource, or date", i))
			continue
		}
		records = append(records, domain.DailyRecord{
			SourceMessageID: row.MessageID,
			Project:         row.Project,
			Resource:        row.Resource,
			Date:            date,
		})
		ids = append(ids, row.MessageID)
	}
	if len(records) == 0 {
		return rep, nil
	}

	err = s.commit(ctx, s.cfg.DailyFileName, ledger.KindDaily, ledger.MinimalDaily, set, ids, &rep, func(wb *ledger.Workbook) ledger.Report {
		return ledger.ApplyDaily(wb, records)
	})
	return rep, err
}

// CommitWeekly is the weekly counterpart of CommitDaily; rows additionally
// require the attachment signal to survive re-validation.
func (s *Service) CommitWeekly(ctx context.Context, rows []WeeklyRow) (rep ledger.Report, err error) {
	ctx, finish := s.begin(ctx, "commit_weekly")
	defer func() { finish(err) }()

	set, err := s.proc.Load(ctx)
	if err != nil {
		return rep, fmt.Errorf("load processed ids: %w", err)
	}

	var records []domain.WeeklyRecord
	var ids []string
	for i, row := range rows {
		if set.Has(row.MessageID) {
			continue
		}
		start, okS := domain.ResolveDate(row.StartDate)
		end, okE := domain.ResolveDate(row.EndDate)
		if !okS || !okE || end.Before(start) || strings.TrimSpace(row.Project) == "" || !row.HasAttachment {
			rep.Skipped = append(rep.Skipped, fmt.Sprintf("row %d: missing project, date range, or attachment", i))
			continue
		}
		records = append(records, domain.WeeklyRecord{
			SourceMessageID: row.MessageID,
			Project:         row.Project,
			StartDate:       start,
			EndDate:         end,
			HasAttachment:   true,
		})
		ids = append(ids, row.MessageID)
	}
	if len(records) == 0 {
		return rep, nil
	}

	err = s.commit(ctx, s.cfg.WeeklyFileName, ledger.KindWeekly, ledger.MinimalWeekly, set, ids, &rep, func(wb *ledger.Workbook) ledger.Report {
		return ledger.ApplyWeekly(wb, records)
	})
	return rep, err
}

// commit runs the shared load → merge → store sequence for one ledger file.
func (s *Service) commit(ctx context.Context, name string, kind ledger.Kind, template func() ([]byte, error),
	set procstore.Set, ids []string, rep *ledger.Report, apply func(*ledger.Workbook) ledger.Report) error {

	handle, wb, err := s.ensureWorkbook(ctx, name, kind, template)
	if err != nil {
		return err
	}
	merged := apply(wb)
	rep.Applied = merged.Applied
	rep.Duplicates = merged.Duplicates
	rep.Skipped = append(rep.Skipped, merged.Skipped...)
	rep.Inconsistencies = append(rep.Inconsistencies, merged.Inconsistencies...)

	out, err := ledger.Encode(wb)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", name, err)
	}
	if err := s.drive.Write(ctx, handle, out); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}

	set.Add(ids...)
	if err := s.proc.Save(ctx, set); err != nil {
		return fmt.Errorf("record processed ids (ledger already updated; duplicates will be absorbed on the next commit): %w", err)
	}
	return nil
}

// ensureWorkbook finds the named ledger file and decodes it, recreating it
// from the minimal template when it is missing or unreadable.
func (s *Service) ensureWorkbook(ctx context.Context, name string, kind ledger.Kind, template func() ([]byte, error)) (string, *ledger.Workbook, error) {
	minimal, err := template()
	if err != nil {
		return "", nil, fmt.Errorf("build template for %s: %w", name, err)
	}

	handle, ok, err := s.drive.FindByName(ctx, name)
	if err != nil {
		return "", nil, fmt.Errorf("find %s: %w", name, err)
	}
	if !ok {
		handle, err = s.drive.Create(ctx, name, minimal)
		if err != nil {
			return "", nil, fmt.Errorf("create %s: %w", name, err)
		}
		wb, err := ledger.Decode(minimal, kind)
		return handle, wb, err
	}

	b, err := s.drive.Read(ctx, handle)
	if err != nil {
		return "", nil, fmt.Errorf("download %s: %w", name, err)
	}
	wb, err := ledger.Decode(b, kind)
	if err != nil {
		// broken remote file: start over from the template rather than
		// permanently wedging the tracker on one bad upload
		wb, err = ledger.Decode(minimal, kind)
		if err != nil {
			return "", nil, err
		}
	}
	return handle, wb, nil
}

// begin opens a span for op and returns the finish callback that closes it
// and records the outcome.
func (s *Service) begin(ctx context.Context, op string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, op)
	start := time.Now()
	return ctx, func(err error) {
		span.End(err)
		s.metrics.Observe(ctx, op, err == nil, time.Since(start))
	}
}
