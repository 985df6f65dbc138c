// Package main runs the reportledger CLI: scan the mailbox for status-report
// candidates, then commit reviewed batches into the remote ledgers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"reportledger/internal/blob"
	"reportledger/internal/mail"
	"reportledger/internal/mail/graph"
	"reportledger/internal/procstore"
	"reportledger/internal/tracker"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Stdin))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage: reportledger <command> [file]

commands:
  scan            list new candidate records as JSON on stdout
  commit-daily    merge reviewed daily rows (JSON from file or stdin)
  commit-weekly   merge reviewed weekly rows (JSON from file or stdin)

configuration is environment driven:
  REPORTLEDGER_GRAPH_TOKEN          bearer credential for Microsoft Graph
  REPORTLEDGER_STORAGE              graph|blob (default graph)
  REPORTLEDGER_BLOB_DRIVER          fs|s3|memory when storage=blob
  REPORTLEDGER_PROCSTORE_DRIVER     blob|sqlite|postgres (default blob)
  REPORTLEDGER_MAIL_FOLDER          folder display name (default inbox)
  REPORTLEDGER_INBOX_LIMIT          scan batch size (default 300)`)
}

func run(args []string, stdout, stderr io.Writer, stdin io.Reader) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	ctx := context.Background()
	svc, err := buildService(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "reportledger: %v\n", err)
		return 1
	}

	switch args[0] {
	case "scan":
		preview, err := svc.Scan(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "scan: %v\n", err)
			return 1
		}
		return emit(stdout, stderr, preview)
	case "commit-daily":
		var rows []tracker.DailyRow
		if err := readRows(args[1:], stdin, &rows); err != nil {
			fmt.Fprintf(stderr, "commit-daily: %v\n", err)
			return 1
		}
		rep, err := svc.CommitDaily(ctx, rows)
		if err != nil {
			fmt.Fprintf(stderr, "commit-daily: %v\n", err)
			return 1
		}
		return emit(stdout, stderr, rep)
	case "commit-weekly":
		var rows []tracker.WeeklyRow
		if err := readRows(args[1:], stdin, &rows); err != nil {
			fmt.Fprintf(stderr, "commit-weekly: %v\n", err)
			return 1
		}
		rep, err := svc.CommitWeekly(ctx, rows)
		if err != nil {
			fmt.Fprintf(stderr, "commit-weekly: %v\n", err)
			return 1
		}
		return emit(stdout, stderr, rep)
	default:
		usage(stderr)
		return 2
	}
}

func buildService(ctx context.Context) (*tracker.Service, error) {
	tokens := mail.NewMemoryTokenStore(os.Getenv("REPORTLEDGER_GRAPH_TOKEN"))
	client := graph.NewClient(tokens)

	var drive blob.Drive
	switch storage := os.Getenv("REPORTLEDGER_STORAGE"); storage {
	case "", "graph":
		drive = client
	case "blob":
		store, err := blob.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("open blob store: %w", err)
		}
		drive = blob.NewDrive(store)
	default:
		return nil, fmt.Errorf("unknown storage %q", storage)
	}

	proc, err := procstore.Open(ctx, drive)
	if err != nil {
		return nil, fmt.Errorf("open processed-id store: %w", err)
	}

	cfg := tracker.Config{Folder: os.Getenv("REPORTLEDGER_MAIL_FOLDER")}
	if v := os.Getenv("REPORTLEDGER_INBOX_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REPORTLEDGER_INBOX_LIMIT %q", v)
		}
		cfg.InboxLimit = n
	}

	opts := []tracker.Option{tracker.WithMetrics(tracker.NewExpvarMetricsRecorder("reportledger"))}
	if os.Getenv("REPORTLEDGER_TRACE") == "1" {
		opts = append(opts, tracker.WithTracer(tracker.NewJSONTracer(os.Stderr)))
	}
	return tracker.NewService(client, drive, proc, cfg, opts...), nil
}

func readRows(args []string, stdin io.Reader, out any) error {
	r := stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	return json.NewDecoder(r).Decode(out)
}

func emit(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "encode output: %v\n", err)
		return 1
	}
	return 0
}
