package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"reportledger/internal/blob/core"
)

// mockRoundTripper fakes the S3 subset the adapter touches, so the driver is
// exercised end to end through the real aws client without network access.
type mockRoundTripper struct{ state map[string]stored }

type stored struct {
	body        []byte
	contentType string
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	if req.Method == http.MethodGet && strings.Contains(req.URL.RawQuery, "list-type=2") {
		return m.listResponse(req), nil
	}
	switch req.Method {
	case http.MethodHead:
		if st, ok := m.state[key]; ok {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{
				"Content-Length": {fmt.Sprintf("%d", len(st.body))},
				"Content-Type":   {st.contentType},
				"ETag":           {"\"etag123\""},
				"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
			}}, nil
		}
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := decodeChunked(body); ok { // handle aws-chunked encoding
			body = dec
		}
		m.state[key] = stored{body: body, contentType: req.Header.Get("Content-Type")}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {"\"etag\""}}}, nil
	case http.MethodGet:
		if st, ok := m.state[key]; ok {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(st.body)), Header: http.Header{
				"Content-Length": {fmt.Sprintf("%d", len(st.body))},
				"Content-Type":   {st.contentType},
				"ETag":           {"\"etag\""},
				"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
			}}, nil
		}
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	case http.MethodDelete:
		delete(m.state, key)
		return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
}

// listResponse serves ListObjectsV2: with more than one matching key the
// first page is truncated behind a continuation token, which exercises the
// adapter's paginator loop.
func (m *mockRoundTripper) listResponse(req *http.Request) *http.Response {
	prefix := req.URL.Query().Get("prefix")
	cont := req.URL.Query().Get("continuation-token")
	var keys []string
	for k := range m.state {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?><ListBucketResult>")
	writeContents := func(ks []string) {
		for _, k := range ks {
			st := m.state[k]
			b.WriteString("<Contents><Key>")
			b.WriteString(k)
			b.WriteString("</Key><Size>")
			b.WriteString(fmt.Sprintf("%d", len(st.body)))
			b.WriteString("</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>")
		}
	}
	if cont == "" && len(keys) > 1 {
		b.WriteString("<IsTruncated>true</IsTruncated><NextContinuationToken>tok123</NextContinuationToken>")
		writeContents(keys[:1])
	} else {
		b.WriteString("<IsTruncated>false</IsTruncated>")
		start := 0
		if cont != "" && len(keys) > 1 {
			start = 1
		}
		writeContents(keys[start:])
	}
	b.WriteString("</ListBucketResult>")
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(b.String())), Header: http.Header{"Content-Type": {"application/xml"}}}
}

// decodeChunked unwraps a minimal single-chunk aws-chunked payload:
// <hex>\r\n<body>\r\n0\r\n...
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 {
		return nil, false
	}
	n, err := strconv.ParseInt(parts[0], 16, 64)
	if err != nil || n <= 0 {
		return nil, false
	}
	if int64(len(parts[1])) != n || parts[2] != "0" {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newMockStore(t *testing.T) *Store {
	t.Helper()
	rt := &mockRoundTripper{state: make(map[string]stored)}
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	if err != nil {
		t.Fatalf("cfg: %v", err)
	}
	client := awsS3.NewFromConfig(cfg, func(o *awsS3.Options) {
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
	})
	return &Store{client: client, bucket: "test-bucket"}
}

func TestStoreMockedBasicFlow(t *testing.T) {
	store := newMockStore(t)
	ctx := context.Background()
	if store.Driver() != core.DriverS3 {
		t.Fatalf("expected DriverS3")
	}
	info, err := store.Create(ctx, "ledgers/DSR.xlsx", bytes.NewReader([]byte("hello")), core.PutOptions{ContentType: "text/plain"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if info.Key != "ledgers/DSR.xlsx" || info.ContentType != "text/plain" || info.Size != 5 {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := store.Create(ctx, "ledgers/DSR.xlsx", bytes.NewReader([]byte("ignored")), core.PutOptions{}); err == nil {
		t.Fatalf("create must fail when the key exists")
	}
	if _, err := store.Head(ctx, "ledgers/DSR.xlsx"); err != nil {
		t.Fatalf("head: %v", err)
	}
	_, rc, err := store.Get(ctx, "ledgers/DSR.xlsx")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "hello" {
		t.Fatalf("get mismatch: %q", string(data))
	}
	if _, err := store.Write(ctx, "ledgers/DSR.xlsx", bytes.NewReader([]byte("rewritten")), core.PutOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, rc, err = store.Get(ctx, "ledgers/DSR.xlsx")
	if err != nil {
		t.Fatalf("get after write: %v", err)
	}
	data, _ = io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "rewritten" {
		t.Fatalf("write did not replace: %q", string(data))
	}
	if ok, err := store.Delete(ctx, "ledgers/DSR.xlsx"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := store.Delete(ctx, "ledgers/DSR.xlsx"); err != nil || ok {
		t.Fatalf("second delete should be (false, nil), got %v %v", ok, err)
	}
}

func TestStoreMissingKeyWrapsErrNotFound(t *testing.T) {
	store := newMockStore(t)
	ctx := context.Background()
	if _, err := store.Head(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("head: got %v, want ErrNotFound", err)
	}
	if _, _, err := store.Get(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get: got %v, want ErrNotFound", err)
	}
}

func TestStoreListPagesAndFilters(t *testing.T) {
	store := newMockStore(t)
	ctx := context.Background()
	if _, err := store.Write(ctx, "ledgers/a.xlsx", bytes.NewReader([]byte("a")), core.PutOptions{}); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if _, err := store.Write(ctx, "ledgers/b.xlsx", bytes.NewReader([]byte("bb")), core.PutOptions{}); err != nil {
		t.Fatalf("write b: %v", err)
	}
	if _, err := store.Write(ctx, "other/c.txt", bytes.NewReader([]byte("c")), core.PutOptions{}); err != nil {
		t.Fatalf("write c: %v", err)
	}
	list, err := store.List(ctx, "ledgers/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "ledgers/a.xlsx" || list[1].Key != "ledgers/b.xlsx" {
		t.Fatalf("expected both ledger keys in order via pagination, got %+v", list)
	}
	if list, err := store.List(ctx, "no-such-prefix/"); err != nil || len(list) != 0 {
		t.Fatalf("expected empty list: %v %+v", err, list)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
}

func TestOpenFromEnvMinimal(t *testing.T) {
	t.Setenv("REPORTLEDGER_BLOB_S3_BUCKET", "env-bucket")
	t.Setenv("REPORTLEDGER_BLOB_S3_REGION", "us-east-1")
	if _, err := OpenFromEnv(context.Background()); err != nil {
		t.Fatalf("OpenFromEnv: %v", err)
	}
	t.Setenv("REPORTLEDGER_BLOB_S3_BUCKET", "")
	if _, err := OpenFromEnv(context.Background()); err == nil {
		t.Fatalf("expected error without a bucket")
	}
}

func TestDecodeChunkedHelper(t *testing.T) {
	if _, ok := decodeChunked([]byte("not-chunked")); ok {
		t.Fatalf("plain payload must not decode")
	}
	if _, ok := decodeChunked([]byte("5\r\nabc\r\n0\r\n")); ok {
		t.Fatalf("size mismatch must not decode")
	}
	if b, ok := decodeChunked([]byte("5\r\nhello\r\n0\r\n")); !ok || string(b) != "hello" {
		t.Fatalf("expected hello, got %q ok=%v", b, ok)
	}
}
