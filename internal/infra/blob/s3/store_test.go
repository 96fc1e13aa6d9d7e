package s3

import (
	"context"
	"crypto/md5" // #nosec G501 -- S3 ETag format.
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"formrestyle/internal/blob/core"
)

func TestStore_MockedPutGetHead(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if store.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	if _, err := store.Put(ctx, "apply.html", strings.NewReader("<style></style>"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	h, err := store.Head(ctx, "apply.html")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if h.ContentType != defaultContentType {
		t.Fatalf("expected default html content type, got %q", h.ContentType)
	}
	sum := md5.Sum([]byte("<style></style>")) // #nosec G401 -- S3 ETag format.
	if want := hex.EncodeToString(sum[:]); h.ETag != want {
		t.Fatalf("expected unquoted etag %q, got %q", want, h.ETag)
	}
	if _, err := store.Put(ctx, "apply.html", strings.NewReader("<style>x</style>"), core.PutOptions{ContentType: "text/plain"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_, rc, err := store.Get(ctx, "apply.html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "<style>x</style>" {
		t.Fatalf("expected overwritten body, got %q", b)
	}
}

func TestStore_MockedNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if _, err := store.Head(ctx, "missing.html"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected head ErrNotFound, got %v", err)
	}
	if _, _, err := store.Get(ctx, "missing.html"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected get ErrNotFound, got %v", err)
	}
}

func TestStore_PrefixIsApplied(t *testing.T) {
	ctx := context.Background()
	store := newMockWithPrefix("careers/")
	if got := store.objectKey("apply.html"); got != "careers/apply.html" {
		t.Fatalf("expected prefixed key, got %q", got)
	}
	if _, err := store.Put(ctx, "apply.html", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	info, err := store.Head(ctx, "apply.html")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if info.Key != "apply.html" {
		t.Fatalf("expected caller key in info, got %q", info.Key)
	}
	bare := &Store{client: store.client, bucket: store.bucket}
	if _, err := bare.Head(ctx, "apply.html"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected unprefixed lookup to miss, got %v", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket required error")
	}
}

func TestDecodeChunked(t *testing.T) {
	payload := "5;chunk-signature=abc\r\nhello\r\n6\r\n world\r\n0\r\nx-amz-checksum-crc32:AAAA\r\n\r\n"
	got, ok := decodeChunked([]byte(payload))
	if !ok || string(got) != "hello world" {
		t.Fatalf("expected decoded payload, got %q ok=%v", got, ok)
	}
	if _, ok := decodeChunked([]byte("not chunked")); ok {
		t.Fatalf("expected plain body to be rejected")
	}
}

func TestStore_MetadataRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	md := map[string]string{"owner": "careers"}
	put, err := store.Put(ctx, "apply.html", strings.NewReader("x"), core.PutOptions{Metadata: md})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if put.Metadata["owner"] != "careers" {
		t.Fatalf("expected metadata on put info, got %v", put.Metadata)
	}
	info, rc, err := store.Get(ctx, "apply.html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = rc.Close()
	if info.Metadata["owner"] != "careers" || info.ETag == "" {
		t.Fatalf("expected metadata and etag on get, got %+v", info)
	}
	if _, err := store.Put(ctx, "apply.html", strings.NewReader("y"), core.PutOptions{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	h, err := store.Head(ctx, "apply.html")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if len(h.Metadata) != 0 {
		t.Fatalf("expected overwrite without metadata to clear it, got %v", h.Metadata)
	}
	if h.ETag == info.ETag {
		t.Fatalf("expected etag to change with content")
	}
}
