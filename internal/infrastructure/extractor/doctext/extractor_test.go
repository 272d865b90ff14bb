package doctext

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/okestraai/DocuIntelli-sub005/internal/core/domain"
)

type storageStub struct {
	blobs map[string][]byte
}

func (s *storageStub) Save(_ context.Context, key string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.blobs[key] = raw
	return nil
}

func (s *storageStub) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := s.blobs[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func TestExtractPlainText(t *testing.T) {
	storage := &storageStub{blobs: map[string][]byte{
		"doc-1_notes.txt": []byte("  lease renewal terms  \n"),
	}}
	extractor := NewExtractor(storage)

	text, err := extractor.Extract(context.Background(), &domain.Document{
		StoragePath: "doc-1_notes.txt",
		MimeType:    "text/plain",
		Filename:    "notes.txt",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "lease renewal terms" {
		t.Fatalf("expected trimmed text, got %q", text)
	}
}

func TestExtractRejectsBinaryNonPDF(t *testing.T) {
	storage := &storageStub{blobs: map[string][]byte{
		"doc-1_blob.bin": {0xff, 0xfe, 0x00, 0x01},
	}}
	extractor := NewExtractor(storage)

	_, err := extractor.Extract(context.Background(), &domain.Document{
		StoragePath: "doc-1_blob.bin",
		MimeType:    "application/octet-stream",
		Filename:    "blob.bin",
	})
	if err == nil {
		t.Fatalf("expected error for binary content")
	}
}

func TestExtractMalformedPDFFails(t *testing.T) {
	storage := &storageStub{blobs: map[string][]byte{
		"doc-1_broken.pdf": []byte("%PDF-1.7 not really a pdf"),
	}}
	extractor := NewExtractor(storage)

	_, err := extractor.Extract(context.Background(), &domain.Document{
		StoragePath: "doc-1_broken.pdf",
		MimeType:    "application/pdf",
		Filename:    "broken.pdf",
	})
	if err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
}

func TestExtractMissingBlobFails(t *testing.T) {
	storage := &storageStub{blobs: map[string][]byte{}}
	extractor := NewExtractor(storage)

	_, err := extractor.Extract(context.Background(), &domain.Document{
		StoragePath: "absent",
		MimeType:    "text/plain",
	})
	if err == nil {
		t.Fatalf("expected error for missing blob")
	}
}
