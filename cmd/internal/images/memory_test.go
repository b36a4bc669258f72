package images

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMemoryStoreUploadDelete(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	img, err := m.Upload(ctx, strings.NewReader("fake-png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if img.ID == "" || img.URL == "" {
		t.Fatalf("empty reference: %+v", img)
	}
	if !strings.HasSuffix(img.ID, ".png") {
		t.Errorf("key %q missing extension", img.ID)
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}

	if err := m.Delete(ctx, img.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := m.Delete(ctx, img.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.Upload(context.Background(), strings.NewReader("<svg/>"), "image/svg+xml")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestAllowedContentType(t *testing.T) {
	for ct, want := range map[string]bool{
		"image/jpeg":    true,
		"image/png":     true,
		"image/webp":    true,
		"image/gif":     true,
		"image/svg+xml": false,
		"text/html":     false,
		"":              false,
	} {
		if got := AllowedContentType(ct); got != want {
			t.Errorf("AllowedContentType(%q) = %v, want %v", ct, got, want)
		}
	}
}
