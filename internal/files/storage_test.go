package files

import (
	"os"
	"strings"
	"testing"
)

func TestSaveReturnsDistinctReferences(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ref1, err := s.Save("documents", "KA01", "insurance.pdf", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	ref2, err := s.Save("documents", "KA01", "insurance.pdf", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ref1 == ref2 {
		t.Fatalf("same filename must yield distinct references")
	}
	if !strings.HasPrefix(ref1, "/uploads/documents/") {
		t.Fatalf("unexpected reference shape: %q", ref1)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ref, err := s.Save("documents", "KA01", "a.pdf", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	p, err := s.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "payload" {
		t.Fatalf("expected payload, got %q", b)
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, ref := range []string{
		"/etc/passwd",
		"/uploads/../snapshot.json",
		"/uploads/..",
		"uploads/documents/a.pdf",
	} {
		if _, err := s.Resolve(ref); err == nil {
			t.Fatalf("expected %q to be rejected", ref)
		}
	}
}

func TestSanitizeStripsPathComponents(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ref, err := s.Save("documents", "KA01", "../../evil name.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(ref, "..") || strings.Contains(ref, " ") {
		t.Fatalf("reference not sanitized: %q", ref)
	}
	if _, err := s.Resolve(ref); err != nil {
		t.Fatalf("sanitized reference must resolve: %v", err)
	}
}
