package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// writeFont drops real TTF bytes into dir under name so that parsing works.
func writeFont(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestResolveEmbeddedDefault(t *testing.T) {
	m := NewManager(WithDirs(t.TempDir()))

	path, err := m.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if path != "" {
		t.Errorf("Resolve(\"\") = %q, want empty path (embedded default)", path)
	}
}

func TestResolveFromDirectory(t *testing.T) {
	dir := t.TempDir()
	want := writeFont(t, dir, "Roboto-Regular.ttf", goregular.TTF)
	m := NewManager(WithDirs(dir))

	tests := []struct {
		name      string
		fontName  string
		variation string
	}{
		{"plain name", "Roboto-Regular", ""},
		{"name with extension", "Roboto-Regular.ttf", ""},
		{"base plus variation", "Roboto", "Regular"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Resolve(tt.fontName, tt.variation)
			if err != nil {
				t.Fatalf("Resolve error: %v", err)
			}
			if got != want {
				t.Errorf("Resolve = %q, want %q", got, want)
			}
		})
	}
}

func TestResolveVariationFallsBackToBase(t *testing.T) {
	dir := t.TempDir()
	want := writeFont(t, dir, "Roboto.ttf", goregular.TTF)
	m := NewManager(WithDirs(dir))

	got, err := m.Resolve("Roboto", "Bold")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want base file %q", got, want)
	}
}

func TestResolveNotFound(t *testing.T) {
	m := NewManager(WithDirs(t.TempDir()))

	_, err := m.Resolve("NoSuchFont", "")
	if err == nil {
		t.Fatal("expected an error for a missing font")
	}
}

func TestResolveUsesDefaultName(t *testing.T) {
	dir := t.TempDir()
	want := writeFont(t, dir, "Roboto.ttf", goregular.TTF)
	m := NewManager(WithDirs(dir), WithDefaultFont("Roboto"))

	got, err := m.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want default font %q", got, want)
	}
}

func TestCandidateNames(t *testing.T) {
	got := candidateNames("Roboto", "Bold")
	want := []string{"Roboto-Bold.ttf", "Roboto-Bold.otf", "Roboto.ttf", "Roboto.otf"}
	if len(got) != len(want) {
		t.Fatalf("candidateNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidateNames[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFace(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Roboto.ttf", goregular.TTF)
	m := NewManager(WithDirs(dir))

	face, err := m.Face("Roboto", "", 24)
	if err != nil {
		t.Fatalf("Face error: %v", err)
	}
	if face == nil {
		t.Fatal("Face returned nil")
	}

	again, err := m.Face("Roboto", "", 24)
	if err != nil {
		t.Fatalf("second Face error: %v", err)
	}
	if again != face {
		t.Error("Face should return the cached face for identical requests")
	}

	// Embedded fallback still yields a usable face.
	if _, err := m.Face("", "", 0); err != nil {
		t.Errorf("embedded Face error: %v", err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Roboto.ttf", goregular.TTF)
	writeFont(t, dir, "Roboto-Bold.ttf", gobold.TTF)
	writeFont(t, dir, "notes.txt", []byte("not a font"))
	m := NewManager(WithDirs(dir))

	got := m.List(false, false)
	want := []string{"Roboto-Bold.ttf", "Roboto.ttf"}
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	full := m.List(true, false)
	if len(full) != 2 || !filepath.IsAbs(full[0]) {
		t.Errorf("List(fullPath) = %v, want two absolute paths", full)
	}
}

func TestVariations(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Roboto.ttf", goregular.TTF)
	writeFont(t, dir, "Roboto-Bold.ttf", gobold.TTF)
	writeFont(t, dir, "Roboto-Italic.otf", goregular.TTF)
	m := NewManager(WithDirs(dir))

	got, err := m.Variations("Roboto")
	if err != nil {
		t.Fatalf("Variations error: %v", err)
	}
	want := []string{"Bold", "Italic"}
	if len(got) != len(want) {
		t.Fatalf("Variations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Variations[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := m.Variations(""); err == nil {
		t.Error("Variations(\"\") should fail")
	}
}

func TestDeleteAll(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "Roboto.ttf", goregular.TTF)
	writeFont(t, dir, "Roboto-Bold.ttf", gobold.TTF)
	keep := writeFont(t, dir, "notes.txt", []byte("kept"))
	m := NewManager(WithDirs(dir))

	deleted, err := m.DeleteAll()
	if err != nil {
		t.Fatalf("DeleteAll error: %v", err)
	}
	if len(deleted) != 2 {
		t.Errorf("deleted %v, want 2 font files", deleted)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("DeleteAll must not touch non-font files")
	}
	if got := m.List(false, false); len(got) != 0 {
		t.Errorf("List after DeleteAll = %v, want empty", got)
	}
}
