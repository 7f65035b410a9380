package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManifestWriteRead(t *testing.T) {
	m := New("web", "webp", "/data/print pictures")
	m.Files["banners and large formats_resized/banners_img1.webp"] = Entry{
		Source:     "banners and large formats/img1.png",
		Output:     "banners and large formats_resized/banners_img1.webp",
		Width:      300,
		Height:     200,
		SourceSize: 120000,
		Size:       9000,
		Hash:       "0123456789abcdef",
	}
	m.Failures = append(m.Failures, Failure{Source: "stickers and labels/broken.jpg", Kind: "decode"})

	path := filepath.Join(t.TempDir(), "printprep.manifest.json")
	if err := WriteJSON(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	m2, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m2.Profile != "web" || m2.Format != "webp" {
		t.Errorf("profile/format: got %q/%q", m2.Profile, m2.Format)
	}
	e, ok := m2.Files["banners and large formats_resized/banners_img1.webp"]
	if !ok {
		t.Fatal("entry missing")
	}
	if e.Width != 300 || e.Height != 200 {
		t.Errorf("dimensions: got %dx%d", e.Width, e.Height)
	}
	if m2.Stats.TotalFiles != 1 || m2.Stats.Failed != 1 {
		t.Errorf("stats: %+v", m2.Stats)
	}
	if m2.Stats.TotalInputBytes != 120000 || m2.Stats.TotalOutputBytes != 9000 {
		t.Errorf("byte stats: %+v", m2.Stats)
	}
}

func TestReadJSONRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	if err := os.WriteFile(path, []byte(`{"version": 7, "files": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadJSON(path); err == nil {
		t.Fatal("expected version error")
	}
}

func TestReadJSONIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2025-01-01T00:00:00Z",
		"profile": "web",
		"future_field": "ignored",
		"files": {},
		"stats": {"total_files": 0, "new_stat": 42}
	}`
	path := filepath.Join(t.TempDir(), "m.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.Profile != "web" {
		t.Errorf("profile: got %q", m.Profile)
	}
}
