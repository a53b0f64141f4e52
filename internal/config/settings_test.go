package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if settings.GID != "0" {
		t.Errorf("GID = %q, want %q", settings.GID, "0")
	}
	if settings.PublicPath != "/img/googledrive" {
		t.Errorf("PublicPath = %q, want %q", settings.PublicPath, "/img/googledrive")
	}
	if settings.CacheDir != filepath.Join("public", "img", "googledrive") {
		t.Errorf("CacheDir = %q", settings.CacheDir)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discography.yaml")
	content := "spreadsheet_id: ABC123\nmax_concurrent_images: 4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if settings.SpreadsheetID != "ABC123" {
		t.Errorf("SpreadsheetID = %q, want %q", settings.SpreadsheetID, "ABC123")
	}
	if settings.MaxConcurrentImages != 4 {
		t.Errorf("MaxConcurrentImages = %d, want 4", settings.MaxConcurrentImages)
	}
	if settings.GID != "0" {
		t.Errorf("GID = %q, want default %q", settings.GID, "0")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gid: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "discography.yaml")

	settings := DefaultSettings()
	settings.SpreadsheetID = "2PACX-xyz"
	settings.GID = "7"
	settings.ImageMaxSize = 800

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *settings {
		t.Errorf("loaded settings differ:\n got %+v\nwant %+v", loaded, settings)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"NEXT_PUBLIC_SPREADSHEET_ID":          "fallback-id",
		"SPREADSHEET_ID":                      "primary-id",
		"NEXT_PUBLIC_CSV_URL":                 "https://example.com/sheet.csv",
		"DISCOGRAPHY_GID":                     "",
		"GOOGLE_APPLICATION_CREDENTIALS_JSON": `{"type":"service_account"}`,
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	settings := DefaultSettings()
	settings.ApplyEnv(lookup)

	if settings.SpreadsheetID != "primary-id" {
		t.Errorf("SpreadsheetID = %q, want %q", settings.SpreadsheetID, "primary-id")
	}
	if settings.CSVURL != "https://example.com/sheet.csv" {
		t.Errorf("CSVURL = %q", settings.CSVURL)
	}
	if settings.GID != "0" {
		t.Errorf("GID = %q, empty env value should not override default", settings.GID)
	}
	if settings.CredentialsJSON != `{"type":"service_account"}` {
		t.Errorf("CredentialsJSON = %q", settings.CredentialsJSON)
	}
}

func TestSourceURL(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     string
	}{
		{
			name:     "explicit csv url wins",
			settings: Settings{SpreadsheetID: "ABC", CSVURL: "https://example.com/a.csv", GID: "0"},
			want:     "https://example.com/a.csv",
		},
		{
			name:     "derived from spreadsheet id",
			settings: Settings{SpreadsheetID: "ABC123", GID: "0"},
			want:     "https://docs.google.com/spreadsheets/d/ABC123/export?format=csv&gid=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.SourceURL(); got != tt.want {
				t.Errorf("SourceURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasSource(t *testing.T) {
	if (&Settings{}).HasSource() {
		t.Error("HasSource() should be false without id or url")
	}
	if !(&Settings{CSVURL: "https://x"}).HasSource() {
		t.Error("HasSource() should be true with a csv url")
	}
	if !(&Settings{SpreadsheetID: "x"}).HasSource() {
		t.Error("HasSource() should be true with a spreadsheet id")
	}
}

func TestCredentials(t *testing.T) {
	s := DefaultSettings()
	creds, err := s.Credentials()
	if err != nil || creds != nil {
		t.Errorf("Credentials() = %q, %v; want nil, nil", creds, err)
	}

	path := filepath.Join(t.TempDir(), "key.json")
	if err := os.WriteFile(path, []byte(`{"from":"file"}`), 0600); err != nil {
		t.Fatal(err)
	}
	s.CredentialsFile = path
	creds, err = s.Credentials()
	if err != nil || string(creds) != `{"from":"file"}` {
		t.Errorf("Credentials() = %q, %v", creds, err)
	}

	s.CredentialsJSON = `{"from":"inline"}`
	creds, _ = s.Credentials()
	if string(creds) != `{"from":"inline"}` {
		t.Errorf("inline credentials should win, got %q", creds)
	}

	s = DefaultSettings()
	s.CredentialsFile = filepath.Join(t.TempDir(), "missing.json")
	if _, err := s.Credentials(); err == nil {
		t.Error("expected error for missing credentials file")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}

	s := DefaultSettings()
	s.CacheDir = ""
	s.MaxConcurrentImages = -1
	s.LogFormat = "xml"
	if err := s.Validate(); err == nil {
		t.Error("expected validation error")
	}
}

func TestTimeoutAndResolveOptions(t *testing.T) {
	s := DefaultSettings()
	s.HTTPTimeout = 1.5
	if s.Timeout() != 1500*time.Millisecond {
		t.Errorf("Timeout() = %v, want 1.5s", s.Timeout())
	}

	s.MaxConcurrentImages = 3
	opts := s.ToResolveOptions()
	if opts.CacheDir != s.CacheDir || opts.PublicPath != s.PublicPath || opts.MaxConcurrent != 3 {
		t.Errorf("ToResolveOptions() = %+v", opts)
	}
}
