package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/handiism/discography-sync/internal/config"
	"github.com/handiism/discography-sync/internal/discography"
	"github.com/handiism/discography-sync/internal/model"
	"github.com/handiism/discography-sync/internal/resolve"
)

const sheetCSV = "year,title,type,description,url,imageUrl\n" +
	"2020,Older,Album,,https://example.com/older,\n" +
	"2021,Newer,Single,Acoustic,https://example.com/newer,https://drive.google.com/open?id=f1\n"

// isolateEnv clears every variable config.Settings.ApplyEnv reads.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SPREADSHEET_ID", "NEXT_PUBLIC_SPREADSHEET_ID",
		"CSV_URL", "NEXT_PUBLIC_CSV_URL",
		"DISCOGRAPHY_GID", "NEXT_PUBLIC_DISCOGRAPHY_GID",
		"GOOGLE_APPLICATION_CREDENTIALS_JSON", "GOOGLE_APPLICATION_CREDENTIALS_FILE",
	} {
		t.Setenv(key, "")
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("output missing %q:\n%s", want, out)
	}
}

func newSheetServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, sheetCSV)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSyncWritesJSON(t *testing.T) {
	isolateEnv(t)
	srv := newSheetServer(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "out", "discography.json")

	_, stderr, err := runCLI(t, "sync",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--csv-url", srv.URL,
		"--cache-dir", filepath.Join(dir, "cache"),
		"--lock-file", filepath.Join(dir, "sync.lock"),
		"--output", output,
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	requireContains(t, stderr, "Wrote 2 items")

	data, err := readDiscography(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	drive := "https://drive.google.com/open?id=f1"
	want := model.DiscographyData{
		"2020": {{Title: "Older", Type: "Album", URL: "https://example.com/older"}},
		"2021": {{Title: "Newer", Type: "Single", Description: "Acoustic", URL: "https://example.com/newer", ImageURL: &drive}},
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSyncNotConfigured(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	_, _, err := runCLI(t, "sync",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--lock-file", filepath.Join(dir, "sync.lock"),
		"--log-level", "error",
	)
	if !errors.Is(err, discography.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestShowOrdersYearsNewestFirst(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "discography.json")
	cover := "/img/googledrive/2021-Newer-f1.jpg"
	data := model.DiscographyData{
		"2019": {{Title: "Oldest", Type: "EP"}},
		"2021": {{Title: "Newer", Type: "Single", ImageURL: &cover}},
	}
	if err := writeJSONFile(input, data); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "show", "--config", filepath.Join(dir, "missing.yaml"), "--input", input)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, cover)
	requireContains(t, out, "2 releases in 2 years")
	if strings.Index(out, "Newer") > strings.Index(out, "Oldest") {
		t.Errorf("2021 should be listed before 2019:\n%s", out)
	}
}

func TestShowFetchesWithoutDownloads(t *testing.T) {
	isolateEnv(t)
	srv := newSheetServer(t)
	dir := t.TempDir()

	out, _, err := runCLI(t, "show",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--csv-url", srv.URL,
		"--json",
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, `"imageUrl": "https://drive.google.com/open?id=f1"`)
}

func TestLocate(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "published id",
			args: []string{"--spreadsheet", "2PACX-abc"},
			want: "https://docs.google.com/spreadsheets/d/e/2PACX-abc/pub?gid=0&single=true&output=csv",
		},
		{
			name: "raw id with gid",
			args: []string{"--spreadsheet", "abc123", "--gid", "42"},
			want: "https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=42",
		},
		{
			name: "explicit csv url wins",
			args: []string{"--spreadsheet", "abc123", "--csv-url", "https://example.com/sheet.csv"},
			want: "https://example.com/sheet.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"locate", "--config", missing}, tt.args...)
			out, _, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("locate: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("locate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocateReadsEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("NEXT_PUBLIC_SPREADSHEET_ID", "fromenv")

	out, _, err := runCLI(t, "locate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	requireContains(t, out, "/d/fromenv/export")
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "discography.yaml")

	out, _, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote default configuration")

	settings, err := config.Load(target)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if settings.PublicPath != "/img/googledrive" {
		t.Errorf("PublicPath = %q, want /img/googledrive", settings.PublicPath)
	}

	if _, _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Error("expected error when config already exists")
	}
	if _, _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Errorf("config init --overwrite: %v", err)
	}
}

func TestProgressPrinterFiltersVerbose(t *testing.T) {
	var buf bytes.Buffer
	emit := progressPrinter(&buf, false)

	emit(resolve.ProgressEvent{Message: "hidden", Level: resolve.LevelVerbose})
	emit(resolve.ProgressEvent{Message: "shown", Level: resolve.LevelWarning})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("verbose event printed: %q", out)
	}
	requireContains(t, out, "shown")
}
