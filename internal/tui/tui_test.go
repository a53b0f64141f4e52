package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/discography-sync/internal/config"
	"github.com/handiism/discography-sync/internal/model"
	"github.com/handiism/discography-sync/internal/resolve"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewModelPrefillsSource(t *testing.T) {
	tests := []struct {
		name     string
		settings *config.Settings
		want     string
	}{
		{"nil settings", nil, ""},
		{"spreadsheet id", &config.Settings{SpreadsheetID: "2PACX-abc"}, "2PACX-abc"},
		{"csv url wins", &config.Settings{SpreadsheetID: "abc", CSVURL: "https://example.com/a.csv"}, "https://example.com/a.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(tt.settings)
			if got := m.textInput.Value(); got != tt.want {
				t.Errorf("input = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResultLinesNewestFirst(t *testing.T) {
	data := model.DiscographyData{
		"2019": {{Title: "Oldest", Type: "EP"}},
		"2021": {{Title: "Newer", Type: "Single", Description: "Live"}},
	}

	lines := resultLines(data)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	joined := strings.Join(lines, "\n")
	if strings.Index(joined, "2021") > strings.Index(joined, "2019") {
		t.Errorf("2021 should come before 2019:\n%s", joined)
	}
	if !strings.Contains(lines[1], "Newer · Single (Live)") {
		t.Errorf("release line = %q", lines[1])
	}
}

func TestProgressMsgFiltersVerbose(t *testing.T) {
	m := NewModel(nil)

	m = update(t, m, ProgressMsg{Event: resolve.ProgressEvent{Message: "hidden", Level: resolve.LevelVerbose}})
	if len(m.logs) != 0 {
		t.Fatalf("verbose event logged: %v", m.logs)
	}

	m.verbose = true
	m = update(t, m, ProgressMsg{Event: resolve.ProgressEvent{Message: "shown", Level: resolve.LevelVerbose}})
	if len(m.logs) != 1 || m.logs[0].Message != "shown" {
		t.Errorf("logs = %v", m.logs)
	}
}

func TestProgressMsgKeepsLastLogs(t *testing.T) {
	m := NewModel(nil)
	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: resolve.ProgressEvent{Message: "event", Level: resolve.LevelInfo}})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("got %d logs, want %d", len(m.logs), maxLogs)
	}
}

func TestSyncDoneIgnoresStaleRun(t *testing.T) {
	m := NewModel(nil)
	m.state = StateSyncing
	m.run = 2

	m = update(t, m, SyncDoneMsg{Run: 1, Err: errors.New("old run")})
	if m.state != StateSyncing {
		t.Fatalf("state = %v, want StateSyncing", m.state)
	}

	data := model.DiscographyData{"2020": {{Title: "A"}}}
	m = update(t, m, SyncDoneMsg{Run: 2, Data: data})
	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", m.state)
	}
	if !strings.Contains(m.View(), "Releases: 1") {
		t.Errorf("summary missing from view:\n%s", m.View())
	}
}

func TestResetReturnsToInput(t *testing.T) {
	m := NewModel(nil)
	m.state = StateError
	m.err = errors.New("boom")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.err != nil {
		t.Errorf("err = %v, want nil", m.err)
	}
}

func TestOptionKeysDoNotReachInput(t *testing.T) {
	tests := []struct {
		name  string
		key   tea.KeyMsg
		check func(Model) bool
	}{
		{"ctrl+v toggles verbose", tea.KeyMsg{Type: tea.KeyCtrlV}, func(m Model) bool { return m.verbose }},
		{"tab toggles image skipping", tea.KeyMsg{Type: tea.KeyTab}, func(m Model) bool { return m.skipImages }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(&config.Settings{SpreadsheetID: "abc"})

			next, cmd := m.Update(tt.key)
			m = next.(Model)

			if !tt.check(m) {
				t.Error("option was not toggled")
			}
			// A paste from the text input would come back as a command.
			if cmd != nil {
				t.Error("key was also handed to the text input")
			}
			if got := m.textInput.Value(); got != "abc" {
				t.Errorf("input = %q, want %q", got, "abc")
			}
		})
	}
}
