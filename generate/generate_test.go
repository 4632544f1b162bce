package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/karagen/karagen/karabiner"
	"github.com/karagen/karagen/options"
)

func newTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	t.Cleanup(func() { _ = logger.Sync() })
	return logger.Sugar()
}

func newService(t *testing.T, cfg *options.Config) (*Service, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	s, err := New(cfg, WithStdout(&stdout), WithStderr(new(bytes.Buffer)), WithLogger(newTestLogger(t)))
	if err != nil {
		t.Fatal(err)
	}
	return s, &stdout
}

func TestBuild(t *testing.T) {
	cfg := options.Default()
	cfg.ShowInMenuBar = true
	s, _ := newService(t, cfg)
	doc, report, err := s.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Findings) != 0 {
		t.Errorf("findings: %v", report.Findings)
	}
	if !doc.Global.ShowInMenuBar {
		t.Error("show_in_menu_bar not carried over")
	}
	if len(doc.Profiles) != 1 || doc.Profiles[0].Name != "Default" {
		t.Fatalf("profiles = %+v", doc.Profiles)
	}
	cm := doc.Profiles[0].ComplexModifications
	want := &karabiner.Parameters{SimultaneousThresholdMilliseconds: 50}
	if diff := cmp.Diff(want, cm.Parameters); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
	if len(cm.Rules) != 9 {
		t.Errorf("got %d rules, want 9", len(cm.Rules))
	}
}

func TestNew(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) succeeded")
	}
}

func TestRunDryRun(t *testing.T) {
	for _, tt := range []struct {
		name   string
		output string
		dry    bool
	}{
		{"dry run flag", filepath.Join(t.TempDir(), "never.json"), true},
		{"dash output", "-", false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := options.Default()
			cfg.Output = tt.output
			s, stdout := newService(t, cfg)
			if err := s.Run(context.Background(), options.RunOptions{Config: cfg, DryRun: tt.dry}); err != nil {
				t.Fatal(err)
			}
			var doc karabiner.Config
			if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
				t.Fatalf("stdout is not a karabiner document: %v", err)
			}
			if got := len(doc.Profiles[0].ComplexModifications.Rules); got != 9 {
				t.Errorf("got %d rules, want 9", got)
			}
			if tt.dry {
				if _, err := os.Stat(tt.output); !errors.Is(err, os.ErrNotExist) {
					t.Errorf("dry run touched %s: %v", tt.output, err)
				}
			}
		})
	}
}

func TestRunWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "karabiner")
	cfg := options.Default()
	cfg.Output = filepath.Join(dir, "karabiner.json")
	s, stdout := newService(t, cfg)
	if err := s.Run(context.Background(), options.RunOptions{Config: cfg}); err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}

	got, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	doc, _, err := s.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want, err := karabiner.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

const existing = `{
  "global": {"check_for_updates_on_startup": true},
  "profiles": [
    {"name": "Default", "selected": true, "complex_modifications": {"rules": []}},
    {"name": "Other", "complex_modifications": {"rules": [{"description": "keep me", "manipulators": []}]}}
  ]
}`

func TestRunMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karabiner.json")
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := options.Default()
	cfg.Output = path
	cfg.Merge = true
	s, _ := newService(t, cfg)
	if err := s.Run(context.Background(), options.RunOptions{Config: cfg}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Global   map[string]any `json:"global"`
		Profiles []struct {
			Name                 string `json:"name"`
			Selected             bool   `json:"selected"`
			ComplexModifications struct {
				Rules []karabiner.Rule `json:"rules"`
			} `json:"complex_modifications"`
		} `json:"profiles"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Global["check_for_updates_on_startup"] != true {
		t.Errorf("global settings lost: %v", doc.Global)
	}
	if len(doc.Profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(doc.Profiles))
	}
	def, other := doc.Profiles[0], doc.Profiles[1]
	if !def.Selected || len(def.ComplexModifications.Rules) != 9 {
		t.Errorf("Default profile = selected %v, %d rules", def.Selected, len(def.ComplexModifications.Rules))
	}
	if len(other.ComplexModifications.Rules) != 1 || other.ComplexModifications.Rules[0].Description != "keep me" {
		t.Errorf("Other profile changed: %+v", other)
	}
}

func TestRunMergeErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "karabiner.json")
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := options.Default()
	cfg.Output = path
	cfg.Merge = true
	cfg.Profile = "Work"
	s, _ := newService(t, cfg)
	if err := s.Run(context.Background(), options.RunOptions{Config: cfg}); !errors.Is(err, karabiner.ErrProfileNotFound) {
		t.Errorf("missing profile: err = %v", err)
	}

	cfg = options.Default()
	cfg.Output = filepath.Join(dir, "absent.json")
	cfg.Merge = true
	s, _ = newService(t, cfg)
	if err := s.Run(context.Background(), options.RunOptions{Config: cfg}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestRunCheck(t *testing.T) {
	cfg := options.Default()
	s, stdout := newService(t, cfg)
	if err := s.Run(context.Background(), options.RunOptions{Config: cfg, Check: true}); err != nil {
		t.Fatal(err)
	}
	if got, want := stdout.String(), "9 rules, 0 errors, 0 warnings\n"; got != want {
		t.Errorf("check output = %q, want %q", got, want)
	}
}

func TestRunCheatsheet(t *testing.T) {
	cfg := options.Default()
	s, stdout := newService(t, cfg)
	if err := s.Run(context.Background(), options.RunOptions{Config: cfg, Cheatsheet: true}); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	for _, want := range []string{"Leader L+;", "VS Code", "Notifications"} {
		if !strings.Contains(out, want) {
			t.Errorf("cheatsheet lacks %q", want)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := options.Default()
	s, _ := newService(t, cfg)
	if err := s.Run(ctx, options.RunOptions{Config: cfg, DryRun: true}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunBadConfig(t *testing.T) {
	cfg := options.Default()
	cfg.HyperLayers = true
	s, _ := newService(t, cfg)
	if err := s.Run(context.Background(), options.RunOptions{Config: cfg, DryRun: true}); err == nil {
		t.Error("hyper layers without hyper caps lock succeeded")
	}
}

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	tests := map[string]string{
		"":                                  "",
		"karabiner.json":                    "karabiner.json",
		"~":                                 home,
		"~/.config/karabiner/karabiner.json": filepath.Join(home, ".config/karabiner/karabiner.json"),
		"~bob/x":                            "~bob/x",
	}
	for in, want := range tests {
		got, err := expandTilde(in)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("expandTilde(%q) = %q, want %q", in, got, want)
		}
	}
}
