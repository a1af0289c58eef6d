package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/VedoCalc/internal/export"
	"github.com/piwi3910/VedoCalc/internal/model"
	"github.com/piwi3910/VedoCalc/internal/project"
)

// newTestCmd returns a command whose output is captured in the returned buffer.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	return cmd, &buf
}

func resetProcessFlags(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	appConfig = model.DefaultAppConfig()
	outDir, owner, withPDF, withLabels = "", "", false, false
	t.Cleanup(func() {
		outDir, owner, withPDF, withLabels = "", "", false, false
	})
}

func TestProcessCmd(t *testing.T) {
	resetProcessFlags(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "order.txt")
	content := "tray_500x300x50_1 tray_500x300x50_1 tray_500x250x50_1 panel_600x1200x40_2"
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	outDir = filepath.Join(dir, "storage")
	owner = "tester"
	withPDF = true
	withLabels = true

	cmd, out := newTestCmd()
	if err := runProcess(cmd, []string{input}); err != nil {
		t.Fatalf("runProcess failed: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	var xlsx, pdfs int
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".xlsx":
			xlsx++
			if !strings.Contains(e.Name(), "_AutoCalc_order_") {
				t.Errorf("unexpected output name %q", e.Name())
			}
		case ".pdf":
			pdfs++
		}
	}
	if xlsx != 1 || pdfs != 2 {
		t.Errorf("expected 1 spreadsheet and 2 PDFs, got %d and %d", xlsx, pdfs)
	}

	text := out.String()
	if !strings.Contains(text, "2 cutoffs, 3 items, 4 pieces") {
		t.Errorf("summary missing from output:\n%s", text)
	}
}

func TestProcessCmd_InvalidInputWritesNothing(t *testing.T) {
	resetProcessFlags(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "order.txt")
	if err := os.WriteFile(input, []byte("tray_500x300x50_1 tray_500x300x50_4"), 0644); err != nil {
		t.Fatal(err)
	}
	outDir = filepath.Join(dir, "storage")

	cmd, _ := newTestCmd()
	err := runProcess(cmd, []string{input})
	if !errors.Is(err, model.ErrUnknownFormType) {
		t.Fatalf("expected ErrUnknownFormType, got %v", err)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("storage directory should not have been created")
	}
}

func TestProcessCmd_FailedLabelsDiscardOutput(t *testing.T) {
	resetProcessFlags(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "order.txt")
	if err := os.WriteFile(input, []byte("tray_500x300x50_1 tray_500x250x50_1"), 0644); err != nil {
		t.Fatal(err)
	}
	outDir = filepath.Join(dir, "storage")
	withPDF = true
	withLabels = true

	exportLabels = func(path string, report model.Report) error {
		if err := os.WriteFile(path, []byte("partial"), 0644); err != nil {
			return err
		}
		return errors.New("printer template missing")
	}
	defer func() { exportLabels = export.ExportLabels }()

	cmd, out := newTestCmd()
	err := runProcess(cmd, []string{input})
	if err == nil || !strings.Contains(err.Error(), "printer template missing") {
		t.Fatalf("expected labels error, got %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected no files left behind, found %v", names)
	}
	if strings.Contains(out.String(), "Wrote") {
		t.Errorf("nothing should be reported as written:\n%s", out.String())
	}
}

func TestParseCmd(t *testing.T) {
	cmd, out := newTestCmd()
	if err := runParse(cmd, []string{"tray_500x300x50_1", "лоток_120x80x20_3"}); err != nil {
		t.Fatalf("runParse failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "tray_500x300") || !strings.Contains(text, "лоток_120x80") {
		t.Errorf("unexpected output:\n%s", text)
	}
}

func TestParseCmd_Malformed(t *testing.T) {
	cmd, _ := newTestCmd()
	err := runParse(cmd, []string{"panel-100x200x30-1"})
	if !errors.Is(err, model.ErrMalformedIdentifier) {
		t.Errorf("expected ErrMalformedIdentifier, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	logger = zap.NewNop()
	configPath = filepath.Join(t.TempDir(), "cfg", "config.json")
	forceInit = false
	defer func() { configPath = project.DefaultConfigPath() }()

	cmd, _ := newTestCmd()
	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("runConfigInit failed: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// A second init without --force refuses to overwrite
	if err := runConfigInit(cmd, nil); err == nil {
		t.Error("expected error when config already exists")
	}

	appConfig = model.DefaultAppConfig()
	appConfig.FormCapacity1 = 42
	cmd, out := newTestCmd()
	if err := runConfigShow(cmd, nil); err != nil {
		t.Fatalf("runConfigShow failed: %v", err)
	}
	if !strings.Contains(out.String(), `"form_capacity_1": 42`) {
		t.Errorf("unexpected config output:\n%s", out.String())
	}
}

func TestBuildLogger(t *testing.T) {
	if _, err := buildLogger("warn", false); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	l, err := buildLogger("info", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Error("verbose logger should enable debug level")
	}
	if _, err := buildLogger("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}
