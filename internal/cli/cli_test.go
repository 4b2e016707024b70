package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCapture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "abc-defg-hij.jsonl")
	content := `{"ts":"2025-04-01T10:00:00Z","speakerKey":"p1","speakerName":"Ann","text":"Hello"}
{"ts":"2025-04-01T10:00:00.5Z","speakerKey":"p1","speakerName":"Ann","text":"Hello there"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplayCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeCapture(t, dir)

	out, err := runCmd(t, "replay", path)
	if err != nil {
		t.Fatalf("replay error = %v", err)
	}
	want := "[2025-04-01T10:00:00.000Z] [2025-04-01T10:00:00.500Z] Ann : Hello there\n"
	if out != want {
		t.Errorf("replay output = %q, want %q", out, want)
	}
}

func TestReplayCommandJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeCapture(t, dir)

	out, err := runCmd(t, "replay", "--json", path)
	if err != nil {
		t.Fatalf("replay error = %v", err)
	}
	if !strings.Contains(out, `"speaker": "Ann"`) || !strings.Contains(out, `"text": "Hello there"`) {
		t.Errorf("replay --json output = %s", out)
	}
}

func TestProcessCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeCapture(t, dir)
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "paths:\n  inbox: " + filepath.Join(dir, "inbox") +
		"\n  output: " + filepath.Join(dir, "out") +
		"\n  archived: " + filepath.Join(dir, "archived") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCmd(t, "--config", cfgPath, "process", path); err != nil {
		t.Fatalf("process error = %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "out", "google-meet-transcript-abc-defg-hij-*.txt"))
	if len(matches) != 1 {
		t.Errorf("transcripts written = %v, want 1", matches)
	}
}

func TestSummarizeRequiresKeys(t *testing.T) {
	t.Setenv("CAPTIONFLOW_GEMINI_API_KEYS", "")
	dir := t.TempDir()
	_, err := runCmd(t, "summarize", dir)
	if err == nil || !strings.Contains(err.Error(), "no Gemini API keys") {
		t.Errorf("summarize error = %v", err)
	}
}

func TestReplayRequiresArgument(t *testing.T) {
	if _, err := runCmd(t, "replay"); err == nil {
		t.Error("replay without a file should fail")
	}
}

func TestExplicitMissingConfigFails(t *testing.T) {
	dir := t.TempDir()
	path := writeCapture(t, dir)

	_, err := runCmd(t, "--config", filepath.Join(dir, "typo.yaml"), "replay", path)
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Errorf("replay with a missing --config error = %v, want a loading config error", err)
	}
}

func TestJSONLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeCapture(t, dir)
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "paths:\n  output: " + filepath.Join(dir, "out") + "\nlogging:\n  level: debug\n  format: json\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config", cfgPath, "replay", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("replay error = %v", err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(errOut.String()), "\n")
	if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"level":"DEBUG"`) {
		t.Errorf("first log line = %q, want a JSON debug entry", line)
	}
}
