package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"randoexport.ai/internal/export/pipeline"
	"randoexport.ai/internal/persistence/exportlog"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--configs", "../../configs", "--export-config", "../../configs/export.yaml"}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("exporter %v: %v", args, err)
	}
	return out.String()
}

func TestCheckConfig(t *testing.T) {
	if got := run(t, "check-config"); got != "prime2: ok\n" {
		t.Fatalf("output=%q", got)
	}
}

func TestExportThenCredits(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "index.db")
	logs := filepath.Join(dir, "logs")

	out := run(t, "export", "--session", "../../configs/session.json", "--player", "0", "--seed", "7",
		"--index", index, "--log-dir", logs)

	var e pipeline.PlayerExport
	if err := json.Unmarshal([]byte(out), &e); err != nil {
		t.Fatalf("decode export: %v\n%s", err, out)
	}
	if e.PlayerName != "Alice" || len(e.Pickups) != 6 {
		t.Fatalf("export=%+v", e)
	}

	files, err := exportlog.ListFiles(logs)
	if err != nil || len(files) != 1 {
		t.Fatalf("log files=%v err=%v", files, err)
	}

	credits := run(t, "credits", "--index", index, "--session-id", e.SessionID, "--player", "0")
	if !strings.HasPrefix(credits, "Missile Launcher\n  Alice's Temple Grounds - Landing Site\n") {
		t.Fatalf("credits=%q", credits)
	}
	if !strings.Contains(credits, "Dark Beam\n  Nowhere\n") {
		t.Fatalf("credits=%q", credits)
	}
}
