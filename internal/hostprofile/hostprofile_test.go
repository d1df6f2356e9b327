package hostprofile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "host.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const validProfile = `{
  "allowedApps": ["bridge"],
  "paths": {
    "statusSpec": "{repoRoot}/{appId}/status.json",
    "statusSnapshot": "{repoRoot}/{appId}/snapshot.json",
    "actionCatalog": "{repoRoot}/{appId}/actions.json",
    "actionJob": "{repoRoot}/{appId}/jobs/{jobId}.json"
  },
  "ipc": { "backend": "socket", "endpoint": "/tmp/hostctl.sock" }
}`

func TestLoadValidProfile(t *testing.T) {
	path := writeProfile(t, validProfile)
	profile, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !profile.IsAppAllowed("bridge") {
		t.Fatalf("expected bridge to be allowed: %+v", profile)
	}
	if profile.IPC.Backend != "socket" || profile.IPC.Endpoint != "/tmp/hostctl.sock" {
		t.Fatalf("unexpected ipc config: %+v", profile.IPC)
	}
}

func TestLoadRejectsEmptyAllowedApps(t *testing.T) {
	path := writeProfile(t, `{
		"allowedApps": [],
		"paths": {"statusSpec":"{repoRoot}/{appId}/s.json","statusSnapshot":"{repoRoot}/{appId}/n.json","actionCatalog":"{repoRoot}/{appId}/a.json","actionJob":"{repoRoot}/{appId}/{jobId}.json"},
		"ipc": {"backend":"socket","endpoint":"x"}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for empty allowedApps")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeProfile(t, `{
		"allowedApps": ["bridge"],
		"paths": {"statusSpec":"{repoRoot}/{appId}/s.json","statusSnapshot":"{repoRoot}/{appId}/n.json","actionCatalog":"{repoRoot}/{appId}/a.json","actionJob":"{repoRoot}/{appId}/{jobId}.json"},
		"ipc": {"backend":"carrier-pigeon","endpoint":"x"}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadRejectsActionJobMissingJobIDToken(t *testing.T) {
	path := writeProfile(t, `{
		"allowedApps": ["bridge"],
		"paths": {"statusSpec":"{repoRoot}/{appId}/s.json","statusSnapshot":"{repoRoot}/{appId}/n.json","actionCatalog":"{repoRoot}/{appId}/a.json","actionJob":"{repoRoot}/{appId}/j.json"},
		"ipc": {"backend":"http","endpoint":":8080"}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing jobId token")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
