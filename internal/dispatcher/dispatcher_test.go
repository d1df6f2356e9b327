package dispatcher

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"hostctl/internal/actionrunner"
	"hostctl/internal/model"
	"hostctl/internal/probe"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, string) {
	repoRoot := t.TempDir()
	profile := &model.HostProfile{
		AllowedApps: []string{"bridge"},
		PathTemplates: model.PathTemplates{
			StatusSpec:     filepath.Join(repoRoot, "{appId}", "status.json"),
			StatusSnapshot: filepath.Join(repoRoot, "{appId}", "snapshot.json"),
			ActionCatalog:  filepath.Join(repoRoot, "{appId}", "actions.json"),
			ActionJob:      filepath.Join(repoRoot, "{appId}", "jobs", "{jobId}.json"),
		},
	}
	runner := actionrunner.NewRunner(repoRoot, profile.PathTemplates.ActionCatalog, profile.PathTemplates.ActionJob, probe.NewFake())
	d := New(profile, repoRoot, runner, probe.NewFake(), nil)
	return d, repoRoot
}

func writeFile(t *testing.T, path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func decodeEnvelope(t *testing.T, raw []byte) map[string]interface{} {
	var v map[string]interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("response not valid JSON: %v (%s)", err, raw)
	}
	return v
}

func TestScenarioPing(t *testing.T) {
	d, _ := newTestDispatcher(t)
	resp := decodeEnvelope(t, d.Dispatch([]byte(`{"id":"r1","method":"ping"}`)))

	if resp["id"] != "r1" || resp["ok"] != true {
		t.Fatalf("unexpected envelope: %v", resp)
	}
	response := resp["response"].(map[string]interface{})
	if response["pong"] != true || response["interfaceName"] != "generic-process-interface" {
		t.Fatalf("unexpected ping payload: %v", response)
	}
}

func TestScenarioUnsupportedApp(t *testing.T) {
	d, _ := newTestDispatcher(t)
	resp := decodeEnvelope(t, d.Dispatch([]byte(`{"method":"status.get","params":{"appId":"other"}}`)))

	if resp["ok"] != false {
		t.Fatalf("expected ok:false, got %v", resp)
	}
	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != "E_UNSUPPORTED_APP" {
		t.Fatalf("unexpected error code: %v", errObj)
	}
	details := errObj["details"].(map[string]interface{})
	if details["appId"] != "other" {
		t.Fatalf("unexpected details: %v", details)
	}
}

func TestUnknownMethodReturnsUnsupportedMethod(t *testing.T) {
	d, _ := newTestDispatcher(t)
	resp := decodeEnvelope(t, d.Dispatch([]byte(`{"method":"does.not.exist"}`)))

	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != "E_UNSUPPORTED_METHOD" {
		t.Fatalf("unexpected error code: %v", errObj)
	}
}

func TestMissingRequiredParamReturnsBadArg(t *testing.T) {
	d, _ := newTestDispatcher(t)
	resp := decodeEnvelope(t, d.Dispatch([]byte(`{"method":"status.get"}`)))

	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != "E_BAD_ARG" {
		t.Fatalf("unexpected error code: %v", errObj)
	}
	details := errObj["details"].(map[string]interface{})
	if details["param"] != "appId" {
		t.Fatalf("unexpected details: %v", details)
	}
}

func TestStatusGetRoundTrip(t *testing.T) {
	d, repoRoot := newTestDispatcher(t)
	writeFile(t, filepath.Join(repoRoot, "bridge", "status.json"),
		`{"appId":"bridge","appTitle":"Bridge","operations":["a = const:1"]}`)

	resp := decodeEnvelope(t, d.Dispatch([]byte(`{"method":"status.get","params":{"appId":"bridge"}}`)))
	if resp["ok"] != true {
		t.Fatalf("expected ok, got %v", resp)
	}
	response := resp["response"].(map[string]interface{})
	if response["appId"] != "bridge" {
		t.Fatalf("unexpected status payload: %v", response)
	}
}

func TestActionInvokeReturnsQueuedRegardlessOfTerminalState(t *testing.T) {
	d, repoRoot := newTestDispatcher(t)
	writeFile(t, filepath.Join(repoRoot, "bridge", "actions.json"),
		`{"actions":[{"name":"greet","cmd":["echo","{msg}"]}]}`)

	resp := decodeEnvelope(t, d.Dispatch([]byte(`{"method":"action.invoke","params":{"appId":"bridge","actionName":"greet","args":{}}}`)))
	if resp["ok"] != true {
		t.Fatalf("expected ok, got %v", resp)
	}
	response := resp["response"].(map[string]interface{})
	if response["state"] != "queued" {
		t.Fatalf("expected queued, got %v", response)
	}

	jobID := response["jobId"].(string)
	jobResp := decodeEnvelope(t, d.Dispatch([]byte(
		`{"method":"action.job.get","params":{"appId":"bridge","jobId":"`+jobID+`"}}`)))
	jobPayload := jobResp["response"].(map[string]interface{})
	if jobPayload["state"] != "failed" {
		t.Fatalf("expected the job record to reflect failed, got %v", jobPayload)
	}
}

func TestActionJobGetUnknownJobReturnsNotFound(t *testing.T) {
	d, repoRoot := newTestDispatcher(t)
	writeFile(t, filepath.Join(repoRoot, "bridge", "actions.json"), `{"actions":[{"name":"a","cmd":["echo","hi"]}]}`)

	resp := decodeEnvelope(t, d.Dispatch([]byte(`{"method":"action.job.get","params":{"appId":"bridge","jobId":"job-does-not-exist"}}`)))
	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != "E_NOT_FOUND" {
		t.Fatalf("unexpected error code: %v", errObj)
	}
}

func TestMalformedRequestReturnsBadArg(t *testing.T) {
	d, _ := newTestDispatcher(t)
	resp := decodeEnvelope(t, d.Dispatch([]byte(`not json`)))
	errObj := resp["error"].(map[string]interface{})
	if errObj["code"] != "E_BAD_ARG" {
		t.Fatalf("unexpected error code: %v", errObj)
	}
}
