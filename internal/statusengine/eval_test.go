package statusengine

import (
	"testing"
	"time"

	"hostctl/internal/model"
	"hostctl/internal/probe"
)

func specWithOps(ops ...string) *model.StatusSpec {
	return &model.StatusSpec{
		AppID:            "bridge",
		AppTitle:         "Bridge",
		RunningField:     "running",
		PidField:         "pid",
		HostRunningField: "running",
		HostPidField:     "pid",
		Operations:       ops,
	}
}

func TestScenarioStatusPayloadWithRunningProcess(t *testing.T) {
	fake := probe.NewFake()
	pid := 4242
	fake.Processes["worker.exe"] = probe.ProcessResult{Running: true, Pid: &pid, Pids: []int{4242}}

	spec := specWithOps(
		"host = process_running:worker.exe",
		"running = derive:bool_from_obj:host:running",
		"pid = derive:int_from_obj:host:pid",
	)

	payload, err := ExecuteStatusSpec(spec, "/repo", fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["running"] != true {
		t.Fatalf("running = %v", payload["running"])
	}
	if payload["pid"] != float64(4242) {
		t.Fatalf("pid = %v", payload["pid"])
	}
	if payload["bootId"] != "bridge:4242" {
		t.Fatalf("bootId = %v", payload["bootId"])
	}
}

func TestUnderscoreFieldsExcludedFromPayload(t *testing.T) {
	fake := probe.NewFake()
	spec := specWithOps(
		"_scratch = const_str:hidden",
		"running = const:false",
	)
	payload, err := ExecuteStatusSpec(spec, "/repo", fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := payload["_scratch"]; ok {
		t.Fatal("scratch field leaked into payload")
	}
}

func TestBootIDEmptyWhenNotRunning(t *testing.T) {
	fake := probe.NewFake()
	spec := specWithOps("running = const:false")
	payload, err := ExecuteStatusSpec(spec, "/repo", fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["bootId"] != "" {
		t.Fatalf("bootId = %v, want empty", payload["bootId"])
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	fake := probe.NewFake()
	pid := 99
	fake.Processes["svc"] = probe.ProcessResult{Running: true, Pid: &pid, Pids: []int{99}}
	spec := specWithOps(
		"host = process_running:svc",
		"running = derive:bool_from_obj:host:running",
		"pid = derive:int_from_obj:host:pid",
	)

	p1, err1 := ExecuteStatusSpec(spec, "/repo", fake)
	p2, err2 := ExecuteStatusSpec(spec, "/repo", fake)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if p1["bootId"] != p2["bootId"] || p1["pid"] != p2["pid"] {
		t.Fatalf("non-deterministic payloads: %v vs %v", p1, p2)
	}
}

func TestConstRejectsNonLiteral(t *testing.T) {
	fake := probe.NewFake()
	spec := specWithOps("x = const:not valid json")
	_, err := ExecuteStatusSpec(spec, "/repo", fake)
	if err == nil || err.Kind != ErrSpecInvalid {
		t.Fatalf("expected SpecInvalid, got %v", err)
	}
}

func TestPickIntPrefersFirstCoercible(t *testing.T) {
	fake := probe.NewFake()
	spec := specWithOps(
		"a = const_str:not-an-int",
		"b = const:7",
		"picked = derive:pick_int:a:b",
	)
	payload, err := ExecuteStatusSpec(spec, "/repo", fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["picked"] != float64(7) {
		t.Fatalf("picked = %v, want 7", payload["picked"])
	}
}

type timeoutRecorder struct{ got time.Duration }

func (r *timeoutRecorder) QueryProcessByName(string) probe.ProcessResult { return probe.ProcessResult{} }

func (r *timeoutRecorder) CheckPortListening(_ string, _ int, timeout time.Duration) bool {
	r.got = timeout
	return false
}

func TestPortListeningTimeoutClamp(t *testing.T) {
	rec := &timeoutRecorder{}
	if _, ok := evalPortListening([]string{"127.0.0.1", "80", "999999"}, &evalContext{Probe: rec}); ok != nil {
		t.Fatalf("unexpected error: %v", ok)
	}
	if rec.got != 30*time.Second {
		t.Fatalf("timeout = %v, want clamped to 30s", rec.got)
	}
}
