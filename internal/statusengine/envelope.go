package statusengine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hostctl/internal/model"
	"hostctl/internal/pathtmpl"
	"hostctl/internal/probe"
)

// ExecuteStatusSpec evaluates every operation in spec, in declaration
// order, and assembles the normalized status payload (§3). Field names
// beginning with "_" are scratch and excluded from the payload, but
// remain visible to later operations via the values side-table.
//
// Grounded on original_source/status/engine.cpp's ExecuteStatusSpec.
func ExecuteStatusSpec(spec *model.StatusSpec, repoRoot string, prober probe.Prober) (map[string]interface{}, *Error) {
	ctx := &evalContext{RepoRoot: repoRoot, Values: map[string]interface{}{}, Probe: prober}
	payload := map[string]interface{}{}

	for _, line := range spec.Operations {
		op, perr := parseOperation(line)
		if perr != nil {
			return nil, perr
		}
		val, everr := evaluate(op, ctx)
		if everr != nil {
			return nil, everr
		}
		ctx.Values[op.Field] = val
		if !strings.HasPrefix(op.Field, "_") {
			payload[op.Field] = val
		}
	}

	running := coerceBool(ctx.get(spec.RunningField), false)
	pid := coerceInt(ctx.get(spec.PidField))
	hostRunning := coerceBool(ctx.get(spec.HostRunningField), false)
	hostPid := coerceInt(ctx.get(spec.HostPidField))

	payload["interfaceName"] = "generic-process-interface"
	payload["interfaceVersion"] = float64(1)
	payload["appId"] = spec.AppID
	payload["appTitle"] = spec.AppTitle
	payload["running"] = running
	payload["pid"] = intOrNil(pid)
	payload["hostRunning"] = hostRunning
	payload["hostPid"] = intOrNil(hostPid)
	payload["bootId"] = bootID(spec.AppID, running, pid)
	payload["error"] = ""

	return payload, nil
}

func intOrNil(n *int) interface{} {
	if n == nil {
		return nil
	}
	return float64(*n)
}

func bootID(appID string, running bool, pid *int) string {
	if !running || pid == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", appID, *pid)
}

// Collect loads the spec, evaluates it, and writes the snapshot envelope
// atomically. It is the single entry point the Status Engine component
// exposes to the Request Dispatcher.
func Collect(repoRoot, specPathTmpl, snapshotPathTmpl, appID string, prober probe.Prober) (map[string]interface{}, *Error) {
	specPath := pathtmpl.Render(specPathTmpl, repoRoot, appID, "")
	spec, err := LoadSpec(specPath, appID)
	if err != nil {
		return nil, err
	}

	payload, err := ExecuteStatusSpec(spec, repoRoot, prober)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	envelope := model.StatusSnapshotEnvelope{
		AppID:              appID,
		GeneratedAt:        now.Format("2006-01-02T15:04:05Z"),
		GeneratedAtEpochMs: now.UnixMilli(),
		Payload:            payload,
	}
	data, merr := json.Marshal(envelope)
	if merr != nil {
		return nil, collectFailed(fmt.Sprintf("failed to serialize snapshot: %v", merr))
	}

	snapshotPath := pathtmpl.Render(snapshotPathTmpl, repoRoot, appID, "")
	if werr := probe.AtomicReplace(snapshotPath, data, 0o644); werr != nil {
		return nil, snapshotFailed(fmt.Sprintf("failed to write snapshot: %v", werr))
	}

	return payload, nil
}
