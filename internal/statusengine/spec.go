package statusengine

import (
	"encoding/json"
	"fmt"
	"os"

	"hostctl/internal/model"
)

// LoadSpec reads and validates a status spec file, applying the defaults
// the wire format allows to omit.
//
// Grounded on original_source/status/spec_loader.cpp's LoadStatusSpec:
// missing file -> SpecMissing, appId mismatch or missing appTitle or
// empty operations -> SpecInvalid, running/pid field defaults, host
// field defaults mirroring the non-host field when absent.
func LoadSpec(path, expectedAppID string) (*model.StatusSpec, *Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, specMissing(fmt.Sprintf("status spec not found: %s", path))
	}

	var spec model.StatusSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, specInvalid(fmt.Sprintf("status spec is not valid JSON: %v", err))
	}

	if spec.AppID != expectedAppID {
		return nil, specInvalid(fmt.Sprintf("status spec appId %q does not match requested %q", spec.AppID, expectedAppID))
	}
	if spec.AppTitle == "" {
		return nil, specInvalid("status spec is missing appTitle")
	}
	if spec.RunningField == "" {
		spec.RunningField = "running"
	}
	if spec.PidField == "" {
		spec.PidField = "pid"
	}
	if spec.HostRunningField == "" {
		spec.HostRunningField = spec.RunningField
	}
	if spec.HostPidField == "" {
		spec.HostPidField = spec.PidField
	}
	if len(spec.Operations) == 0 {
		return nil, specInvalid("status spec has no operations")
	}

	return &spec, nil
}
