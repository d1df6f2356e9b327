package actionrunner

import (
	"encoding/json"
	"strings"

	"hostctl/internal/model"
)

// ConfigGet synthesizes config.get by invoking the well-known action
// config_show with no arguments. Any failure of that action — missing
// from the catalog, launch failure, non-object payload — is absorbed
// into a fallback object rather than propagated, so the RPC itself
// never fails.
func (r *Runner) ConfigGet(appID string) (json.RawMessage, *ActionError) {
	job, err := r.Invoke(appID, "config_show", nil)
	if err == nil && job != nil && job.State == model.JobSucceeded && isJSONObject(job.Result) {
		return job.Result, nil
	}
	return fallbackConfig(r.RepoRoot, failureReason(job, err)), nil
}

// ConfigSet synthesizes config.set by invoking config_set_key with the
// given key/value pair.
func (r *Runner) ConfigSet(appID, key string, value json.RawMessage) (json.RawMessage, *ActionError) {
	keyJSON, _ := json.Marshal(key)
	args := map[string]json.RawMessage{
		"key":   keyJSON,
		"value": value,
	}
	job, err := r.Invoke(appID, "config_set_key", args)
	if err == nil && job != nil && job.State == model.JobSucceeded && isJSONObject(job.Result) && !isEmptyJSONObject(job.Result) {
		return job.Result, nil
	}

	ok := err == nil && job != nil && job.State == model.JobSucceeded
	out := make([]string, 0)
	if job != nil {
		for _, line := range strings.Split(job.Stdout, "\n") {
			if strings.TrimSpace(line) != "" {
				out = append(out, line)
			}
		}
	}
	payload := map[string]interface{}{
		"ok":     ok,
		"key":    key,
		"value":  rawToInterface(value),
		"output": out,
	}
	encoded, merr := json.Marshal(payload)
	if merr != nil {
		return nil, &ActionError{Code: ErrActionFailed, Message: merr.Error()}
	}
	return encoded, nil
}

// ActionList returns the discoverable action catalog, stripped to the
// fields clients are allowed to see.
func (r *Runner) ActionList(appID string) (json.RawMessage, *ActionError) {
	catalog, err := r.loadCatalog(appID)
	if err != nil {
		return nil, err
	}
	type entry struct {
		Name  string          `json:"name"`
		Label string          `json:"label"`
		Args  json.RawMessage `json:"args"`
	}
	actions := make([]entry, 0, len(catalog.Actions))
	for _, a := range catalog.Actions {
		actions = append(actions, entry{Name: a.Name, Label: a.Label, Args: a.ArgsSchema()})
	}
	encoded, merr := json.Marshal(map[string]interface{}{"actions": actions})
	if merr != nil {
		return nil, &ActionError{Code: ErrActionFailed, Message: merr.Error()}
	}
	return encoded, nil
}

func fallbackConfig(repoRoot, reason string) json.RawMessage {
	payload := map[string]interface{}{
		"repoRoot":   repoRoot,
		"valid":      false,
		"errors":     []string{reason},
		"entries":    map[string]interface{}{},
		"paths":      map[string]interface{}{},
		"configTree": map[string]interface{}{},
	}
	encoded, _ := json.Marshal(payload)
	return encoded
}

func failureReason(job *model.ActionJobRecord, err *ActionError) string {
	if err != nil {
		return err.Message
	}
	if job != nil && job.Error != nil {
		return job.Error.Message
	}
	return "config_show did not produce a usable payload"
}

func isJSONObject(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v interface{}
	if json.Unmarshal(raw, &v) != nil {
		return false
	}
	_, ok := v.(map[string]interface{})
	return ok
}

func isEmptyJSONObject(raw json.RawMessage) bool {
	var v map[string]interface{}
	if json.Unmarshal(raw, &v) != nil {
		return true
	}
	return len(v) == 0
}

func rawToInterface(raw json.RawMessage) interface{} {
	var v interface{}
	_ = json.Unmarshal(raw, &v)
	return v
}
