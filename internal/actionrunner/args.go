package actionrunner

import "encoding/json"

// ParseArgs renders each params.args field to the string form the
// command template substitutes: a JSON string value is used verbatim,
// null becomes "", and everything else is re-serialized compactly.
func ParseArgs(raw map[string]json.RawMessage) map[string]string {
	out := make(map[string]string, len(raw))
	for name, v := range raw {
		out[name] = rawToArg(v)
	}
	return out
}

func rawToArg(v json.RawMessage) string {
	var decoded interface{}
	if err := json.Unmarshal(v, &decoded); err != nil {
		return string(v)
	}
	if decoded == nil {
		return ""
	}
	if s, ok := decoded.(string); ok {
		return s
	}
	compact, err := json.Marshal(decoded)
	if err != nil {
		return ""
	}
	return string(compact)
}
