package statusengine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hostctl/internal/probe"
)

// parsedOp is one decoded "field = op[:arg...]" line.
type parsedOp struct {
	Field string
	Op    string
	Args  []string
}

// parseOperation splits a textual operation line into its field, op name,
// and colon-separated arguments.
//
// "derive" is special: the op name itself is "derive:<kind>" (the colon
// is part of the op identity, not an argument separator), so the derive
// kind is folded back into Op and only the remaining tokens become Args.
func parseOperation(line string) (parsedOp, *Error) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return parsedOp{}, specInvalid(fmt.Sprintf("malformed operation line: %q", line))
	}
	field := strings.TrimSpace(line[:eq])
	rest := strings.TrimSpace(line[eq+1:])
	if field == "" || rest == "" {
		return parsedOp{}, specInvalid(fmt.Sprintf("malformed operation line: %q", line))
	}

	tokens := strings.Split(rest, ":")
	op := tokens[0]
	args := tokens[1:]
	if op == "derive" {
		if len(args) == 0 {
			return parsedOp{}, specInvalid(fmt.Sprintf("derive operation missing kind: %q", line))
		}
		op = "derive:" + args[0]
		args = args[1:]
	}
	return parsedOp{Field: field, Op: op, Args: args}, nil
}

// evalContext threads the data an operation needs to evaluate: the
// previously-computed field values, the repo root for file-based
// primitives, and the probe capability for process/port primitives.
type evalContext struct {
	RepoRoot string
	Values   map[string]interface{}
	Probe    probe.Prober
}

func (c *evalContext) get(field string) interface{} {
	v, ok := c.Values[field]
	if !ok {
		return nil
	}
	return v
}

// evaluate dispatches one operation to its primitive or derive
// implementation, mirroring original_source/status/engine.cpp's
// EvaluateOperation switch.
func evaluate(op parsedOp, ctx *evalContext) (interface{}, *Error) {
	switch op.Op {
	case "const":
		return evalConst(op.Args)
	case "const_str":
		return strings.Join(op.Args, ":"), nil
	case "file_json":
		return evalFileJSON(op.Args, ctx)
	case "file_exists":
		return evalFileExists(op.Args, ctx)
	case "process_running":
		return evalProcessRunning(op.Args, ctx)
	case "port_listening":
		return evalPortListening(op.Args, ctx)
	case "derive:copy":
		return ctx.get(argOr(op.Args, 0, "")), nil
	case "derive:bool_from_obj":
		return evalBoolFromObj(op.Args, ctx)
	case "derive:int_from_obj":
		return evalIntFromObj(op.Args, ctx), nil
	case "derive:str_from_obj":
		return evalStrFromObj(op.Args, ctx), nil
	case "derive:json_from_obj":
		return evalJSONFromObj(op.Args, ctx), nil
	case "derive:running_display":
		return evalRunningDisplay(op.Args, ctx), nil
	case "derive:str_if_bool":
		return evalStrIfBool(op.Args, ctx), nil
	case "derive:pick_int":
		return evalPickInt(op.Args, ctx), nil
	case "derive:or_bool":
		return evalOrBool(op.Args, ctx), nil
	default:
		return nil, specInvalid(fmt.Sprintf("unknown operation %q for field %q", op.Op, op.Field))
	}
}

func argOr(args []string, idx int, def string) string {
	if idx < len(args) {
		return args[idx]
	}
	return def
}

func evalConst(args []string) (interface{}, *Error) {
	literal := strings.Join(args, ":")
	var v interface{}
	if err := json.Unmarshal([]byte(literal), &v); err != nil {
		return nil, specInvalid(fmt.Sprintf("const argument is not a JSON literal: %q", literal))
	}
	return v, nil
}

func evalFileJSON(args []string, ctx *evalContext) (interface{}, *Error) {
	joined := strings.Join(args, ":")
	relPath := joined
	defaultJSON := "{}"
	if i := strings.Index(joined, ","); i >= 0 {
		relPath = joined[:i]
		defaultJSON = joined[i+1:]
	}

	def := parseDefaultJSON(defaultJSON)
	data, err := os.ReadFile(filepath.Join(ctx.RepoRoot, relPath))
	if err != nil {
		return def, nil
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return def, nil
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return v, nil
	default:
		return def, nil
	}
}

func parseDefaultJSON(s string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return map[string]interface{}{}
	}
	return v
}

func evalFileExists(args []string, ctx *evalContext) (interface{}, *Error) {
	relPath := strings.Join(args, ":")
	_, err := os.Stat(filepath.Join(ctx.RepoRoot, relPath))
	return err == nil, nil
}

func evalProcessRunning(args []string, ctx *evalContext) (interface{}, *Error) {
	name := strings.Join(args, ":")
	res := ctx.Probe.QueryProcessByName(name)
	pids := make([]interface{}, 0, len(res.Pids))
	for _, p := range res.Pids {
		pids = append(pids, float64(p))
	}
	var pid interface{}
	if res.Pid != nil {
		pid = float64(*res.Pid)
	}
	return map[string]interface{}{
		"running": res.Running,
		"pid":     pid,
		"pids":    pids,
	}, nil
}

func evalPortListening(args []string, ctx *evalContext) (interface{}, *Error) {
	if len(args) < 2 {
		return nil, specInvalid("port_listening requires host and port")
	}
	host := args[0]
	port, err := strconv.Atoi(args[1])
	if err != nil || port < 1 || port > 65535 {
		return false, nil
	}
	timeoutMs := 250
	if len(args) >= 3 {
		if t, err := strconv.Atoi(args[2]); err == nil {
			timeoutMs = t
		}
	}
	if timeoutMs < 1 {
		timeoutMs = 1
	}
	if timeoutMs > 30000 {
		timeoutMs = 30000
	}
	return ctx.Probe.CheckPortListening(host, port, time.Duration(timeoutMs)*time.Millisecond), nil
}

func objField(ctx *evalContext, args []string, idx int) (map[string]interface{}, string) {
	src := argOr(args, 0, "")
	key := argOr(args, 1, "")
	obj, _ := ctx.get(src).(map[string]interface{})
	return obj, key
}

func evalBoolFromObj(args []string, ctx *evalContext) (interface{}, *Error) {
	obj, key := objField(ctx, args, 0)
	def := false
	if len(args) >= 3 {
		def = coerceBool(args[2], false)
	}
	if obj == nil {
		return def, nil
	}
	return coerceBool(obj[key], def), nil
}

func evalIntFromObj(args []string, ctx *evalContext) interface{} {
	obj, key := objField(ctx, args, 0)
	if obj == nil {
		return nil
	}
	n := coerceInt(obj[key])
	if n == nil {
		return nil
	}
	return float64(*n)
}

func evalStrFromObj(args []string, ctx *evalContext) interface{} {
	obj, key := objField(ctx, args, 0)
	def := ""
	if len(args) >= 3 {
		def = args[2]
	}
	if obj == nil {
		return def
	}
	return coerceStr(obj[key], def)
}

func evalJSONFromObj(args []string, ctx *evalContext) interface{} {
	obj, key := objField(ctx, args, 0)
	var def interface{} = nil
	if len(args) >= 3 {
		def = parseDefaultJSON(args[2])
	}
	if obj == nil {
		if def == nil {
			return nil
		}
		return def
	}
	v, ok := obj[key]
	if !ok {
		if def == nil {
			return nil
		}
		return def
	}
	return v
}

func evalRunningDisplay(args []string, ctx *evalContext) interface{} {
	runningField := argOr(args, 0, "running")
	pidField := argOr(args, 1, "pid")
	running := coerceBool(ctx.get(runningField), false)
	pid := coerceInt(ctx.get(pidField))
	if running && pid != nil {
		return fmt.Sprintf("True (PID %d)", *pid)
	}
	if running {
		return "True"
	}
	return "False"
}

func evalStrIfBool(args []string, ctx *evalContext) interface{} {
	boolField := argOr(args, 0, "")
	trueText := argOr(args, 1, "")
	falseText := argOr(args, 2, "")
	if coerceBool(ctx.get(boolField), false) {
		return trueText
	}
	return falseText
}

func evalPickInt(args []string, ctx *evalContext) interface{} {
	primary := argOr(args, 0, "")
	fallback := argOr(args, 1, "")
	if n := coerceInt(ctx.get(primary)); n != nil {
		return float64(*n)
	}
	if n := coerceInt(ctx.get(fallback)); n != nil {
		return float64(*n)
	}
	return nil
}

func evalOrBool(args []string, ctx *evalContext) interface{} {
	a := argOr(args, 0, "")
	b := argOr(args, 1, "")
	return coerceBool(ctx.get(a), false) || coerceBool(ctx.get(b), false)
}
