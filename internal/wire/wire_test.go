package wire

import (
	"encoding/json"
	"testing"
)

func TestParseRequestPing(t *testing.T) {
	req, err := ParseRequest([]byte(`{"id":"r1","method":"ping"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Method != "ping" {
		t.Fatalf("method = %q", req.Method)
	}
	if req.ID == nil || *req.ID != "r1" {
		t.Fatalf("id not echoed: %+v", req.ID)
	}
	if req.Params.Args == nil || len(req.Params.Args) != 0 {
		t.Fatalf("args default should be empty object, got %v", req.Params.Args)
	}
}

func TestParseRequestMissingMethod(t *testing.T) {
	if _, err := ParseRequest([]byte(`{"id":"r1"}`)); err == nil {
		t.Fatal("expected error for missing method")
	}
}

func TestParseRequestParamsNotObject(t *testing.T) {
	if _, err := ParseRequest([]byte(`{"method":"ping","params":[1,2]}`)); err == nil {
		t.Fatal("expected error for non-object params")
	}
}

func TestParseRequestTypedFields(t *testing.T) {
	req, err := ParseRequest([]byte(`{"method":"action.invoke","params":{"appId":"bridge","actionName":"echo","args":{"msg":"hi"}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Params.AppID != "bridge" || req.Params.ActionName != "echo" {
		t.Fatalf("unexpected params: %+v", req.Params)
	}
	if string(req.Params.Args["msg"]) != `"hi"` {
		t.Fatalf("unexpected args: %+v", req.Params.Args)
	}
}

func TestBuildOkEchoesID(t *testing.T) {
	id := "r1"
	out := BuildOk(&id, map[string]interface{}{"pong": true})
	var parsed map[string]interface{}
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if parsed["id"] != "r1" || parsed["ok"] != true {
		t.Fatalf("unexpected envelope: %v", parsed)
	}
	resp, ok := parsed["response"].(map[string]interface{})
	if !ok {
		t.Fatalf("response is not an object: %v", parsed["response"])
	}
	if resp["pong"] != true {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestBuildErrorDetailsCoercedToObject(t *testing.T) {
	out := BuildError(nil, ErrUnsupportedApp, "app not allowed", nil)
	var parsed map[string]interface{}
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if parsed["ok"] != false {
		t.Fatalf("expected ok:false, got %v", parsed["ok"])
	}
	errObj := parsed["error"].(map[string]interface{})
	if errObj["code"] != ErrUnsupportedApp {
		t.Fatalf("unexpected code: %v", errObj["code"])
	}
	if _, ok := errObj["details"].(map[string]interface{}); !ok {
		t.Fatalf("details not coerced to object: %v", errObj["details"])
	}
}
