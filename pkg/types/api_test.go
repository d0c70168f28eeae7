package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPushRequestInsecureOmittedWhenUnset(t *testing.T) {
	b, err := json.Marshal(PushRequest{Name: "ns/model:tag"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `{"name":"ns/model:tag"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestPushRequestInsecureSet(t *testing.T) {
	b, err := json.Marshal(PushRequest{Name: "ns/model:tag", Insecure: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `{"name":"ns/model:tag","insecure":true}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestCreateRequestStreamNeverNull(t *testing.T) {
	b, _ := json.Marshal(CreateRequest{Name: "m", Modelfile: "FROM llama2"})
	if strings.Contains(string(b), "stream") {
		t.Fatalf("unset stream serialized: %s", b)
	}
	f := false
	b, _ = json.Marshal(CreateRequest{Name: "m", Modelfile: "FROM llama2", Stream: &f})
	if !strings.Contains(string(b), `"stream":false`) {
		t.Fatalf("explicit stream=false missing: %s", b)
	}
}
