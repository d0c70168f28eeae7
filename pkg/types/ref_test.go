package types

import "testing"

func TestParseRef(t *testing.T) {
	cases := []struct {
		in        string
		ns, name  string
		tag       string
		wantError bool
	}{
		{in: "ns/model:tag", ns: "ns", name: "model", tag: "tag"},
		{in: "model", ns: "", name: "model", tag: "latest"},
		{in: "model:v2", ns: "", name: "model", tag: "v2"},
		{in: "library/llama2", ns: "library", name: "llama2", tag: "latest"},
		{in: "", wantError: true},
		{in: "   ", wantError: true},
		{in: "a/b/c", wantError: true},
		{in: "m:1:2", wantError: true},
		{in: "has space", wantError: true},
		{in: "ns/:tag", wantError: true},
	}
	for _, c := range cases {
		r, err := ParseRef(c.in)
		if c.wantError {
			if err == nil {
				t.Fatalf("ParseRef(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRef(%q): %v", c.in, err)
		}
		if r.Namespace() != c.ns || r.Name() != c.name || r.Tag() != c.tag {
			t.Fatalf("ParseRef(%q): got ns=%q name=%q tag=%q", c.in, r.Namespace(), r.Name(), r.Tag())
		}
	}
}

func TestRefValidateEmptyName(t *testing.T) {
	if err := Ref("ns/").Validate(); err == nil {
		t.Fatalf("expected error for empty model name")
	}
}
