package types

import (
	"fmt"
	"strings"
)

// Ref identifies a model as "namespace/model:tag". Namespace and tag are
// optional; a bare "model" is valid and the tag defaults to "latest".
type Ref string

// ParseRef validates s and returns it as a Ref.
func ParseRef(s string) (Ref, error) {
	r := Ref(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate reports whether the ref is well formed. A ref must be non-empty,
// contain no whitespace and have at most one namespace and one tag separator.
func (r Ref) Validate() error {
	s := string(r)
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("empty model ref")
	}
	if strings.ContainsAny(s, " \t\n") {
		return fmt.Errorf("model ref %q contains whitespace", s)
	}
	if strings.Count(s, "/") > 1 {
		return fmt.Errorf("model ref %q has more than one namespace separator", s)
	}
	if strings.Count(s, ":") > 1 {
		return fmt.Errorf("model ref %q has more than one tag separator", s)
	}
	if name := r.Name(); name == "" {
		return fmt.Errorf("model ref %q has an empty model name", s)
	}
	return nil
}

// Namespace returns the namespace part, or "" when the ref has none.
func (r Ref) Namespace() string {
	s := string(r)
	if i := strings.Index(s, "/"); i >= 0 {
		return s[:i]
	}
	return ""
}

// Name returns the model part without namespace or tag.
func (r Ref) Name() string {
	s := string(r)
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	return s
}

// Tag returns the tag part, defaulting to "latest".
func (r Ref) Tag() string {
	s := string(r)
	if i := strings.Index(s, ":"); i >= 0 && i+1 < len(s) {
		return s[i+1:]
	}
	return "latest"
}

func (r Ref) String() string { return string(r) }
