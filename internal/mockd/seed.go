package mockd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modeldctl/internal/common/fsutil"
	"modeldctl/pkg/types"
)

// SeedDir scans a directory for *.gguf files and registers each as a model
// tagged :latest, using the filename (without extension) as the model name.
// Returns the number of models added.
func (s *Store) SeedDir(dir string) (int, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return 0, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return 0, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return 0, fmt.Errorf("read dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		file := e.Name()
		if !strings.HasSuffix(strings.ToLower(file), ".gguf") {
			continue
		}
		name := types.Ref(strings.TrimSuffix(file, filepath.Ext(file)) + ":latest")
		if name.Validate() != nil {
			continue
		}
		// The seeded modelfile points at the on-disk weights.
		s.Put(name, "FROM "+filepath.Join(abs, file)+"\n")
		n++
	}
	return n, nil
}
