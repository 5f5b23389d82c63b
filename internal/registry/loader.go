package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"orcad/pkg/types"
)

const ggufExt = ".gguf"

// LoadDir scans a directory for *.gguf files and returns one Model per file.
// ID is the file name without extension; SizeMB is the file size rounded up
// to whole MB, at least 1.
func LoadDir(dir string) ([]types.Model, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ggufExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		models = append(models, types.Model{
			ID:     name[:len(name)-len(ggufExt)],
			Path:   filepath.Join(abs, name),
			SizeMB: sizeMB(info.Size()),
		})
	}
	return models, nil
}

// Footprints maps model IDs to their on-disk size, for the footprint catalog.
func Footprints(models []types.Model) map[string]int {
	out := make(map[string]int, len(models))
	for _, m := range models {
		if m.ID == "" || m.SizeMB <= 0 {
			continue
		}
		out[m.ID] = m.SizeMB
	}
	return out
}

func sizeMB(bytes int64) int {
	const mb = 1 << 20
	n := int((bytes + mb - 1) / mb)
	if n < 1 {
		return 1
	}
	return n
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
