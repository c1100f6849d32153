package notify

import (
	"os"
	"path/filepath"
)

const defaultIcon = "icons/icon.png"

// ResolveIcon returns configured when set. Otherwise it looks for
// icons/icon.png in the working directory and next to the executable, and
// returns "" when neither exists.
func ResolveIcon(configured string) string {
	if configured != "" {
		return configured
	}

	candidates := []string{defaultIcon}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), defaultIcon))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}
