// Package pathresolver implements first-match executable lookup and
// prefix enumeration over the directories named by PATH, the way
// core/exec.go's LookPath does in the teacher repo, minus the virtual
// filesystem indirection: this shell resolves against the real host.
package pathresolver

import (
	"os"
	"path/filepath"
	"strings"
)

// Lookup searches dir+"/"+name for each directory in path (colon
// separated) and returns the first combination granting execute
// permission. It returns ("", false) on a miss.
func Lookup(path, name string) (string, bool) {
	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// CompletionCandidates enumerates, for each directory in path (skipping
// empty components and directories that can't be read), the executable
// entries whose name begins with prefix. The result is deduplicated,
// preserving first-seen order; "." and ".." are never candidates.
func CompletionCandidates(path, prefix string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if name == "." || name == ".." {
				continue
			}
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if seen[name] {
				continue
			}
			if !isExecutable(filepath.Join(dir, name)) {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}
