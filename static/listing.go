package static

import (
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// listingContext builds the directory template context: root flag,
// current path, cumulative breadcrumbs and the sorted entry list.
// classify maps a file extension to its mime classification.
func listingContext(requestPath string, entries []os.FileInfo, classify func(ext string) string) map[string]any {
	files := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		file := map[string]any{
			"is_dir":    entry.IsDir(),
			"file_name": entry.Name(),
		}

		if !entry.IsDir() {
			file["size"] = humanize.Bytes(uint64(entry.Size()))
			if dot := strings.LastIndexByte(entry.Name(), '.'); dot >= 0 && dot < len(entry.Name())-1 {
				file["mime"] = classify(entry.Name()[dot+1:])
			}
		}

		files = append(files, file)
	}

	// Directories first, then lexicographic by name.
	sort.Slice(files, func(i, j int) bool {
		leftDir, rightDir := files[i]["is_dir"].(bool), files[j]["is_dir"].(bool)
		if leftDir != rightDir {
			return leftDir
		}
		return files[i]["file_name"].(string) < files[j]["file_name"].(string)
	})

	return map[string]any{
		"is_root":     strings.TrimSpace(requestPath) == "/",
		"dir":         requestPath,
		"bread_crums": breadCrumbs(requestPath),
		"files":       files,
	}
}

// breadCrumbs lists every ancestor of the path, root first, each with
// its cumulative path.
func breadCrumbs(requestPath string) []map[string]any {
	crumbs := []map[string]any{{"name": "/", "path": "/"}}

	current := ""
	for _, component := range strings.Split(strings.Trim(requestPath, "/"), "/") {
		if component == "" {
			continue
		}
		current += "/" + component
		crumbs = append(crumbs, map[string]any{"name": component, "path": current})
	}

	return crumbs
}
