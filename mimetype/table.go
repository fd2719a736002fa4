// Package mimetype classifies file extensions: a local table first,
// the platform registry second, and optionally a cached remote
// catalogue for everything else.
package mimetype

import (
	"mime"
	"strings"
)

const fallback = "text/plain"

var byExtension = map[string]string{
	"html":  "text/html",
	"htm":   "text/html",
	"css":   "text/css",
	"js":    "text/javascript",
	"mjs":   "text/javascript",
	"json":  "application/json",
	"txt":   "text/plain",
	"md":    "text/markdown",
	"xml":   "application/xml",
	"csv":   "text/csv",
	"svg":   "image/svg+xml",
	"png":   "image/png",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"gif":   "image/gif",
	"webp":  "image/webp",
	"ico":   "image/x-icon",
	"pdf":   "application/pdf",
	"zip":   "application/zip",
	"gz":    "application/gzip",
	"tar":   "application/x-tar",
	"wasm":  "application/wasm",
	"mp3":   "audio/mpeg",
	"mp4":   "video/mp4",
	"webm":  "video/webm",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"ttf":   "font/ttf",
}

// lookup consults the local table, then the platform registry. The
// boolean reports whether either knew the extension.
func lookup(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return "", false
	}

	if value, found := byExtension[ext]; found {
		return value, true
	}

	if value := mime.TypeByExtension("." + ext); value != "" {
		return value, true
	}

	return "", false
}

// ByExt classifies an extension, with text/plain as the last resort.
func ByExt(ext string) string {
	if value, found := lookup(ext); found {
		return value
	}

	return fallback
}

// ByPath classifies a path by its extension.
func ByPath(path string) string {
	dot := strings.LastIndexByte(path, '.')
	slash := strings.LastIndexByte(path, '/')
	if dot < 0 || dot < slash {
		return fallback
	}

	return ByExt(path[dot+1:])
}
