// Package static maps URL paths onto a filesystem root: plain files,
// index redirects, and optionally browsable directory listings built
// from embedded templates and icons.
package static

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/stately-go/stately/filesystem"
	"github.com/stately-go/stately/http"
	"github.com/stately-go/stately/mimetype"
)

const (
	// InternalRoot is the reserved URL prefix serving embedded listing
	// assets.
	InternalRoot = "/__internal/"

	indexFileName = "index.html"
)

var (
	ErrRootNotFound = errors.New("static: root does not exist")
	ErrRootNotDir   = errors.New("static: root is not a directory")
)

type matchKind int

const (
	matchNotFound matchKind = iota
	matchFile
	matchRedirect
)

// FileMatch is the outcome of resolving a URL path against the root:
// a servable file, a redirect, or nothing. The three variants stay
// distinct; Redirect carries the target URL path, File the filesystem
// path.
type FileMatch struct {
	kind matchKind
	path string
}

func matchedFile(fsPath string) FileMatch {
	return FileMatch{kind: matchFile, path: fsPath}
}

func matchedRedirect(target string) FileMatch {
	return FileMatch{kind: matchRedirect, path: target}
}

func matchedNone() FileMatch {
	return FileMatch{kind: matchNotFound}
}

// StaticFileHandler is the terminal handler serving files below a root
// directory.
type StaticFileHandler struct {
	root      string
	browsable bool
	fs        filesystem.Filesystem
	assets    *AssetStore
	renderer  *Renderer
	classify  func(ext string) string
	logger    *slog.Logger
}

// NewStaticFileHandler validates the root and builds the handler.
// Construction failure is the one error class meant to abort the
// process before the server binds.
func NewStaticFileHandler(root string, browsable bool, assets *AssetStore, renderer *Renderer) (*StaticFileHandler, error) {
	fs := filesystem.NewLocalFilesystem()

	if !fs.Exists(root) {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	isDir, err := fs.IsDirectory(root)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, root)
	}

	// Containment checks compare path prefixes, so the root has to be
	// absolute and clean. Relative roots like "." would never prefix
	// their own children.
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &StaticFileHandler{
		root:      root,
		browsable: browsable,
		fs:        fs,
		assets:    assets,
		renderer:  renderer,
		classify:  mimetype.ByExt,
		logger:    slog.Default(),
	}, nil
}

// WithClassifier swaps the extension classifier used for listing
// entries, e.g. for the remote-backed catalogue.
func (h *StaticFileHandler) WithClassifier(classify func(ext string) string) *StaticFileHandler {
	h.classify = classify
	return h
}

func (h *StaticFileHandler) Name() string {
	return "StaticFileHandler"
}

func (h *StaticFileHandler) Solve(req *http.Request) (*http.Response, error) {
	url, err := req.URL()
	if err != nil {
		return nil, err
	}

	if h.browsable {
		return h.solveBrowsable(url.Path)
	}

	return h.solveFile(url.Path)
}

// join cleans the request path and anchors it below the root. Paths
// that would escape the root are rejected.
func (h *StaticFileHandler) join(requestPath string) (string, bool) {
	relative := strings.TrimPrefix(requestPath, "/")
	target := filepath.Join(h.root, filepath.FromSlash(relative))

	prefix := h.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if target != h.root && !strings.HasPrefix(target, prefix) {
		return "", false
	}

	return target, true
}

// resolve maps a URL path onto the filesystem: file, index redirect,
// or nothing.
func (h *StaticFileHandler) resolve(requestPath string) FileMatch {
	target, contained := h.join(requestPath)
	if !contained || !h.fs.Exists(target) {
		return matchedNone()
	}

	isDir, err := h.fs.IsDirectory(target)
	if err != nil {
		h.logger.Warn("stat failed", "path", target, "error", err)
		return matchedNone()
	}
	if isDir {
		return matchedRedirect(strings.TrimSuffix(requestPath, "/") + "/" + indexFileName)
	}

	return matchedFile(target)
}

func (h *StaticFileHandler) solveFile(requestPath string) (*http.Response, error) {
	h.logger.Debug("resolving", "path", requestPath)

	match := h.resolve(requestPath)
	switch match.kind {
	case matchRedirect:
		return http.Redirect(match.path), nil
	case matchNotFound:
		return http.NotFound(), nil
	}

	body, err := h.fs.ReadFile(match.path)
	if err != nil {
		h.logger.Warn("file read failed", "path", match.path, "error", err)
		return http.NewResponse(http.StatusInternalServerError), nil
	}

	res := http.NewResponse(http.StatusOK)
	res.Headers.Set("content-type", mimetype.ByPath(match.path))
	res.Body = body

	return res, nil
}

func (h *StaticFileHandler) solveBrowsable(requestPath string) (*http.Response, error) {
	if strings.HasPrefix(requestPath, InternalRoot) {
		return h.solveInternal(strings.TrimPrefix(requestPath, InternalRoot)), nil
	}

	target, contained := h.join(requestPath)
	if !contained || !h.fs.Exists(target) {
		return http.NotFound(), nil
	}

	isDir, err := h.fs.IsDirectory(target)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return h.solveFile(requestPath)
	}

	// Canonical slash policy: listings only ever render under a
	// trailing separator.
	if !strings.HasSuffix(requestPath, "/") {
		return http.Redirect(requestPath + "/"), nil
	}

	entries, err := h.fs.ListDirectory(target)
	if err != nil {
		return nil, fmt.Errorf("static: list %s: %w", target, err)
	}

	body, err := h.renderer.Render(DirectoryTemplate, listingContext(requestPath, entries, h.classify))
	if err != nil {
		return nil, err
	}

	res := http.NewResponse(http.StatusOK)
	res.Headers.Set("content-type", "text/html; charset=utf-8")
	res.Body = body

	return res, nil
}

// solveInternal serves the embedded listing assets, GET-only by the
// surrounding method filter.
func (h *StaticFileHandler) solveInternal(relative string) *http.Response {
	asset, found := h.assets.Get(relative)
	if !found {
		return http.NotFound()
	}

	res := http.NewResponse(http.StatusOK)
	res.Headers.Set("content-type", mimetype.ByPath(relative))
	res.Body = asset

	return res
}
