package static

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stately-go/stately/http"
)

// demoRoot builds a throwaway tree:
//
//	a/b.txt  ("hi")
//	a/sub/
//	docs/readme.md
//	index.html
func demoRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	for _, dir := range []string{"a/sub", "docs"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}

	files := map[string]string{
		"a/b.txt":        "hi",
		"docs/readme.md": "# readme",
		"index.html":     "<html></html>",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

func newHandler(t *testing.T, root string, browsable bool) *StaticFileHandler {
	t.Helper()

	assets := NewAssetStore()
	renderer, err := NewRenderer(assets)
	if err != nil {
		t.Fatal(err)
	}

	handler, err := NewStaticFileHandler(root, browsable, assets, renderer)
	if err != nil {
		t.Fatal(err)
	}

	return handler
}

func get(t *testing.T, handler *StaticFileHandler, target string) *http.Response {
	t.Helper()

	req := http.NewRequest(http.MethodGet, target)
	req.Headers.Set("host", "x")

	res, err := handler.Solve(req)
	if err != nil {
		t.Fatalf("solve %s: %v", target, err)
	}

	return res
}

func TestConstructionValidatesRoot(t *testing.T) {
	assets := NewAssetStore()
	renderer, err := NewRenderer(assets)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewStaticFileHandler(filepath.Join(t.TempDir(), "missing"), false, assets, renderer); !errors.Is(err, ErrRootNotFound) {
		t.Errorf("err = %v, want ErrRootNotFound", err)
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStaticFileHandler(file, false, assets, renderer); !errors.Is(err, ErrRootNotDir) {
		t.Errorf("err = %v, want ErrRootNotDir", err)
	}
}

func TestServeFile(t *testing.T) {
	handler := newHandler(t, demoRoot(t), false)

	res := get(t, handler, "/a/b.txt")

	if res.Status != http.StatusOK {
		t.Fatalf("status = %d", res.Status)
	}
	if string(res.Body) != "hi" {
		t.Errorf("body = %q", res.Body)
	}
	if value, _ := res.Headers.Get("content-type"); !strings.HasPrefix(value, "text/plain") {
		t.Errorf("content-type = %q", value)
	}
}

func TestQueryStringIgnoredForResolution(t *testing.T) {
	handler := newHandler(t, demoRoot(t), false)

	res := get(t, handler, "/a/b.txt?download=1")
	if res.Status != http.StatusOK || string(res.Body) != "hi" {
		t.Errorf("status = %d, body = %q", res.Status, res.Body)
	}
}

func TestMissingFileIsNotFound(t *testing.T) {
	handler := newHandler(t, demoRoot(t), false)

	if res := get(t, handler, "/nope.txt"); res.Status != http.StatusNotFound {
		t.Errorf("status = %d", res.Status)
	}
}

func TestDirectoryRedirectsToIndexWhenNotBrowsable(t *testing.T) {
	handler := newHandler(t, demoRoot(t), false)

	res := get(t, handler, "/docs")
	if res.Status != http.StatusMovedPermanently {
		t.Fatalf("status = %d", res.Status)
	}
	if location, _ := res.Headers.Get("location"); location != "/docs/index.html" {
		t.Errorf("location = %q", location)
	}

	res = get(t, handler, "/docs/")
	if location, _ := res.Headers.Get("location"); location != "/docs/index.html" {
		t.Errorf("location = %q", location)
	}
}

func TestTraversalIsRejected(t *testing.T) {
	root := demoRoot(t)
	// Plant a file right outside the root.
	if err := os.WriteFile(filepath.Join(filepath.Dir(root), "secret.txt"), []byte("s"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, browsable := range []bool{false, true} {
		handler := newHandler(t, root, browsable)
		if res := get(t, handler, "/../secret.txt"); res.Status != http.StatusNotFound {
			t.Errorf("browsable=%v: status = %d, want 404", browsable, res.Status)
		}
	}
}

func TestServeFromRelativeRoot(t *testing.T) {
	root := demoRoot(t)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	handler := newHandler(t, ".", false)

	res := get(t, handler, "/a/b.txt")
	if res.Status != http.StatusOK || string(res.Body) != "hi" {
		t.Errorf("status = %d, body = %q", res.Status, res.Body)
	}

	// Plant a file right outside the relative root; escaping it must
	// still fail.
	if err := os.WriteFile(filepath.Join(filepath.Dir(root), "secret.txt"), []byte("s"), 0644); err != nil {
		t.Fatal(err)
	}
	if res := get(t, handler, "/../secret.txt"); res.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", res.Status)
	}
}

func TestServeFromFilesystemRoot(t *testing.T) {
	root := demoRoot(t)

	handler := newHandler(t, "/", false)

	res := get(t, handler, filepath.ToSlash(filepath.Join(root, "a", "b.txt")))
	if res.Status != http.StatusOK || string(res.Body) != "hi" {
		t.Errorf("status = %d, body = %q", res.Status, res.Body)
	}
}

func TestBrowsableServesFilesDirectly(t *testing.T) {
	handler := newHandler(t, demoRoot(t), true)

	res := get(t, handler, "/a/b.txt")
	if res.Status != http.StatusOK || string(res.Body) != "hi" {
		t.Errorf("status = %d, body = %q", res.Status, res.Body)
	}
}

func TestBrowsableDirectoryWithoutSlashRedirects(t *testing.T) {
	handler := newHandler(t, demoRoot(t), true)

	res := get(t, handler, "/a")
	if res.Status != http.StatusMovedPermanently {
		t.Fatalf("status = %d", res.Status)
	}
	if location, _ := res.Headers.Get("location"); location != "/a/" {
		t.Errorf("location = %q", location)
	}
}

func TestBrowsableDirectoryRendersListing(t *testing.T) {
	handler := newHandler(t, demoRoot(t), true)

	res := get(t, handler, "/a/")
	if res.Status != http.StatusOK {
		t.Fatalf("status = %d", res.Status)
	}
	if value, _ := res.Headers.Get("content-type"); value != "text/html; charset=utf-8" {
		t.Errorf("content-type = %q", value)
	}

	page := string(res.Body)
	if !strings.Contains(page, `href="sub/"`) {
		t.Errorf("listing misses directory link: %s", page)
	}
	if !strings.Contains(page, `href="b.txt"`) {
		t.Errorf("listing misses file link: %s", page)
	}
	// Directories sort before files.
	if strings.Index(page, "sub/") > strings.Index(page, "b.txt") {
		t.Error("directories must list before files")
	}
	// Breadcrumbs link the root and the current directory.
	if !strings.Contains(page, `href="/"`) || !strings.Contains(page, `href="/a"`) {
		t.Errorf("breadcrumbs incomplete: %s", page)
	}
}

func TestRootListing(t *testing.T) {
	handler := newHandler(t, demoRoot(t), true)

	res := get(t, handler, "/")
	if res.Status != http.StatusOK {
		t.Fatalf("status = %d", res.Status)
	}
	if !strings.Contains(string(res.Body), "index.html") {
		t.Errorf("root listing misses entries: %s", res.Body)
	}
	// The parent link only renders below the root.
	if strings.Contains(string(res.Body), `href=".."`) {
		t.Error("root listing must not link a parent")
	}
}

func TestInternalAssetRoute(t *testing.T) {
	handler := newHandler(t, demoRoot(t), true)

	res := get(t, handler, "/__internal/icons/file.svg")
	if res.Status != http.StatusOK {
		t.Fatalf("status = %d", res.Status)
	}
	if value, _ := res.Headers.Get("content-type"); value != "image/svg+xml" {
		t.Errorf("content-type = %q", value)
	}
	if !strings.Contains(string(res.Body), "<svg") {
		t.Errorf("body = %q", res.Body)
	}

	if res := get(t, handler, "/__internal/icons/absent.svg"); res.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unknown internal path", res.Status)
	}
}

func TestWireExample(t *testing.T) {
	handler := newHandler(t, demoRoot(t), false)

	req := &http.Request{}
	raw := "GET /a/b.txt HTTP/1.1\r\nHost: x\r\n\r\n"
	if err := req.Read(bufio.NewReader(strings.NewReader(raw))); err != nil {
		t.Fatal(err)
	}

	res, err := handler.Solve(req)
	if err != nil {
		t.Fatal(err)
	}

	wire := string(res.Bytes())
	if !strings.HasPrefix(wire, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("wire = %q", wire)
	}
	if !strings.Contains(wire, "content-length: 2\r\n") {
		t.Errorf("wire = %q", wire)
	}
	if !strings.Contains(wire, "content-type: text/plain") {
		t.Errorf("wire = %q", wire)
	}
	if !strings.HasSuffix(wire, "\r\n\r\nhi") {
		t.Errorf("wire = %q", wire)
	}
}

func TestSolveNeedsHostHeader(t *testing.T) {
	handler := newHandler(t, demoRoot(t), false)

	req := http.NewRequest(http.MethodGet, "/a/b.txt")
	delete(req.Headers, "host")

	if _, err := handler.Solve(req); !errors.Is(err, http.ErrNoHost) {
		t.Errorf("err = %v, want ErrNoHost", err)
	}
}
