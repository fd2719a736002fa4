package mimetype

import "testing"

func TestByExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"html", "text/html"},
		{".html", "text/html"},
		{"HTML", "text/html"},
		{"svg", "image/svg+xml"},
		{"txt", "text/plain"},
		{"", "text/plain"},
		{"definitely-unknown-ext", "text/plain"},
	}

	for _, tt := range tests {
		if got := ByExt(tt.ext); got != tt.want {
			t.Errorf("ByExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestByPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/a/b.txt", "text/plain"},
		{"/a/b/index.html", "text/html"},
		{"/a.dir/noext", "text/plain"},
		{"archive.tar", "application/x-tar"},
		{"", "text/plain"},
	}

	for _, tt := range tests {
		if got := ByPath(tt.path); got != tt.want {
			t.Errorf("ByPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
