package static

import (
	"embed"
	"io/fs"
)

//go:embed assets
var embedded embed.FS

// AssetStore is the read-only store of build-time embedded listing
// assets, keyed by path relative to the asset root. Populated before
// the socket binds, immutable afterwards.
type AssetStore struct {
	files fs.FS
}

func NewAssetStore() *AssetStore {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		// The subtree is fixed at compile time.
		panic(err)
	}

	return &AssetStore{files: sub}
}

func (store *AssetStore) Get(relative string) ([]byte, bool) {
	data, err := fs.ReadFile(store.files, relative)
	if err != nil {
		return nil, false
	}

	return data, true
}
