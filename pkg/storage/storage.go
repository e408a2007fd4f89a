// Package storage maps items to paths under the configured data root and
// wraps the filesystem primitives the gateway and builder need. Layout:
// representations live at <root>/<collection>/<representation uri>,
// derivatives at <root>/<collection>/<derivative>/<item id>.<extension>.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleio/archive-api/pkg/config"
	"github.com/kleio/archive-api/pkg/derivative"
	"github.com/kleio/archive-api/pkg/item"
)

// FullPath resolves the on-disk path of a representation. It returns the
// empty string when the representation is absent from the item.
func FullPath(it *item.Item, kind item.RepresentationKind) string {
	rep := it.Representation(kind)
	if !rep.Exists() {
		return ""
	}
	return filepath.Join(config.DataRoot, it.CollectionID, rep.URI)
}

// DerivativePath resolves the expected on-disk path of a derivative of an
// item, whether or not the file has been generated yet.
func DerivativePath(it *item.Item, d derivative.Descriptor) string {
	name := fmt.Sprintf("%s.%s", it.ID, d.Extension)
	return filepath.Join(config.DataRoot, it.CollectionID, d.Name, name)
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Stat returns file metadata for path.
func Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Open opens path for reading. The caller owns the handle and must close it
// when the response ends, including on client disconnect.
func Open(path string) (*os.File, error) {
	return os.Open(path)
}
