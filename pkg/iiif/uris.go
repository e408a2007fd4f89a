package iiif

import (
	"fmt"

	"github.com/kleio/archive-api/pkg/config"
)

// URI helpers minting the ids embedded in presentation documents. All ids are
// derived from the configured base URLs and the item id; no id is persisted.

func CollectionURI(id string) string {
	return fmt.Sprintf("%s/iiif/presentation/collection/%s", config.BaseURL, id)
}

func ManifestURI(id string) string {
	return fmt.Sprintf("%s/iiif/presentation/%s/manifest", config.BaseURL, id)
}

func CanvasURI(parentID string, order int) string {
	return fmt.Sprintf("%s/iiif/presentation/%s/canvas/%d", config.BaseURL, parentID, order)
}

func AnnotationPageURI(parentID, childID string) string {
	return fmt.Sprintf("%s/iiif/presentation/%s/annopage/%s", config.BaseURL, parentID, childID)
}

func AnnotationURI(parentID, childID string) string {
	return fmt.Sprintf("%s/iiif/presentation/%s/annotation/%s", config.BaseURL, parentID, childID)
}

func FileURI(id string) string {
	return fmt.Sprintf("%s/file/%s", config.BaseURL, id)
}

func DerivativeURI(id, key string) string {
	return fmt.Sprintf("%s/file/%s/%s", config.BaseURL, id, key)
}

// ImageResourceURI points at a rendered image of the given size tier
// ("full", "200,", ...) in the given format.
func ImageResourceURI(id, size, format string) string {
	return fmt.Sprintf("%s/iiif/image/%s/full/%s/0/default.%s", config.ImageServerURL, id, size, format)
}

// ImageServiceURI is the Image API base id for an item.
func ImageServiceURI(id string) string {
	return fmt.Sprintf("%s/iiif/image/%s", config.ImageServerURL, id)
}
