// Package builder assembles IIIF Presentation API documents from items.
// Documents are built fresh per request from the item store and discarded
// after serialization.
package builder

import (
	"context"
	"fmt"

	"github.com/kleio/archive-api/pkg/config"
	"github.com/kleio/archive-api/pkg/derivative"
	"github.com/kleio/archive-api/pkg/iiif"
	"github.com/kleio/archive-api/pkg/item"
	"github.com/kleio/archive-api/pkg/pronom"
	"github.com/kleio/archive-api/pkg/storage"
	"github.com/kleio/archive-api/pkg/tasks"
)

// ItemStore reads items; lookups run on the request context.
type ItemStore interface {
	Item(ctx context.Context, id string) (*item.Item, error)
	Children(ctx context.Context, parentID string) ([]*item.Item, error)
}

// Enricher computes homepage/metadata/seeAlso values for a root item.
type Enricher interface {
	Enrich(ctx context.Context, it *item.Item) (*tasks.IIIFMetadata, error)
}

// Builder assembles presentation documents. FileExists defaults to a storage
// stat and is swappable in tests.
type Builder struct {
	Store      ItemStore
	Enricher   Enricher
	FileExists func(path string) bool
}

func New(store ItemStore, enricher Enricher) *Builder {
	return &Builder{Store: store, Enricher: enricher, FileExists: storage.Exists}
}

// MinimalCollection constructs a collection stub with no defaults applied,
// labelled with the item's own label unless one is given.
func MinimalCollection(it *item.Item, label string) *iiif.Collection {
	if label == "" {
		label = it.Label
	}
	return iiif.NewCollection(iiif.CollectionURI(it.ID), label)
}

// MinimalManifest constructs a manifest stub with no defaults applied.
func MinimalManifest(it *item.Item, label string) *iiif.Manifest {
	if label == "" {
		label = it.Label
	}
	return iiif.NewManifest(iiif.ManifestURI(it.ID), label)
}

// Collection builds a collection document with the shared defaults applied.
func (b *Builder) Collection(ctx context.Context, it *item.Item, label string) (*iiif.Collection, error) {
	collection := MinimalCollection(it, label)
	if err := b.setBaseDefaults(ctx, &collection.Base, it); err != nil {
		return nil, err
	}
	return collection, nil
}

// Manifest builds a manifest document with the shared defaults applied.
func (b *Builder) Manifest(ctx context.Context, it *item.Item, label string) (*iiif.Manifest, error) {
	manifest := MinimalManifest(it, label)
	if err := b.setBaseDefaults(ctx, &manifest.Base, it); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Canvas builds the canvas of a file item: one annotation page holding one
// annotation whose body is the item's content resource. Audio items with a
// generated waveform get a seeAlso link on the annotation; the existence
// check is a storage stat, not a guarantee the link is servable.
func (b *Builder) Canvas(it *item.Item, parent *item.Item) (*iiif.Canvas, error) {
	canvas := iiif.NewCanvas(iiif.CanvasURI(parent.ID, it.Order), it.Width, it.Height, it.Duration)
	page := iiif.NewAnnotationPage(iiif.AnnotationPageURI(parent.ID, it.ID))
	canvas.SetItems(page)

	resource, err := Resource(it)
	if err != nil {
		return nil, err
	}

	annotation := iiif.NewAnnotation(iiif.AnnotationURI(parent.ID, it.ID), resource)
	page.SetItems(annotation)
	annotation.SetCanvas(canvas)

	b.addDerivatives(annotation, it)

	return canvas, nil
}

// Resource produces the content resource of a file item. Images delegate to
// ImageResource; everything else resolves its mime type from the access
// PUID, falling back to the original PUID. A file item whose formats both
// fail to resolve is inconsistent data and a hard error.
func Resource(it *item.Item) (*iiif.Resource, error) {
	if it.Type == item.TypeImage {
		return ImageResource(it, "full"), nil
	}

	var mime string
	if info := pronom.Lookup(it.Access.PUID); info != nil {
		mime = info.MIME
	} else if info := pronom.Lookup(it.Original.PUID); info != nil {
		mime = info.MIME
	} else {
		return nil, fmt.Errorf("no resolvable format for item %s", it.ID)
	}

	return iiif.NewResource(iiif.FileURI(it.ID), ResourceType(it.Type), mime, it.Width, it.Height, it.Duration), nil
}

// ImageResource produces an Image API backed resource. Dimensions are only
// reported for the full size; tiered sizes omit them.
func ImageResource(it *item.Item, size string) *iiif.Resource {
	var width, height int
	if size == "full" {
		width, height = it.Width, it.Height
	}

	resource := iiif.NewResource(iiif.ImageResourceURI(it.ID, size, "jpg"), "Image", "image/jpeg", width, height, 0)
	resource.SetService(iiif.NewImageService(iiif.ImageServiceURI(it.ID)))
	return resource
}

// AddThumbnail attaches a reduced image rendition as the document thumbnail
// when the item is an image, or a root item with an image representative
// child. Anything else is a no-op.
func AddThumbnail(base *iiif.Base, it *item.Item, child *item.Item) {
	if it.Type == item.TypeImage {
		base.SetThumbnail(ImageResource(it, "200,"))
	} else if it.Type == item.TypeRoot && child != nil && child.Type == item.TypeImage {
		base.SetThumbnail(ImageResource(child, "200,"))
	}
}

// AddMetadata applies the descriptive metadata of a root item in its fixed
// order: grouped authors, dates, physical description, description, the
// explicit metadata list, then the enrichment result. An enrichment failure
// fails the build.
func (b *Builder) AddMetadata(ctx context.Context, base *iiif.Base, root *item.Item) error {
	if len(root.Authors) > 0 {
		var roles []string
		grouped := map[string][]string{}
		for _, author := range root.Authors {
			if _, ok := grouped[author.Type]; !ok {
				roles = append(roles, author.Type)
			}
			grouped[author.Type] = append(grouped[author.Type], author.Name)
		}
		for _, role := range roles {
			base.AddMetadata(role, grouped[role]...)
		}
	}

	if len(root.Dates) > 0 {
		base.AddMetadata("Dates", root.Dates...)
	}

	if root.Physical != "" {
		base.AddMetadata("Physical description", root.Physical)
	}

	if root.Description != "" {
		base.AddMetadata("Description", root.Description)
	}

	for _, md := range root.Metadata {
		base.AddMetadata(md.Label, md.Value)
	}

	md, err := b.Enricher.Enrich(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to enrich metadata for item %s: %w", root.ID, err)
	}

	if len(md.Homepage) > 0 {
		base.SetHomepage(md.Homepage)
	}
	for _, pair := range md.Metadata {
		base.AddMetadata(pair.Label, pair.Value)
	}
	if len(md.SeeAlso) > 0 {
		base.AddSeeAlso(md.SeeAlso...)
	}

	return nil
}

// ResourceType maps an item type to its IIIF resource type. The mapping is
// total: unknown types are datasets.
func ResourceType(t item.Type) string {
	switch t {
	case item.TypeImage:
		return "Image"
	case item.TypeAudio:
		return "Sound"
	case item.TypeVideo:
		return "Video"
	case item.TypePDF:
		return "Text"
	default:
		return "Dataset"
	}
}

func (b *Builder) setBaseDefaults(ctx context.Context, base *iiif.Base, it *item.Item) error {
	addDefaults(base)

	if it.Description != "" {
		base.SetSummary(it.Description)
	}

	if it.ParentID != "" {
		parent, err := b.Store.Item(ctx, it.ParentID)
		if err != nil {
			return fmt.Errorf("failed to resolve parent %s: %w", it.ParentID, err)
		}
		if parent != nil {
			base.SetParent(iiif.CollectionURI(parent.ID), "Collection", parent.Label)
		}
	}

	return nil
}

func addDefaults(base *iiif.Base) {
	base.SetContext()

	if config.LogoRelativePath != "" {
		base.SetLogo(logo("full"))
	}

	if config.Attribution != "" {
		base.SetAttribution(config.Attribution)
	}
}

func logo(size string) *iiif.Resource {
	var width, height int
	if size == "full" {
		width, height = config.LogoDimensions[0], config.LogoDimensions[1]
	}

	resource := iiif.NewResource(iiif.ImageResourceURI("logo", size, "png"), "Image", "image/png", width, height, 0)
	resource.SetService(iiif.NewImageService(iiif.ImageServiceURI("logo")))
	return resource
}

func (b *Builder) addDerivatives(annotation *iiif.Annotation, it *item.Item) {
	if it.Type != item.TypeAudio {
		return
	}

	waveform := derivative.Waveform()
	if b.FileExists(storage.DerivativePath(it, waveform)) {
		annotation.AddSeeAlso(iiif.Link{
			ID:      iiif.DerivativeURI(it.ID, waveform.Name),
			Type:    "Dataset",
			Format:  waveform.ContentType,
			Profile: waveform.Profile,
		})
	}
}
