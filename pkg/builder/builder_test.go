package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleio/archive-api/pkg/config"
	"github.com/kleio/archive-api/pkg/iiif"
	"github.com/kleio/archive-api/pkg/item"
	"github.com/kleio/archive-api/pkg/tasks"
)

type fakeStore struct {
	items map[string]*item.Item
}

func (s *fakeStore) Item(ctx context.Context, id string) (*item.Item, error) {
	return s.items[id], nil
}

func (s *fakeStore) Children(ctx context.Context, parentID string) ([]*item.Item, error) {
	var children []*item.Item
	for _, it := range s.items {
		if it.ParentID == parentID {
			children = append(children, it)
		}
	}
	return children, nil
}

type fakeEnricher struct {
	result *tasks.IIIFMetadata
	err    error
}

func (e *fakeEnricher) Enrich(ctx context.Context, it *item.Item) (*tasks.IIIFMetadata, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.result != nil {
		return e.result, nil
	}
	return &tasks.IIIFMetadata{}, nil
}

func newTestBuilder(store *fakeStore, enricher *fakeEnricher) *Builder {
	if store == nil {
		store = &fakeStore{items: map[string]*item.Item{}}
	}
	if enricher == nil {
		enricher = &fakeEnricher{}
	}
	b := New(store, enricher)
	b.FileExists = func(string) bool { return false }
	return b
}

func TestResourceType(t *testing.T) {
	assert.Equal(t, "Image", ResourceType(item.TypeImage))
	assert.Equal(t, "Sound", ResourceType(item.TypeAudio))
	assert.Equal(t, "Video", ResourceType(item.TypeVideo))
	assert.Equal(t, "Text", ResourceType(item.TypePDF))
	assert.Equal(t, "Dataset", ResourceType(item.TypeDataset))
	assert.Equal(t, "Dataset", ResourceType(item.Type("3d-model")))
	assert.Equal(t, "Dataset", ResourceType(item.Type("")))
}

func TestMinimalManifestLabel(t *testing.T) {
	it := &item.Item{ID: "doc1", Type: item.TypeRoot, Label: "A report"}

	m := MinimalManifest(it, "")
	assert.Equal(t, "A report", m.Label)
	assert.Equal(t, "Manifest", m.Type)
	assert.Empty(t, m.Context)

	m = MinimalManifest(it, "Override")
	assert.Equal(t, "Override", m.Label)
}

func TestManifestParentLink(t *testing.T) {
	parent := &item.Item{ID: "col1", Type: item.TypeCollection, Label: "Archive 1"}
	child := &item.Item{ID: "doc1", Type: item.TypeRoot, Label: "A report", ParentID: "col1"}
	orphan := &item.Item{ID: "doc2", Type: item.TypeRoot, Label: "Lost", ParentID: "gone"}

	b := newTestBuilder(&fakeStore{items: map[string]*item.Item{"col1": parent}}, nil)

	m, err := b.Manifest(context.Background(), child, "")
	require.NoError(t, err)
	require.Len(t, m.PartOf, 1)
	assert.Equal(t, "Collection", m.PartOf[0].Type)
	assert.Equal(t, "Archive 1", m.PartOf[0].Label)
	assert.Contains(t, m.PartOf[0].ID, "col1")

	// An unresolvable parent id is silently omitted.
	m, err = b.Manifest(context.Background(), orphan, "")
	require.NoError(t, err)
	assert.Empty(t, m.PartOf)
}

func TestCollectionDefaults(t *testing.T) {
	oldLogo, oldAttribution := config.LogoRelativePath, config.Attribution
	config.LogoRelativePath = "logo.png"
	config.Attribution = "Provided by the archive"
	defer func() {
		config.LogoRelativePath, config.Attribution = oldLogo, oldAttribution
	}()

	it := &item.Item{ID: "col1", Type: item.TypeCollection, Label: "Archive 1", Description: "All reports"}
	b := newTestBuilder(nil, nil)

	c, err := b.Collection(context.Background(), it, "")
	require.NoError(t, err)
	assert.Equal(t, iiif.ContextV3, c.Context)
	assert.Equal(t, "All reports", c.Summary)
	assert.Equal(t, "Provided by the archive", c.Attribution)
	require.Len(t, c.Logo, 1)
	assert.Equal(t, "image/png", c.Logo[0].Format)
	require.NotNil(t, c.Logo[0].Service)
}

func TestCanvasOwnership(t *testing.T) {
	parent := &item.Item{ID: "doc1", Type: item.TypeRoot, Label: "A report"}
	it := &item.Item{
		ID: "page1", Type: item.TypePDF, ParentID: "doc1", Order: 3,
		Width: 600, Height: 800,
		Access: item.Representation{URI: "access/page1.pdf", PUID: "fmt/18"},
	}

	b := newTestBuilder(nil, nil)
	canvas, err := b.Canvas(it, parent)
	require.NoError(t, err)

	assert.Equal(t, 600, canvas.Width)
	assert.Equal(t, 800, canvas.Height)
	require.Len(t, canvas.Items, 1)
	page := canvas.Items[0]
	require.Len(t, page.Items, 1)
	annotation := page.Items[0]
	assert.Equal(t, "painting", annotation.Motivation)
	assert.Equal(t, canvas.ID, annotation.Target)
	require.NotNil(t, annotation.Body)
	assert.Equal(t, "Text", annotation.Body.Type)
	assert.Equal(t, "application/pdf", annotation.Body.Format)
}

func TestCanvasWaveformSeeAlso(t *testing.T) {
	parent := &item.Item{ID: "doc1", Type: item.TypeRoot}
	it := &item.Item{
		ID: "track1", Type: item.TypeAudio, ParentID: "doc1", Duration: 123.5,
		Access: item.Representation{URI: "access/track1.mp3", PUID: "fmt/134"},
	}

	b := newTestBuilder(nil, nil)
	canvas, err := b.Canvas(it, parent)
	require.NoError(t, err)
	assert.Empty(t, canvas.Items[0].Items[0].SeeAlso)

	b.FileExists = func(string) bool { return true }
	canvas, err = b.Canvas(it, parent)
	require.NoError(t, err)
	assert.Equal(t, 123.5, canvas.Duration)

	seeAlso := canvas.Items[0].Items[0].SeeAlso
	require.Len(t, seeAlso, 1)
	assert.Equal(t, "Dataset", seeAlso[0].Type)
	assert.Equal(t, "application/octet-stream", seeAlso[0].Format)
	assert.Contains(t, seeAlso[0].ID, "/file/track1/waveform")
}

func TestResourceMimeFallsBackToOriginal(t *testing.T) {
	it := &item.Item{
		ID: "data1", Type: item.TypeDataset,
		Access:   item.Representation{URI: "access/data1.bin", PUID: "fmt/does-not-exist"},
		Original: item.Representation{URI: "original/data1.csv", PUID: "x-fmt/18"},
	}

	r, err := Resource(it)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", r.Format)
	assert.Equal(t, "Dataset", r.Type)
}

func TestResourceUnresolvableFormat(t *testing.T) {
	it := &item.Item{
		ID: "data1", Type: item.TypeDataset,
		Access: item.Representation{URI: "access/data1.bin"},
	}

	_, err := Resource(it)
	assert.Error(t, err)
}

func TestImageResourceDimensions(t *testing.T) {
	it := &item.Item{ID: "img1", Type: item.TypeImage, Width: 4000, Height: 3000}

	full := ImageResource(it, "full")
	assert.Equal(t, 4000, full.Width)
	assert.Equal(t, 3000, full.Height)
	assert.Equal(t, "image/jpeg", full.Format)
	require.NotNil(t, full.Service)
	assert.Equal(t, iiif.ImageServiceProfile, full.Service.Profile)

	tiered := ImageResource(it, "200,")
	assert.Zero(t, tiered.Width)
	assert.Zero(t, tiered.Height)
}

func TestAddThumbnail(t *testing.T) {
	img := &item.Item{ID: "img1", Type: item.TypeImage, Width: 4000, Height: 3000}
	root := &item.Item{ID: "doc1", Type: item.TypeRoot}
	audio := &item.Item{ID: "track1", Type: item.TypeAudio}

	var base iiif.Base
	AddThumbnail(&base, img, nil)
	require.Len(t, base.Thumbnail, 1)
	assert.Contains(t, base.Thumbnail[0].ID, "200,")
	assert.Zero(t, base.Thumbnail[0].Width)

	base = iiif.Base{}
	AddThumbnail(&base, root, img)
	require.Len(t, base.Thumbnail, 1)

	base = iiif.Base{}
	AddThumbnail(&base, root, audio)
	assert.Empty(t, base.Thumbnail)

	base = iiif.Base{}
	AddThumbnail(&base, audio, img)
	assert.Empty(t, base.Thumbnail)
}

func TestAddMetadataOrder(t *testing.T) {
	root := &item.Item{
		ID: "doc1", Type: item.TypeRoot,
		Authors: []item.Author{
			{Type: "Author", Name: "A. Writer"},
			{Type: "Editor", Name: "E. Fixer"},
			{Type: "Author", Name: "B. Writer"},
		},
		Dates:       []string{"1901", "1902"},
		Physical:    "3 boxes",
		Description: "Correspondence",
		Metadata:    []item.MetadataPair{{Label: "Archive", Value: "Inventory 12"}},
	}

	enricher := &fakeEnricher{result: &tasks.IIIFMetadata{
		Metadata: []item.MetadataPair{{Label: "Period", Value: "1900-1910"}},
		Homepage: []iiif.Link{{ID: "https://example.org/doc1", Type: "Text"}},
		SeeAlso:  []iiif.Link{{ID: "https://example.org/doc1.xml", Type: "Dataset"}},
	}}
	b := newTestBuilder(nil, enricher)

	var base iiif.Base
	require.NoError(t, b.AddMetadata(context.Background(), &base, root))

	labels := make([]string, len(base.Metadata))
	for i, md := range base.Metadata {
		labels[i] = md.Label
	}
	assert.Equal(t, []string{"Author", "Editor", "Dates", "Physical description", "Description", "Archive", "Period"}, labels)
	assert.Equal(t, []string{"A. Writer", "B. Writer"}, base.Metadata[0].Value)
	assert.Len(t, base.Homepage, 1)
	assert.Len(t, base.SeeAlso, 1)
}

func TestAddMetadataDeterministic(t *testing.T) {
	root := &item.Item{
		ID: "doc1", Type: item.TypeRoot,
		Authors: []item.Author{
			{Type: "Author", Name: "A. Writer"},
			{Type: "Illustrator", Name: "I. Painter"},
			{Type: "Author", Name: "B. Writer"},
			{Type: "Editor", Name: "E. Fixer"},
		},
		Dates: []string{"1901"},
	}
	b := newTestBuilder(nil, nil)

	var first, second iiif.Base
	require.NoError(t, b.AddMetadata(context.Background(), &first, root))
	require.NoError(t, b.AddMetadata(context.Background(), &second, root))
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestAddMetadataEnrichmentFailure(t *testing.T) {
	root := &item.Item{ID: "doc1", Type: item.TypeRoot}
	b := newTestBuilder(nil, &fakeEnricher{err: errors.New("task runner unavailable")})

	var base iiif.Base
	err := b.AddMetadata(context.Background(), &base, root)
	assert.ErrorContains(t, err, "doc1")
}
