package routing

import (
	"context"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kleio/archive-api/pkg/builder"
	"github.com/kleio/archive-api/pkg/iiif"
	"github.com/kleio/archive-api/pkg/item"
)

type PlainOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type DocumentInput struct {
	ID string `path:"id" doc:"Item id"`
}

type CollectionOutput struct {
	Body *iiif.Collection
}

type ManifestOutput struct {
	Body *iiif.Manifest
}

func Setup(api huma.API, b *builder.Builder) {
	api.UseMiddleware(authMiddleware(api))

	huma.Register(api, huma.Operation{
		OperationID: "HealthCheck",
		Method:      "GET",
		Path:        "/healthz",
		Summary:     "Health check",
		Description: "Check if the API is running",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, input *struct{}) (*PlainOutput, error) {
		return &PlainOutput{
			ContentType: "text/plain",
			Body:        []byte("OK"),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "GetCollection",
		Method:      "GET",
		Path:        "/iiif/presentation/collection/{id}",
		Summary:     "Get a collection",
		Description: "Get the IIIF Presentation API collection document of an item",
		Tags:        []string{"Presentation"},
	}, func(ctx context.Context, input *DocumentInput) (*CollectionOutput, error) {
		it, err := b.Store.Item(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to resolve item", err)
		}
		if it == nil || (it.Type != item.TypeCollection && it.Type != item.TypeRoot) {
			return nil, huma.Error404NotFound("no collection for id " + input.ID)
		}

		collection, err := buildCollection(ctx, b, it)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to build collection", err)
		}
		return &CollectionOutput{Body: collection}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "GetManifest",
		Method:      "GET",
		Path:        "/iiif/presentation/{id}/manifest",
		Summary:     "Get a manifest",
		Description: "Get the IIIF Presentation API manifest of an item",
		Tags:        []string{"Presentation"},
	}, func(ctx context.Context, input *DocumentInput) (*ManifestOutput, error) {
		it, err := b.Store.Item(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to resolve item", err)
		}
		if it == nil || it.Type != item.TypeRoot {
			return nil, huma.Error404NotFound("no manifest for id " + input.ID)
		}

		manifest, err := buildManifest(ctx, b, it)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to build manifest", err)
		}
		return &ManifestOutput{Body: manifest}, nil
	})
}

// buildCollection assembles a collection document: sub-collections and
// manifests of child items are referenced in their minimal form.
func buildCollection(ctx context.Context, b *builder.Builder, it *item.Item) (*iiif.Collection, error) {
	collection, err := b.Collection(ctx, it, "")
	if err != nil {
		return nil, err
	}

	children, err := b.Store.Children(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	sortByOrder(children)

	for _, child := range children {
		switch child.Type {
		case item.TypeCollection:
			collection.AddCollection(builder.MinimalCollection(child, ""))
		case item.TypeRoot:
			collection.AddManifest(builder.MinimalManifest(child, ""))
		}
	}

	if err := b.AddMetadata(ctx, &collection.Base, it); err != nil {
		return nil, err
	}
	return collection, nil
}

// buildManifest assembles a manifest: every file child becomes a canvas, the
// first image child drives the thumbnail.
func buildManifest(ctx context.Context, b *builder.Builder, it *item.Item) (*iiif.Manifest, error) {
	manifest, err := b.Manifest(ctx, it, "")
	if err != nil {
		return nil, err
	}

	children, err := b.Store.Children(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	sortByOrder(children)

	var representative *item.Item
	for _, child := range children {
		if !child.IsFile() {
			continue
		}
		if representative == nil && child.Type == item.TypeImage {
			representative = child
		}

		canvas, err := b.Canvas(child, it)
		if err != nil {
			return nil, err
		}
		manifest.AddCanvas(canvas)
	}

	builder.AddThumbnail(&manifest.Base, it, representative)

	if err := b.AddMetadata(ctx, &manifest.Base, it); err != nil {
		return nil, err
	}
	return manifest, nil
}

func sortByOrder(items []*item.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}
