package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kleio/archive-api/pkg/item"
)

// Items implements the item lookups consumed by the builder and the file
// gateway. A miss is nil, nil, never an error.
type Items struct{}

func (Items) Item(ctx context.Context, id string) (*item.Item, error) {
	var row ItemRecord
	err := DB.WithContext(ctx).
		Preload("Authors", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Metadata", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item %s: %w", id, err)
	}
	return toDomain(&row), nil
}

func (Items) Children(ctx context.Context, parentID string) ([]*item.Item, error) {
	var rows []ItemRecord
	err := DB.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load children of %s: %w", parentID, err)
	}

	items := make([]*item.Item, len(rows))
	for i := range rows {
		items[i] = toDomain(&rows[i])
	}
	return items, nil
}

func toDomain(row *ItemRecord) *item.Item {
	it := &item.Item{
		ID:           row.ID,
		ParentID:     row.ParentID,
		CollectionID: row.CollectionID,
		Type:         item.Type(row.Type),
		Label:        row.Label,
		Order:        row.Position,
		Closed:       row.Closed,
		EmbargoUntil: row.EmbargoUntil,
		Size:         row.Size,
		Width:        row.Width,
		Height:       row.Height,
		Duration:     row.Duration,
		Resolution:   row.Resolution,
		Access:       item.Representation{URI: row.Access.URI, PUID: row.Access.PUID},
		Original:     item.Representation{URI: row.Original.URI, PUID: row.Original.PUID},
		Physical:     row.Physical,
		Description:  row.Description,
		Dates:        row.Dates,
	}

	for _, author := range row.Authors {
		it.Authors = append(it.Authors, item.Author{Type: author.Type, Name: author.Name})
	}
	for _, md := range row.Metadata {
		it.Metadata = append(it.Metadata, item.MetadataPair{Label: md.Label, Value: md.Value})
	}
	return it
}
