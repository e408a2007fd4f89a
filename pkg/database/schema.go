package database

import (
	"time"

	"github.com/lib/pq"
)

type Model struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Representation is embedded twice per item row, once per slot.
type Representation struct {
	URI  string
	PUID string `gorm:"column:puid"`
}

// ItemRecord is an item row as written by the ingest pipeline.
type ItemRecord struct {
	Model

	ID           string `gorm:"primaryKey"`
	ParentID     string `gorm:"index"`
	CollectionID string `gorm:"index"`
	Type         string `gorm:"index"`
	Label        string
	Position     int

	Closed       bool
	EmbargoUntil time.Time

	Size       int64
	Width      int
	Height     int
	Duration   float64
	Resolution int

	Access   Representation `gorm:"embedded;embeddedPrefix:access_"`
	Original Representation `gorm:"embedded;embeddedPrefix:original_"`

	Physical    string
	Description string
	Dates       pq.StringArray `gorm:"type:text[]"`

	Authors  []ItemAuthor   `gorm:"foreignKey:Item;references:ID"`
	Metadata []ItemMetadata `gorm:"foreignKey:Item;references:ID"`
}

func (ItemRecord) TableName() string {
	return "archive_items"
}

// ItemAuthor keeps one contributor of a root item. Position preserves the
// ingest order so author grouping stays deterministic.
type ItemAuthor struct {
	Model

	Item     string `gorm:"primaryKey"`
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	Type     string
	Name     string
}

// ItemMetadata keeps one explicit label/value metadata entry of a root item.
type ItemMetadata struct {
	Model

	Item     string `gorm:"primaryKey"`
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	Label    string
	Value    string
}
