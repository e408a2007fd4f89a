package item

import "time"

// Type discriminates the variants of an Item. Only the fields valid for a
// variant are populated by the ingest pipeline; consumers switch on Type
// instead of probing optional fields.
type Type string

const (
	TypeRoot       Type = "root"
	TypeCollection Type = "collection"
	TypeImage      Type = "image"
	TypeAudio      Type = "audio"
	TypeVideo      Type = "video"
	TypePDF        Type = "pdf"
	TypeDataset    Type = "dataset"
)

// RepresentationKind selects one of the two byte representations of a file item.
type RepresentationKind string

const (
	RepresentationOriginal RepresentationKind = "original"
	RepresentationAccess   RepresentationKind = "access"
)

// ValidRepresentation reports whether kind names a byte representation.
func ValidRepresentation(kind string) bool {
	return kind == string(RepresentationOriginal) || kind == string(RepresentationAccess)
}

// Representation is one on-disk rendition of a file item. URI is the path of
// the file relative to its collection container; an empty URI means the
// representation does not exist.
type Representation struct {
	URI  string
	PUID string
}

func (r Representation) Exists() bool {
	return r.URI != ""
}

// Author is a named contributor with a role such as "Author" or "Editor".
type Author struct {
	Type string
	Name string
}

// MetadataPair is one label/value entry of the explicit descriptive metadata.
type MetadataPair struct {
	Label string
	Value string
}

// Item is an archival object. Items are created and mutated exclusively by
// the ingest pipeline; this server only reads them.
type Item struct {
	ID           string
	ParentID     string
	CollectionID string
	Type         Type
	Label        string
	Order        int

	// Closed denies delivery of the item's bytes entirely; EmbargoUntil
	// denies it until the given time passes (zero means no embargo). Both
	// are set by the ingest pipeline.
	Closed       bool
	EmbargoUntil time.Time

	// File variant fields (image/audio/video/pdf/dataset).
	Size       int64
	Width      int
	Height     int
	Duration   float64
	Resolution int
	Access     Representation
	Original   Representation

	// Root variant fields.
	Authors     []Author
	Dates       []string
	Physical    string
	Description string
	Metadata    []MetadataPair
}

// IsFile reports whether the item carries byte representations.
func (i *Item) IsFile() bool {
	switch i.Type {
	case TypeImage, TypeAudio, TypeVideo, TypePDF, TypeDataset:
		return true
	}
	return false
}

// Representation returns the representation slot for kind.
func (i *Item) Representation(kind RepresentationKind) Representation {
	if kind == RepresentationOriginal {
		return i.Original
	}
	return i.Access
}

// HasRepresentation reports whether the representation for kind is present.
func (i *Item) HasRepresentation(kind RepresentationKind) bool {
	return i.Representation(kind).Exists()
}

// PreferredRepresentation picks the representation served when the caller
// does not name one: the access copy when present, the original otherwise.
func (i *Item) PreferredRepresentation() RepresentationKind {
	if i.Access.Exists() {
		return RepresentationAccess
	}
	return RepresentationOriginal
}

// PUID returns the format identifier of the representation for kind.
func (i *Item) PUID(kind RepresentationKind) string {
	return i.Representation(kind).PUID
}
