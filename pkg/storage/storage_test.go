package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kleio/archive-api/pkg/config"
	"github.com/kleio/archive-api/pkg/derivative"
	"github.com/kleio/archive-api/pkg/item"
)

func TestFullPath(t *testing.T) {
	oldRoot := config.DataRoot
	config.DataRoot = "/data/collections"
	defer func() { config.DataRoot = oldRoot }()

	it := &item.Item{
		ID: "track1", CollectionID: "col1", Type: item.TypeAudio,
		Access: item.Representation{URI: "access/track1.mp3", PUID: "fmt/134"},
	}

	assert.Equal(t,
		filepath.Join("/data/collections", "col1", "access", "track1.mp3"),
		FullPath(it, item.RepresentationAccess))

	// The original slot is empty for this item.
	assert.Empty(t, FullPath(it, item.RepresentationOriginal))
}

func TestDerivativePath(t *testing.T) {
	oldRoot := config.DataRoot
	config.DataRoot = "/data/collections"
	defer func() { config.DataRoot = oldRoot }()

	it := &item.Item{ID: "track1", CollectionID: "col1", Type: item.TypeAudio}

	assert.Equal(t,
		filepath.Join("/data/collections", "col1", "waveform", "track1.dat"),
		DerivativePath(it, derivative.Waveform()))
}
