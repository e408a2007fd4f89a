package pronom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	info := Lookup("fmt/44")
	if assert.NotNil(t, info) {
		assert.Equal(t, "fmt/44", info.PUID)
		assert.Equal(t, "image/jpeg", info.MIME)
		assert.Equal(t, "jpg", info.Extension)
	}

	assert.Nil(t, Lookup("fmt/0"))
	assert.Nil(t, Lookup(""))
}

func TestLookupDoesNotAliasTable(t *testing.T) {
	a := Lookup("fmt/134")
	a.MIME = "changed"

	b := Lookup("fmt/134")
	assert.Equal(t, "audio/mpeg", b.MIME)
}
