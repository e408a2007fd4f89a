package fileapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	rng, err := parseRange("")
	require.NoError(t, err)
	assert.Nil(t, rng)

	rng, err = parseRange("bytes=0-99")
	require.NoError(t, err)
	assert.Equal(t, &byteRange{Start: 0, End: 99}, rng)

	rng, err = parseRange("bytes=500-")
	require.NoError(t, err)
	assert.Equal(t, &byteRange{Start: 500, Open: true}, rng)

	rng, err = parseRange("bytes=2000-3000")
	require.NoError(t, err)
	assert.Equal(t, &byteRange{Start: 2000, End: 3000}, rng)
}

func TestParseRangeRejectsMalformed(t *testing.T) {
	malformed := []string{
		"bytes",              // no ranges portion
		"bytes=",             // empty ranges portion
		"bits=0-99",          // wrong unit
		"bytes=0-10,20-30",   // range list
		"bytes=-500",         // missing start
		"bytes=abc-99",       // non-numeric start
		"bytes=0-abc",        // non-numeric end
		"bytes=0",            // no dash
		"0-99",               // no unit
	}

	for _, header := range malformed {
		_, err := parseRange(header)
		assert.ErrorIs(t, err, errRangeNotSatisfiable, "header %q", header)
	}
}

func TestServeFileOpenFailure(t *testing.T) {
	// The file handle is acquired before any header is written: a file that
	// disappears between stat and open yields a clean 500, not a 200 with a
	// declared length and an empty body.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/doc1", nil)

	err := serveFile(w, r, "/no/such/file", 1000)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Range"))
	assert.NotEqual(t, "1000", w.Header().Get("Content-Length"))
}
