package fileapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/kleio/archive-api/pkg/storage"
)

// errRangeNotSatisfiable marks a Range header the gateway cannot parse.
// It is raised before any item or file resolution happens.
var errRangeNotSatisfiable = errors.New("range not satisfiable")

// byteRange is a requested byte span. An open range has no upper bound; End
// is only meaningful when Open is false. Both bounds are inclusive.
type byteRange struct {
	Start int64
	End   int64
	Open  bool
}

// parseRange parses a Range header. It accepts the single-range form
// "bytes=<start>-<end?>" only: any other unit, a missing ranges portion, a
// range list or a non-numeric bound is errRangeNotSatisfiable. An absent
// header yields nil, nil.
func parseRange(header string) (*byteRange, error) {
	if header == "" {
		return nil, nil
	}

	unit, ranges, found := strings.Cut(header, "=")
	if !found || unit != "bytes" || ranges == "" || strings.Contains(ranges, ",") {
		return nil, errRangeNotSatisfiable
	}

	startStr, endStr, found := strings.Cut(ranges, "-")
	if !found {
		return nil, errRangeNotSatisfiable
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return nil, errRangeNotSatisfiable
	}

	if endStr == "" {
		return &byteRange{Start: start, Open: true}, nil
	}

	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil || end < 0 {
		return nil, errRangeNotSatisfiable
	}
	return &byteRange{Start: start, End: end}, nil
}

type rangeContextKey struct{}

// withRange mounts the shared range behavior: it advertises byte-range
// support, rejects malformed Range headers with 416 before any resolution
// work, and stores the parsed span for the handler.
func withRange(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-Ranges", "bytes")

		rng, err := parseRange(r.Header.Get("Range"))
		if err != nil {
			http.Error(w, "Range Not Satisfiable", http.StatusRequestedRangeNotSatisfiable)
			return
		}
		if rng != nil {
			r = r.WithContext(context.WithValue(r.Context(), rangeContextKey{}, rng))
		}

		next.ServeHTTP(w, r)
	})
}

func requestRange(r *http.Request) *byteRange {
	rng, _ := r.Context().Value(rangeContextKey{}).(*byteRange)
	return rng
}

// serveFile streams the file at path. A range within the entity produces a
// 206 with the span clamped to the last byte when open-ended; a range that
// does not fit the entity, including an inverted one, is downgraded to a
// full 200 response rather than rejected. The file handle is acquired before
// any header is written and released when the copy ends, also on client
// disconnect.
func serveFile(w http.ResponseWriter, r *http.Request, path string, size int64) error {
	f, err := storage.Open(path)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}
	defer f.Close()

	rng := requestRange(r)

	partial := rng != nil && rng.Start < size && (rng.Open || (rng.End < size && rng.End >= rng.Start))
	if !partial {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.WriteHeader(http.StatusOK)

		_, err = io.Copy(w, f)
		return err
	}

	end := rng.End
	if rng.Open {
		end = size - 1
	}
	length := end - rng.Start + 1

	if _, err := f.Seek(rng.Start, io.SeekStart); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rng.Start, end, size))
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	w.WriteHeader(http.StatusPartialContent)

	_, err = io.CopyN(w, f, length)
	return err
}
