// Package fileapi is the delivery gateway: it resolves an item id, and
// optionally a representation or derivative key, to bytes on disk, enforcing
// the access policy and byte-range semantics on the way.
package fileapi

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/kleio/archive-api/pkg/access"
	"github.com/kleio/archive-api/pkg/config"
	"github.com/kleio/archive-api/pkg/derivative"
	"github.com/kleio/archive-api/pkg/item"
	"github.com/kleio/archive-api/pkg/pronom"
	"github.com/kleio/archive-api/pkg/storage"
)

// ItemResolver looks up a single item; a miss is nil, nil.
type ItemResolver interface {
	Item(ctx context.Context, id string) (*item.Item, error)
}

// Handler serves the /file routes.
type Handler struct {
	Items  ItemResolver
	Access access.Checker
}

func NewHandler(items ItemResolver, checker access.Checker) *Handler {
	return &Handler{Items: items, Access: checker}
}

// Routes mounts the gateway endpoints. The constrained pattern sends
// original/access requests to the representation endpoint; every other
// second segment is treated as a derivative key.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(withRange)
	r.Get("/{id}", h.serveRepresentation)
	r.Get("/{id}/{kind:(?:original|access)}", h.serveRepresentation)
	r.Get("/{id}/{derivative}", h.serveDerivative)
	return r
}

func (h *Handler) serveRepresentation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	slog.Debug("Received a file request", "id", id)

	it, err := h.Items.Item(r.Context(), id)
	if err != nil {
		serverError(w, "failed to resolve item", err)
		return
	}
	if it == nil {
		http.Error(w, fmt.Sprintf("No file found with the id %s", id), http.StatusNotFound)
		return
	}

	// Full-size image bytes stay behind the tiled image service.
	if it.Type == item.TypeImage && !access.HasAdminAccess(r) {
		http.Redirect(w, r, imageRedirectURL(it.ID, ""), http.StatusFound)
		return
	}

	state, err := h.Access.HasAccess(r.Context(), r, it, false)
	if err != nil {
		serverError(w, "access check failed", err)
		return
	}
	if state != access.Open {
		http.Error(w, "Access denied", http.StatusUnauthorized)
		return
	}

	kindParam := chi.URLParam(r, "kind")
	if kindParam != "" && !item.ValidRepresentation(kindParam) {
		http.Error(w, "You can only request an original or an access copy!", http.StatusBadRequest)
		return
	}
	if kindParam != "" && !it.HasRepresentation(item.RepresentationKind(kindParam)) {
		http.Error(w, fmt.Sprintf("There is no %s copy for file with id %s", kindParam, id), http.StatusBadRequest)
		return
	}

	kind := item.RepresentationKind(kindParam)
	if kindParam == "" {
		kind = it.PreferredRepresentation()
	}

	fullPath := storage.FullPath(it, kind)
	if fullPath == "" {
		http.Error(w, fmt.Sprintf("No file found for id %s and type %s", id, kind), http.StatusNotFound)
		return
	}

	info, err := storage.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, fmt.Sprintf("No file found for id %s and type %s", id, kind), http.StatusNotFound)
		} else {
			serverError(w, "failed to stat file", err)
		}
		return
	}

	name := filepath.Base(fullPath)
	contentType := ""
	if format := pronom.Lookup(it.PUID(kind)); format != nil {
		contentType = format.MIME
	} else {
		contentType = mime.TypeByExtension(filepath.Ext(name))
	}

	if it.Resolution > 0 {
		w.Header().Set("Content-Resolution", fmt.Sprintf("%d", it.Resolution))
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))

	if err := serveFile(w, r, fullPath, info.Size()); err != nil {
		slog.Error("Failed to stream file", "id", id, "kind", kind, "error", err)
		return
	}

	slog.Debug("Sent a file", "id", id, "kind", kind)
}

func (h *Handler) serveDerivative(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	key := chi.URLParam(r, "derivative")
	slog.Debug("Received a derivative request", "id", id, "derivative", key)

	// Unknown keys 404 before the item is even resolved.
	info, ok := derivative.Lookup(key)
	if !ok {
		http.Error(w, fmt.Sprintf("No derivative of type %s", key), http.StatusNotFound)
		return
	}

	it, err := h.Items.Item(r.Context(), id)
	if err != nil {
		serverError(w, "failed to resolve item", err)
		return
	}
	if it == nil {
		http.Error(w, fmt.Sprintf("No file found with the id %s", id), http.StatusNotFound)
		return
	}

	if info.To == derivative.KindImage && !access.HasAdminAccess(r) {
		tier := ""
		if info.ImageTier != "" {
			tier = config.ImageTierSeparator + info.ImageTier
		}
		http.Redirect(w, r, imageRedirectURL(it.ID, tier), http.StatusFound)
		return
	}

	state, err := h.Access.HasAccess(r.Context(), r, it, false)
	if err != nil {
		serverError(w, "access check failed", err)
		return
	}
	if state != access.Open {
		http.Error(w, "Access denied", http.StatusUnauthorized)
		return
	}

	fullPath := storage.DerivativePath(it, info)
	stat, err := storage.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, fmt.Sprintf("No derivative found for id %s of type %s", id, key), http.StatusNotFound)
		} else {
			serverError(w, "failed to stat derivative", err)
		}
		return
	}

	w.Header().Set("Content-Type", info.ContentType)
	name := fmt.Sprintf("%s-%s.%s", info.Name, it.ID, info.Extension)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))

	if err := serveFile(w, r, fullPath, stat.Size()); err != nil {
		slog.Error("Failed to stream derivative", "id", id, "derivative", key, "error", err)
		return
	}

	slog.Debug("Sent a derivative", "id", id, "derivative", key)
}

func imageRedirectURL(id, tier string) string {
	return fmt.Sprintf("/iiif/image/%s%s/full/max/0/default.jpg", id, tier)
}

// serverError hides the failure detail from the caller but keeps it in the log.
func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
