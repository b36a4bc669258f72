package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/DibuBaj/Backend/cmd/internal/images"
)

// uploadFormImage reads the named multipart file field, sniffs its content
// type and stores it on the image host. On failure it writes the error
// response itself and reports false.
func (h *Handler) uploadFormImage(w http.ResponseWriter, r *http.Request, field string) (images.Image, bool) {
	file, _, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" image is required")
		return images.Image{}, false
	}
	defer func() { _ = file.Close() }()

	// Sniff the real content type instead of trusting the part header.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "could not read uploaded file")
		return images.Image{}, false
	}
	if n == 0 {
		writeError(w, http.StatusBadRequest, field+" image is empty")
		return images.Image{}, false
	}
	ct := http.DetectContentType(head[:n])
	if !images.AllowedContentType(ct) {
		writeError(w, http.StatusBadRequest, "unsupported image type")
		return images.Image{}, false
	}

	img, err := h.images.Upload(r.Context(), io.MultiReader(bytes.NewReader(head[:n]), file), ct)
	if err != nil {
		h.log.Error("image upload failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to upload image")
		return images.Image{}, false
	}
	return img, true
}

// parseUpload bounds and parses a multipart request body. Writes the error
// response and reports false on failure.
func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return false
	}
	return true
}

// deleteImage is the best-effort cleanup used when replacing or removing an
// object. Missing objects are fine; anything else is logged and swallowed.
func (h *Handler) deleteImage(r *http.Request, id string) {
	if id == "" {
		return
	}
	if err := h.images.Delete(r.Context(), id); err != nil && !errors.Is(err, images.ErrNotFound) {
		h.log.Warn("image cleanup failed", "image_id", id, "err", err)
	}
}
