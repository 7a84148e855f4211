package handlers

import (
	"net/http"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/storage"
)

// Upload stores one image or document and returns its URL, which clients
// then put in poster, featured_image or supporting_documents.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxFileSize+(1<<20))
	if err := r.ParseMultipartForm(storage.MaxFileSize); err != nil {
		handleError(w, r, apperr.Invalid("file", "upload a file of at most 5MB"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	kind := storage.Kind(r.FormValue("kind"))
	if kind == "" {
		kind = storage.KindImage
	}
	if !kind.Valid() {
		handleError(w, r, apperr.Invalid("kind", `"`+string(kind)+`" is not a valid choice`))
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) != 1 {
		handleError(w, r, apperr.Invalid("file", "upload exactly one file"))
		return
	}
	fh := files[0]
	if err := storage.ValidateUpload(fh, kind); err != nil {
		handleError(w, r, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		handleError(w, r, err)
		return
	}
	defer f.Close()

	url, err := h.Blob.Save(r.Context(), kind.Folder(), fh.Filename, f)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
