// Package storage validates uploaded files and persists them to a blob
// backend, either the local disk or a Google Cloud Storage bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
)

const MaxFileSize = 5 * 1024 * 1024

// Kind selects the set of accepted file types.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
)

func (k Kind) Valid() bool {
	return k == KindImage || k == KindDocument
}

// Folder is where files of this kind are stored.
func (k Kind) Folder() string {
	if k == KindDocument {
		return "documents"
	}
	return "images"
}

var allowedExtensions = map[Kind]map[string]string{
	KindImage: {
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
	},
	KindDocument: {
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".pdf":  "application/pdf",
	},
}

// Blob persists an upload and returns the reference clients use to fetch it.
type Blob interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// ValidateUpload checks size, extension and sniffed content type of the
// uploaded file. Failures are reported against the "file" field.
func ValidateUpload(fh *multipart.FileHeader, kind Kind) error {
	if fh.Size > MaxFileSize {
		return apperr.Invalid("file", fmt.Sprintf("file %s exceeds the maximum size of 5MB", fh.Filename))
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	want, ok := allowedExtensions[kind][ext]
	if !ok {
		if kind == KindDocument {
			return apperr.Invalid("file", "only JPG, PNG and PDF files are allowed")
		}
		return apperr.Invalid("file", "only JPG and PNG images are allowed")
	}

	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}
	if got := http.DetectContentType(head[:n]); got != want {
		return apperr.Invalid("file", fmt.Sprintf("file %s content does not match its extension", fh.Filename))
	}
	return nil
}

// objectName gives every upload a unique name under folder while keeping
// the original extension.
func objectName(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}
