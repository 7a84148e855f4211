package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// fileHeader builds a real multipart header the way net/http parses one.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(MaxFileSize*2))
	return req.MultipartForm.File["file"][0]
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content []byte
		kind    Kind
		wantErr bool
	}{
		{"png image", "poster.png", pngHeader, KindImage, false},
		{"pdf document", "permit.pdf", []byte("%PDF-1.4\n"), KindDocument, false},
		{"pdf as image", "permit.pdf", []byte("%PDF-1.4\n"), KindImage, true},
		{"wrong extension", "poster.gif", []byte("GIF89a"), KindImage, true},
		{"spoofed content", "poster.png", []byte("<html>not an image</html>"), KindImage, true},
		{"too large", "poster.png", append(pngHeader, make([]byte, MaxFileSize)...), KindImage, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(fileHeader(t, tt.file, tt.content), tt.kind)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "file")
		})
	}
}

func TestLocalSave(t *testing.T) {
	dir := t.TempDir()
	blob := NewLocal(dir, "/uploads/")

	ref, err := blob.Save(context.Background(), KindImage.Folder(), "Poster.PNG", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/images/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(ref, "/uploads/"))))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestKind(t *testing.T) {
	assert.True(t, KindImage.Valid())
	assert.True(t, KindDocument.Valid())
	assert.False(t, Kind("video").Valid())
	assert.Equal(t, "documents", KindDocument.Folder())
}
