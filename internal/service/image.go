package service

import (
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ImageUpload is an inbound image: its original filename (only the extension
// is kept) and its content.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// newBlobName generates a unique bare filename for an uploaded image,
// preserving the original extension.
func newBlobName(originalFilename string) string {
	ext := strings.ToLower(path.Ext(originalFilename))
	return uuid.NewString() + ext
}

// blobKey joins a resource namespace with a bare filename. The stored image
// column holds only the bare name; the namespace is fixed per resource type.
func blobKey(prefix, name string) string {
	return prefix + "/" + path.Base(name)
}
