package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kopikita/blogshop/internal/service"
)

const (
	// maxImageBytes caps uploaded image size at 2048 kilobytes.
	maxImageBytes = 2048 * 1024

	// maxMultipartMemory bounds the in-memory portion of multipart parsing.
	maxMultipartMemory = 10 << 20
)

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

// queryPage reads the 1-indexed page number from the query string,
// defaulting to 1.
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseForm parses the request body as multipart when possible, falling back
// to url-encoded form data.
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return r.ParseForm()
		}
		return err
	}
	return nil
}

// multipartImage extracts and validates the image file from a parsed
// multipart form. Returns (nil, "") when the field is absent, and a non-empty
// message when the file is present but invalid.
func multipartImage(r *http.Request, field string) (*service.ImageUpload, string) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, ""
		}
		return nil, "The " + field + " field must be a valid file."
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return nil, "The " + field + " field must be a file of type: jpeg, png, jpg, gif, svg."
	}
	if header.Size > maxImageBytes {
		return nil, "The " + field + " field must not be greater than 2048 kilobytes."
	}

	return &service.ImageUpload{Filename: header.Filename, Reader: file}, ""
}

var dataURIPrefix = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+);base64,`)

// base64Image decodes an inline-encoded image string: the data-URI
// content-type prefix is stripped, and spaces introduced by form-encoding
// transports are restored to plus signs before decoding.
func base64Image(encoded string) (*service.ImageUpload, string) {
	ext := "png"
	if m := dataURIPrefix.FindStringSubmatch(encoded); m != nil {
		ext = strings.ToLower(m[1])
		if ext == "svg+xml" {
			ext = "svg"
		}
		encoded = encoded[len(m[0]):]
	}

	encoded = strings.ReplaceAll(encoded, " ", "+")

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "The image field must be valid base64-encoded image data."
	}

	return &service.ImageUpload{Filename: "upload." + ext, Reader: bytes.NewReader(data)}, ""
}
