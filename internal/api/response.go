package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kopikita/blogshop/internal/domain"
	"github.com/kopikita/blogshop/internal/pagination"
)

// Envelope is the uniform wrapper applied to every API response. Success and
// Message are caller-supplied; the envelope never inspects error state.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// pageData is the data shape for paginated payloads. The "posts" key carries
// the page items for both resource types; existing clients key on it, so it
// is kept verbatim even for coffee shops.
type pageData struct {
	Posts      any             `json:"posts"`
	Pagination pagination.Meta `json:"pagination"`
}

// respond writes an enveloped payload. Data is the payload directly for
// single entities and null payloads.
func respond(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	render.Status(r, status)
	render.JSON(w, r, Envelope{Success: true, Message: message, Data: data})
}

// respondPage writes an enveloped paginated payload.
func respondPage[T any](w http.ResponseWriter, r *http.Request, message string, page pagination.Page[T]) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, Envelope{
		Success: true,
		Message: message,
		Data:    pageData{Posts: page.Items, Pagination: page.Meta},
	})
}

// respondValidation writes the raw field->message mapping with status 422.
// Validation failures deliberately bypass the envelope.
func respondValidation(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, fields)
}

// respondError maps an operation error onto the wire: validation errors to
// the bare 422 mapping, unresolved ids to a 404 envelope, and everything
// else to a logged 500 envelope.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	if ve, ok := domain.IsValidation(err); ok {
		respondValidation(w, r, ve.Fields)
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, Envelope{Success: false, Message: notFoundMessage, Data: nil})
		return
	}

	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, Envelope{Success: false, Message: "Internal server error", Data: nil})
}
