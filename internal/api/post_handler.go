package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/samber/lo"

	"github.com/kopikita/blogshop/internal/domain"
	"github.com/kopikita/blogshop/internal/pagination"
	"github.com/kopikita/blogshop/internal/service"
)

// postsPerPage is the fixed page size for the posts collection.
const postsPerPage = 5

const postNotFound = "Post not found"

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	service *service.PostService
	baseURL string
}

// NewPostHandler creates a new post handler. baseURL is the public base URL
// of the API, used for pagination links and image URLs.
func NewPostHandler(service *service.PostService, baseURL string) *PostHandler {
	return &PostHandler{
		service: service,
		baseURL: baseURL,
	}
}

// Routes returns the routes for posts
func (h *PostHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

func (h *PostHandler) listURL() string {
	return h.baseURL + "/api/posts"
}

type createPostRequest struct {
	Title    string `form:"title" validate:"required"`
	Content  string `form:"content" validate:"required"`
	Author   string `form:"author" validate:"required"`
	Category string `form:"category" validate:"required"`
}

type updatePostJSONRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Category string `json:"category" validate:"required"`
	Image    string `json:"image"`
}

// List returns one page of posts, newest first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	req := pagination.Request{Page: queryPage(r), PerPage: postsPerPage}
	req.Normalize()

	posts, total, err := h.service.List(r.Context(), req)
	if err != nil {
		respondError(w, r, err, postNotFound)
		return
	}

	resources := lo.Map(posts, func(post *domain.Post, _ int) PostResource {
		return NewPostResource(post, h.baseURL)
	})

	respondPage(w, r, "Data posts retrieved successfully", pagination.NewPage(resources, total, req, h.listURL()))
}

// Get returns a post by id, wrapped in a one-item page whose current page is
// the approximate page lookup for the id.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, r, domain.ErrNotFound, postNotFound)
		return
	}

	post, total, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, postNotFound)
		return
	}

	page := pagination.Page[PostResource]{
		Items: []PostResource{NewPostResource(post, h.baseURL)},
		Meta:  pagination.NewMeta(pagination.PageForID(id, postsPerPage), postsPerPage, total, h.listURL()),
	}

	respondPage(w, r, "Post retrieved successfully", page)
}

// Create creates a post from a multipart form. The image file is required.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondBadRequest(w, r, "Invalid form data")
		return
	}

	req := createPostRequest{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Author:   r.FormValue("author"),
		Category: r.FormValue("category"),
	}

	fields := validateStruct(req)
	if fields == nil {
		fields = make(map[string]string)
	}

	image, imageErr := multipartImage(r, "image")
	switch {
	case imageErr != "":
		fields["image"] = imageErr
	case image == nil:
		fields["image"] = "The image field is required."
	}

	if len(fields) > 0 {
		respondValidation(w, r, fields)
		return
	}

	post, err := h.service.Create(r.Context(), service.CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Author:   req.Author,
		Category: req.Category,
		Image:    *image,
	})
	if err != nil {
		respondError(w, r, err, postNotFound)
		return
	}

	respond(w, r, http.StatusCreated, "Post created successfully", NewPostResource(post, h.baseURL))
}

// Update replaces all non-image fields of a post. A new image may arrive as
// a multipart file or, with a JSON body, as a base64-encoded string; without
// one the existing image reference is untouched.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, r, domain.ErrNotFound, postNotFound)
		return
	}

	var params service.UpdatePostParams
	var fields map[string]string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req updatePostJSONRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondBadRequest(w, r, "Invalid JSON body")
			return
		}

		fields = validateStruct(req)
		if fields == nil {
			fields = make(map[string]string)
		}

		params = service.UpdatePostParams{
			Title:    req.Title,
			Content:  req.Content,
			Author:   req.Author,
			Category: req.Category,
		}

		if req.Image != "" {
			image, imageErr := base64Image(req.Image)
			if imageErr != "" {
				fields["image"] = imageErr
			} else {
				params.Image = image
			}
		}
	} else {
		if err := parseForm(r); err != nil {
			respondBadRequest(w, r, "Invalid form data")
			return
		}

		req := createPostRequest{
			Title:    r.FormValue("title"),
			Content:  r.FormValue("content"),
			Author:   r.FormValue("author"),
			Category: r.FormValue("category"),
		}

		fields = validateStruct(req)
		if fields == nil {
			fields = make(map[string]string)
		}

		params = service.UpdatePostParams{
			Title:    req.Title,
			Content:  req.Content,
			Author:   req.Author,
			Category: req.Category,
		}

		image, imageErr := multipartImage(r, "image")
		if imageErr != "" {
			fields["image"] = imageErr
		} else {
			params.Image = image
		}
	}

	if len(fields) > 0 {
		respondValidation(w, r, fields)
		return
	}

	post, err := h.service.Update(r.Context(), id, params)
	if err != nil {
		respondError(w, r, err, postNotFound)
		return
	}

	respond(w, r, http.StatusOK, "Post updated successfully", NewPostResource(post, h.baseURL))
}

// Delete removes a post and its image blob.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, r, domain.ErrNotFound, postNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, postNotFound)
		return
	}

	respond(w, r, http.StatusOK, "Post deleted successfully", nil)
}

func respondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Envelope{Success: false, Message: message, Data: nil})
}
