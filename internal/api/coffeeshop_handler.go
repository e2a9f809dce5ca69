package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/kopikita/blogshop/internal/domain"
	"github.com/kopikita/blogshop/internal/pagination"
	"github.com/kopikita/blogshop/internal/service"
)

// coffeeShopsPerPage is the fixed page size for the coffee shops collection.
const coffeeShopsPerPage = 6

const coffeeShopNotFound = "Coffee Shop not found"

// CoffeeShopHandler handles HTTP requests for coffee shops
type CoffeeShopHandler struct {
	service *service.CoffeeShopService
	baseURL string
}

// NewCoffeeShopHandler creates a new coffee shop handler.
func NewCoffeeShopHandler(service *service.CoffeeShopService, baseURL string) *CoffeeShopHandler {
	return &CoffeeShopHandler{
		service: service,
		baseURL: baseURL,
	}
}

// Routes returns the routes for coffee shops
func (h *CoffeeShopHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

func (h *CoffeeShopHandler) listURL() string {
	return h.baseURL + "/api/coffee-shops"
}

type coffeeShopForm struct {
	Name     string `form:"name" validate:"required,max=255"`
	Location string `form:"location" validate:"required,max=255"`
	Owner    string `form:"owner" validate:"required,max=255"`
	Rating   int    `form:"rating" validate:"required,min=1,max=5"`
}

// List returns one page of coffee shops, newest first.
func (h *CoffeeShopHandler) List(w http.ResponseWriter, r *http.Request) {
	req := pagination.Request{Page: queryPage(r), PerPage: coffeeShopsPerPage}
	req.Normalize()

	shops, total, err := h.service.List(r.Context(), req)
	if err != nil {
		respondError(w, r, err, coffeeShopNotFound)
		return
	}

	resources := lo.Map(shops, func(shop *domain.CoffeeShop, _ int) CoffeeShopResource {
		return NewCoffeeShopResource(shop, h.baseURL)
	})

	respondPage(w, r, "Data Coffee Shops retrieved successfully", pagination.NewPage(resources, total, req, h.listURL()))
}

// Get returns a coffee shop by id, wrapped in a one-item page whose current
// page is the approximate page lookup for the id.
func (h *CoffeeShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, r, domain.ErrNotFound, coffeeShopNotFound)
		return
	}

	shop, total, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, coffeeShopNotFound)
		return
	}

	page := pagination.Page[CoffeeShopResource]{
		Items: []CoffeeShopResource{NewCoffeeShopResource(shop, h.baseURL)},
		Meta:  pagination.NewMeta(pagination.PageForID(id, coffeeShopsPerPage), coffeeShopsPerPage, total, h.listURL()),
	}

	respondPage(w, r, "Coffee Shop retrieved successfully", page)
}

// Create creates a coffee shop. The image file is optional.
func (h *CoffeeShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, image, fields, ok := h.parseShopForm(w, r)
	if !ok {
		return
	}

	if len(fields) > 0 {
		respondValidation(w, r, fields)
		return
	}

	shop, err := h.service.Create(r.Context(), service.CreateCoffeeShopParams{
		Name:     form.Name,
		Location: form.Location,
		Owner:    form.Owner,
		Rating:   form.Rating,
		Image:    image,
	})
	if err != nil {
		respondError(w, r, err, coffeeShopNotFound)
		return
	}

	respond(w, r, http.StatusCreated, "Coffee Shop created successfully", NewCoffeeShopResource(shop, h.baseURL))
}

// Update replaces all non-image fields of a coffee shop; without a new image
// file the existing reference is untouched.
func (h *CoffeeShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, r, domain.ErrNotFound, coffeeShopNotFound)
		return
	}

	form, image, fields, ok := h.parseShopForm(w, r)
	if !ok {
		return
	}

	if len(fields) > 0 {
		respondValidation(w, r, fields)
		return
	}

	shop, err := h.service.Update(r.Context(), id, service.UpdateCoffeeShopParams{
		Name:     form.Name,
		Location: form.Location,
		Owner:    form.Owner,
		Rating:   form.Rating,
		Image:    image,
	})
	if err != nil {
		respondError(w, r, err, coffeeShopNotFound)
		return
	}

	respond(w, r, http.StatusOK, "Coffee Shop updated successfully", NewCoffeeShopResource(shop, h.baseURL))
}

// Delete removes a coffee shop and its image blob, if any.
func (h *CoffeeShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, r, domain.ErrNotFound, coffeeShopNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, r, err, coffeeShopNotFound)
		return
	}

	respond(w, r, http.StatusOK, "Coffee Shop deleted successfully", nil)
}

// parseShopForm parses the coffee shop form fields, the optional image file,
// and collects validation failures. ok is false when the body itself could
// not be parsed and a response has already been written.
func (h *CoffeeShopHandler) parseShopForm(w http.ResponseWriter, r *http.Request) (coffeeShopForm, *service.ImageUpload, map[string]string, bool) {
	if err := parseForm(r); err != nil {
		respondBadRequest(w, r, "Invalid form data")
		return coffeeShopForm{}, nil, nil, false
	}

	form := coffeeShopForm{
		Name:     r.FormValue("name"),
		Location: r.FormValue("location"),
		Owner:    r.FormValue("owner"),
	}

	ratingRaw := r.FormValue("rating")
	rating, ratingErr := strconv.Atoi(ratingRaw)
	if ratingErr == nil {
		form.Rating = rating
	}

	fields := validateStruct(form)
	if fields == nil {
		fields = make(map[string]string)
	}
	if ratingRaw != "" && ratingErr != nil {
		fields["rating"] = "The rating field must be a number."
	}

	image, imageErr := multipartImage(r, "image")
	if imageErr != "" {
		fields["image"] = imageErr
	}

	return form, image, fields, true
}
