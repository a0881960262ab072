// Package web renders the HTML gallery and serves its small JSON API.
package web

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smerfmc/gallery/internal/category"
	"github.com/smerfmc/gallery/internal/image"
	"github.com/smerfmc/gallery/internal/response"
)

//go:embed templates static
var assetsFS embed.FS

var indexTmpl = template.Must(template.ParseFS(assetsFS, "templates/index.html"))

// Handler holds the HTTP handlers for the gallery.
type Handler struct {
	categories *category.Service
	images     *image.Service
}

// NewHandler creates a new gallery Handler.
func NewHandler(categories *category.Service, images *image.Service) *Handler {
	return &Handler{categories: categories, images: images}
}

// Routes mounts all gallery routes on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/choose", h.Choose)
	r.Handle("/static/*", http.FileServer(http.FS(assetsFS)))

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{name}/images", h.ListImages)
	})
}

// pageData is the view model for the gallery template.
type pageData struct {
	Categories  []string
	Selected    string
	Description string
	Images      []image.View
}

// Index renders the gallery scoped to the first category in sort order.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "")
}

// Choose re-renders the gallery scoped to the posted category. The value is
// not validated: an unknown category shows an empty grid with no description.
func (h *Handler) Choose(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	h.render(w, r, r.PostFormValue("category"))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, selected string) {
	ctx := r.Context()

	names, err := h.categories.ListNames(ctx)
	if err != nil {
		log.Printf("web: list categories: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if selected == "" && len(names) > 0 {
		selected = names[0]
	}

	data := pageData{Categories: names, Selected: selected}

	if selected != "" {
		description, err := h.categories.GetDescription(ctx, selected)
		if err != nil && !errors.Is(err, category.ErrNotFound) {
			log.Printf("web: get description of %q: %v", selected, err)
		}
		data.Description = description

		views, err := h.images.ListForCategory(ctx, selected)
		if err != nil {
			log.Printf("web: list images for %q: %v", selected, err)
		}
		data.Images = views
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}

// ListCategories returns all categories as JSON.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		log.Printf("web: list categories: %v", err)
		response.InternalError(w)
		return
	}
	response.OK(w, cats)
}

// ListImages returns the presigned view models for one category as JSON.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if _, err := h.categories.GetDescription(r.Context(), name); err != nil {
		if h.categories.IsNotFound(err) {
			response.NotFound(w, "category not found")
			return
		}
		log.Printf("web: look up category %q: %v", name, err)
		response.InternalError(w)
		return
	}

	views, err := h.images.ListForCategory(r.Context(), name)
	if err != nil {
		log.Printf("web: list images for %q: %v", name, err)
		response.InternalError(w)
		return
	}
	response.OK(w, views)
}
