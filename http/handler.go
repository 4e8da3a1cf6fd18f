package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/sagarc03/kvtodo"
)

type Service interface {
	List(ctx context.Context) ([]kvtodo.TodoItem, error)
	Create(ctx context.Context, title string) (kvtodo.TodoItem, error)
	Update(ctx context.Context, id, title string) (kvtodo.TodoItem, error)
	Delete(ctx context.Context, id string) error
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	CORS CORSConfig
	// Metrics records per-route request metrics when non-nil
	Metrics *Metrics
}

// Handler provides HTTP handlers for todo operations.
type Handler struct {
	config   HandlerConfig
	service  Service
	validate *validator.Validate
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:   *config,
		service:  service,
		validate: validator.New(),
	}
}

// Router returns an http.Handler serving the todo resource.
//
// The resource is reachable as /todos or behind one arbitrary prefix
// segment such as /v1/todos. An empty prefix segment (//todos) does not
// match. Segments after the id are ignored. Anything
// that does not match, including unsupported methods, is a 404 with an
// empty body.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	if h.config.Metrics != nil {
		r.Use(h.config.Metrics.Middleware)
	}

	r.Use(middleware.Recoverer)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)

	r.Route("/todos", h.todoRoutes)
	r.Route("/{prefix}/todos", func(r chi.Router) {
		r.Use(requirePrefix)
		h.todoRoutes(r)
	})

	return r
}

// requirePrefix rejects an empty prefix segment, as in //todos.
func requirePrefix(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "prefix") == "" {
			handleNotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) todoRoutes(r chi.Router) {
	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)

	r.Get("/", h.handleList)
	r.Get("/*", h.handleList)

	r.Post("/", h.handleCreate)
	r.Post("/*", h.handleCreate)

	r.Put("/{id}", h.handleUpdate)
	r.Put("/{id}/*", h.handleUpdate)

	r.Delete("/{id}", h.handleDelete)
	r.Delete("/{id}/*", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	drainBody(r)

	items, err := h.service.List(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	if items == nil {
		items = []kvtodo.TodoItem{}
	}

	_ = WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	title, err := h.decodeTitle(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	if _, err := h.service.Create(r.Context(), title); err != nil {
		HandleError(w, err)
		return
	}

	WriteText(w, http.StatusOK, "Task created")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		handleNotFound(w, r)
		return
	}

	title, err := h.decodeTitle(r)
	if err != nil {
		HandleError(w, err)
		return
	}

	if _, err := h.service.Update(r.Context(), id, title); err != nil {
		HandleError(w, err)
		return
	}

	WriteText(w, http.StatusOK, "Task updated")
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	drainBody(r)

	id := chi.URLParam(r, "id")
	if id == "" {
		writeNotFound(w)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		HandleError(w, err)
		return
	}

	WriteText(w, http.StatusOK, "Task deleted")
}

// decodeTitle reads the whole body, decodes it into a TodoRequest and
// returns the cleaned title.
func (h *Handler) decodeTitle(r *http.Request) (string, error) {
	body, err := ReadBody(r.Body)
	if err != nil {
		return "", fmt.Errorf("read request body: %w: %w", kvtodo.ErrInternal, err)
	}

	var req kvtodo.TodoRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", fmt.Errorf("decode request body: %w: %w", kvtodo.ErrInvalidInput, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return "", fmt.Errorf("validate request body: %w: %w", kvtodo.ErrInvalidInput, err)
	}

	return kvtodo.CleanTitle(*req.Title), nil
}
