package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	domproduct "example.com/exam-crud/internal/domain/product"
	domuser "example.com/exam-crud/internal/domain/user"
	"example.com/exam-crud/internal/domain/validation"
	productuc "example.com/exam-crud/internal/usecase/product"
	useruc "example.com/exam-crud/internal/usecase/user"
)

// Pages serves the HTML tables next to the JSON API.
type Pages interface {
	Products(w http.ResponseWriter, r *http.Request)
	Users(w http.ResponseWriter, r *http.Request)
}

type API struct {
	productSvc *productuc.Service
	userSvc    *useruc.Service
	ping       func(ctx context.Context) error
	pages      Pages
	log        logrus.FieldLogger
}

type Dependencies struct {
	ProductService *productuc.Service
	UserService    *useruc.Service
	// Ping reports storage health for /health. Nil means always healthy.
	Ping   func(ctx context.Context) error
	Pages  Pages
	Logger logrus.FieldLogger
}

func NewAPI(deps Dependencies) *API {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	ping := deps.Ping
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	return &API{
		productSvc: deps.ProductService,
		userSvc:    deps.UserService,
		ping:       ping,
		pages:      deps.Pages,
		log:        log,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(a.log))
	r.Use(chimw.Recoverer)
	r.Use(cors)

	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Ruta no encontrada: "+r.URL.Path)
	})

	r.Get("/health", a.handleHealth)

	if a.pages != nil {
		r.Get("/", a.pages.Products)
		r.Get("/usuarios", a.pages.Users)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(rr chi.Router) {
			rr.Get("/", a.handleListProducts)
			rr.Post("/", a.handleCreateProduct)
			rr.Put("/", a.handleUpdateProduct)
			rr.Delete("/", a.handleDeleteProduct)
			rr.Get("/summary", a.handleProductSummary)
			rr.Get("/export", a.handleExportProducts)
			rr.Post("/import", a.handleImportProducts)
			rr.Get("/{id}", a.handleGetProduct)
			rr.Put("/{id}", a.handleUpdateProduct)
			rr.Delete("/{id}", a.handleDeleteProduct)
		})

		r.Route("/users", func(rr chi.Router) {
			rr.Handle("/acciones", NewUserActionsHandler(a.userSvc, a.log))
			rr.Get("/", a.handleListUsers)
			rr.Post("/", a.handleCreateUser)
			rr.Put("/", a.handleUpdateUser)
			rr.Delete("/", a.handleDeleteUser)
			rr.Get("/{id}", a.handleGetUser)
			rr.Put("/{id}", a.handleUpdateUser)
			rr.Delete("/{id}", a.handleDeleteUser)
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.ping(r.Context()); err != nil {
		a.log.WithError(err).Error("health check failed")
		respondError(w, http.StatusInternalServerError, "Error de conexión: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var (
	errEmptyBody   = errors.New("empty body")
	errInvalidJSON = errors.New("El cuerpo de la petición no es JSON válido")
	errMissingID   = errors.New("Debes proporcionar ?id=X en la URL")
)

// decodeJSON reports errEmptyBody for a body with no content and
// errInvalidJSON for anything that does not decode into dst.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return errInvalidJSON
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   bool     `json:"error"`
	Message string   `json:"mensaje"`
	Errors  []string `json:"errores,omitempty"`
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: true, Message: message})
}

type successResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"mensaje"`
	ID      int64  `json:"id,omitempty"`
	Data    any    `json:"datos,omitempty"`
}

func respondOK(w http.ResponseWriter, status int, message string, id int64, data any) {
	writeJSON(w, status, successResponse{Message: message, ID: id, Data: data})
}

// parseID accepts a positive integer in decimal form.
func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("El id '%s' no es válido", raw)
	}
	return id, nil
}

// locatorID returns the id given in the path or the query string.
func locatorID(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	return r.URL.Query().Get("id")
}

// searchTerm reads ?q= and its older alias ?buscar=.
func searchTerm(r *http.Request) string {
	q := r.URL.Query()
	if term := q.Get("q"); term != "" {
		return term
	}
	return q.Get("buscar")
}

var defaultMessages = map[error]string{
	domproduct.ErrProductNotFound: "Producto no encontrado",
	domproduct.ErrCodeTaken:       "Ya existe un producto con ese código",
	domuser.ErrUserNotFound:       "Usuario no encontrado",
	domuser.ErrEmailTaken:         "Ya existe un usuario con ese correo",
}

// handleDomainError maps service errors to status codes. messages overrides
// the default text for a sentinel, e.g. to name the offending id.
func (a *API) handleDomainError(w http.ResponseWriter, err error, messages map[error]string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: true, Message: "Errores de validación", Errors: verr.Messages})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domuser.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domproduct.ErrCodeTaken),
		errors.Is(err, domuser.ErrEmailTaken):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		a.log.WithError(err).Error("request failed")
		respondError(w, status, "Error en la base de datos: "+err.Error())
		return
	}
	respondError(w, status, messageFor(err, messages))
}

func messageFor(err error, overrides map[error]string) string {
	for sentinel, msg := range overrides {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	for sentinel, msg := range defaultMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return err.Error()
}
