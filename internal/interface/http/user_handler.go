package http

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	dom "example.com/exam-crud/internal/domain/user"
	"example.com/exam-crud/internal/domain/validation"
	uc "example.com/exam-crud/internal/usecase/user"
)

// UserActionsHandler is the single-endpoint variant of the users API: the
// form field "accion" picks listar, guardar or eliminar. Fields come from
// the query string or a urlencoded/multipart form.
type UserActionsHandler struct {
	svc *uc.Service
	log logrus.FieldLogger
}

func NewUserActionsHandler(svc *uc.Service, log logrus.FieldLogger) *UserActionsHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UserActionsHandler{svc: svc, log: log}
}

func (h *UserActionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}

	switch r.FormValue("accion") {
	case "listar":
		users, err := h.svc.ListUsers(r.Context(), dom.ListFilter{Search: r.FormValue("buscar")})
		if err != nil {
			h.handleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapUsers(users))

	case "guardar":
		d := dom.Draft{
			Name:     r.FormValue("nombre"),
			Email:    r.FormValue("correo"),
			Mobile:   r.FormValue("movil"),
			Age:      r.FormValue("edad"),
			Language: r.FormValue("idioma"),
		}

		raw := r.FormValue("id")
		if raw == "" {
			u, err := h.svc.CreateUser(r.Context(), d)
			if err != nil {
				h.handleError(w, err)
				return
			}
			respondOK(w, http.StatusCreated, "Usuario creado", u.ID, mapUser(u))
			return
		}

		id, err := parseID(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		u, err := h.svc.UpdateUser(r.Context(), id, d)
		if err != nil {
			h.handleError(w, err)
			return
		}
		respondOK(w, http.StatusOK, "Usuario actualizado", 0, mapUser(u))

	case "eliminar":
		raw := r.FormValue("id")
		if raw == "" {
			respondError(w, http.StatusBadRequest, "Falta el ID")
			return
		}
		id, err := parseID(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := h.svc.DeleteUser(r.Context(), id); err != nil {
			h.handleError(w, err)
			return
		}
		respondOK(w, http.StatusOK, "Usuario eliminado", 0, nil)

	default:
		respondError(w, http.StatusBadRequest, "Acción no válida o no especificada")
	}
}

func (h *UserActionsHandler) handleError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: true, Message: "Errores de validación", Errors: verr.Messages})
	case errors.Is(err, dom.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, dom.ErrEmailTaken):
		respondError(w, http.StatusConflict, "Ese correo ya está registrado")
	default:
		h.log.WithError(err).Error("user action failed")
		respondError(w, http.StatusInternalServerError, "Error SQL: "+err.Error())
	}
}
