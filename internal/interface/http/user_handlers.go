package http

import (
	"errors"
	"fmt"
	"net/http"

	domuser "example.com/exam-crud/internal/domain/user"
)

func notFoundUser(id int64) map[error]string {
	return map[error]string{domuser.ErrUserNotFound: fmt.Sprintf("Usuario con id=%d no encontrado", id)}
}

func emailTaken(d domuser.Draft) map[error]string {
	return map[error]string{domuser.ErrEmailTaken: fmt.Sprintf("Ya existe un usuario con el correo '%s'", d.Normalize().Email)}
}

func userListFilter(r *http.Request) (domuser.ListFilter, error) {
	order, ok := domuser.ParseOrder(r.URL.Query().Get("orden"))
	if !ok {
		return domuser.ListFilter{}, errors.New("El parámetro 'orden' debe ser: id_desc, id_asc, nombre_asc, nombre_desc")
	}
	return domuser.ListFilter{Search: searchTerm(r), Order: order}, nil
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("id"); raw != "" {
		a.respondUser(w, r, raw)
		return
	}

	filter, err := userListFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	users, err := a.userSvc.ListUsers(r.Context(), filter)
	if err != nil {
		a.handleDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, mapUsers(users))
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	a.respondUser(w, r, locatorID(r))
}

func (a *API) respondUser(w http.ResponseWriter, r *http.Request, raw string) {
	id, err := parseID(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := a.userSvc.GetUser(r.Context(), id)
	if err != nil {
		a.handleDomainError(w, err, notFoundUser(id))
		return
	}
	writeJSON(w, http.StatusOK, mapUser(u))
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidJSON.Error())
		return
	}

	d := req.draft()
	u, err := a.userSvc.CreateUser(r.Context(), d)
	if err != nil {
		a.handleDomainError(w, err, emailTaken(d))
		return
	}
	respondOK(w, http.StatusCreated, "Usuario creado correctamente", u.ID, mapUser(u))
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	decoded := false

	raw := locatorID(r)
	if raw == "" {
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		decoded = true
		raw = string(req.ID)
	}
	if raw == "" {
		respondError(w, http.StatusBadRequest, errMissingID.Error())
		return
	}
	id, err := parseID(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.userSvc.GetUser(r.Context(), id); err != nil {
		a.handleDomainError(w, err, notFoundUser(id))
		return
	}

	if !decoded {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, errInvalidJSON.Error())
			return
		}
	}

	d := req.draft()
	u, err := a.userSvc.UpdateUser(r.Context(), id, d)
	if err != nil {
		msgs := emailTaken(d)
		msgs[domuser.ErrUserNotFound] = notFoundUser(id)[domuser.ErrUserNotFound]
		a.handleDomainError(w, err, msgs)
		return
	}
	respondOK(w, http.StatusOK, fmt.Sprintf("Usuario id=%d actualizado correctamente", id), 0, mapUser(u))
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	raw := locatorID(r)
	if raw == "" {
		var req userRequest
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		raw = string(req.ID)
	}
	if raw == "" {
		respondError(w, http.StatusBadRequest, errMissingID.Error())
		return
	}
	id, err := parseID(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := a.userSvc.DeleteUser(r.Context(), id)
	if err != nil {
		a.handleDomainError(w, err, notFoundUser(id))
		return
	}
	respondOK(w, http.StatusOK, fmt.Sprintf("Usuario '%s' (id=%d) eliminado correctamente", u.Name, id), 0, nil)
}
