package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	domuser "example.com/exam-crud/internal/domain/user"
	useruc "example.com/exam-crud/internal/usecase/user"
)

func validUserBody() map[string]any {
	return map[string]any{
		"nombre": "Pablo",
		"correo": "Pablo@Example.com",
		"movil":  "611 222 333",
		"edad":   19,
		"idioma": "Francés",
	}
}

func (e *testEnv) seedUser(t *testing.T, name, email string) *domuser.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), &domuser.User{
		Name: name, Email: email, Mobile: "600000000", Age: 30, Language: "Inglés",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateUser_Returns201(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodPost, "/api/v1/users", validUserBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	datos := decodeObject(t, rec)["datos"].(map[string]any)
	require.Equal(t, "pablo@example.com", datos["correo"])
	require.Equal(t, "611222333", datos["movil"])
	require.Equal(t, float64(19), datos["edad"])
}

func TestCreateUser_Validation(t *testing.T) {
	env := setupAPI(t)
	payload := validUserBody()
	payload["edad"] = "doce"
	payload["movil"] = "12345"

	rec := env.do(t, http.MethodPost, "/api/v1/users", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []any{
		"El campo 'movil' debe tener 9 dígitos",
		"El campo 'edad' debe ser un número entero",
	}, decodeObject(t, rec)["errores"])
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "Pablo", "pablo@example.com")

	rec := env.do(t, http.MethodPost, "/api/v1/users", validUserBody())
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Ya existe un usuario con el correo 'pablo@example.com'", decodeObject(t, rec)["mensaje"])
}

func TestListUsers_NewestFirst(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "Ana", "ana@example.com")
	env.seedUser(t, "Bea", "bea@example.com")

	rec := env.do(t, http.MethodGet, "/api/v1/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeArray(t, rec)
	require.Equal(t, "Bea", list[0]["nombre"])

	rec = env.do(t, http.MethodGet, "/api/v1/users?orden=nombre_asc&q=example", nil)
	list = decodeArray(t, rec)
	require.Equal(t, "Ana", list[0]["nombre"])

	rec = env.do(t, http.MethodGet, "/api/v1/users?id=2", nil)
	require.Equal(t, "Bea", decodeObject(t, rec)["nombre"])
}

func TestUpdateAndDeleteUser(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "Ana", "ana@example.com")

	payload := validUserBody()
	payload["id"] = "1"
	rec := env.do(t, http.MethodPut, "/api/v1/users", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Usuario id=1 actualizado correctamente", decodeObject(t, rec)["mensaje"])

	rec = env.do(t, http.MethodDelete, "/api/v1/users/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Usuario 'Pablo' (id=1) eliminado correctamente", decodeObject(t, rec)["mensaje"])

	rec = env.do(t, http.MethodGet, "/api/v1/users/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Usuario con id=1 no encontrado", decodeObject(t, rec)["mensaje"])
}

func TestUserActions(t *testing.T) {
	env := setupAPI(t)

	form := url.Values{
		"accion": {"guardar"},
		"nombre": {"Eva"},
		"correo": {"eva@example.com"},
		"movil":  {"600111222"},
		"edad":   {"41"},
		"idioma": {"Italiano"},
	}
	rec := env.postForm(t, "/api/v1/users/acciones", form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "Usuario creado", decodeObject(t, rec)["mensaje"])

	rec = env.postForm(t, "/api/v1/users/acciones", form)
	require.Equal(t, http.StatusConflict, rec.Code)

	form.Set("id", "1")
	form.Set("idioma", "Portugués")
	rec = env.postForm(t, "/api/v1/users/acciones", form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Usuario actualizado", decodeObject(t, rec)["mensaje"])

	rec = env.do(t, http.MethodGet, "/api/v1/users/acciones?accion=listar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeArray(t, rec)
	require.Len(t, list, 1)
	require.Equal(t, "Portugués", list[0]["idioma"])

	rec = env.postForm(t, "/api/v1/users/acciones", url.Values{"accion": {"eliminar"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Falta el ID", decodeObject(t, rec)["mensaje"])

	rec = env.postForm(t, "/api/v1/users/acciones", url.Values{"accion": {"eliminar"}, "id": {"1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Usuario eliminado", decodeObject(t, rec)["mensaje"])

	rec = env.postForm(t, "/api/v1/users/acciones", url.Values{"accion": {"borrar"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Acción no válida o no especificada", decodeObject(t, rec)["mensaje"])

	rec = env.do(t, http.MethodPut, "/api/v1/users/acciones", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type brokenUserRepo struct {
	domuser.Repository
}

func (brokenUserRepo) List(context.Context, domuser.ListFilter) ([]*domuser.User, error) {
	return nil, errors.New("table usuarios doesn't exist")
}

func TestUserActions_LogsWithInjectedLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := NewUserActionsHandler(useruc.NewService(brokenUserRepo{}), log)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/acciones?accion=listar", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Error SQL: table usuarios doesn't exist", decodeObject(t, rec)["mensaje"])
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.Equal(t, "user action failed", hook.LastEntry().Message)
}
