package http

import (
	"errors"
	"fmt"
	"net/http"

	domproduct "example.com/exam-crud/internal/domain/product"
)

const exportFileName = "mis_productos.json"

func notFoundProduct(id int64) map[error]string {
	return map[error]string{domproduct.ErrProductNotFound: fmt.Sprintf("Producto con id=%d no encontrado", id)}
}

func productListFilter(r *http.Request) (domproduct.ListFilter, error) {
	filter := domproduct.ListFilter{Search: searchTerm(r)}

	if raw := r.URL.Query().Get("talla"); raw != "" {
		size, ok := domproduct.ParseSize(raw)
		if !ok {
			return filter, errors.New("El filtro 'talla' debe ser: S, M, L, XL, XXL")
		}
		filter.Size = size
	}

	order, ok := domproduct.ParseOrder(r.URL.Query().Get("orden"))
	if !ok {
		return filter, errors.New("El parámetro 'orden' debe ser: id_asc, id_desc, precio_asc, precio_desc")
	}
	filter.Order = order
	return filter, nil
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("id"); raw != "" {
		a.respondProduct(w, r, raw)
		return
	}

	filter, err := productListFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	products, err := a.productSvc.List(r.Context(), filter)
	if err != nil {
		a.handleDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(products))
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	a.respondProduct(w, r, locatorID(r))
}

func (a *API) respondProduct(w http.ResponseWriter, r *http.Request, raw string) {
	id, err := parseID(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := a.productSvc.Get(r.Context(), id)
	if err != nil {
		a.handleDomainError(w, err, notFoundProduct(id))
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidJSON.Error())
		return
	}

	d := req.draft()
	p, err := a.productSvc.Create(r.Context(), d)
	if err != nil {
		code := d.Normalize().Code
		a.handleDomainError(w, err, map[error]string{
			domproduct.ErrCodeTaken: fmt.Sprintf("Ya existe un producto con el código '%s'", code),
		})
		return
	}
	respondOK(w, http.StatusCreated, "Producto creado correctamente", p.ID, mapProduct(p))
}

// handleUpdateProduct checks that the product exists before reading the
// body. When the id only comes in the body, the body is read first.
func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
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

	if _, err := a.productSvc.Get(r.Context(), id); err != nil {
		a.handleDomainError(w, err, notFoundProduct(id))
		return
	}

	if !decoded {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, errInvalidJSON.Error())
			return
		}
	}

	d := req.draft()
	p, err := a.productSvc.Update(r.Context(), id, d)
	if err != nil {
		msgs := notFoundProduct(id)
		msgs[domproduct.ErrCodeTaken] = fmt.Sprintf("El código '%s' ya está asignado a otro producto", d.Normalize().Code)
		a.handleDomainError(w, err, msgs)
		return
	}
	respondOK(w, http.StatusOK, fmt.Sprintf("Producto id=%d actualizado correctamente", id), 0, mapProduct(p))
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	raw := locatorID(r)
	if raw == "" {
		var req productRequest
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

	p, err := a.productSvc.Delete(r.Context(), id)
	if err != nil {
		a.handleDomainError(w, err, notFoundProduct(id))
		return
	}
	respondOK(w, http.StatusOK, fmt.Sprintf("Producto '%s' (id=%d) eliminado correctamente", p.Name, id), 0, nil)
}

func (a *API) handleProductSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := productListFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sum, err := a.productSvc.Summary(r.Context(), filter)
	if err != nil {
		a.handleDomainError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cantidad": sum.Count,
		"total":    sum.Total.StringFixed(2),
	})
}

func (a *API) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := productListFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	products, err := a.productSvc.List(r.Context(), filter)
	if err != nil {
		a.handleDomainError(w, err, nil)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	writeJSON(w, http.StatusOK, mapProducts(products))
}

type importFailure struct {
	Code    string `json:"codigo"`
	Message string `json:"mensaje"`
}

func (a *API) handleImportProducts(w http.ResponseWriter, r *http.Request) {
	var reqs []productRequest
	if err := decodeJSON(r, &reqs); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidJSON.Error())
		return
	}

	drafts := make([]domproduct.Draft, 0, len(reqs))
	for _, req := range reqs {
		drafts = append(drafts, req.draft())
	}
	res, err := a.productSvc.Import(r.Context(), drafts)
	if err != nil {
		a.handleDomainError(w, err, nil)
		return
	}

	failed := make([]importFailure, 0, len(res.Failed))
	for _, f := range res.Failed {
		failed = append(failed, importFailure{Code: f.Code, Message: f.Message})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"error":      false,
		"mensaje":    fmt.Sprintf("Importación completada: %d insertados, %d con errores", res.Inserted, len(failed)),
		"insertados": res.Inserted,
		"fallidos":   failed,
	})
}
