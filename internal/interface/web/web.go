// Package web renders the product and user tables as HTML.
package web

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	domproduct "example.com/exam-crud/internal/domain/product"
	domuser "example.com/exam-crud/internal/domain/user"
	productuc "example.com/exam-crud/internal/usecase/product"
	useruc "example.com/exam-crud/internal/usecase/user"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("web").Funcs(template.FuncMap{
	"price": formatPrice,
}).ParseFS(templateFS, "templates/*.html"))

func formatPrice(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(2) + " €"
}

// RenderProductRows writes only the <tr> elements of the product table.
func RenderProductRows(w io.Writer, products []*domproduct.Product) error {
	return templates.ExecuteTemplate(w, "product_rows", products)
}

func RenderUserRows(w io.Writer, users []*domuser.User) error {
	return templates.ExecuteTemplate(w, "user_rows", users)
}

type Handler struct {
	products *productuc.Service
	users    *useruc.Service
	log      logrus.FieldLogger
}

func NewHandler(products *productuc.Service, users *useruc.Service, log logrus.FieldLogger) *Handler {
	return &Handler{products: products, users: users, log: log}
}

type productsPage struct {
	Search   string
	Size     domproduct.Size
	Order    domproduct.Order
	Sizes    []domproduct.Size
	Products []*domproduct.Product
	Total    string
}

// Products renders the product table. Unknown filter values are ignored
// rather than rejected, as a browser form would send them.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domproduct.ListFilter{Search: searchTerm(r)}
	if size, ok := domproduct.ParseSize(q.Get("talla")); ok {
		filter.Size = size
	}
	if order, ok := domproduct.ParseOrder(q.Get("orden")); ok {
		filter.Order = order
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "products_page", productsPage{
		Search:   filter.Search,
		Size:     filter.Size,
		Order:    filter.Order,
		Sizes:    domproduct.Sizes,
		Products: products,
		Total:    domproduct.Total(products).StringFixed(2),
	})
}

// searchTerm reads ?q= and the older ?buscar= alias, like the JSON API.
func searchTerm(r *http.Request) string {
	q := r.URL.Query()
	if term := q.Get("q"); term != "" {
		return term
	}
	return q.Get("buscar")
}

type usersPage struct {
	Search string
	Users  []*domuser.User
}

func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	search := searchTerm(r)
	users, err := h.users.ListUsers(r.Context(), domuser.ListFilter{Search: search, Order: domuser.OrderIDDesc})
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, "users_page", usersPage{Search: search, Users: users})
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.WithError(err).WithField("template", name).Error("render failed")
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.log.WithError(err).Error("page data failed")
	http.Error(w, "No se pudieron cargar los datos", http.StatusInternalServerError)
}
