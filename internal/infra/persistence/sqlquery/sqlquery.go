// Package sqlquery builds the listing statements shared by the MySQL and
// Postgres stores. Only placeholder format and the id-to-text cast differ.
package sqlquery

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	domproduct "example.com/exam-crud/internal/domain/product"
	domuser "example.com/exam-crud/internal/domain/user"
)

var (
	ProductColumns = []string{"id", "codigo", "nombre", "talla", "precio", "email_creador"}
	UserColumns    = []string{"id", "nombre", "correo", "movil", "edad", "idioma"}
)

type Dialect struct {
	Builder sq.StatementBuilderType
	IDText  string
}

var (
	MySQL    = Dialect{Builder: sq.StatementBuilder.PlaceholderFormat(sq.Question), IDText: "CAST(id AS CHAR)"}
	Postgres = Dialect{Builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar), IDText: "CAST(id AS TEXT)"}
)

func (d Dialect) ProductByColumn(column string, value any) sq.SelectBuilder {
	return d.Builder.Select(ProductColumns...).From("productos").Where(sq.Eq{column: value})
}

func (d Dialect) ProductList(f domproduct.ListFilter) sq.SelectBuilder {
	q := d.Builder.Select(ProductColumns...).From("productos")
	if f.Size != "" {
		q = q.Where(sq.Eq{"talla": string(f.Size)})
	}
	if like, ok := LikePattern(f.Search); ok {
		q = q.Where(sq.Or{
			sq.Like{d.IDText: like},
			sq.Like{"LOWER(codigo)": like},
			sq.Like{"LOWER(nombre)": like},
		})
	}
	return q.OrderBy(productOrder(f.Order)...)
}

func productOrder(o domproduct.Order) []string {
	switch o {
	case domproduct.OrderIDDesc:
		return []string{"id DESC"}
	case domproduct.OrderPriceAsc:
		return []string{"precio ASC", "id ASC"}
	case domproduct.OrderPriceDesc:
		return []string{"precio DESC", "id ASC"}
	}
	return []string{"id ASC"}
}

func (d Dialect) UserByColumn(column string, value any) sq.SelectBuilder {
	return d.Builder.Select(UserColumns...).From("usuarios").Where(sq.Eq{column: value})
}

func (d Dialect) UserList(f domuser.ListFilter) sq.SelectBuilder {
	q := d.Builder.Select(UserColumns...).From("usuarios")
	if like, ok := LikePattern(f.Search); ok {
		q = q.Where(sq.Or{
			sq.Like{d.IDText: like},
			sq.Like{"LOWER(nombre)": like},
			sq.Like{"LOWER(correo)": like},
		})
	}
	return q.OrderBy(userOrder(f.Order)...)
}

func userOrder(o domuser.Order) []string {
	switch o {
	case domuser.OrderIDAsc:
		return []string{"id ASC"}
	case domuser.OrderNameAsc:
		return []string{"LOWER(nombre) ASC", "id ASC"}
	case domuser.OrderNameDesc:
		return []string{"LOWER(nombre) DESC", "id ASC"}
	}
	return []string{"id DESC"}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern lower-cases the term so it can be matched against LOWER(col).
func LikePattern(search string) (string, bool) {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return "", false
	}
	return "%" + likeEscaper.Replace(term) + "%", true
}
