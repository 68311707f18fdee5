package sqlquery

import (
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "example.com/exam-crud/internal/domain/product"
	domuser "example.com/exam-crud/internal/domain/user"
)

func TestProductList_NoFilter(t *testing.T) {
	query, args, err := MySQL.ProductList(domproduct.ListFilter{}).ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT id, codigo, nombre, talla, precio, email_creador FROM productos ORDER BY id ASC", query)
	require.Empty(t, args)
}

func TestProductList_SearchAndSize(t *testing.T) {
	f := domproduct.ListFilter{Search: " Cam_ ", Size: domproduct.SizeM, Order: domproduct.OrderPriceDesc}
	query, args, err := MySQL.ProductList(f).ToSql()
	require.NoError(t, err)
	require.Contains(t, query, "WHERE talla = ?")
	require.Contains(t, query, "CAST(id AS CHAR) LIKE ?")
	require.Contains(t, query, "LOWER(nombre) LIKE ?")
	require.Contains(t, query, "ORDER BY precio DESC, id ASC")
	require.Equal(t, []any{"M", `%cam\_%`, `%cam\_%`, `%cam\_%`}, args)
}

func TestProductList_PostgresPlaceholders(t *testing.T) {
	f := domproduct.ListFilter{Search: "x", Size: domproduct.SizeL}
	query, _, err := Postgres.ProductList(f).ToSql()
	require.NoError(t, err)
	require.Contains(t, query, "talla = $1")
	require.Contains(t, query, "CAST(id AS TEXT) LIKE $2")
	require.NotContains(t, query, "?")
}

func TestUserList_Order(t *testing.T) {
	cases := map[domuser.Order]string{
		"":                    "ORDER BY id DESC",
		domuser.OrderIDAsc:    "ORDER BY id ASC",
		domuser.OrderNameAsc:  "ORDER BY LOWER(nombre) ASC, id ASC",
		domuser.OrderNameDesc: "ORDER BY LOWER(nombre) DESC, id ASC",
	}
	for order, want := range cases {
		query, _, err := MySQL.UserList(domuser.ListFilter{Order: order}).ToSql()
		require.NoError(t, err)
		require.Contains(t, query, want)
	}
}

func TestByColumn(t *testing.T) {
	query, args, err := Postgres.UserByColumn("correo", "ana@example.com").ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT id, nombre, correo, movil, edad, idioma FROM usuarios WHERE correo = $1", query)
	require.Equal(t, []any{"ana@example.com"}, args)
}
