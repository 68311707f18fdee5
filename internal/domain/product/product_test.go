package product

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/exam-crud/internal/domain/validation"
)

func validDraft() Draft {
	return Draft{
		Code:         "CAM000001",
		Name:         "Camiseta básica",
		Size:         "m",
		Price:        "19.95",
		CreatorEmail: "profe@instituto.es",
	}
}

func messages(t *testing.T, err error) []string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	return verr.Messages
}

func TestDraftValidate_CodeLength(t *testing.T) {
	d := validDraft()
	require.NoError(t, d.Validate())

	d.Code = "CAM00001"
	require.Equal(t, []string{"El campo 'codigo' debe tener exactamente 9 caracteres"}, messages(t, d.Validate()))
}

func TestDraftValidate_Price(t *testing.T) {
	tests := []struct {
		price string
		msg   string
	}{
		{"", "El campo 'precio' es obligatorio"},
		{"abc", "El campo 'precio' debe ser un número válido"},
		{"0", "El campo 'precio' debe ser mayor que 0"},
		{"-4.5", "El campo 'precio' debe ser mayor que 0"},
		{"0x1p2", "El campo 'precio' debe ser un número válido"},
		{"Inf", "El campo 'precio' debe ser un número válido"},
		{"NaN", "El campo 'precio' debe ser un número válido"},
		{"1e400", "El campo 'precio' debe ser un número válido"},
		{"-1e-3", "El campo 'precio' debe ser mayor que 0"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			d := validDraft()
			d.Price = tt.price
			require.Equal(t, []string{tt.msg}, messages(t, d.Validate()))
		})
	}
}

func TestDraftValidate_PriceNumberForms(t *testing.T) {
	for _, price := range []string{".5", "5.", "1e2", "1E-1", "12.50"} {
		t.Run(price, func(t *testing.T) {
			d := validDraft()
			d.Price = price
			require.NoError(t, d.Validate())

			p, err := d.Build()
			require.NoError(t, err)
			require.Greater(t, p.Price, 0.0)
		})
	}
}

func TestDraftValidate_ReportsFieldsInOrder(t *testing.T) {
	err := Draft{Size: "XS", Name: "  ", CreatorEmail: "nope"}.Validate()
	require.Equal(t, []string{
		"El campo 'codigo' es obligatorio",
		"El campo 'nombre' es obligatorio",
		"El campo 'talla' debe ser: S, M, L, XL, XXL",
		"El campo 'precio' es obligatorio",
		"El campo 'email_creador' no tiene formato de email válido",
	}, messages(t, err))
}

func TestDraftBuild_Normalizes(t *testing.T) {
	d := validDraft()
	d.Code = "  CAM000001 "
	d.Size = " xl "

	p, err := d.Build()
	require.NoError(t, err)
	require.Equal(t, "CAM000001", p.Code)
	require.Equal(t, SizeXL, p.Size)
	require.Equal(t, 19.95, p.Price)
}

func TestDraftValidate_NameTooLong(t *testing.T) {
	d := validDraft()
	long := make([]byte, MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	d.Name = string(long)
	require.Equal(t, []string{"El campo 'nombre' no puede superar los 100 caracteres"}, messages(t, d.Validate()))
}

func TestListFilter_Match(t *testing.T) {
	p := &Product{ID: 42, Code: "PAN000042", Name: "Pantalón Vaquero", Size: SizeL}

	require.True(t, ListFilter{}.Match(p))
	require.True(t, ListFilter{Search: "42"}.Match(p))
	require.True(t, ListFilter{Search: "pan0"}.Match(p))
	require.True(t, ListFilter{Search: "VAQUERO"}.Match(p))
	require.False(t, ListFilter{Search: "falda"}.Match(p))
	require.True(t, ListFilter{Size: SizeL}.Match(p))
	require.False(t, ListFilter{Size: SizeS}.Match(p))
}

func TestSort(t *testing.T) {
	products := []*Product{
		{ID: 1, Price: 30},
		{ID: 2, Price: 10},
		{ID: 3, Price: 20},
	}

	ids := func() []int64 {
		out := make([]int64, 0, len(products))
		for _, p := range products {
			out = append(out, p.ID)
		}
		return out
	}

	Sort(products, OrderPriceAsc)
	require.Equal(t, []int64{2, 3, 1}, ids())

	Sort(products, OrderPriceDesc)
	require.Equal(t, []int64{1, 3, 2}, ids())

	Sort(products, OrderIDDesc)
	require.Equal(t, []int64{3, 2, 1}, ids())

	Sort(products, OrderIDAsc)
	require.Equal(t, []int64{1, 2, 3}, ids())
}

func TestTotal_IsExact(t *testing.T) {
	total := Total([]*Product{{Price: 0.1}, {Price: 0.2}})
	require.Equal(t, "0.30", total.StringFixed(2))
	require.True(t, Total(nil).IsZero())
}

func TestParseOrder(t *testing.T) {
	o, ok := ParseOrder("")
	require.True(t, ok)
	require.Equal(t, OrderIDAsc, o)

	o, ok = ParseOrder("PRECIO_DESC")
	require.True(t, ok)
	require.Equal(t, OrderPriceDesc, o)

	_, ok = ParseOrder("nombre")
	require.False(t, ok)
}
