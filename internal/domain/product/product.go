package product

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"example.com/exam-crud/internal/domain/validation"
)

const (
	CodeLength    = 9
	MaxNameLength = 100
)

type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

var Sizes = []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// ParseSize accepts any case and surrounding spaces.
func ParseSize(s string) (Size, bool) {
	size := Size(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Sizes {
		if size == known {
			return size, true
		}
	}
	return "", false
}

type Product struct {
	ID           int64
	Code         string
	Name         string
	Size         Size
	Price        float64
	CreatorEmail string
}

// Draft is a submitted product form before normalization. Price stays text
// because forms send it as a string.
type Draft struct {
	Code         string
	Name         string
	Size         string
	Price        string
	CreatorEmail string
}

func (d Draft) Normalize() Draft {
	return Draft{
		Code:         strings.TrimSpace(d.Code),
		Name:         strings.TrimSpace(d.Name),
		Size:         strings.ToUpper(strings.TrimSpace(d.Size)),
		Price:        strings.TrimSpace(d.Price),
		CreatorEmail: strings.TrimSpace(d.CreatorEmail),
	}
}

func sizeList() string {
	names := make([]string, len(Sizes))
	for i, s := range Sizes {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Validate normalizes the draft and checks codigo, nombre, talla, precio and
// email_creador in that order.
func (d Draft) Validate() error {
	n := d.Normalize()
	return validation.Check(
		validation.Field{Value: n.Code, Rules: []validation.Rule{
			validation.Required("codigo"),
			{Tag: "len=" + strconv.Itoa(CodeLength), Message: "El campo 'codigo' debe tener exactamente 9 caracteres"},
		}},
		validation.Field{Value: n.Name, Rules: []validation.Rule{
			validation.Required("nombre"),
			{Tag: "max=" + strconv.Itoa(MaxNameLength), Message: "El campo 'nombre' no puede superar los 100 caracteres"},
		}},
		validation.Field{Value: n.Size, Rules: []validation.Rule{
			validation.Required("talla"),
			{Tag: "oneof=" + strings.ReplaceAll(sizeList(), ",", ""), Message: "El campo 'talla' debe ser: " + sizeList()},
		}},
		validation.Field{Value: n.Price, Rules: []validation.Rule{
			validation.Required("precio"),
			{Tag: "decimalnum", Message: "El campo 'precio' debe ser un número válido"},
			{Tag: "positive", Message: "El campo 'precio' debe ser mayor que 0"},
		}},
		validation.Field{Value: n.CreatorEmail, Rules: []validation.Rule{
			validation.Required("email_creador"),
			{Tag: "email", Message: "El campo 'email_creador' no tiene formato de email válido"},
		}},
	)
}

// Build validates the draft and returns the product it describes.
func (d Draft) Build() (*Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	n := d.Normalize()
	price, err := strconv.ParseFloat(n.Price, 64)
	if err != nil {
		return nil, err
	}
	return &Product{
		Code:         n.Code,
		Name:         n.Name,
		Size:         Size(n.Size),
		Price:        price,
		CreatorEmail: n.CreatorEmail,
	}, nil
}

// DraftOf turns a stored product back into a form, e.g. for re-import.
func DraftOf(p *Product) Draft {
	return Draft{
		Code:         p.Code,
		Name:         p.Name,
		Size:         string(p.Size),
		Price:        strconv.FormatFloat(p.Price, 'f', -1, 64),
		CreatorEmail: p.CreatorEmail,
	}
}

type Order string

const (
	OrderIDAsc     Order = "id_asc"
	OrderIDDesc    Order = "id_desc"
	OrderPriceAsc  Order = "precio_asc"
	OrderPriceDesc Order = "precio_desc"
)

func ParseOrder(s string) (Order, bool) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderIDAsc, OrderIDDesc, OrderPriceAsc, OrderPriceDesc:
		return o, true
	case "":
		return OrderIDAsc, true
	}
	return "", false
}

type ListFilter struct {
	Search string
	Size   Size
	Order  Order
}

// Match reports whether p passes the search and size filters. Search is a
// case-insensitive substring of id, codigo or nombre.
func (f ListFilter) Match(p *Product) bool {
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strconv.FormatInt(p.ID, 10), term) ||
		strings.Contains(strings.ToLower(p.Code), term) ||
		strings.Contains(strings.ToLower(p.Name), term)
}

// Sort orders products in place. Ties on price fall back to id.
func Sort(products []*Product, order Order) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch order {
		case OrderIDDesc:
			return a.ID > b.ID
		case OrderPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case OrderPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		}
		return a.ID < b.ID
	})
}

// Total sums prices without float drift.
func Total(products []*Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(decimal.NewFromFloat(p.Price))
	}
	return total
}
