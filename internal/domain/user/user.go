package user

import (
	"sort"
	"strconv"
	"strings"

	"example.com/exam-crud/internal/domain/validation"
)

const (
	MaxNameLength     = 100
	MaxLanguageLength = 50
	MinAge            = 1
	MaxAge            = 120
)

type User struct {
	ID       int64
	Name     string
	Email    string
	Mobile   string
	Age      int
	Language string
}

// Draft is a submitted user form. Age stays text until validated.
type Draft struct {
	Name     string
	Email    string
	Mobile   string
	Age      string
	Language string
}

func (d Draft) Normalize() Draft {
	return Draft{
		Name:     strings.TrimSpace(d.Name),
		Email:    strings.ToLower(strings.TrimSpace(d.Email)),
		Mobile:   strings.ReplaceAll(strings.TrimSpace(d.Mobile), " ", ""),
		Age:      strings.TrimSpace(d.Age),
		Language: strings.TrimSpace(d.Language),
	}
}

func (d Draft) Validate() error {
	n := d.Normalize()
	return validation.Check(
		validation.Field{Value: n.Name, Rules: []validation.Rule{
			validation.Required("nombre"),
			{Tag: "max=" + strconv.Itoa(MaxNameLength), Message: "El campo 'nombre' no puede superar los 100 caracteres"},
		}},
		validation.Field{Value: n.Email, Rules: []validation.Rule{
			validation.Required("correo"),
			{Tag: "email", Message: "El campo 'correo' no tiene formato de email válido"},
		}},
		validation.Field{Value: n.Mobile, Rules: []validation.Rule{
			validation.Required("movil"),
			{Tag: "len=9,number", Message: "El campo 'movil' debe tener 9 dígitos"},
		}},
		validation.Field{Value: n.Age, Rules: []validation.Rule{
			validation.Required("edad"),
			{Tag: "number", Message: "El campo 'edad' debe ser un número entero"},
			{Tag: "intbetween=1 120", Message: "El campo 'edad' debe estar entre 1 y 120"},
		}},
		validation.Field{Value: n.Language, Rules: []validation.Rule{
			validation.Required("idioma"),
			{Tag: "max=" + strconv.Itoa(MaxLanguageLength), Message: "El campo 'idioma' no puede superar los 50 caracteres"},
		}},
	)
}

func (d Draft) Build() (*User, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	n := d.Normalize()
	age, err := strconv.Atoi(n.Age)
	if err != nil {
		return nil, err
	}
	return &User{
		Name:     n.Name,
		Email:    n.Email,
		Mobile:   n.Mobile,
		Age:      age,
		Language: n.Language,
	}, nil
}

type Order string

const (
	OrderIDDesc   Order = "id_desc"
	OrderIDAsc    Order = "id_asc"
	OrderNameAsc  Order = "nombre_asc"
	OrderNameDesc Order = "nombre_desc"
)

// ParseOrder defaults to newest first.
func ParseOrder(s string) (Order, bool) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderIDDesc, OrderIDAsc, OrderNameAsc, OrderNameDesc:
		return o, true
	case "":
		return OrderIDDesc, true
	}
	return "", false
}

type ListFilter struct {
	Search string
	Order  Order
}

func (f ListFilter) Match(u *User) bool {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strconv.FormatInt(u.ID, 10), term) ||
		strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Email), term)
}

func Sort(users []*User, order Order) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		switch order {
		case OrderIDAsc:
			return a.ID < b.ID
		case OrderNameAsc, OrderNameDesc:
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				if order == OrderNameAsc {
					return an < bn
				}
				return an > bn
			}
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
}
