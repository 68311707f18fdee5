package http

import (
	"bytes"
	"encoding/json"

	domproduct "example.com/exam-crud/internal/domain/product"
	domuser "example.com/exam-crud/internal/domain/user"
)

// flexText accepts a JSON string, number or null and keeps its text. Forms
// post numbers as strings while scripts send them as numbers.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexText(n.String())
	return nil
}

type productRequest struct {
	ID           flexText `json:"id"`
	Code         string   `json:"codigo"`
	Name         string   `json:"nombre"`
	Size         string   `json:"talla"`
	Price        flexText `json:"precio"`
	CreatorEmail string   `json:"email_creador"`
}

func (req productRequest) draft() domproduct.Draft {
	return domproduct.Draft{
		Code:         req.Code,
		Name:         req.Name,
		Size:         req.Size,
		Price:        string(req.Price),
		CreatorEmail: req.CreatorEmail,
	}
}

type userRequest struct {
	ID       flexText `json:"id"`
	Name     string   `json:"nombre"`
	Email    string   `json:"correo"`
	Mobile   flexText `json:"movil"`
	Age      flexText `json:"edad"`
	Language string   `json:"idioma"`
}

func (req userRequest) draft() domuser.Draft {
	return domuser.Draft{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   string(req.Mobile),
		Age:      string(req.Age),
		Language: req.Language,
	}
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":            p.ID,
		"codigo":        p.Code,
		"nombre":        p.Name,
		"talla":         p.Size,
		"precio":        p.Price,
		"email_creador": p.CreatorEmail,
	}
}

func mapProducts(products []*domproduct.Product) []map[string]any {
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	return resp
}

func mapUser(u *domuser.User) map[string]any {
	return map[string]any{
		"id":     u.ID,
		"nombre": u.Name,
		"correo": u.Email,
		"movil":  u.Mobile,
		"edad":   u.Age,
		"idioma": u.Language,
	}
}

func mapUsers(users []*domuser.User) []map[string]any {
	resp := make([]map[string]any, 0, len(users))
	for _, u := range users {
		resp = append(resp, mapUser(u))
	}
	return resp
}
