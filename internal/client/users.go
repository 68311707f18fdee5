package client

import (
	"context"
	"net/http"

	domuser "example.com/exam-crud/internal/domain/user"
)

const usersPath = "/api/v1/users"

type userWire struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Mobile   string `json:"movil"`
	Age      int    `json:"edad"`
	Language string `json:"idioma"`
}

func (u userWire) domain() *domuser.User {
	return &domuser.User{ID: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile, Age: u.Age, Language: u.Language}
}

type userForm struct {
	Name     string `json:"nombre"`
	Email    string `json:"correo"`
	Mobile   string `json:"movil"`
	Age      string `json:"edad"`
	Language string `json:"idioma"`
}

func userFormOf(d domuser.Draft) userForm {
	n := d.Normalize()
	return userForm{Name: n.Name, Email: n.Email, Mobile: n.Mobile, Age: n.Age, Language: n.Language}
}

func (c *Client) ListUsers(ctx context.Context, opts ListOptions) ([]*domuser.User, error) {
	var wire []userWire
	if err := c.do(ctx, http.MethodGet, usersPath, opts.values(), nil, &wire); err != nil {
		return nil, err
	}
	users := make([]*domuser.User, 0, len(wire))
	for _, u := range wire {
		users = append(users, u.domain())
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*domuser.User, error) {
	var wire userWire
	if err := c.do(ctx, http.MethodGet, idPath(usersPath, id), nil, nil, &wire); err != nil {
		return nil, err
	}
	return wire.domain(), nil
}

func (c *Client) CreateUser(ctx context.Context, d domuser.Draft) (*domuser.User, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var out successBody[userWire]
	if err := c.do(ctx, http.MethodPost, usersPath, nil, userFormOf(d), &out); err != nil {
		return nil, err
	}
	return out.Data.domain(), nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, d domuser.Draft) (*domuser.User, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var out successBody[userWire]
	if err := c.do(ctx, http.MethodPut, idPath(usersPath, id), nil, userFormOf(d), &out); err != nil {
		return nil, err
	}
	return out.Data.domain(), nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) (string, error) {
	var out successBody[struct{}]
	if err := c.do(ctx, http.MethodDelete, idPath(usersPath, id), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
