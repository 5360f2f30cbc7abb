package api

import (
	"context"
	"fmt"
	"net/http"

	"formativa-portal/internal/model"
)

// User management is a manager-only surface on the server; the client
// still exposes the calls and lets the API answer 403 for teachers.

func (c *Client) ListUsers(ctx context.Context, access string) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/usuarios/", access, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ListTeachers(ctx context.Context, access string) ([]model.User, error) {
	var teachers []model.User
	if err := c.do(ctx, http.MethodGet, "/usuarios/professores/", access, nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (c *Client) CreateUser(ctx context.Context, access string, user model.User) (model.User, error) {
	var created model.User
	if err := c.do(ctx, http.MethodPost, "/usuarios/", access, user, &created); err != nil {
		return model.User{}, err
	}
	return created, nil
}

func (c *Client) UpdateUser(ctx context.Context, access string, user model.User) (model.User, error) {
	var updated model.User
	path := fmt.Sprintf("/usuarios/%d/", user.ID)
	if err := c.do(ctx, http.MethodPut, path, access, user, &updated); err != nil {
		return model.User{}, err
	}
	return updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, access string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/usuarios/%d/", id), access, nil, nil)
}
