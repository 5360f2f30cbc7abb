package api

import (
	"context"
	"fmt"
	"net/http"

	"formativa-portal/internal/model"
)

// Classroom detail routes carry no trailing slash on the remote API,
// unlike every other collection. Kept as-is.

func (c *Client) ListClassrooms(ctx context.Context, access string) ([]model.Classroom, error) {
	var rooms []model.Classroom
	if err := c.do(ctx, http.MethodGet, "/salas/", access, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) ListClassroomsByTeacher(ctx context.Context, access string) ([]model.Classroom, error) {
	var rooms []model.Classroom
	if err := c.do(ctx, http.MethodGet, "/salas/professores/", access, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) CreateClassroom(ctx context.Context, access string, room model.Classroom) (model.Classroom, error) {
	var created model.Classroom
	if err := c.do(ctx, http.MethodPost, "/salas/", access, room, &created); err != nil {
		return model.Classroom{}, err
	}
	return created, nil
}

func (c *Client) UpdateClassroom(ctx context.Context, access string, room model.Classroom) (model.Classroom, error) {
	var updated model.Classroom
	path := fmt.Sprintf("/salas/%d", room.ID)
	if err := c.do(ctx, http.MethodPut, path, access, room, &updated); err != nil {
		return model.Classroom{}, err
	}
	return updated, nil
}

func (c *Client) DeleteClassroom(ctx context.Context, access string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/salas/%d", id), access, nil, nil)
}
