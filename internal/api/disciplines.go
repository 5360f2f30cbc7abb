package api

import (
	"context"
	"fmt"
	"net/http"

	"formativa-portal/internal/model"
)

func (c *Client) ListDisciplines(ctx context.Context, access string) ([]model.Discipline, error) {
	var disciplines []model.Discipline
	if err := c.do(ctx, http.MethodGet, "/disciplinas/", access, nil, &disciplines); err != nil {
		return nil, err
	}
	return disciplines, nil
}

// ListDisciplinesByTeacher lists the disciplines assigned to the teacher
// with the given identification number.
func (c *Client) ListDisciplinesByTeacher(ctx context.Context, access string, ni int) ([]model.Discipline, error) {
	var disciplines []model.Discipline
	path := fmt.Sprintf("/disciplinas/professores/%d/", ni)
	if err := c.do(ctx, http.MethodGet, path, access, nil, &disciplines); err != nil {
		return nil, err
	}
	return disciplines, nil
}

func (c *Client) CreateDiscipline(ctx context.Context, access string, discipline model.Discipline) (model.Discipline, error) {
	var created model.Discipline
	if err := c.do(ctx, http.MethodPost, "/disciplinas/", access, discipline, &created); err != nil {
		return model.Discipline{}, err
	}
	return created, nil
}

func (c *Client) UpdateDiscipline(ctx context.Context, access string, discipline model.Discipline) (model.Discipline, error) {
	var updated model.Discipline
	path := fmt.Sprintf("/disciplinas/%d/", discipline.ID)
	if err := c.do(ctx, http.MethodPut, path, access, discipline, &updated); err != nil {
		return model.Discipline{}, err
	}
	return updated, nil
}

func (c *Client) DeleteDiscipline(ctx context.Context, access string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/disciplinas/%d/", id), access, nil, nil)
}
