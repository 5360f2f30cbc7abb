package api

import (
	"context"
	"fmt"
	"net/http"

	"formativa-portal/internal/model"
)

func (c *Client) ListReservations(ctx context.Context, access string) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := c.do(ctx, http.MethodGet, "/reservas/", access, nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (c *Client) ListReservationsByTeacher(ctx context.Context, access string) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := c.do(ctx, http.MethodGet, "/reservas/professores/", access, nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (c *Client) CreateReservation(ctx context.Context, access string, reservation model.Reservation) (model.Reservation, error) {
	var created model.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservas/", access, reservation, &created); err != nil {
		return model.Reservation{}, err
	}
	return created, nil
}

func (c *Client) UpdateReservation(ctx context.Context, access string, reservation model.Reservation) (model.Reservation, error) {
	var updated model.Reservation
	path := fmt.Sprintf("/reservas/%d/", reservation.ID)
	if err := c.do(ctx, http.MethodPut, path, access, reservation, &updated); err != nil {
		return model.Reservation{}, err
	}
	return updated, nil
}

func (c *Client) DeleteReservation(ctx context.Context, access string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reservas/%d/", id), access, nil, nil)
}

// Periods lists the reservation period choices the API exposes.
func (c *Client) Periods(ctx context.Context, access string) ([]model.Period, error) {
	var periods []model.Period
	if err := c.do(ctx, http.MethodGet, "/periodos/", access, nil, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}
