package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/model"
	"github.com/iliyamo/hotel-room-reservation/internal/repository"
	"github.com/iliyamo/hotel-room-reservation/internal/utils"
)

// RoomHandler is the reception-side room catalog: create, list,
// inspect, update and delete rooms.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	Number             string `json:"number"`
	Type               string `json:"type"`
	Capacity           int    `json:"capacity"`
	PricePerNightCents uint32 `json:"price_per_night_cents"`
	IsActive           *bool  `json:"is_active"` // nil defaults to true on create
}

func (r *roomReq) validate() error {
	r.Number = strings.TrimSpace(r.Number)
	r.Type = strings.TrimSpace(r.Type)
	switch {
	case r.Number == "":
		return errors.New("number required")
	case r.Type == "":
		return errors.New("type required")
	case r.Capacity <= 0:
		return errors.New("capacity must be positive")
	case r.PricePerNightCents == 0:
		return errors.New("price_per_night_cents must be positive")
	}
	return nil
}

// Create adds a room to the catalog. Room numbers are unique; a
// duplicate answers 409.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	room := model.Room{
		Number:             req.Number,
		Type:               req.Type,
		Capacity:           req.Capacity,
		PricePerNightCents: req.PricePerNightCents,
		IsActive:           active,
	}
	if _, err := h.Rooms.Create(ctx, &room); err != nil {
		if errors.Is(err, repository.ErrRoomNumberExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}

	created, err := h.Rooms.GetByID(ctx, room.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns the whole catalog ordered by room number.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, err := h.Rooms.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// Get returns one room by id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, room)
}

// Update overwrites a room's attributes. Existing reservations keep
// their stored total; a price change only affects future bookings.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	room := model.Room{
		ID:                 id,
		Number:             req.Number,
		Type:               req.Type,
		Capacity:           req.Capacity,
		PricePerNightCents: req.PricePerNightCents,
		IsActive:           active,
	}
	if err := h.Rooms.Update(ctx, &room); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrRoomNumberExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}

	updated, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a room. Rooms with upcoming non-cancelled
// reservations cannot be deleted and answer 409.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id, utils.Today()); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has upcoming reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
