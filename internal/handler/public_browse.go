package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// PublicHandler exposes read-only catalog endpoints: the list of
// partner hotels and the rooms of a hotel with their current
// occupancy. These routes carry no authentication so attendees can
// browse before logging in; responses sit behind the Redis cache.
type PublicHandler struct {
	Hotels *repository.HotelRepo
	Rooms  *repository.RoomRepo
}

// NewPublicHandler constructs a PublicHandler and panics if any
// dependency is nil.
func NewPublicHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo) *PublicHandler {
	if hotels == nil || rooms == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Hotels: hotels, Rooms: rooms}
}

type hotelItem struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// GetHotels handles GET /v1/hotels. It returns all partner hotels.
func (h *PublicHandler) GetHotels(c echo.Context) error {
	ctx := c.Request().Context()
	hotels, err := h.Hotels.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hotels"})
	}
	items := make([]hotelItem, 0, len(hotels))
	for _, ht := range hotels {
		items = append(items, hotelItem{
			ID:        ht.ID,
			Name:      ht.Name,
			Image:     ht.Image,
			CreatedAt: ht.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: ht.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetHotelRooms handles GET /v1/hotels/:id/rooms. It returns the
// hotel's rooms together with how many bookings each currently holds,
// so clients can display remaining vacancies. Responds 404 when the
// hotel does not exist.
func (h *PublicHandler) GetHotelRooms(c echo.Context) error {
	hotelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hotel"})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hotel": hotelItem{
			ID:        hotel.ID,
			Name:      hotel.Name,
			Image:     hotel.Image,
			CreatedAt: hotel.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: hotel.UpdatedAt.UTC().Format(time.RFC3339),
		},
		"rooms": rooms,
	})
}
