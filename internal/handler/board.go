package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jihokoo/campus-reservation/internal/catalog"
	"github.com/jihokoo/campus-reservation/internal/model"
)

// BoardStore lists the live bookings of a partition for one day.
type BoardStore interface {
	BookingsByDate(ctx context.Context, p catalog.Partition, date string, resourceTypes []string) ([]model.Booking, error)
}

// BoardHandler serves the public availability boards users consult before
// picking a slot.  Responses carry masked names only; reserve codes stay
// private to the booking owner.
type BoardHandler struct {
	Store    BoardStore
	Location *time.Location
}

func NewBoardHandler(store BoardStore, loc *time.Location) *BoardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &BoardHandler{Store: store, Location: loc}
}

type boardSlot struct {
	Instance   string `json:"instance"`
	Time       string `json:"time"` // "HH:MM - HH:MM", as chat responses render it
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	MaskedName string `json:"masked_name"`
}

type boardResp struct {
	Category string      `json:"category"`
	Label    string      `json:"label"`
	Date     string      `json:"date"`
	Slots    []boardSlot `json:"slots"`
}

// Board handles GET /boards/:category and returns today's bookings for
// every instance of the category.
func (h *BoardHandler) Board(c echo.Context) error {
	res, ok := catalog.Resolve(c.Param("category"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown category"})
	}

	date := time.Now().In(h.Location).Format("2006-01-02")
	bookings, err := h.Store.BookingsByDate(c.Request().Context(), res.Partition, date, res.Instances)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "board lookup failed"})
	}

	slots := make([]boardSlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, boardSlot{
			Instance:   b.ResourceType,
			Time:       b.DisplayTime(),
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			MaskedName: b.MaskedName,
		})
	}
	return c.JSON(http.StatusOK, boardResp{
		Category: res.Category,
		Label:    res.Label,
		Date:     date,
		Slots:    slots,
	})
}
