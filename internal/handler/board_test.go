package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihokoo/campus-reservation/internal/catalog"
	"github.com/jihokoo/campus-reservation/internal/model"
)

type stubBoardStore struct {
	bookings []model.Booking
}

func (s stubBoardStore) BookingsByDate(ctx context.Context, p catalog.Partition, date string, resourceTypes []string) ([]model.Booking, error) {
	return s.bookings, nil
}

func getBoard(t *testing.T, h *BoardHandler, category string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/boards/"+category, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/boards/:category")
	c.SetParamNames("category")
	c.SetParamValues(category)
	require.NoError(t, h.Board(c))
	return rec
}

func TestBoardRendersSlots(t *testing.T) {
	store := stubBoardStore{bookings: []model.Booking{{
		ReserveCode:  "100042",
		ResourceType: "01BLUE",
		ReserveDate:  "2025-03-04",
		StartTime:    "15:00",
		EndTime:      "17:00",
		MaskedName:   "김*수",
	}}}
	h := NewBoardHandler(store, time.UTC)

	rec := getBoard(t, h, "01BLUE")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Category string `json:"category"`
		Slots    []struct {
			Instance   string `json:"instance"`
			Time       string `json:"time"`
			MaskedName string `json:"masked_name"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "01BLUE", resp.Category)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "15:00 - 17:00", resp.Slots[0].Time)
	assert.Equal(t, "김*수", resp.Slots[0].MaskedName)

	// Reserve codes stay private to the booking owner.
	assert.NotContains(t, rec.Body.String(), "100042")
}

func TestBoardUnknownCategory(t *testing.T) {
	h := NewBoardHandler(stubBoardStore{}, time.UTC)
	rec := getBoard(t, h, "05PINK")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
