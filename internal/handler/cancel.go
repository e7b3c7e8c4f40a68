package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jihokoo/campus-reservation/internal/booking"
	"github.com/jihokoo/campus-reservation/internal/kakao"
	"github.com/jihokoo/campus-reservation/internal/model"
	"github.com/jihokoo/campus-reservation/internal/queue"
	queue_publisher "github.com/jihokoo/campus-reservation/internal/service"
)

// Cancel handles POST /reserve/cancel.  The reserve code arrives as a plain
// action parameter; ownership is checked against the chat identity that
// created the booking.
func (h *ReserveHandler) Cancel(c echo.Context) error {
	var req kakao.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	code := req.Param("reserve_code")
	if code == "" {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}

	result, err := h.Svc.Cancel(c.Request().Context(), booking.CancelRequest{
		Code:      code,
		ChannelID: req.ChannelID(),
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrCodeNotFound):
			return c.JSON(http.StatusOK, kakao.Card("예약번호와 일치하는 예약이 없습니다", "다시 시도해주세요."))
		case errors.Is(err, booking.ErrNotOwner):
			return c.JSON(http.StatusOK, kakao.Card("신청자 본인이 아닙니다", "신청자의 카카오톡 계정으로 취소해주세요."))
		case errors.Is(err, booking.ErrInvalidCode):
			return c.JSON(http.StatusOK, kakao.Card("잘못된 예약코드입니다", "다시 시도해주세요."))
		case errors.Is(err, booking.ErrAlreadyCancelled):
			return c.JSON(http.StatusOK, kakao.Card("이미 취소된 예약입니다", "다시 시도해주세요."))
		default:
			h.Log.Error().Err(err).Str("code", code).Msg("cancel failed")
			return c.JSON(http.StatusOK, kakao.Fail("예약 취소 중 오류발생"))
		}
	}

	ev := queue.ReservationEvent{
		ReserveCode:  result.Code,
		Action:       string(model.ActionCancel),
		ResourceType: result.ResourceType,
		ReserveDate:  result.Date,
		StartTime:    result.Start,
		EndTime:      result.End,
		MaskedName:   result.MaskedName,
		ChannelID:    req.ChannelID(),
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishReservationEvent(ctx, ev); err != nil {
			h.Log.Warn().Err(err).Str("code", ev.ReserveCode).Msg("cancel event publish failed")
		}
	}()

	desc := fmt.Sprintf("- %s\n- 예약 번호: %s\n- 대여 시간: %s\n- 신청자: %s",
		result.ResourceType, result.Code, result.DisplayTime(), result.MaskedName)
	return c.JSON(http.StatusOK, kakao.Card("대여를 취소했습니다", desc))
}
