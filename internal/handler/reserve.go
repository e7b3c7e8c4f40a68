// Package handler contains the HTTP endpoints: the chatbot webhook surface
// (reserve, cancel, parameter checks), the public booking boards, student
// verification and the admin audit endpoints.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jihokoo/campus-reservation/internal/booking"
	"github.com/jihokoo/campus-reservation/internal/catalog"
	"github.com/jihokoo/campus-reservation/internal/kakao"
	"github.com/jihokoo/campus-reservation/internal/model"
	"github.com/jihokoo/campus-reservation/internal/queue"
	queue_publisher "github.com/jihokoo/campus-reservation/internal/service"
)

// ReserveHandler bundles dependencies for the booking webhook endpoints.
// VerifiedOnly mirrors the service option: when set, the requester comes
// from the verified_students record and client_info becomes optional.
type ReserveHandler struct {
	Svc          *booking.Service
	VerifiedOnly bool
	Log          zerolog.Logger
}

func NewReserveHandler(svc *booking.Service, verifiedOnly bool, log zerolog.Logger) *ReserveHandler {
	return &ReserveHandler{Svc: svc, VerifiedOnly: verifiedOnly, Log: log}
}

// Reserve handles POST /reserve/:resource.  The chatbot always expects a
// 200 with a template payload, so every outcome (success or rejection)
// renders as a text card; only malformed payloads get a plain status.
func (h *ReserveHandler) Reserve(c echo.Context) error {
	res, ok := catalog.Resolve(c.Param("resource"))
	if !ok {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 방 유형"))
	}

	var req kakao.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	start, err := req.TimeParam("start_time")
	if err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	end, err := req.TimeParam("end_time")
	if err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	requester, err := model.ParseRequester(req.Param("client_info"))
	if err != nil && !h.VerifiedOnly {
		return c.JSON(http.StatusOK, kakao.Fail(requesterMessage(err)))
	}

	display := start + " - " + end
	result, err := h.Svc.Reserve(c.Request().Context(), booking.ReserveRequest{
		Resource:  res.Category,
		Start:     start,
		End:       end,
		Requester: requester,
		ChannelID: req.ChannelID(),
	})
	if err != nil {
		return c.JSON(http.StatusOK, h.rejectCard(res, display, requester, err))
	}

	publishEvent(h.Log, result, req.ChannelID())

	if res.Partition == catalog.PartitionCharger {
		desc := fmt.Sprintf("- 충전기 종류: %s\n- 사물함 비밀번호: %s\n- 예약 번호: %s\n- 대여 시간: %s\n- 신청자: %s",
			result.Instance, result.LockerPassword, result.Code, result.DisplayTime(), result.MaskedName)
		return c.JSON(http.StatusOK, kakao.Card("성공적으로 대여하였습니다.", desc))
	}
	desc := fmt.Sprintf("- 방 종류: %s\n- 예약 번호: %s\n- 대여 시간: %s\n- 신청자: %s",
		result.Category, result.Code, result.DisplayTime(), result.MaskedName)
	return c.JSON(http.StatusOK, kakao.Card("성공적으로 예약되었습니다.", desc))
}

// rejectCard translates a booking rejection into the chat card shown to the
// user.  Unknown errors surface as a generic failure card so internals stay
// hidden.
func (h *ReserveHandler) rejectCard(res catalog.Resource, display string, requester model.Requester, err error) interface{} {
	kind := "방"
	if res.Partition == catalog.PartitionCharger {
		kind = "충전기"
	}
	switch {
	case errors.Is(err, booking.ErrOutsideWindow):
		return kakao.Card("현재 예약할 수 없는 시간입니다.", "평일 9시부터 22시까지 당일 예약만 가능합니다.")
	case errors.Is(err, booking.ErrBadDuration):
		desc := fmt.Sprintf("- %s 종류: %s\n- 신청한 시간: %s\n\n다시 시도해주세요.", kind, res.Label, display)
		return kakao.Card("30분부터 최대 4시간까지 신청 가능합니다.", desc)
	case errors.Is(err, booking.ErrSlotConflict):
		desc := fmt.Sprintf("- 방 종류: %s\n- 신청한 시간: %s\n\n예약 현황을 조회하시고 비어있는 시간에 다시 신청해주세요.", res.Label, display)
		return kakao.Card("해당 일시에 겹치는 예약이 있습니다.", desc)
	case errors.Is(err, booking.ErrAllInstancesBusy):
		desc := fmt.Sprintf("- 충전기 종류: %s\n- 신청한 시간: %s\n\n예약 현황을 조회하시고 다시 시도해주세요.", res.Label, display)
		return kakao.Card("모든 충전기가 사용중입니다.", desc)
	case errors.Is(err, booking.ErrDuplicateCategory):
		desc := fmt.Sprintf("- %s 종류: %s\n\n같은 품목은 하루에 한 번만 예약할 수 있습니다.", kind, res.Label)
		return kakao.Card("이미 오늘 예약한 내역이 있습니다.", desc)
	case errors.Is(err, booking.ErrNotPayer):
		desc := fmt.Sprintf("- 이름: %s\n- 학번: %s\n2024학년도 1학기 예술공학대학 학생회비 납부자가 아닙니다.", requester.Name, requester.StudentID)
		return kakao.Card("학생회비 납부자가 아닙니다.", desc)
	case errors.Is(err, booking.ErrNotVerified):
		return kakao.Card("학생 인증이 필요합니다.", "재학생 인증 후 이용하실 수 있습니다.\n인증 메뉴에서 학교 이메일로 인증해주세요.")
	case errors.Is(err, booking.ErrUnknownResource):
		return kakao.Fail("잘못된 방 유형")
	default:
		h.Log.Error().Err(err).Str("resource", res.Category).Msg("reserve failed")
		return kakao.Fail("예약 처리 중 오류가 발생했습니다.")
	}
}

// requesterMessage maps requester parsing errors onto the short hints the
// chat flow shows next to the input field.
func requesterMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrBadStudentID):
		return "학번은 8자리"
	case errors.Is(err, model.ErrBadPhone):
		return "전화번호는 11자리"
	default:
		return "이름,학번,전화번호"
	}
}

// publishEvent fires the reservation event without blocking the response.
// Broker failures are logged inside the publisher and ignored here.
func publishEvent(log zerolog.Logger, r *booking.ReserveResult, channelID string) {
	ev := queue.ReservationEvent{
		ReserveCode:  r.Code,
		Action:       string(model.ActionReserve),
		ResourceType: r.Category,
		Instance:     r.Instance,
		ReserveDate:  r.Date,
		StartTime:    r.Start,
		EndTime:      r.End,
		MaskedName:   r.MaskedName,
		ChannelID:    channelID,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishReservationEvent(ctx, ev); err != nil {
			log.Warn().Err(err).Str("code", ev.ReserveCode).Msg("reservation event publish failed")
		}
	}()
}
