package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jihokoo/campus-reservation/internal/booking"
	"github.com/jihokoo/campus-reservation/internal/kakao"
	"github.com/jihokoo/campus-reservation/internal/model"
	"github.com/jihokoo/campus-reservation/internal/policy"
)

// CodeChecker answers whether a reserve code was ever issued.
type CodeChecker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// CheckHandler serves the parameter validation webhooks the chat platform
// calls while the user is still filling in the booking form.  These
// endpoints never touch booking state; they only pre-validate input so bad
// values bounce before the booking block runs.
type CheckHandler struct {
	Policy policy.Config
	Codes  CodeChecker
	Now    func() time.Time
}

func NewCheckHandler(p policy.Config, codes CodeChecker) *CheckHandler {
	return &CheckHandler{Policy: p, Codes: codes, Now: time.Now}
}

// StartTime handles POST /reserve/check/start_time.  Starts further in the
// past than the allowed lag are rejected.
func (h *CheckHandler) StartTime(c echo.Context) error {
	var req kakao.ValidationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	st := req.Value.Origin
	if _, err := policy.ParseClock(st); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	if !h.Policy.StartAcceptable(h.Now(), st) {
		return c.JSON(http.StatusOK, kakao.Fail("30분 전 시간은 예약할 수 없습니다."))
	}
	return c.JSON(http.StatusOK, kakao.OK())
}

// ClientInfo handles POST /reserve/check/client_info.
func (h *CheckHandler) ClientInfo(c echo.Context) error {
	var req kakao.ValidationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	if _, err := model.ParseRequester(req.Value.Origin); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail(requesterMessage(err)))
	}
	return c.JSON(http.StatusOK, kakao.OK())
}

// ReserveCode handles POST /reserve/check/reserve_code.  The code must be
// well formed and must exist in the audit log; whether it is still active
// is decided later by the cancel transaction.
func (h *CheckHandler) ReserveCode(c echo.Context) error {
	var req kakao.ValidationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	code := req.Value.Origin
	if _, ok := booking.ParseCode(code); !ok {
		return c.JSON(http.StatusOK, kakao.Fail("올바른 형식의 예약코드가 아님"))
	}
	exists, err := h.Codes.CodeExists(c.Request().Context(), code)
	if err != nil && !errors.Is(err, booking.ErrNotFound) {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	if !exists {
		return c.JSON(http.StatusOK, kakao.Fail("존재하지 않는 예약코드"))
	}
	return c.JSON(http.StatusOK, kakao.OK())
}
