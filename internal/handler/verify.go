package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jihokoo/campus-reservation/internal/kakao"
	"github.com/jihokoo/campus-reservation/internal/model"
	"github.com/jihokoo/campus-reservation/internal/verify"
)

// VerifyHandler serves the two-step student verification flow, also driven
// from chat blocks: first the university email, then the mailed code.
type VerifyHandler struct {
	Svc *verify.Service
	Log zerolog.Logger
}

func NewVerifyHandler(svc *verify.Service, log zerolog.Logger) *VerifyHandler {
	return &VerifyHandler{Svc: svc, Log: log}
}

// Email handles POST /verify/email.  The provider mails a one-time code to
// the given university address.
func (h *VerifyHandler) Email(c echo.Context) error {
	var req kakao.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	email := req.Param("email")
	if email == "" {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}

	if err := h.Svc.RequestCode(c.Request().Context(), req.ChannelID(), email); err != nil {
		switch {
		case errors.Is(err, verify.ErrBadEmail):
			return c.JSON(http.StatusOK, kakao.Card("학교 이메일이 아닙니다.", "학교 이메일 주소로 다시 시도해주세요."))
		case errors.Is(err, verify.ErrProvider):
			return c.JSON(http.StatusOK, kakao.Card("인증 메일을 보내지 못했습니다.", "잠시 후 다시 시도해주세요."))
		default:
			h.Log.Error().Err(err).Msg("verification mail request failed")
			return c.JSON(http.StatusOK, kakao.Fail("인증 처리 중 오류가 발생했습니다."))
		}
	}
	return c.JSON(http.StatusOK, kakao.Card("인증 메일을 보냈습니다.", "메일로 받은 인증번호를 10분 안에 입력해주세요."))
}

// Code handles POST /verify/code.  On success the requester becomes the
// verified identity for this chat channel.
func (h *VerifyHandler) Code(c echo.Context) error {
	var req kakao.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	code := req.Param("code")
	if code == "" {
		return c.JSON(http.StatusOK, kakao.Fail("잘못된 요청"))
	}
	requester, err := model.ParseRequester(req.Param("client_info"))
	if err != nil {
		return c.JSON(http.StatusOK, kakao.Fail(requesterMessage(err)))
	}

	if err := h.Svc.VerifyCode(c.Request().Context(), req.ChannelID(), code, requester); err != nil {
		switch {
		case errors.Is(err, verify.ErrNoPending):
			return c.JSON(http.StatusOK, kakao.Card("진행 중인 인증이 없습니다.", "이메일 인증부터 다시 시작해주세요."))
		case errors.Is(err, verify.ErrCodeMismatch):
			return c.JSON(http.StatusOK, kakao.Card("인증번호가 올바르지 않습니다.", "메일로 받은 인증번호를 확인하고 다시 입력해주세요."))
		case errors.Is(err, verify.ErrProvider):
			return c.JSON(http.StatusOK, kakao.Card("인증을 확인하지 못했습니다.", "잠시 후 다시 시도해주세요."))
		default:
			h.Log.Error().Err(err).Msg("verification failed")
			return c.JSON(http.StatusOK, kakao.Fail("인증 처리 중 오류가 발생했습니다."))
		}
	}
	return c.JSON(http.StatusOK, kakao.Card("재학생 인증이 완료되었습니다.", "이제 예약 메뉴를 이용하실 수 있습니다."))
}
