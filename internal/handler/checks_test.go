package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihokoo/campus-reservation/internal/kakao"
	"github.com/jihokoo/campus-reservation/internal/policy"
)

type stubCodes struct {
	known map[string]bool
}

func (s stubCodes) CodeExists(ctx context.Context, code string) (bool, error) {
	return s.known[code], nil
}

func newCheckHandler(codes CodeChecker) *CheckHandler {
	h := NewCheckHandler(policy.Default(time.UTC), codes)
	// Tuesday 14:00, inside the booking window.
	h.Now = func() time.Time { return time.Date(2025, 3, 4, 14, 0, 0, 0, time.UTC) }
	return h
}

func postValidation(t *testing.T, h echo.HandlerFunc, origin string) kakao.Status {
	t.Helper()
	e := echo.New()
	body := `{"value":{"origin":` + jsonString(origin) + `}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	var status kakao.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return status
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestStartTimeCheck(t *testing.T) {
	h := newCheckHandler(stubCodes{})

	assert.Equal(t, "SUCCESS", postValidation(t, h.StartTime, "15:00").Status)
	assert.Equal(t, "SUCCESS", postValidation(t, h.StartTime, "13:30").Status)

	res := postValidation(t, h.StartTime, "13:00")
	assert.Equal(t, "FAIL", res.Status)
	assert.Equal(t, "30분 전 시간은 예약할 수 없습니다.", res.Message)

	assert.Equal(t, "FAIL", postValidation(t, h.StartTime, "단어").Status)
}

func TestClientInfoCheck(t *testing.T) {
	h := newCheckHandler(stubCodes{})

	assert.Equal(t, "SUCCESS", postValidation(t, h.ClientInfo, "김철수,20231234,010-1234-5678").Status)

	res := postValidation(t, h.ClientInfo, "김철수,2023,01012345678")
	assert.Equal(t, "FAIL", res.Status)
	assert.Equal(t, "학번은 8자리", res.Message)

	res = postValidation(t, h.ClientInfo, "김철수,20231234,010123")
	assert.Equal(t, "FAIL", res.Status)
	assert.Equal(t, "전화번호는 11자리", res.Message)

	res = postValidation(t, h.ClientInfo, "김철수")
	assert.Equal(t, "FAIL", res.Status)
	assert.Equal(t, "이름,학번,전화번호", res.Message)
}

func TestReserveCodeCheck(t *testing.T) {
	h := newCheckHandler(stubCodes{known: map[string]bool{"100042": true}})

	assert.Equal(t, "SUCCESS", postValidation(t, h.ReserveCode, "100042").Status)

	res := postValidation(t, h.ReserveCode, "1000")
	assert.Equal(t, "FAIL", res.Status)
	assert.Equal(t, "올바른 형식의 예약코드가 아님", res.Message)

	res = postValidation(t, h.ReserveCode, "100099")
	assert.Equal(t, "FAIL", res.Status)
	assert.Equal(t, "존재하지 않는 예약코드", res.Message)
}
