package kakao

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"action": {
		"params": {
			"start_time": "{\"value\":\"15:00\",\"userTimeZone\":\"UTC+9\"}",
			"end_time": "{\"value\":\"17:00\",\"userTimeZone\":\"UTC+9\"}",
			"client_info": "김철수,20231234,01012345678"
		}
	},
	"userRequest": {
		"user": {"id": "channel-abc"}
	}
}`

func TestRequestDecoding(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &req))

	assert.Equal(t, "channel-abc", req.ChannelID())
	assert.Equal(t, "김철수,20231234,01012345678", req.Param("client_info"))

	start, err := req.TimeParam("start_time")
	assert.NoError(t, err)
	assert.Equal(t, "15:00", start)

	end, err := req.TimeParam("end_time")
	assert.NoError(t, err)
	assert.Equal(t, "17:00", end)
}

func TestTimeParamErrors(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &req))

	_, err := req.TimeParam("missing")
	assert.Error(t, err)

	req.Action.Params["broken"] = "not json"
	_, err = req.TimeParam("broken")
	assert.Error(t, err)

	req.Action.Params["empty"] = `{"value":""}`
	_, err = req.TimeParam("empty")
	assert.Error(t, err)
}

func TestCardShape(t *testing.T) {
	resp := Card("성공적으로 예약되었습니다.", "- 방 종류: 01BLUE")

	assert.Equal(t, "2.0", resp.Version)
	require.Len(t, resp.Template.Outputs, 1)

	card := resp.Template.Outputs[0].TextCard
	assert.Equal(t, "성공적으로 예약되었습니다.", card.Title)
	require.Len(t, card.Buttons, 1)
	assert.Equal(t, "처음으로", card.Buttons[0].Label)
	assert.Equal(t, "block", card.Buttons[0].Action)
	assert.Equal(t, "처음으로", card.Buttons[0].MessageText)
}

func TestStatusPayloads(t *testing.T) {
	ok, err := json.Marshal(OK())
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":"SUCCESS"}`, string(ok))

	fail, err := json.Marshal(Fail("학번은 8자리"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":"FAIL","message":"학번은 8자리"}`, string(fail))
}

func TestValidationRequestDecoding(t *testing.T) {
	var req ValidationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"value":{"origin":"15:00"}}`), &req))
	assert.Equal(t, "15:00", req.Value.Origin)
}
