package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequester(t *testing.T) {
	r, err := ParseRequester("김철수,20231234,01012345678")
	assert.NoError(t, err)
	assert.Equal(t, Requester{Name: "김철수", StudentID: "20231234", Phone: "01012345678"}, r)
}

func TestParseRequesterStripsSeparators(t *testing.T) {
	r, err := ParseRequester("김철수, 20231234, 010-1234-5678")
	assert.NoError(t, err)
	assert.Equal(t, "01012345678", r.Phone)
	assert.Equal(t, "20231234", r.StudentID)
}

func TestParseRequesterRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "김철수", "김철수,20231234", "김철수,20231234,01012345678,extra", ",20231234,01012345678"} {
		_, err := ParseRequester(raw)
		assert.ErrorIs(t, err, ErrMalformedRequester, raw)
	}
}

func TestParseRequesterRejectsBadStudentID(t *testing.T) {
	for _, raw := range []string{"김철수,2023123,01012345678", "김철수,202312345,01012345678", "김철수,2023123a,01012345678"} {
		_, err := ParseRequester(raw)
		assert.ErrorIs(t, err, ErrBadStudentID, raw)
	}
}

func TestParseRequesterRejectsBadPhone(t *testing.T) {
	for _, raw := range []string{"김철수,20231234,0101234567", "김철수,20231234,010123456789", "김철수,20231234,01112345678"} {
		_, err := ParseRequester(raw)
		assert.ErrorIs(t, err, ErrBadPhone, raw)
	}
}

func TestMaskName(t *testing.T) {
	assert.Equal(t, "김*수", MaskName("김철수"))
	assert.Equal(t, "김**진", MaskName("김철수진"))
	assert.Equal(t, "김*", MaskName("김수"))
	assert.Equal(t, "김*", MaskName("김"))
	assert.Equal(t, "", MaskName(""))
	assert.Equal(t, "A**************n", MaskName("Alice Livingston"))
}
