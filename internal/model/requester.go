package model

import (
	"errors"
	"strings"
)

// Requester identifies who is asking for a booking.  It is parsed from the
// free-text "name, student id, phone" the chatbot collects, or resolved
// from a verified student record in the hardened variant.
type Requester struct {
	Name      string
	StudentID string
	Phone     string
}

var (
	// ErrMalformedRequester is returned when the free-text info does not
	// split into exactly name, id and phone.
	ErrMalformedRequester = errors.New("requester info must be name, student id, phone")
	// ErrBadStudentID is returned when the student id is not 8 digits.
	ErrBadStudentID = errors.New("student id must be 8 digits")
	// ErrBadPhone is returned when the phone is not 11 digits starting 010.
	ErrBadPhone = errors.New("phone must be 11 digits starting with 010")
)

// ParseRequester parses and validates free-text requester info.  Spaces and
// hyphens are stripped before splitting on commas, so "김철수, 20231234,
// 010-1234-5678" and "김철수,20231234,01012345678" are equivalent.
func ParseRequester(raw string) (Requester, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\t' {
			return -1
		}
		return r
	}, raw)
	parts := strings.Split(cleaned, ",")
	if len(parts) != 3 {
		return Requester{}, ErrMalformedRequester
	}
	req := Requester{Name: parts[0], StudentID: parts[1], Phone: parts[2]}
	if req.Name == "" {
		return Requester{}, ErrMalformedRequester
	}
	if !allDigits(req.StudentID) || len(req.StudentID) != 8 {
		return Requester{}, ErrBadStudentID
	}
	if !allDigits(req.Phone) || len(req.Phone) != 11 || !strings.HasPrefix(req.Phone, "010") {
		return Requester{}, ErrBadPhone
	}
	return req, nil
}

// MaskedName obfuscates the requester's name for display: the first and
// last characters stay visible, everything between becomes '*'.  Names
// shorter than three characters keep the first character and gain one '*'.
func (r Requester) MaskedName() string {
	return MaskName(r.Name)
}

// MaskName applies the display masking rule to an arbitrary name.
func MaskName(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return ""
	}
	if len(runes) < 3 {
		return string(runes[0]) + "*"
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
