// Package verify talks to the external student certification provider and
// records confirmed identities in the verified_students table.  The flow has
// two steps: RequestCode asks the provider to mail a one-time code to the
// student's university address, VerifyCode confirms the code and persists
// the requester for the channel.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jihokoo/campus-reservation/internal/model"
)

var (
	// ErrNoPending is returned when VerifyCode runs without a prior
	// RequestCode for the channel (or the pending window expired).
	ErrNoPending = errors.New("verify: no pending verification for channel")
	// ErrCodeMismatch is returned when the provider rejects the code.
	ErrCodeMismatch = errors.New("verify: code rejected by provider")
	// ErrProvider wraps provider-side failures (network, non-200).
	ErrProvider = errors.New("verify: certification provider unavailable")
	// ErrBadEmail is returned for addresses outside the institution domain.
	ErrBadEmail = errors.New("verify: not a university address")
)

// StudentStore persists verified identities.
type StudentStore interface {
	UpsertVerifiedStudent(ctx context.Context, channelID string, r model.Requester) error
}

// Options configures the verification service.
type Options struct {
	APIURL      string        // base URL of the certification provider
	APIKey      string        // bearer key for the provider
	Institution string        // institution name sent with every request
	EmailDomain string        // required address suffix, e.g. "@cau.ac.kr"
	PendingTTL  time.Duration // how long a started verification stays valid
}

// Service implements the two-step verification flow.  Pending state
// (which email a channel asked to verify) lives in Redis so restarts do
// not drop in-flight verifications.
type Service struct {
	store StudentStore
	rdb   *redis.Client
	http  *http.Client
	opts  Options
	log   zerolog.Logger
}

// NewService wires a verification service.
func NewService(store StudentStore, rdb *redis.Client, opts Options, log zerolog.Logger) *Service {
	if opts.PendingTTL <= 0 {
		opts.PendingTTL = 10 * time.Minute
	}
	return &Service{
		store: store,
		rdb:   rdb,
		http:  &http.Client{Timeout: 10 * time.Second},
		opts:  opts,
		log:   log.With().Str("component", "verify").Logger(),
	}
}

func pendingKey(channelID string) string { return "verify:pending:" + channelID }

type pendingState struct {
	Email string `json:"email"`
}

// RequestCode asks the provider to send a one-time code to the address and
// records the pending state for the channel.
func (s *Service) RequestCode(ctx context.Context, channelID, email string) error {
	if s.rdb == nil {
		return ErrProvider
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if s.opts.EmailDomain != "" && !strings.HasSuffix(email, s.opts.EmailDomain) {
		return ErrBadEmail
	}

	body := map[string]string{
		"email":       email,
		"institution": s.opts.Institution,
	}
	if err := s.call(ctx, "/v1/certify", body); err != nil {
		return err
	}

	raw, err := json.Marshal(pendingState{Email: email})
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, pendingKey(channelID), raw, s.opts.PendingTTL).Err(); err != nil {
		s.log.Error().Err(err).Str("channel", channelID).Msg("store pending verification")
		return err
	}
	s.log.Info().Str("channel", channelID).Msg("verification code requested")
	return nil
}

// VerifyCode confirms the one-time code with the provider and, on success,
// stores the requester as the verified identity for the channel.  The
// pending state is consumed either way once the provider accepts the code.
func (s *Service) VerifyCode(ctx context.Context, channelID, code string, r model.Requester) error {
	if s.rdb == nil {
		return ErrProvider
	}
	raw, err := s.rdb.Get(ctx, pendingKey(channelID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNoPending
	}
	if err != nil {
		return err
	}
	var pending pendingState
	if err := json.Unmarshal(raw, &pending); err != nil {
		return ErrNoPending
	}

	body := map[string]string{
		"email":       pending.Email,
		"institution": s.opts.Institution,
		"code":        code,
	}
	if err := s.call(ctx, "/v1/certify/verify", body); err != nil {
		return err
	}

	if err := s.store.UpsertVerifiedStudent(ctx, channelID, r); err != nil {
		return err
	}
	_ = s.rdb.Del(ctx, pendingKey(channelID)).Err()
	s.log.Info().Str("channel", channelID).Msg("student verified")
	return nil
}

// call posts a JSON body to the provider and maps the response status onto
// the package sentinels.
func (s *Service) call(ctx context.Context, path string, body map[string]string) error {
	if s.opts.APIURL == "" {
		return ErrProvider
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.APIURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.opts.APIKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("certification provider call failed")
		return ErrProvider
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return ErrCodeMismatch
	default:
		return fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}
}
