package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"posterbot/internal/messenger"
	"posterbot/internal/signature"
	"posterbot/pkg/logger"
)

// Verification query parameters sent by the platform on subscribe.
const (
	QueryMode        = "hub.mode"
	QueryVerifyToken = "hub.verify_token"
	QueryChallenge   = "hub.challenge"
	ModeSubscribe    = "subscribe"
)

// DefaultMaxBodyBytes bounds a webhook body when no limit is configured.
const DefaultMaxBodyBytes = 1 << 20

// Dispatcher accepts decoded webhook envelopes.
type Dispatcher interface {
	Dispatch(ctx context.Context, env *messenger.Envelope) int
}

// WebhookConfig configures a WebhookHandler.
type WebhookConfig struct {
	VerifyToken      string
	Verifier         *signature.Verifier
	RequireSignature bool
	MaxBodyBytes     int64
}

// WebhookHandler serves the webhook verification handshake and event intake.
type WebhookHandler struct {
	cfg        WebhookConfig
	dispatcher Dispatcher
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(cfg WebhookConfig, d Dispatcher) *WebhookHandler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &WebhookHandler{cfg: cfg, dispatcher: d}
}

// Verify answers the subscription handshake (GET /webhook).
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := r.URL.Query()

	if q.Get(QueryMode) != ModeSubscribe || !h.tokenMatches(q.Get(QueryVerifyToken)) {
		log.Warn().Str("mode", q.Get(QueryMode)).Msg("webhook validation failed")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	log.Info().Msg("webhook validated")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, q.Get(QueryChallenge))
}

func (h *WebhookHandler) tokenMatches(token string) bool {
	if h.cfg.VerifyToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.VerifyToken)) == 1
}

// Receive accepts a batch of messaging events (POST /webhook).
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			SendError(w, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "request body too large")
			return
		}
		SendError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "failed to read request body")
		return
	}

	// 签名校验必须基于原始字节
	if err := h.cfg.Verifier.Verify(body, r.Header.Get(signature.HeaderName)); err != nil {
		switch {
		case errors.Is(err, signature.ErrSignatureMissing) && !h.cfg.RequireSignature:
			log.Warn().Msg("request has no signature, accepting")
		case errors.Is(err, signature.ErrSignatureMissing):
			log.Warn().Msg("request has no signature, rejecting")
			SendError(w, http.StatusForbidden, ErrCodeMissingSignature, "missing request signature")
			return
		default:
			log.Warn().Err(err).Msg("request signature rejected")
			SendError(w, http.StatusForbidden, ErrCodeBadSignature, "signature does not match")
			return
		}
	}

	var env messenger.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Warn().Err(err).Msg("malformed webhook body")
		SendError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	// 非 page 对象返回 404，不分发；平台对非 2xx 响应会重试整批。
	if env.Object != messenger.ObjectPage {
		log.Warn().Str("object", env.Object).Msg("unsupported webhook object")
		SendError(w, http.StatusNotFound, ErrCodeNotFound, "unsupported object")
		return
	}

	n := h.dispatcher.Dispatch(r.Context(), &env)
	log.Debug().Int("entries", len(env.Entry)).Int("replies", n).Msg("webhook batch dispatched")

	w.WriteHeader(http.StatusOK)
}
