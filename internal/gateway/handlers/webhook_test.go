package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterbot/internal/messenger"
	"posterbot/internal/signature"
)

const testSecret = "app-secret"

type recordingDispatcher struct {
	mu   sync.Mutex
	envs []*messenger.Envelope
}

func (d *recordingDispatcher) Dispatch(_ context.Context, env *messenger.Envelope) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.envs = append(d.envs, env)
	n := 0
	for _, e := range env.Entry {
		n += len(e.Messaging)
	}
	return n
}

func newTestHandler(requireSig bool) (*WebhookHandler, *recordingDispatcher) {
	d := &recordingDispatcher{}
	h := NewWebhookHandler(WebhookConfig{
		VerifyToken:      "vt",
		Verifier:         signature.NewVerifier(testSecret),
		RequireSignature: requireSig,
		MaxBodyBytes:     1024,
	}, d)
	return h, d
}

func signedRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(signature.HeaderName, signature.NewVerifier(testSecret).Sign([]byte(body)))
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantBody   string
	}{
		{"matching token", "hub.mode=subscribe&hub.verify_token=vt&hub.challenge=12345", http.StatusOK, "12345"},
		{"wrong token", "hub.mode=subscribe&hub.verify_token=nope&hub.challenge=12345", http.StatusForbidden, ""},
		{"wrong mode", "hub.mode=unsubscribe&hub.verify_token=vt&hub.challenge=12345", http.StatusForbidden, ""},
		{"no params", "", http.StatusForbidden, ""},
	}

	h, _ := newTestHandler(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/webhook?"+tt.query, nil)
			w := httptest.NewRecorder()

			h.Verify(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestVerify_EmptyConfiguredTokenNeverMatches(t *testing.T) {
	h := NewWebhookHandler(WebhookConfig{Verifier: signature.NewVerifier(testSecret)}, &recordingDispatcher{})

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=&hub.challenge=1", nil)
	w := httptest.NewRecorder()
	h.Verify(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceive_Dispatches(t *testing.T) {
	h, d := newTestHandler(true)
	body := `{"object":"page","entry":[{"id":"PAGE","time":1,"messaging":[` +
		`{"sender":{"id":"u1"},"recipient":{"id":"PAGE"},"message":{"mid":"m1","text":"help"}},` +
		`{"sender":{"id":"u2"},"recipient":{"id":"PAGE"},"postback":{"payload":"QR_PHOTO_1"}}]}]}`

	w := httptest.NewRecorder()
	h.Receive(w, signedRequest(t, body))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, d.envs, 1)
	env := d.envs[0]
	require.Len(t, env.Entry, 1)
	require.Len(t, env.Entry[0].Messaging, 2)
	assert.Equal(t, "help", env.Entry[0].Messaging[0].Message.Text)
	assert.Equal(t, "QR_PHOTO_1", env.Entry[0].Messaging[1].Postback.Payload)
}

func TestReceive_BadSignature(t *testing.T) {
	h, d := newTestHandler(false)
	body := `{"object":"page","entry":[]}`

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(signature.HeaderName, "sha1=0000000000000000000000000000000000000000")
	w := httptest.NewRecorder()
	h.Receive(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, ErrCodeBadSignature, decodeError(t, w).Error.Code)
	assert.Empty(t, d.envs)
}

func TestReceive_TamperedBody(t *testing.T) {
	h, d := newTestHandler(false)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"object":"page","entry":[{}]}`))
	req.Header.Set(signature.HeaderName, signature.NewVerifier(testSecret).Sign([]byte(`{"object":"page","entry":[]}`)))
	w := httptest.NewRecorder()
	h.Receive(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, d.envs)
}

func TestReceive_MissingSignature(t *testing.T) {
	body := `{"object":"page","entry":[]}`

	t.Run("accepted when optional", func(t *testing.T) {
		h, d := newTestHandler(false)
		w := httptest.NewRecorder()
		h.Receive(w, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, d.envs, 1)
	})

	t.Run("rejected when required", func(t *testing.T) {
		h, d := newTestHandler(true)
		w := httptest.NewRecorder()
		h.Receive(w, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, ErrCodeMissingSignature, decodeError(t, w).Error.Code)
		assert.Empty(t, d.envs)
	})
}

func TestReceive_MalformedJSON(t *testing.T) {
	h, d := newTestHandler(true)

	w := httptest.NewRecorder()
	h.Receive(w, signedRequest(t, `{"object":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeInvalidRequest, decodeError(t, w).Error.Code)
	assert.Empty(t, d.envs)
}

func TestReceive_NonPageObject(t *testing.T) {
	h, d := newTestHandler(true)

	w := httptest.NewRecorder()
	h.Receive(w, signedRequest(t, `{"object":"instagram","entry":[]}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, w).Error.Code)
	assert.Empty(t, d.envs)
}

func TestReceive_BodyTooLarge(t *testing.T) {
	h, d := newTestHandler(false)
	body := bytes.Repeat([]byte("a"), 2048)

	w := httptest.NewRecorder()
	h.Receive(w, httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, ErrCodePayloadTooLarge, decodeError(t, w).Error.Code)
	assert.Empty(t, d.envs)
}
