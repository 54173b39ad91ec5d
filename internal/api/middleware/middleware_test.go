package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/codewords/internal/api/apierr"
	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/services/auth"
	"github.com/mcoot/codewords/internal/testutil"
)

type fakeAuthenticator map[string]*auth.Session

func (f fakeAuthenticator) Authenticate(token string) (*auth.Session, error) {
	if s, ok := f[token]; ok {
		return s, nil
	}
	return nil, auth.ErrInvalidSession
}

func sessions() fakeAuthenticator {
	return fakeAuthenticator{
		"good": {Token: "good", Player: model.Player{ID: "p1", DisplayName: "Alice"}},
	}
}

// whoami echoes the authenticated player id, or "anonymous"
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if p := GetPlayer(r.Context()); p != nil {
		_, _ = w.Write([]byte(p.ID))
		return
	}
	_, _ = w.Write([]byte("anonymous"))
})

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()

	Auth(sessions())(whoami).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "p1", rr.Body.String())
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?token=good", nil)
	rr := httptest.NewRecorder()

	Auth(sessions())(whoami).ServeHTTP(rr, req)

	assert.Equal(t, "p1", rr.Body.String())
}

func TestAuthRejectsMissingToken(t *testing.T) {
	rr := httptest.NewRecorder()
	Auth(sessions())(whoami).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, errorCode(t, rr))
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rr := httptest.NewRecorder()

	Auth(sessions())(whoami).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOptionalAuth(t *testing.T) {
	handler := OptionalAuth(sessions())(whoami)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "anonymous", rr.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "anonymous", rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "p1", rr.Body.String())
}

func TestLoggingSetsRequestID(t *testing.T) {
	handler := Logging(testutil.NopLogger())(whoami)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "req-42", rr.Header().Get(RequestIDHeader))
}

func TestRecoveryWritesInternalError(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rr := httptest.NewRecorder()

	Recovery(testutil.NopLogger())(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, apierr.CodeInternalError, errorCode(t, rr))
}

func TestMustGetPlayerPanicsWithoutSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Panics(t, func() { MustGetPlayer(req.Context()) })
}
