package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clementus360/daily-tracker/session"
	"clementus360/daily-tracker/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdopter struct {
	tokens []string
	err    error
}

func (f *fakeAdopter) Adopt(token string) (session.User, error) {
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return session.User{}, f.err
	}
	return session.User{ID: "user"}, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORSMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/tasks", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthMiddleware(t *testing.T) {
	adopter := &fakeAdopter{}
	h := AuthMiddleware(adopter)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, adopter.tokens)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Len(t, adopter.tokens, 1)
	assert.Equal(t, "abc.def.ghi", adopter.tokens[0])

	req = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Basic xyz")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Len(t, adopter.tokens, 1)

	adopter.err = errors.Join(types.ErrNotAuthenticated, errors.New("expired"))
	req = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer old")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"not authenticated"}`, rec.Body.String())
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rec := httptest.NewRecorder()
	Chain(mark("a"), mark("b"), LoggingMiddleware)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
