package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
)

func TestRequireAuth_InjectsAddress(t *testing.T) {
	g := newTestGate(t)
	address := crypto.PubkeyToAddress(mustKey(t).PublicKey)
	token, _, err := g.MintToken(address)
	require.NoError(t, err)

	var seen common.Address
	handler := g.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := AuthenticatedAddress(r.Context())
		require.Equal(t, true, ok)
		seen = got
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/polls", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, address, seen)
}

func TestRequireAuth_RejectsMissingHeader(t *testing.T) {
	g := newTestGate(t)
	handler := g.RequireAuth(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/polls", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuth_RejectsNonBearerScheme(t *testing.T) {
	g := newTestGate(t)
	handler := g.RequireAuth(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/polls", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuth_RejectsGarbageToken(t *testing.T) {
	g := newTestGate(t)
	handler := g.RequireAuth(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/polls", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticatedAddress_AbsentWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/polls", nil)
	_, ok := AuthenticatedAddress(req.Context())
	assert.Equal(t, false, ok)
}
