package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/althof3/votara/network/httputil"
)

type contextKey string

const addressKey contextKey = "authenticated-address"

// RequireAuth guards a handler behind a valid bearer token and injects the
// authenticated address into the request context.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httputil.HandleError(w, "Authorization header required", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			httputil.HandleError(w, "Authorization header must carry a bearer token", http.StatusUnauthorized)
			return
		}
		address, err := g.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httputil.HandleError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), addressKey, address)))
	})
}

// AuthenticatedAddress returns the address RequireAuth attached to the
// request context.
func AuthenticatedAddress(ctx context.Context) (common.Address, bool) {
	address, ok := ctx.Value(addressKey).(common.Address)
	return address, ok
}
