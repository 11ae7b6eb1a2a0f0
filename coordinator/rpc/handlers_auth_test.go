package rpc

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/althof3/votara/coordinator/auth"
	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
)

// fetchNonce runs the first leg of the login flow.
func fetchNonce(t *testing.T, e *testEnv) *NonceJson {
	rr, env := e.request(t, http.MethodGet, "/api/v1/auth/nonce", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	nonce := &NonceJson{}
	require.NoError(t, json.Unmarshal(env.Data, nonce))
	require.NotEqual(t, "", nonce.Nonce)
	require.NotEqual(t, "", nonce.SignedNonce)
	return nonce
}

// loginAs completes the challenge with the given key and returns the wallet
// signature alongside the request it signs.
func loginRequest(t *testing.T, key *ecdsa.PrivateKey, nonce *NonceJson) *LoginRequestJson {
	address := crypto.PubkeyToAddress(key.PublicKey)
	msg := &auth.LoginMessage{
		Domain:   testDomain,
		Address:  address.Hex(),
		Nonce:    nonce.Nonce,
		ChainID:  testChainID,
		IssuedAt: time.Now().UTC().Format(time.RFC3339),
	}
	sig, err := crypto.Sign(accounts.TextHash([]byte(msg.CanonicalText())), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return &LoginRequestJson{
		Message: LoginMessageJson{
			Domain:   msg.Domain,
			Address:  msg.Address,
			Nonce:    msg.Nonce,
			ChainID:  msg.ChainID,
			IssuedAt: msg.IssuedAt,
		},
		Signature:   hexutil.Encode(sig),
		SignedNonce: nonce.SignedNonce,
	}
}

func TestAPI_Login_FullFlow(t *testing.T) {
	e := setupService(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	rr, env := e.request(t, http.MethodPost, "/api/v1/auth/verify", "", loginRequest(t, key, fetchNonce(t, e)))
	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

	resp := &LoginResponseJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	assert.Equal(t, address.Hex(), resp.Address)
	require.NotEqual(t, "", resp.Token)

	user, err := e.db.User(context.Background(), address)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint64(1), user.LoginCount)
	assert.Equal(t, testChainID, user.ChainID)

	// A second login reuses the row and bumps the counter.
	rr, _ = e.request(t, http.MethodPost, "/api/v1/auth/verify", "", loginRequest(t, key, fetchNonce(t, e)))
	require.Equal(t, http.StatusOK, rr.Code)
	user, err = e.db.User(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), user.LoginCount)
	assert.Equal(t, user.FirstLoginAt.Unix() <= user.LastLoginAt.Unix(), true)
}

func TestAPI_Login_TokenUnlocksProtectedRoute(t *testing.T) {
	e := setupService(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	_, env := e.request(t, http.MethodPost, "/api/v1/auth/verify", "", loginRequest(t, key, fetchNonce(t, e)))
	resp := &LoginResponseJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))

	rr, _ := e.request(t, http.MethodPost, "/api/v1/polls", resp.Token, draftBody("Snack budget", 2))
	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
}

func TestAPI_Login_RejectsTamperedMessage(t *testing.T) {
	e := setupService(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	req := loginRequest(t, key, fetchNonce(t, e))
	req.Message.Address = "0x000000000000000000000000000000000000dEaD"

	rr, _ := e.request(t, http.MethodPost, "/api/v1/auth/verify", "", req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAPI_Login_RejectsForeignNonce(t *testing.T) {
	e := setupService(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	req := loginRequest(t, key, fetchNonce(t, e))
	req.SignedNonce = "not-a-jwt"

	rr, _ := e.request(t, http.MethodPost, "/api/v1/auth/verify", "", req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAPI_Login_RejectsUnknownFields(t *testing.T) {
	e := setupService(t)
	body := strings.NewReader(`{"message":{},"signature":"0x00","signedNonce":"x","extra":1}`)
	rr, _ := e.rawRequest(t, http.MethodPost, "/api/v1/auth/verify", "", body)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_GetNonce_IssuesDistinctChallenges(t *testing.T) {
	e := setupService(t)
	first := fetchNonce(t, e)
	second := fetchNonce(t, e)
	assert.NotEqual(t, first.Nonce, second.Nonce)
}

func TestAPI_GetVersion(t *testing.T) {
	e := setupService(t)
	rr, env := e.request(t, http.MethodGet, "/api/v1/version", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := &VersionResponseJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	assert.NotEqual(t, "", resp.Version)
}
