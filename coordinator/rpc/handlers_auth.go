package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/althof3/votara/coordinator/auth"
	"github.com/althof3/votara/coordinator/types"
	"github.com/althof3/votara/network/httputil"
)

// GetNonce hands out a fresh login challenge together with its signed
// envelope. Nothing is stored server-side.
func (s *Service) GetNonce(w http.ResponseWriter, _ *http.Request) {
	nonce, err := s.gate.IssueNonce()
	if err != nil {
		log.WithError(err).Error("Could not issue login nonce")
		httputil.HandleError(w, "could not issue nonce", http.StatusInternalServerError)
		return
	}
	httputil.WriteJson(w, &NonceJson{
		Nonce:       nonce.Value,
		SignedNonce: nonce.Envelope,
		IssuedAt:    nonce.IssuedAt.Unix(),
		ExpiresAt:   nonce.ExpiresAt.Unix(),
	})
}

// Login verifies a signed login message, records the user, and mints the
// bearer token for subsequent mutating calls.
func (s *Service) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestJson
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httputil.HandleError(w, "could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	msg := &auth.LoginMessage{
		Domain:   req.Message.Domain,
		Address:  req.Message.Address,
		Nonce:    req.Message.Nonce,
		ChainID:  req.Message.ChainID,
		IssuedAt: req.Message.IssuedAt,
	}
	address, err := s.gate.VerifyLogin(msg, req.Signature, req.SignedNonce)
	if err != nil {
		httputil.HandleError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if err := s.recordLogin(r.Context(), address, req.Message.ChainID); err != nil {
		log.WithError(err).Error("Could not record login")
		httputil.HandleError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, expires, err := s.gate.MintToken(address)
	if err != nil {
		log.WithError(err).Error("Could not mint bearer token")
		httputil.HandleError(w, "could not mint token", http.StatusInternalServerError)
		return
	}
	httputil.WriteJson(w, &LoginResponseJson{
		Token:     token,
		Address:   address.Hex(),
		ExpiresAt: expires.Unix(),
	})
}

func (s *Service) recordLogin(ctx context.Context, address common.Address, chainID uint64) error {
	now := time.Now().UTC()
	user, err := s.db.User(ctx, address)
	if err != nil {
		return err
	}
	if user == nil {
		user = &types.User{
			Address:      address,
			ChainID:      chainID,
			FirstLoginAt: now,
		}
	}
	user.LastLoginAt = now
	user.LoginCount++
	return s.db.SaveUser(ctx, user)
}
