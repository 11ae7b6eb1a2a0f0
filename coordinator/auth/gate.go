// Package auth implements the login handshake and the bearer credentials the
// API trusts. The server stays stateless: issued nonces travel inside a
// signed envelope instead of a session table, and tokens verify against the
// server key alone, so restarts invalidate nothing.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

var (
	// ErrNonceInvalid covers every defect of the signed nonce envelope:
	// bad signature, expiry, or a nonce that does not match the message.
	ErrNonceInvalid = errors.New("nonce envelope is invalid or expired")
	// ErrWrongAudience means the login message names a different domain or
	// chain than this coordinator serves.
	ErrWrongAudience = errors.New("login message targets a different domain or chain")
	// ErrBadSignature means the signature does not recover to the address
	// the message claims.
	ErrBadSignature = errors.New("signature does not recover the claimed address")
	// ErrTokenInvalid covers malformed, forged and expired bearer tokens.
	ErrTokenInvalid = errors.New("bearer token is invalid or expired")
)

// Config carries the key material and audience the gate verifies against.
type Config struct {
	ServerKey []byte
	Domain    string
	ChainID   uint64
	TokenTTL  time.Duration
	NonceTTL  time.Duration
}

// Gate issues nonces, verifies signed login messages and mints the bearer
// tokens carried by mutating API calls.
type Gate struct {
	serverKey []byte
	domain    string
	chainID   uint64
	tokenTTL  time.Duration
	nonceTTL  time.Duration

	// now is stubbed in tests.
	now func() time.Time
}

// NewGate validates the config and builds a gate.
func NewGate(cfg *Config) (*Gate, error) {
	if cfg == nil {
		return nil, errors.New("auth gate requires a config")
	}
	if len(cfg.ServerKey) < 32 {
		return nil, errors.New("server key must be at least 32 bytes")
	}
	if cfg.Domain == "" {
		return nil, errors.New("auth gate requires a login domain")
	}
	g := &Gate{
		serverKey: cfg.ServerKey,
		domain:    cfg.Domain,
		chainID:   cfg.ChainID,
		tokenTTL:  cfg.TokenTTL,
		nonceTTL:  cfg.NonceTTL,
		now:       time.Now,
	}
	if g.tokenTTL <= 0 {
		g.tokenTTL = 7 * 24 * time.Hour
	}
	if g.nonceTTL <= 0 {
		g.nonceTTL = 5 * time.Minute
	}
	return g, nil
}

// Nonce is a fresh login challenge. Envelope proves issuance without server
// memory: it is an HS256 JWT over the nonce with a short expiry.
type Nonce struct {
	Value     string    `json:"nonce"`
	Envelope  string    `json:"signedNonce"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type nonceClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

type sessionClaims struct {
	ChainID uint64 `json:"cid"`
	jwt.RegisteredClaims
}

// LoginMessage is the structured payload the client signs. The server never
// trusts client-rendered text; it rebuilds the canonical form from these
// fields before recovering the signer.
type LoginMessage struct {
	Domain   string `json:"domain"`
	Address  string `json:"address"`
	Nonce    string `json:"nonce"`
	ChainID  uint64 `json:"chainId"`
	IssuedAt string `json:"issuedAt"`
}

// CanonicalText renders the exact byte string wallets sign.
func (m *LoginMessage) CanonicalText() string {
	return fmt.Sprintf(
		"%s wants you to sign in with your Votara account:\n%s\n\nNonce: %s\nChain ID: %d\nIssued At: %s",
		m.Domain, m.Address, m.Nonce, m.ChainID, m.IssuedAt,
	)
}

// IssueNonce draws a fresh 32-byte nonce and wraps it in a signed envelope.
func (g *Gate) IssueNonce() (*Nonce, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "could not draw nonce entropy")
	}
	value := hex.EncodeToString(buf)
	issued := g.now().UTC()
	expires := issued.Add(g.nonceTTL)
	claims := &nonceClaims{
		Nonce: value,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	envelope, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.serverKey)
	if err != nil {
		return nil, errors.Wrap(err, "could not sign nonce envelope")
	}
	return &Nonce{
		Value:     value,
		Envelope:  envelope,
		IssuedAt:  issued,
		ExpiresAt: expires,
	}, nil
}

// VerifyLogin checks the whole handshake: the envelope proves the nonce was
// issued here and has not expired, the message must target this coordinator,
// and the signature must recover to the claimed address under EIP-191
// personal-sign rules.
func (g *Gate) VerifyLogin(msg *LoginMessage, signature, envelope string) (common.Address, error) {
	claims := &nonceClaims{}
	token, err := jwt.ParseWithClaims(envelope, claims, g.keyFunc)
	if err != nil || !token.Valid {
		return common.Address{}, ErrNonceInvalid
	}
	if claims.Nonce == "" || subtle.ConstantTimeCompare([]byte(claims.Nonce), []byte(msg.Nonce)) != 1 {
		return common.Address{}, ErrNonceInvalid
	}
	if msg.Domain != g.domain || msg.ChainID != g.chainID {
		return common.Address{}, ErrWrongAudience
	}
	if !common.IsHexAddress(msg.Address) {
		return common.Address{}, ErrBadSignature
	}

	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrBadSignature
	}
	// Wallets return the recovery id as 27 or 28 per the original yellow
	// paper convention; SigToPub wants 0 or 1.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, ErrBadSignature
	}

	digest := accounts.TextHash([]byte(msg.CanonicalText()))
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return common.Address{}, ErrBadSignature
	}
	recovered := crypto.PubkeyToAddress(*pub)
	if recovered != common.HexToAddress(msg.Address) {
		return common.Address{}, ErrBadSignature
	}
	return recovered, nil
}

// MintToken issues the bearer credential for a verified address.
func (g *Gate) MintToken(address common.Address) (string, time.Time, error) {
	issued := g.now().UTC()
	expires := issued.Add(g.tokenTTL)
	claims := &sessionClaims{
		ChainID: g.chainID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address.Hex(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.serverKey)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "could not sign bearer token")
	}
	return token, expires, nil
}

// VerifyToken validates a bearer token and returns the address it vouches
// for. No store round-trip happens here.
func (g *Gate) VerifyToken(raw string) (common.Address, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, g.keyFunc)
	if err != nil || !token.Valid {
		return common.Address{}, ErrTokenInvalid
	}
	if claims.ChainID != g.chainID || !common.IsHexAddress(claims.Subject) {
		return common.Address{}, ErrTokenInvalid
	}
	return common.HexToAddress(claims.Subject), nil
}

func (g *Gate) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected JWT signing method: %v", token.Header["alg"])
	}
	return g.serverKey, nil
}
