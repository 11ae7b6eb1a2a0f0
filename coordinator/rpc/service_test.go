package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/althof3/votara/coordinator/auth"
	chaintest "github.com/althof3/votara/coordinator/chain/testing"
	"github.com/althof3/votara/coordinator/db"
	dbtest "github.com/althof3/votara/coordinator/db/testing"
	"github.com/althof3/votara/coordinator/types"
	"github.com/althof3/votara/testing/require"
)

const (
	testDomain  = "votara.app"
	testChainID = uint64(31337)
)

type testEnv struct {
	srv   *Service
	chain *chaintest.Chain
	db    db.Database
	gate  *auth.Gate
}

func setupService(t *testing.T) *testEnv {
	d := dbtest.SetupDB(t)
	mock := chaintest.NewChain()
	gate, err := auth.NewGate(&auth.Config{
		ServerKey: []byte("0123456789abcdef0123456789abcdef"),
		Domain:    testDomain,
		ChainID:   testChainID,
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err)
	s, err := New(context.Background(),
		WithDatabase(d),
		WithChainGateway(mock),
		WithAuthGate(gate),
	)
	require.NoError(t, err)
	t.Cleanup(s.cancel)
	return &testEnv{srv: s, chain: mock, db: d, gate: gate}
}

// bearerFor mints a valid token for the given address.
func (e *testEnv) bearerFor(t *testing.T, address common.Address) string {
	token, _, err := e.gate.MintToken(address)
	require.NoError(t, err)
	return token
}

type responseEnvelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *PaginationJson `json:"pagination"`
	Error      string          `json:"error"`
}

// request routes one call through the full router, middleware included.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, *responseEnvelope) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	return e.rawRequest(t, method, path, token, buf)
}

func (e *testEnv) rawRequest(t *testing.T, method, path, token string, body io.Reader) (*httptest.ResponseRecorder, *responseEnvelope) {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.srv.router.ServeHTTP(rr, req)

	env := &responseEnvelope{}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), env), "body: %s", rr.Body.String())
	}
	return rr, env
}

// draftBody builds a valid create-poll request with the given option count.
func draftBody(title string, optionCount int) *CreatePollRequestJson {
	opts := make([]PollOptionJson, 0, optionCount)
	for i := 0; i < optionCount; i++ {
		opts = append(opts, PollOptionJson{ID: uint8(i), Label: fmt.Sprintf("Option %d", i)})
	}
	now := time.Now().Unix()
	return &CreatePollRequestJson{
		Title:       title,
		Description: "What should we do next",
		Options:     opts,
		StartTime:   now,
		EndTime:     now + 3600,
	}
}

// insertDraft stores a draft directly, bypassing the API.
func (e *testEnv) insertDraft(t *testing.T, id byte, creator common.Address) common.Hash {
	now := time.Now().UTC()
	poll := &types.Poll{
		ID:          common.Hash{id},
		Creator:     creator,
		Title:       "Board election",
		Description: "Pick the next board chair",
		Options: []types.PollOption{
			{ID: 0, Label: "Yes"},
			{ID: 1, Label: "No"},
		},
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		Status:    types.PollStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.db.SavePoll(context.Background(), poll))
	return poll.ID
}

// bindRoster attaches a roster as create-group would.
func (e *testEnv) bindRoster(t *testing.T, pollID common.Hash, groupID int64, members []string) {
	require.NoError(t, e.db.SetRoster(context.Background(), pollID, big.NewInt(groupID), members))
}

// activate flips a rostered draft to ACTIVE through the event path, the only
// way a poll goes live.
func (e *testEnv) activate(t *testing.T, pollID common.Hash, groupID int64, block uint64) {
	_, err := e.db.ApplyEventBatch(context.Background(), []*types.ChainEvent{{
		Kind:        types.EventPollActivated,
		PollID:      pollID,
		GroupID:     big.NewInt(groupID),
		TxHash:      common.Hash{'a', 'c', 't'},
		BlockNumber: block,
		LogIndex:    0,
	}}, block)
	require.NoError(t, err)
}

// castVote records one ballot through the event path.
func (e *testEnv) castVote(t *testing.T, pollID common.Hash, option uint8, nullifier int64, block uint64) {
	_, err := e.db.ApplyEventBatch(context.Background(), []*types.ChainEvent{{
		Kind:          types.EventVoteCast,
		PollID:        pollID,
		OptionIndex:   option,
		NullifierHash: big.NewInt(nullifier),
		TxHash:        common.Hash{'v'},
		BlockNumber:   block,
		LogIndex:      0,
	}}, block)
	require.NoError(t, err)
}
