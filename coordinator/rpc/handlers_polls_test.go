package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/althof3/votara/coordinator/chain"
	"github.com/althof3/votara/coordinator/types"
	"github.com/althof3/votara/testing/assert"
	"github.com/althof3/votara/testing/require"
)

var (
	creatorAddr  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	strangerAddr = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestAPI_CreatePoll_ReturnsDraft(t *testing.T) {
	e := setupService(t)
	token := e.bearerFor(t, creatorAddr)

	rr, env := e.request(t, http.MethodPost, "/api/v1/polls", token, draftBody("Team offsite location", 3))
	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

	poll := &PollJson{}
	require.NoError(t, json.Unmarshal(env.Data, poll))
	assert.Equal(t, 66, len(poll.PollID))
	assert.Equal(t, creatorAddr.Hex(), poll.Creator)
	assert.Equal(t, "Team offsite location", poll.Title)
	assert.Equal(t, "DRAFT", poll.Status)
	assert.Equal(t, 3, len(poll.Options))
	assert.Equal(t, uint64(0), poll.VoteCount)
	assert.Equal(t, "", poll.GroupID)

	stored, err := e.db.Poll(context.Background(), common.HexToHash(poll.PollID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, creatorAddr, stored.Creator)
}

func TestAPI_CreatePoll_RequiresAuth(t *testing.T) {
	e := setupService(t)
	rr, _ := e.request(t, http.MethodPost, "/api/v1/polls", "", draftBody("No token", 2))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAPI_CreatePoll_Validation(t *testing.T) {
	e := setupService(t)
	token := e.bearerFor(t, creatorAddr)

	tests := []struct {
		name     string
		mutate   func(req *CreatePollRequestJson)
		wantCode int
	}{
		{
			name:     "two options is the floor",
			mutate:   func(req *CreatePollRequestJson) { req.Options = req.Options[:2] },
			wantCode: http.StatusOK,
		},
		{
			name:     "one option rejected",
			mutate:   func(req *CreatePollRequestJson) { req.Options = req.Options[:1] },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "256 options is the ceiling",
			mutate:   func(req *CreatePollRequestJson) { *req = *draftBody(req.Title, 256) },
			wantCode: http.StatusOK,
		},
		{
			name: "257 options rejected",
			mutate: func(req *CreatePollRequestJson) {
				*req = *draftBody(req.Title, 256)
				req.Options = append(req.Options, PollOptionJson{ID: 0, Label: "overflow"})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "empty title rejected",
			mutate:   func(req *CreatePollRequestJson) { req.Title = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "oversized title rejected",
			mutate:   func(req *CreatePollRequestJson) { req.Title = strings.Repeat("x", 201) },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "empty option label rejected",
			mutate:   func(req *CreatePollRequestJson) { req.Options[1].Label = "" },
			wantCode: http.StatusBadRequest,
		},
		{
			name: "sparse option ids rejected",
			mutate: func(req *CreatePollRequestJson) {
				req.Options[0].ID = 0
				req.Options[1].ID = 2
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "equal start and end rejected",
			mutate:   func(req *CreatePollRequestJson) { req.EndTime = req.StartTime },
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end before start rejected",
			mutate: func(req *CreatePollRequestJson) {
				req.StartTime, req.EndTime = req.EndTime, req.StartTime
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing times rejected",
			mutate:   func(req *CreatePollRequestJson) { req.StartTime, req.EndTime = 0, 0 },
			wantCode: http.StatusBadRequest,
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := draftBody(fmt.Sprintf("Poll %d", i), 2)
			tt.mutate(req)
			rr, _ := e.request(t, http.MethodPost, "/api/v1/polls", token, req)
			require.Equal(t, tt.wantCode, rr.Code, "body: %s", rr.Body.String())
		})
	}
}

func TestAPI_CreatePoll_RejectsUnknownFields(t *testing.T) {
	e := setupService(t)
	token := e.bearerFor(t, creatorAddr)
	body := strings.NewReader(`{"title":"t","options":[],"surprise":true}`)
	rr, _ := e.rawRequest(t, http.MethodPost, "/api/v1/polls", token, body)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_ListPolls_Paginates(t *testing.T) {
	e := setupService(t)
	for i := byte(1); i <= 3; i++ {
		e.insertDraft(t, i, creatorAddr)
	}

	rr, env := e.request(t, http.MethodGet, "/api/v1/polls", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var page []*PollJson
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 3, len(page))
	require.NotNil(t, env.Pagination)
	assert.Equal(t, uint64(3), env.Pagination.Total)
	assert.Equal(t, uint64(10), env.Pagination.Limit)
	assert.Equal(t, uint64(1), env.Pagination.TotalPages)

	rr, env = e.request(t, http.MethodGet, "/api/v1/polls?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page = nil
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, len(page))
	assert.Equal(t, uint64(2), env.Pagination.TotalPages)

	// Requested limits above the cap are clamped, not rejected.
	rr, env = e.request(t, http.MethodGet, "/api/v1/polls?limit=100", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint64(50), env.Pagination.Limit)
}

func TestAPI_ListPolls_Filters(t *testing.T) {
	e := setupService(t)
	e.insertDraft(t, 1, creatorAddr)
	e.insertDraft(t, 2, strangerAddr)

	rr, env := e.request(t, http.MethodGet, "/api/v1/polls?creator="+creatorAddr.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var page []*PollJson
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Equal(t, 1, len(page))
	assert.Equal(t, creatorAddr.Hex(), page[0].Creator)

	rr, env = e.request(t, http.MethodGet, "/api/v1/polls?status=DRAFT", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page = nil
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 2, len(page))

	rr, env = e.request(t, http.MethodGet, "/api/v1/polls?status=ACTIVE", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page = nil
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 0, len(page))
}

func TestAPI_ListPolls_RejectsBadQueries(t *testing.T) {
	e := setupService(t)
	for _, q := range []string{
		"?page=0", "?page=presumably", "?limit=0", "?limit=-3",
		"?status=OPEN", "?creator=nobody",
	} {
		rr, _ := e.request(t, http.MethodGet, "/api/v1/polls"+q, "", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code, "query %s", q)
	}
}

func TestAPI_GetPoll(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)

	rr, env := e.request(t, http.MethodGet, "/api/v1/polls/"+id.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	poll := &PollJson{}
	require.NoError(t, json.Unmarshal(env.Data, poll))
	assert.Equal(t, id.Hex(), poll.PollID)
	assert.Equal(t, "DRAFT", poll.Status)

	rr, _ = e.request(t, http.MethodGet, "/api/v1/polls/"+common.Hash{99}.Hex(), "", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = e.request(t, http.MethodGet, "/api/v1/polls/0x1234", "", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_UpdatePoll_EditsDraft(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)
	token := e.bearerFor(t, creatorAddr)

	title := "Board election, round two"
	rr, env := e.request(t, http.MethodPut, "/api/v1/polls/"+id.Hex(), token, &UpdatePollRequestJson{Title: &title})
	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

	poll := &PollJson{}
	require.NoError(t, json.Unmarshal(env.Data, poll))
	assert.Equal(t, title, poll.Title)
	assert.Equal(t, "Pick the next board chair", poll.Description)
}

func TestAPI_UpdatePoll_ForbiddenForNonCreator(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)
	token := e.bearerFor(t, strangerAddr)

	title := "Hijacked"
	rr, _ := e.request(t, http.MethodPut, "/api/v1/polls/"+id.Hex(), token, &UpdatePollRequestJson{Title: &title})
	require.Equal(t, http.StatusForbidden, rr.Code)

	stored, err := e.db.Poll(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Board election", stored.Title)
}

func TestAPI_UpdatePoll_ConflictsOnceActive(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)
	e.bindRoster(t, id, 4, []string{"11", "22"})
	e.activate(t, id, 4, 50)
	token := e.bearerFor(t, creatorAddr)

	title := "Too late"
	rr, _ := e.request(t, http.MethodPut, "/api/v1/polls/"+id.Hex(), token, &UpdatePollRequestJson{Title: &title})
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestAPI_UpdatePoll_RejectsEmptyPatch(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)
	token := e.bearerFor(t, creatorAddr)

	rr, _ := e.request(t, http.MethodPut, "/api/v1/polls/"+id.Hex(), token, &UpdatePollRequestJson{})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_CreateGroup_BindsRoster(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)
	token := e.bearerFor(t, creatorAddr)

	rr, env := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, &CreateGroupRequestJson{
		EligibleAddresses: []string{creatorAddr.Hex(), strangerAddr.Hex()},
		MemberCommitments: []string{"12345"},
	})
	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

	resp := &CreateGroupResponseJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	assert.Equal(t, "1", resp.GroupID)
	assert.Equal(t, uint64(3), resp.Count)
	assert.NotEqual(t, "", resp.TxHash)

	require.Equal(t, 1, len(e.chain.CreatedGroups))
	require.Equal(t, 3, len(e.chain.AddedMembers["1"]))
	// Raw commitments enroll after the projected addresses.
	assert.Equal(t, "12345", e.chain.AddedMembers["1"][2].String())

	stored, err := e.db.Poll(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, types.PollStatusDraft, stored.Status)
	require.Equal(t, 3, len(stored.Roster))
	require.NotNil(t, stored.GroupID)
	assert.Equal(t, "1", stored.GroupID.String())
}

func TestAPI_CreateGroup_EnrollRevertKeepsDraft(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)
	token := e.bearerFor(t, creatorAddr)
	body := &CreateGroupRequestJson{EligibleAddresses: []string{creatorAddr.Hex()}}

	e.chain.EnrollErr = chain.ErrDuplicateMember
	rr, _ := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, body)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.StringContains(t, "already a group member", rr.Body.String())

	stored, err := e.db.Poll(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, types.PollStatusDraft, stored.Status)
	assert.Equal(t, 0, len(stored.Roster))

	// The orphaned group stays on chain; the retry simply uses a fresh one.
	e.chain.EnrollErr = nil
	rr, env := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, body)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := &CreateGroupResponseJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	assert.Equal(t, "2", resp.GroupID)
}

func TestAPI_CreateGroup_Guards(t *testing.T) {
	e := setupService(t)
	body := &CreateGroupRequestJson{EligibleAddresses: []string{creatorAddr.Hex()}}

	t.Run("missing poll", func(t *testing.T) {
		token := e.bearerFor(t, creatorAddr)
		rr, _ := e.request(t, http.MethodPost, "/api/v1/polls/"+common.Hash{99}.Hex()+"/create-group", token, body)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
	t.Run("non-creator", func(t *testing.T) {
		id := e.insertDraft(t, 1, creatorAddr)
		token := e.bearerFor(t, strangerAddr)
		rr, _ := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, body)
		require.Equal(t, http.StatusForbidden, rr.Code)
	})
	t.Run("roster already attached", func(t *testing.T) {
		id := e.insertDraft(t, 2, creatorAddr)
		e.bindRoster(t, id, 9, []string{"11"})
		token := e.bearerFor(t, creatorAddr)
		rr, _ := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, body)
		require.Equal(t, http.StatusConflict, rr.Code)
	})
	t.Run("active poll", func(t *testing.T) {
		id := e.insertDraft(t, 3, creatorAddr)
		e.bindRoster(t, id, 10, []string{"11"})
		e.activate(t, id, 10, 70)
		token := e.bearerFor(t, creatorAddr)
		rr, _ := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, body)
		require.Equal(t, http.StatusConflict, rr.Code)
	})
	t.Run("empty membership", func(t *testing.T) {
		id := e.insertDraft(t, 4, creatorAddr)
		token := e.bearerFor(t, creatorAddr)
		rr, _ := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, &CreateGroupRequestJson{})
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("bad address", func(t *testing.T) {
		id := e.insertDraft(t, 5, creatorAddr)
		token := e.bearerFor(t, creatorAddr)
		rr, _ := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, &CreateGroupRequestJson{
			EligibleAddresses: []string{"not-an-address"},
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("commitment outside the field", func(t *testing.T) {
		id := e.insertDraft(t, 6, creatorAddr)
		token := e.bearerFor(t, creatorAddr)
		rr, _ := e.request(t, http.MethodPost, "/api/v1/polls/"+id.Hex()+"/create-group", token, &CreateGroupRequestJson{
			MemberCommitments: []string{strings.Repeat("9", 80)},
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("no chain calls on rejected input", func(t *testing.T) {
		assert.Equal(t, 0, len(e.chain.CreatedGroups))
	})
}

func TestAPI_GetResults_TalliesVotes(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)
	e.bindRoster(t, id, 3, []string{"11", "22", "33"})
	e.activate(t, id, 3, 50)
	e.castVote(t, id, 0, 1001, 51)
	e.castVote(t, id, 1, 1002, 52)
	e.castVote(t, id, 1, 1003, 53)

	rr, env := e.request(t, http.MethodGet, "/api/v1/polls/"+id.Hex()+"/results", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := &ResultsResponseJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	assert.Equal(t, "ACTIVE", resp.Poll.Status)
	assert.Equal(t, uint64(3), resp.Poll.VoteCount)
	assert.Equal(t, uint64(3), resp.TotalVotes)
	require.Equal(t, 2, len(resp.Results))
	assert.Equal(t, uint64(1), resp.Results[0].Count)
	assert.Equal(t, "Yes", resp.Results[0].Label)
	assert.Equal(t, uint64(2), resp.Results[1].Count)
}

func TestAPI_GetGroupMembers(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)
	e.bindRoster(t, id, 5, []string{"11", "22"})

	rr, env := e.request(t, http.MethodGet, "/api/v1/polls/"+id.Hex()+"/group-members", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := &GroupMembersResponseJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	assert.Equal(t, "5", resp.GroupID)
	assert.DeepEqual(t, []string{"11", "22"}, resp.Members)
	assert.Equal(t, uint64(2), resp.Count)

	_, found := e.srv.rosterCache.Get(id.Hex())
	assert.Equal(t, true, found, "bound roster should be cached")
}

func TestAPI_GetGroupMembers_EmptyBeforeBinding(t *testing.T) {
	e := setupService(t)
	id := e.insertDraft(t, 7, creatorAddr)

	rr, env := e.request(t, http.MethodGet, "/api/v1/polls/"+id.Hex()+"/group-members", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := &GroupMembersResponseJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	assert.Equal(t, uint64(0), resp.Count)
	require.NotNil(t, resp.Members)

	_, found := e.srv.rosterCache.Get(id.Hex())
	assert.Equal(t, false, found, "empty rosters must not be cached")

	rr, _ = e.request(t, http.MethodGet, "/api/v1/polls/"+common.Hash{99}.Hex()+"/group-members", "", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPI_GetPollOnChain(t *testing.T) {
	e := setupService(t)
	id := common.Hash{7}
	e.chain.Polls[id] = &chain.OnChainPoll{
		Exists:      true,
		Creator:     creatorAddr,
		GroupID:     big.NewInt(5),
		OptionCount: 2,
		VoteCounts:  []*big.Int{big.NewInt(2), big.NewInt(1)},
		TotalVotes:  big.NewInt(3),
	}
	e.chain.MerkleInfos["5"] = &chain.MerkleInfo{
		Root:  big.NewInt(77),
		Depth: big.NewInt(2),
		Size:  big.NewInt(3),
	}

	rr, env := e.request(t, http.MethodGet, "/api/v1/polls/"+id.Hex()+"/onchain", "", nil)
	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

	resp := &OnChainPollJson{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	assert.Equal(t, creatorAddr.Hex(), resp.Creator)
	assert.Equal(t, "5", resp.GroupID)
	assert.Equal(t, uint8(2), resp.OptionCount)
	assert.DeepEqual(t, []string{"2", "1"}, resp.VoteCounts)
	assert.Equal(t, "3", resp.TotalVotes)
	require.NotNil(t, resp.Merkle)
	assert.Equal(t, "77", resp.Merkle.Root)

	rr, _ = e.request(t, http.MethodGet, "/api/v1/polls/"+common.Hash{99}.Hex()+"/onchain", "", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
