package rpc

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/althof3/votara/config/params"
	"github.com/althof3/votara/coordinator/auth"
	dbtypes "github.com/althof3/votara/coordinator/db/types"
	"github.com/althof3/votara/coordinator/identity"
	"github.com/althof3/votara/coordinator/types"
	"github.com/althof3/votara/network/httputil"
	"github.com/althof3/votara/runtime/version"
)

// CreatePoll inserts a draft. The pollId is generated here, content-addressed
// from a fresh random string, and handed back for the creator to anchor on
// chain with createPoll.
func (s *Service) CreatePoll(w http.ResponseWriter, r *http.Request) {
	creator, ok := auth.AuthenticatedAddress(r.Context())
	if !ok {
		httputil.HandleError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	var req CreatePollRequestJson
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httputil.HandleError(w, "could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if msg := validateDraft(&req); msg != "" {
		httputil.HandleError(w, msg, http.StatusBadRequest)
		return
	}

	options := make([]types.PollOption, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, types.PollOption{ID: opt.ID, Label: opt.Label})
	}
	now := time.Now().UTC()
	poll := &types.Poll{
		ID:          crypto.Keccak256Hash([]byte(uuid.New().String())),
		Creator:     creator,
		Title:       req.Title,
		Description: req.Description,
		Options:     options,
		StartTime:   time.Unix(req.StartTime, 0).UTC(),
		EndTime:     time.Unix(req.EndTime, 0).UTC(),
		Status:      types.PollStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.SavePoll(r.Context(), poll); err != nil {
		writeError(w, err)
		return
	}
	log.WithFields(logrus.Fields{
		"pollId":  poll.ID.Hex(),
		"creator": creator.Hex(),
		"options": len(options),
	}).Info("Draft poll created")
	httputil.WriteJson(w, pollJson(poll))
}

// validateDraft returns an empty string when the draft is acceptable.
func validateDraft(req *CreatePollRequestJson) string {
	cfg := params.CoordinatorConfig()
	if req.Title == "" {
		return "title is required"
	}
	if len(req.Title) > cfg.MaxTitleLength {
		return fmt.Sprintf("title must not exceed %d characters", cfg.MaxTitleLength)
	}
	if len(req.Description) > cfg.MaxDescriptionLength {
		return fmt.Sprintf("description must not exceed %d characters", cfg.MaxDescriptionLength)
	}
	if len(req.Options) < cfg.MinPollOptions || len(req.Options) > cfg.MaxPollOptions {
		return fmt.Sprintf("polls need between %d and %d options", cfg.MinPollOptions, cfg.MaxPollOptions)
	}
	options := make([]types.PollOption, 0, len(req.Options))
	for i, opt := range req.Options {
		if opt.Label == "" {
			return fmt.Sprintf("option %d needs a label", i)
		}
		if len(opt.Label) > cfg.MaxOptionLabelLength {
			return fmt.Sprintf("option labels must not exceed %d characters", cfg.MaxOptionLabelLength)
		}
		options = append(options, types.PollOption{ID: opt.ID, Label: opt.Label})
	}
	if !types.DenseOptionIDs(options) {
		return "option ids must be dense starting at 0"
	}
	if req.StartTime <= 0 || req.EndTime <= 0 {
		return "startTime and endTime are required"
	}
	if req.StartTime >= req.EndTime {
		return "startTime must be before endTime"
	}
	return ""
}

// ListPolls serves the paginated poll index.
func (s *Service) ListPolls(w http.ResponseWriter, r *http.Request) {
	cfg := params.CoordinatorConfig()
	filter := &dbtypes.PollFilter{
		Page:  1,
		Limit: uint64(cfg.DefaultPageSize),
	}
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		page, err := strconv.ParseUint(v, 10, 64)
		if err != nil || page == 0 {
			httputil.HandleError(w, "page must be a positive integer", http.StatusBadRequest)
			return
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil || limit == 0 {
			httputil.HandleError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		if limit > uint64(cfg.MaxPageSize) {
			limit = uint64(cfg.MaxPageSize)
		}
		filter.Limit = limit
	}
	if v := q.Get("status"); v != "" {
		status, err := types.ParsePollStatus(v)
		if err != nil {
			httputil.HandleError(w, "status must be one of DRAFT, ACTIVE, ENDED", http.StatusBadRequest)
			return
		}
		filter.Status = &status
	}
	if v := q.Get("creator"); v != "" {
		if !common.IsHexAddress(v) {
			httputil.HandleError(w, "creator must be a hex address", http.StatusBadRequest)
			return
		}
		creator := common.HexToAddress(v)
		filter.Creator = &creator
	}

	polls, total, err := s.db.ListPolls(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]*PollJson, 0, len(polls))
	for _, p := range polls {
		pj := pollJson(p)
		// The index view stays lean; rosters are served by group-members.
		pj.MembershipRoster = nil
		out = append(out, pj)
	}
	pages := total / filter.Limit
	if total%filter.Limit != 0 {
		pages++
	}
	httputil.WriteJsonPaginated(w, out, &PaginationJson{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: pages,
	})
}

// GetPoll serves one poll with its computed status and vote count.
func (s *Service) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, ok := s.loadPoll(w, r)
	if !ok {
		return
	}
	httputil.WriteJson(w, pollJson(poll))
}

// UpdatePoll edits title and description while the poll is still a draft.
func (s *Service) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.AuthenticatedAddress(r.Context())
	if !ok {
		httputil.HandleError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}
	var req UpdatePollRequestJson
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httputil.HandleError(w, "could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == nil && req.Description == nil {
		httputil.HandleError(w, "nothing to update", http.StatusBadRequest)
		return
	}
	cfg := params.CoordinatorConfig()
	if req.Title != nil && (*req.Title == "" || len(*req.Title) > cfg.MaxTitleLength) {
		httputil.HandleError(w, fmt.Sprintf("title must be between 1 and %d characters", cfg.MaxTitleLength), http.StatusBadRequest)
		return
	}
	if req.Description != nil && len(*req.Description) > cfg.MaxDescriptionLength {
		httputil.HandleError(w, fmt.Sprintf("description must not exceed %d characters", cfg.MaxDescriptionLength), http.StatusBadRequest)
		return
	}

	upd := &dbtypes.PollMetadataUpdate{Title: req.Title, Description: req.Description}
	if err := s.db.UpdatePollMetadata(r.Context(), pollID, actor, upd); err != nil {
		writeError(w, err)
		return
	}
	poll, err := s.db.Poll(r.Context(), pollID)
	if err != nil || poll == nil {
		writeError(w, err)
		return
	}
	httputil.WriteJson(w, pollJson(poll))
}

// CreateGroup builds the on-chain membership group for a draft: project the
// eligible addresses, create the group, enroll the commitments, then bind
// the roster. The poll stays DRAFT; activation is observed from the chain.
func (s *Service) CreateGroup(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.AuthenticatedAddress(r.Context())
	if !ok {
		httputil.HandleError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}
	poll, err := s.db.Poll(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	if poll == nil {
		httputil.HandleError(w, "poll not found", http.StatusNotFound)
		return
	}
	if poll.Creator != actor {
		httputil.HandleError(w, "only the poll creator may do this", http.StatusForbidden)
		return
	}
	if poll.Status != types.PollStatusDraft {
		httputil.HandleError(w, "poll is no longer in draft", http.StatusConflict)
		return
	}
	if len(poll.Roster) > 0 {
		httputil.HandleError(w, "membership roster has already been attached", http.StatusConflict)
		return
	}

	var req CreateGroupRequestJson
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		httputil.HandleError(w, "could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	cfg := params.CoordinatorConfig()
	memberCount := len(req.EligibleAddresses) + len(req.MemberCommitments)
	if memberCount == 0 {
		httputil.HandleError(w, "the group needs at least one member", http.StatusBadRequest)
		return
	}
	if memberCount > cfg.MaxRosterSize {
		httputil.HandleError(w, fmt.Sprintf("the roster must not exceed %d members", cfg.MaxRosterSize), http.StatusBadRequest)
		return
	}
	commitments, err := identity.ProjectAll(req.EligibleAddresses)
	if err != nil {
		httputil.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}
	raw, err := identity.ParseCommitments(req.MemberCommitments)
	if err != nil {
		httputil.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}
	commitments = append(commitments, raw...)

	groupID, _, err := s.chain.CreateGroup(r.Context())
	if err != nil {
		writeChainError(w, "create the membership group", err)
		return
	}
	txHash, err := s.chain.AddMembers(r.Context(), groupID, commitments)
	if err != nil {
		// The fresh group stays orphaned on chain, which is harmless; the
		// poll remains DRAFT and the call can be retried.
		writeChainError(w, "enroll the group members", err)
		return
	}

	roster := make([]string, 0, len(commitments))
	for _, c := range commitments {
		roster = append(roster, c.String())
	}
	if err := s.db.SetRoster(r.Context(), pollID, groupID, roster); err != nil {
		writeError(w, err)
		return
	}
	s.rosterCache.Delete(pollID.Hex())

	log.WithFields(logrus.Fields{
		"pollId":  pollID.Hex(),
		"groupId": groupID.String(),
		"members": len(roster),
	}).Info("Membership group created")
	httputil.WriteJson(w, &CreateGroupResponseJson{
		GroupID: groupID.String(),
		TxHash:  txHash.Hex(),
		Count:   uint64(len(roster)),
	})
}

// GetResults joins the per-option tallies to the poll's options.
func (s *Service) GetResults(w http.ResponseWriter, r *http.Request) {
	poll, ok := s.loadPoll(w, r)
	if !ok {
		return
	}
	counts, total, err := s.db.VoteCounts(r.Context(), poll.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	results := make([]OptionResultJson, 0, len(poll.Options))
	for _, opt := range poll.Options {
		results = append(results, OptionResultJson{
			ID:    opt.ID,
			Label: opt.Label,
			Count: counts[opt.ID],
		})
	}
	httputil.WriteJson(w, &ResultsResponseJson{
		Poll:       pollJson(poll),
		Results:    results,
		TotalVotes: total,
	})
}

// GetGroupMembers serves the roster for client-side proof generation.
func (s *Service) GetGroupMembers(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}
	if cached, found := s.rosterCache.Get(pollID.Hex()); found {
		httputil.WriteJson(w, cached)
		return
	}
	poll, err := s.db.Poll(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return
	}
	if poll == nil {
		httputil.HandleError(w, "poll not found", http.StatusNotFound)
		return
	}
	resp := &GroupMembersResponseJson{
		PollID:  poll.ID.Hex(),
		Members: poll.Roster,
		Count:   uint64(len(poll.Roster)),
	}
	if resp.Members == nil {
		resp.Members = []string{}
	}
	if poll.GroupID != nil {
		resp.GroupID = poll.GroupID.String()
	}
	// Rosters are immutable once attached, so only bound rosters are worth
	// caching; an empty answer would mask the attach for a full TTL.
	if len(poll.Roster) > 0 {
		s.rosterCache.SetDefault(pollID.Hex(), resp)
	}
	httputil.WriteJson(w, resp)
}

// GetPollOnChain serves the contract's ground-truth view of a poll next to
// the membership tree info.
func (s *Service) GetPollOnChain(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}
	onchain, err := s.chain.PollOnChain(r.Context(), pollID)
	if err != nil {
		writeChainError(w, "read the poll from chain", err)
		return
	}
	if !onchain.Exists {
		httputil.HandleError(w, "poll is not anchored on chain", http.StatusNotFound)
		return
	}
	resp := &OnChainPollJson{
		PollID:      pollID.Hex(),
		Creator:     onchain.Creator.Hex(),
		OptionCount: onchain.OptionCount,
		VoteCounts:  make([]string, 0, len(onchain.VoteCounts)),
	}
	for _, c := range onchain.VoteCounts {
		resp.VoteCounts = append(resp.VoteCounts, c.String())
	}
	if onchain.TotalVotes != nil {
		resp.TotalVotes = onchain.TotalVotes.String()
	}
	if onchain.GroupID != nil {
		resp.GroupID = onchain.GroupID.String()
		if onchain.GroupID.Sign() > 0 {
			merkle, err := s.chain.GroupMerkleInfo(r.Context(), onchain.GroupID)
			if err != nil {
				writeChainError(w, "read the membership tree", err)
				return
			}
			resp.Merkle = &MerkleInfoJson{
				Root:  bigString(merkle.Root),
				Depth: bigString(merkle.Depth),
				Size:  bigString(merkle.Size),
			}
		}
	}
	httputil.WriteJson(w, resp)
}

// GetVersion reports the build the coordinator is running.
func (s *Service) GetVersion(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJson(w, &VersionResponseJson{
		Version:   version.GetVersion(),
		BuildData: version.GetBuildData(),
	})
}

// loadPoll parses {id} and fetches the record, writing the error response on
// any failure.
func (s *Service) loadPoll(w http.ResponseWriter, r *http.Request) (*types.Poll, bool) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return nil, false
	}
	poll, err := s.db.Poll(r.Context(), pollID)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if poll == nil {
		httputil.HandleError(w, "poll not found", http.StatusNotFound)
		return nil, false
	}
	return poll, true
}

func parsePollID(w http.ResponseWriter, r *http.Request) (common.Hash, bool) {
	raw := mux.Vars(r)["id"]
	b, err := hexutil.Decode(raw)
	if err != nil || len(b) != common.HashLength {
		httputil.HandleError(w, "poll id must be 32 bytes of 0x-prefixed hex", http.StatusBadRequest)
		return common.Hash{}, false
	}
	return common.BytesToHash(b), true
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
