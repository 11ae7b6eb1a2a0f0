package rpc

import (
	"github.com/althof3/votara/coordinator/types"
)

// Request and response shapes for the coordinator API. Times travel as unix
// seconds, identifiers as 0x-prefixed hex, and group ids and commitments as
// decimal strings so clients never lose precision to floating point.

type NonceJson struct {
	Nonce       string `json:"nonce"`
	SignedNonce string `json:"signedNonce"`
	IssuedAt    int64  `json:"issuedAt"`
	ExpiresAt   int64  `json:"expiresAt"`
}

type LoginMessageJson struct {
	Domain   string `json:"domain"`
	Address  string `json:"address"`
	Nonce    string `json:"nonce"`
	ChainID  uint64 `json:"chainId"`
	IssuedAt string `json:"issuedAt"`
}

type LoginRequestJson struct {
	Message     LoginMessageJson `json:"message"`
	Signature   string           `json:"signature"`
	SignedNonce string           `json:"signedNonce"`
}

type LoginResponseJson struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresAt int64  `json:"expiresAt"`
}

type PollOptionJson struct {
	ID    uint8  `json:"id"`
	Label string `json:"label"`
}

type CreatePollRequestJson struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Options     []PollOptionJson `json:"options"`
	StartTime   int64            `json:"startTime"`
	EndTime     int64            `json:"endTime"`
}

type UpdatePollRequestJson struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type PollJson struct {
	PollID           string           `json:"pollId"`
	Creator          string           `json:"creator"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Options          []PollOptionJson `json:"options"`
	StartTime        int64            `json:"startTime"`
	EndTime          int64            `json:"endTime"`
	Status           string           `json:"status"`
	GroupID          string           `json:"groupId,omitempty"`
	CreationTxHash   string           `json:"creationTxHash,omitempty"`
	ActivationTxHash string           `json:"activationTxHash,omitempty"`
	ActivationBlock  uint64           `json:"activationBlock,omitempty"`
	MembershipRoster []string         `json:"membershipRoster,omitempty"`
	VoteCount        uint64           `json:"voteCount"`
	CreatedAt        int64            `json:"createdAt"`
	UpdatedAt        int64            `json:"updatedAt"`
}

type PaginationJson struct {
	Page       uint64 `json:"page"`
	Limit      uint64 `json:"limit"`
	Total      uint64 `json:"total"`
	TotalPages uint64 `json:"totalPages"`
}

type CreateGroupRequestJson struct {
	EligibleAddresses []string `json:"eligibleAddresses"`
	MemberCommitments []string `json:"memberCommitments"`
}

type CreateGroupResponseJson struct {
	GroupID string `json:"groupId"`
	TxHash  string `json:"txHash"`
	Count   uint64 `json:"count"`
}

type OptionResultJson struct {
	ID    uint8  `json:"id"`
	Label string `json:"label"`
	Count uint64 `json:"count"`
}

type ResultsResponseJson struct {
	Poll       *PollJson          `json:"poll"`
	Results    []OptionResultJson `json:"results"`
	TotalVotes uint64             `json:"totalVotes"`
}

type GroupMembersResponseJson struct {
	PollID  string   `json:"pollId"`
	GroupID string   `json:"groupId,omitempty"`
	Members []string `json:"members"`
	Count   uint64   `json:"count"`
}

type MerkleInfoJson struct {
	Root  string `json:"root"`
	Depth string `json:"depth"`
	Size  string `json:"size"`
}

type OnChainPollJson struct {
	PollID      string          `json:"pollId"`
	Creator     string          `json:"creator"`
	GroupID     string          `json:"groupId"`
	OptionCount uint8           `json:"optionCount"`
	VoteCounts  []string        `json:"voteCounts"`
	TotalVotes  string          `json:"totalVotes"`
	Merkle      *MerkleInfoJson `json:"merkle,omitempty"`
}

type VersionResponseJson struct {
	Version   string `json:"version"`
	BuildData string `json:"buildData"`
}

// pollJson renders the store record for the wire.
func pollJson(p *types.Poll) *PollJson {
	out := &PollJson{
		PollID:           p.ID.Hex(),
		Creator:          p.Creator.Hex(),
		Title:            p.Title,
		Description:      p.Description,
		Options:          make([]PollOptionJson, 0, len(p.Options)),
		StartTime:        p.StartTime.Unix(),
		EndTime:          p.EndTime.Unix(),
		Status:           p.Status.String(),
		ActivationBlock:  p.ActivationBlock,
		MembershipRoster: p.Roster,
		VoteCount:        p.VoteCount,
		CreatedAt:        p.CreatedAt.Unix(),
		UpdatedAt:        p.UpdatedAt.Unix(),
	}
	for _, opt := range p.Options {
		out.Options = append(out.Options, PollOptionJson{ID: opt.ID, Label: opt.Label})
	}
	if p.GroupID != nil {
		out.GroupID = p.GroupID.String()
	}
	if p.CreationTxHash != nil {
		out.CreationTxHash = p.CreationTxHash.Hex()
	}
	if p.ActivationTxHash != nil {
		out.ActivationTxHash = p.ActivationTxHash.Hex()
	}
	return out
}
