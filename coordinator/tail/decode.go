package tail

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	votingcontract "github.com/althof3/votara/contracts/voting-contract"
	"github.com/althof3/votara/coordinator/types"
)

// eventDecoder turns raw voting contract logs into neutral chain events.
// Decoding is pure: it never touches the chain or the store.
type eventDecoder struct {
	filterer *votingcontract.VotingFilterer

	pollCreatedID   common.Hash
	pollActivatedID common.Hash
	voteCastID      common.Hash
}

func newEventDecoder() (*eventDecoder, error) {
	votingABI, err := votingcontract.VotingMetaData.GetAbi()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse voting contract ABI")
	}
	// The filterer is only used for UnpackLog, so it needs no backend.
	filterer, err := votingcontract.NewVotingFilterer(common.Address{}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not build voting log filterer")
	}
	return &eventDecoder{
		filterer:        filterer,
		pollCreatedID:   votingABI.Events["PollCreated"].ID,
		pollActivatedID: votingABI.Events["PollActivated"].ID,
		voteCastID:      votingABI.Events["VoteCast"].ID,
	}, nil
}

// decode unpacks one log according to its event signature. Logs that carry
// an unknown signature decode to nil; the caller drops them.
func (d *eventDecoder) decode(lg gethTypes.Log) (*types.ChainEvent, error) {
	if len(lg.Topics) == 0 {
		return nil, errors.New("log carries no topics")
	}
	switch lg.Topics[0] {
	case d.pollCreatedID:
		ev, err := d.filterer.ParsePollCreated(lg)
		if err != nil {
			return nil, errors.Wrap(err, "could not unpack PollCreated log")
		}
		return &types.ChainEvent{
			Kind:        types.EventPollCreated,
			PollID:      ev.PollId,
			Creator:     ev.Creator,
			TxHash:      lg.TxHash,
			BlockNumber: lg.BlockNumber,
			LogIndex:    lg.Index,
		}, nil
	case d.pollActivatedID:
		ev, err := d.filterer.ParsePollActivated(lg)
		if err != nil {
			return nil, errors.Wrap(err, "could not unpack PollActivated log")
		}
		return &types.ChainEvent{
			Kind:        types.EventPollActivated,
			PollID:      ev.PollId,
			GroupID:     ev.GroupId,
			TxHash:      lg.TxHash,
			BlockNumber: lg.BlockNumber,
			LogIndex:    lg.Index,
		}, nil
	case d.voteCastID:
		ev, err := d.filterer.ParseVoteCast(lg)
		if err != nil {
			return nil, errors.Wrap(err, "could not unpack VoteCast log")
		}
		return &types.ChainEvent{
			Kind:          types.EventVoteCast,
			PollID:        ev.PollId,
			OptionIndex:   ev.OptionIndex,
			NullifierHash: ev.NullifierHash,
			TxHash:        lg.TxHash,
			BlockNumber:   lg.BlockNumber,
			LogIndex:      lg.Index,
		}, nil
	default:
		return nil, nil
	}
}

// sortEvents orders events by (blockNumber, logIndex). Store writes must
// follow chain order so that, for example, an activation and a vote against
// the same poll in one block land in the order the contract emitted them.
func sortEvents(events []*types.ChainEvent) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].BlockNumber == events[j].BlockNumber {
			return events[i].LogIndex < events[j].LogIndex
		}
		return events[i].BlockNumber < events[j].BlockNumber
	})
}
