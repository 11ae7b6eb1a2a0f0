package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	membershipregistry "github.com/althof3/votara/contracts/membership-registry"
)

// CreateGroup submits a registry createGroup transaction, waits for it to
// be mined and extracts the new group id from the GroupCreated event in the
// receipt. The service key becomes the group admin.
func (s *Service) CreateGroup(ctx context.Context) (*big.Int, common.Hash, error) {
	_, _, registry, err := s.backend()
	if err != nil {
		return nil, common.Hash{}, err
	}
	s.txLock.Lock()
	defer s.txLock.Unlock()

	opts := s.transactOpts(ctx)
	var tx *gethTypes.Transaction
	if s.cfg.merkleTreeDuration != nil {
		tx, err = registry.CreateGroup0(opts, s.cfg.merkleTreeDuration)
	} else {
		tx, err = registry.CreateGroup(opts)
	}
	if err != nil {
		revertedWrites.WithLabelValues("createGroup").Inc()
		return nil, common.Hash{}, s.classifyRevert(err)
	}

	receipt, err := s.waitMined(ctx, tx)
	if err != nil {
		revertedWrites.WithLabelValues("createGroup").Inc()
		return nil, common.Hash{}, err
	}
	groupID, err := groupIDFromReceipt(registry, receipt)
	if err != nil {
		return nil, common.Hash{}, err
	}

	groupsCreated.Inc()
	log.WithFields(logrus.Fields{
		"groupId": groupID.String(),
		"txHash":  tx.Hash().Hex(),
		"block":   receipt.BlockNumber.Uint64(),
	}).Info("Created membership group")
	return groupID, tx.Hash(), nil
}

// AddMembers enrolls the commitments into the group in one addMembers
// transaction and waits for it to be mined. On revert the group is left
// orphaned; orphan groups are harmless and never reused.
func (s *Service) AddMembers(ctx context.Context, groupID *big.Int, commitments []*big.Int) (common.Hash, error) {
	_, _, registry, err := s.backend()
	if err != nil {
		return common.Hash{}, err
	}
	if len(commitments) == 0 {
		return common.Hash{}, errors.New("no commitments to enroll")
	}
	s.txLock.Lock()
	defer s.txLock.Unlock()

	tx, err := registry.AddMembers(s.transactOpts(ctx), groupID, commitments)
	if err != nil {
		revertedWrites.WithLabelValues("addMembers").Inc()
		return common.Hash{}, s.classifyRevert(err)
	}
	receipt, err := s.waitMined(ctx, tx)
	if err != nil {
		revertedWrites.WithLabelValues("addMembers").Inc()
		return common.Hash{}, err
	}

	// The tree changed; drop the cached view.
	s.groupInfoCache.Delete(groupID.String())

	membersEnrolled.Add(float64(len(commitments)))
	log.WithFields(logrus.Fields{
		"groupId": groupID.String(),
		"members": len(commitments),
		"txHash":  tx.Hash().Hex(),
		"block":   receipt.BlockNumber.Uint64(),
	}).Info("Enrolled group members")
	return tx.Hash(), nil
}

// transactOpts clones the keyed transactor with the caller's context. The
// caller must hold txLock.
func (s *Service) transactOpts(ctx context.Context) *bind.TransactOpts {
	s.mu.RLock()
	opts := *s.txOpts
	s.mu.RUnlock()
	opts.Context = ctx
	return &opts
}

// waitMined blocks until the transaction is included and verifies it did
// not revert. A mined-but-reverted transaction is replayed as a call at its
// block to recover the revert reason.
func (s *Service) waitMined(ctx context.Context, tx *gethTypes.Transaction) (*gethTypes.Receipt, error) {
	eth, _, _, err := s.backend()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.miningTimeout)
	defer cancel()

	start := time.Now()
	receipt, err := bind.WaitMined(ctx, eth, tx)
	miningLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, errors.Wrap(err, "waiting for transaction inclusion")
	}
	if receipt.Status != gethTypes.ReceiptStatusSuccessful {
		return nil, s.replayForRevert(ctx, tx, receipt)
	}
	return receipt, nil
}

// replayForRevert re-executes a reverted transaction as a call at its block
// so the node reports the revert reason, then classifies it.
func (s *Service) replayForRevert(ctx context.Context, tx *gethTypes.Transaction, receipt *gethTypes.Receipt) error {
	eth, _, _, err := s.backend()
	if err != nil {
		return err
	}
	msg := ethereum.CallMsg{
		From:  s.SigningAddress(),
		To:    tx.To(),
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}
	if _, err := eth.CallContract(ctx, msg, receipt.BlockNumber); err != nil {
		return s.classifyRevert(err)
	}
	return errors.Wrapf(ErrReverted, "transaction %s reverted in block %d", tx.Hash().Hex(), receipt.BlockNumber.Uint64())
}

// groupIDFromReceipt finds the GroupCreated event among the receipt logs.
func groupIDFromReceipt(registry *membershipregistry.Registry, receipt *gethTypes.Receipt) (*big.Int, error) {
	for _, l := range receipt.Logs {
		ev, err := registry.ParseGroupCreated(*l)
		if err != nil {
			continue
		}
		return ev.GroupId, nil
	}
	return nil, errors.Errorf("receipt %s carries no GroupCreated event", receipt.TxHash.Hex())
}
