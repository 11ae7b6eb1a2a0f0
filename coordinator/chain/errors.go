package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Sentinel errors for the write paths. The HTTP layer maps all of them onto
// its chain-error responses, so identity matters more than text.
var (
	// ErrNotConnected is returned while no RPC connection is established.
	ErrNotConnected = errors.New("chain gateway is not connected")
	// ErrGroupAdminMismatch means the service key does not administer the group.
	ErrGroupAdminMismatch = errors.New("service key is not the group admin")
	// ErrGroupNotFound means the group does not exist on chain.
	ErrGroupNotFound = errors.New("membership group does not exist on chain")
	// ErrDuplicateMember means a commitment is already enrolled in the group.
	ErrDuplicateMember = errors.New("identity commitment is already a group member")
	// ErrInsufficientFunds means the service key cannot cover gas.
	ErrInsufficientFunds = errors.New("service key has insufficient funds")
	// ErrReverted covers reverts that match no known custom error.
	ErrReverted = errors.New("transaction reverted")
)

// revertSentinels maps registry custom error names onto sentinels.
var revertSentinels = map[string]error{
	"CallerIsNotTheGroupAdmin": ErrGroupAdminMismatch,
	"GroupDoesNotExist":        ErrGroupNotFound,
	"LeafAlreadyExists":        ErrDuplicateMember,
}

// dataError is the go-ethereum rpc error carrying ABI-encoded revert data.
type dataError interface {
	ErrorData() interface{}
}

// classifyRevert translates an error from a registry write into the chain
// error taxonomy. Custom errors are matched by their 4-byte selector when
// the node returns revert data, falling back to substring matching for
// nodes that only relay a message.
func (s *Service) classifyRevert(err error) error {
	if err == nil {
		return nil
	}
	var de dataError
	if errors.As(err, &de) {
		if name, ok := s.revertName(de.ErrorData()); ok {
			if sentinel, known := revertSentinels[name]; known {
				return errors.Wrap(sentinel, name)
			}
			return errors.Wrap(ErrReverted, name)
		}
	}
	msg := err.Error()
	for name, sentinel := range revertSentinels {
		if strings.Contains(msg, name) {
			return errors.Wrap(sentinel, msg)
		}
	}
	if strings.Contains(msg, "insufficient funds") {
		return errors.Wrap(ErrInsufficientFunds, msg)
	}
	if strings.Contains(msg, "execution reverted") {
		return errors.Wrap(ErrReverted, msg)
	}
	return err
}

// revertName resolves ABI-encoded revert data to a registry error name.
func (s *Service) revertName(data interface{}) (string, bool) {
	hexData, ok := data.(string)
	if !ok {
		return "", false
	}
	raw, err := hexutil.Decode(hexData)
	if err != nil || len(raw) < 4 {
		return "", false
	}
	var sel [4]byte
	copy(sel[:], raw[:4])
	name, found := s.errorBySelector[sel]
	return name, found
}
