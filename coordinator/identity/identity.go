// Package identity maps external voter identifiers onto the BN254 scalar
// field. The resulting commitments are usable as membership tree leaves:
// voters who hold the preimage can build inclusion proofs against them.
package identity

import (
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/althof3/votara/encoding/bytesutil"
)

// ErrNotInField is returned for commitments outside the scalar field.
var ErrNotInField = errors.New("value is not a canonical BN254 field element")

// Modulus returns a copy of the BN254 scalar field order p. Every
// commitment this package produces or accepts is strictly below it.
func Modulus() *big.Int {
	return fr.Modulus()
}

// Project hashes a ledger address into the scalar field with Poseidon2.
// The address is left-padded to one canonical field block, so the digest
// is always a canonical element and the mapping is deterministic.
func Project(addr common.Address) *big.Int {
	h := poseidon2.NewMerkleDamgardHasher()
	// A 20-byte address padded to 32 bytes is far below the modulus, so the
	// write cannot fail on a non-canonical block.
	_, _ = h.Write(bytesutil.PadLeft(addr.Bytes(), fr.Bytes))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// ProjectAll projects a list of hex addresses, preserving order. Roster
// order matters: it fixes the leaf indices of the membership tree.
func ProjectAll(addrs []string) ([]*big.Int, error) {
	commitments := make([]*big.Int, 0, len(addrs))
	for i, a := range addrs {
		if !common.IsHexAddress(a) {
			return nil, errors.Errorf("entry %d: %q is not a hex address", i, a)
		}
		commitments = append(commitments, Project(common.HexToAddress(a)))
	}
	return commitments, nil
}

// ParseCommitment accepts a voter-supplied raw commitment, decimal or
// 0x-prefixed hex, and validates it against the field order.
func ParseCommitment(s string) (*big.Int, error) {
	v := new(big.Int)
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		_, ok = v.SetString(s[2:], 16)
	} else {
		_, ok = v.SetString(s, 10)
	}
	if !ok {
		return nil, errors.Errorf("cannot parse commitment %q", s)
	}
	if v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
		return nil, errors.Wrap(ErrNotInField, s)
	}
	return v, nil
}

// ParseCommitments validates a list of raw commitments, preserving order.
func ParseCommitments(entries []string) ([]*big.Int, error) {
	commitments := make([]*big.Int, 0, len(entries))
	for i, e := range entries {
		c, err := ParseCommitment(e)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		commitments = append(commitments, c)
	}
	return commitments, nil
}
