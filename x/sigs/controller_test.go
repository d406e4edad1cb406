package sigs

import (
	"testing"

	"github.com/iov-one/crosspile/crypto"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("payload"), "test-chain", 1)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := BuildSignBytes([]byte("payload"), "test-chain", 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "sequence must change the sign bytes")

	c, err := BuildSignBytes([]byte("payload"), "other-chain", 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "chain must change the sign bytes")

	_, err = BuildSignBytes([]byte("payload"), "test-chain", -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes([]byte("payload"), "x", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignatures(t *testing.T) {
	const chainID = "verify-chain"
	db := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	addr := priv.PublicKey().Address()

	tx := newSignedTx([]byte("hello"))

	n, err := NextNonce(db, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}

	conds, err := VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	require.Len(t, conds, 1)
	assert.Equal(t, priv.PublicKey().Condition(), conds[0])

	n, err = NextNonce(db, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Signed for another chain.
	other, err := SignTx(priv, tx, "another-chain", 1)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{other}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// Signature of a different key.
	forged, err := SignTx(crypto.GenPrivKeyEd25519(), tx, chainID, 1)
	require.NoError(t, err)
	forged.Pubkey = priv.PublicKey()
	tx.Signatures = []*StdSignature{forged}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	tx.Signatures = []*StdSignature{{Pubkey: priv.PublicKey(), Sequence: 1}}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestUserDataSequence(t *testing.T) {
	u := UserData{Pubkey: crypto.GenPrivKeyEd25519().PublicKey()}
	require.NoError(t, u.CheckAndIncrementSequence(0))
	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(0)))
	require.NoError(t, u.CheckAndIncrementSequence(1))
	assert.Equal(t, int64(2), u.Sequence)

	u.Sequence = maxSequence
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(maxSequence)))

	assert.Error(t, (&UserData{Sequence: 3}).Validate())
	assert.Error(t, (&UserData{Sequence: -1}).Validate())
	assert.NoError(t, (&UserData{}).Validate())
}
