package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/crypto"
	"github.com/iov-one/crosspile/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx and returns the
// conditions of the signers. A single invalid signature fails the whole
// transaction.
func VerifyTxSignatures(db crosspile.KVStore, tx SignedTx, chainID string) ([]crosspile.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]crosspile.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against the sign bytes and
// increments the sequence of the signer.
func VerifySignature(db crosspile.KVStore, sig *StdSignature, signBytes []byte, chainID string) (crosspile.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	bucket := NewBucket()
	user, err := loadUser(db, bucket, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, sig.Pubkey.Address(), user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing:

	version | len(chainID) | chainID      | sequence          | signBytes
	4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

The result is prehashed with sha512 so a constant length input is fed
into the signing step.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !crosspile.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	output = append(output, nonce[:]...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signBytes)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}
