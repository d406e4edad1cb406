package app

import (
	"bytes"
	"time"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/commands"
	"github.com/iov-one/crosspile/crypto"
	"github.com/iov-one/crosspile/x/cash"
	"github.com/iov-one/crosspile/x/challenge"
	"github.com/iov-one/crosspile/x/oracle"
	"github.com/iov-one/crosspile/x/sigs"
)

// ExampleChainID is the chain the example signatures are created for.
const ExampleChainID = "crosspile-example"

// Examples generates some example structs to dump out with testgen.
// Keys are derived from fixed seeds so the output is stable.
func Examples() []commands.Example {
	initiatorKey := crypto.PrivKeyEd25519FromSeed(bytes.Repeat([]byte{1}, 32))
	acceptorKey := crypto.PrivKeyEd25519FromSeed(bytes.Repeat([]byte{2}, 32))
	initiator := initiatorKey.PublicKey().Address()
	acceptor := acceptorKey.PublicKey().Address()

	mint, err := cash.MintAddress(initiator, defaultSymbol)
	must(err)
	requester, _, err := oracle.RequesterAddress(initiator, 1)
	must(err)
	id, _, err := challenge.ChallengeAddress(initiator)
	must(err)
	vault, nonce, err := challenge.VaultAddress(challenge.InitiatorRole, initiator, id)
	must(err)

	record := &challenge.Challenge{
		Initiator:            initiator,
		InitiatorTokensMint:  mint,
		InitiatorTokensVault: vault,
		InitiatorWagerAmount: 100,
		InitiatorVaultNonce:  uint32(nonce),
		Requester:            requester,
		CreatedAt:            crosspile.AsUnixTime(time.Date(2019, 5, 1, 12, 0, 0, 0, time.UTC)),
	}

	open := &challenge.NewChallengeMsg{
		Initiator: initiator,
		Mint:      mint,
		Amount:    100,
		Requester: requester,
	}
	publish := &oracle.PublishRandomMsg{
		Requester: requester,
		Random:    bytes.Repeat([]byte{7}, oracle.RandomLength),
	}

	unsigned := Tx{Msg: open}
	tx := unsigned
	sig, err := sigs.SignTx(initiatorKey, &tx, ExampleChainID, 0)
	must(err)
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "pub_key", Obj: initiatorKey.PublicKey()},
		{Filename: "acceptor_pub_key", Obj: acceptorKey.PublicKey()},
		{Filename: "challenge", Obj: record},
		{Filename: "new_challenge_msg", Obj: open},
		{Filename: "accept_challenge_msg", Obj: &challenge.AcceptChallengeMsg{
			ChallengeID: id,
			Acceptor:    acceptor,
			Mint:        mint,
			Amount:      100,
		}},
		{Filename: "publish_random_msg", Obj: publish},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
