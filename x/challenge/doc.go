/*
Package challenge implements a two party token wager.

An initiator opens a challenge by staking tokens into a vault. A second
party matches it by staking into its own vault, possibly a different token
and amount. Once the initiator approves the match a randomness request is
issued to the oracle requester bound to the challenge. After the oracle
publishes a value either party can reveal the winner, who receives both
stakes. Until approval the challenge can be cancelled and all stakes are
refunded.

Every challenge and vault lives at an address derived from its owner, so
there is at most one open challenge per initiator.
*/
package challenge
