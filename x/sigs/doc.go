/*
Package sigs verifies the ed25519 signatures attached to a transaction and
keeps a per signer sequence for replay protection. Signers are exposed to
the handlers through the Authenticate type.
*/
package sigs
