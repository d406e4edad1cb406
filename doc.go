/*
Package crosspile defines the interfaces used throughout the wager
application, such as: storage, transactions, handlers, addresses and the
binary codec. It also contains helpers to work with context and abci.

The actual business logic lives in the extensions under x/. The challenge
extension implements the escrow state machine, x/cash custodies tokens and
x/oracle tracks randomness requests. Look into this package to get a brief
overview of the building blocks the extensions are using.
*/
package crosspile
