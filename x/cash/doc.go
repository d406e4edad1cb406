/*
Package cash implements fungible token custody.

A mint defines a token and the authority allowed to issue it. Balances are
kept in token accounts, one per (owner, mint) pair, stored at an address
derived from both. Any extension can move tokens through the Controller,
authorization is the caller's responsibility.
*/
package cash
