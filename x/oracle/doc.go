/*
Package oracle implements the randomness service boundary.

A requester record binds an authority, who may ask for a random value,
to an oracle, who answers. Each request goes through two phases: the
authority marks the requester pending, later the oracle publishes a 64 byte
value. A published value is immutable until the next request.
*/
package oracle
