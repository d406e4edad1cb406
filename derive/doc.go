/*
Package derive computes deterministic addresses from a list of seeds.

Any party can recompute where a record lives from the seeds that identify
it (a namespace plus owner identities), so no side index is needed. A
derived address is guaranteed to have no private key: the candidate hash
is rejected if it decodes to a valid ed25519 curve point and the next
nonce is tried instead.
*/
package derive
