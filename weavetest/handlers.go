package weavetest

import "github.com/iov-one/crosspile"

// calls counts how often a mock was entered, failing calls included.
type calls struct {
	check, deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a crosspile.Handler returning canned results, or the
// configured error for that phase.
type Handler struct {
	calls

	CheckResult   crosspile.CheckResult
	CheckErr      error
	DeliverResult crosspile.DeliverResult
	DeliverErr    error
}

var _ crosspile.Handler = (*Handler)(nil)

func (h *Handler) Check(crosspile.Context, crosspile.KVStore, crosspile.Tx) (*crosspile.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(crosspile.Context, crosspile.KVStore, crosspile.Tx) (*crosspile.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}
