package weavetest

import (
	"testing"

	"github.com/iov-one/crosspile/errors"
	"github.com/stretchr/testify/assert"
)

func TestDecoratorPassesThrough(t *testing.T) {
	var (
		d Decorator
		h Handler
	)
	handler := Decorate(&h, &d)

	_, err := handler.Check(nil, nil, nil)
	assert.NoError(t, err)
	_, err = handler.Deliver(nil, nil, nil)
	assert.NoError(t, err)
	_, err = handler.Deliver(nil, nil, nil)
	assert.NoError(t, err)

	assertHCounts(t, &h, 1, 2)
	assertDCounts(t, &d, 1, 2)
}

func TestDecoratorFailureSkipsHandler(t *testing.T) {
	d := Decorator{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrNotFound,
	}
	var h Handler
	handler := Decorate(&h, &d)

	_, err := handler.Check(nil, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = handler.Deliver(nil, nil, nil)
	assert.True(t, errors.ErrNotFound.Is(err))

	assertHCounts(t, &h, 0, 0)
	assertDCounts(t, &d, 1, 1)
}

func assertDCounts(t *testing.T, d *Decorator, wantCheck, wantDeliver int) {
	t.Helper()
	assert.Equal(t, wantCheck, d.CheckCallCount(), "checks")
	assert.Equal(t, wantDeliver, d.DeliverCallCount(), "delivers")
	assert.Equal(t, wantCheck+wantDeliver, d.CallCount(), "total")
}
