package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/weavetest"
	"github.com/iov-one/crosspile/weavetest/assert"
	"github.com/iov-one/crosspile/x"
)

func TestMainSigner(t *testing.T) {
	initiator := weavetest.NewCondition()
	acceptor := weavetest.NewCondition()
	auth := &weavetest.CtxAuth{Key: "sig"}

	cases := map[string]struct {
		ctx  crosspile.Context
		want crosspile.Condition
	}{
		"unsigned": {
			ctx: context.Background(),
		},
		"single signer": {
			ctx:  auth.SetConditions(context.Background(), acceptor),
			want: acceptor,
		},
		"first signature wins": {
			ctx:  auth.SetConditions(context.Background(), initiator, acceptor),
			want: initiator,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, x.MainSigner(tc.ctx, auth))
		})
	}
}
