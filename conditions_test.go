package crosspile_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := crosspile.Address(b)

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
	})

	Convey("test condition printing keeps the prefix readable", t, func() {
		cond := crosspile.NewCondition("sigs", "ed25519", []byte{0xde, 0xad})

		So(cond.String(), ShouldEqual, "sigs/ed25519/DEAD")
	})
}

func TestConditionParse(t *testing.T) {
	cond := crosspile.NewCondition("chal", "escrow", []byte("data\nwith newline"))
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "chal", ext)
	assert.Equal(t, "escrow", typ)
	assert.Equal(t, []byte("data\nwith newline"), data)

	_, _, _, err = crosspile.Condition("no-slashes").Parse()
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrInput.Is(crosspile.Condition("a/b/c").Validate()))
	// extensions are limited to eight characters
	_, _, _, err = crosspile.NewCondition("challenge", "escrow", []byte{1}).Parse()
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	hexAddr := crosspile.NewAddress([]byte("some input"))
	bechAddr, err := hexAddr.Bech32("tcrs")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr crosspile.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, hexAddr),
			wantAddr: hexAddr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, hexAddr),
			wantAddr: hexAddr,
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, bechAddr),
			wantAddr: hexAddr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: crosspile.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"wrong length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a crosspile.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !a.Equals(tc.wantAddr) {
				t.Fatalf("got address: %q (%X)", a, []byte(a))
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := crosspile.NewCondition("sigs", "ed25519", []byte("pub")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got crosspile.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
	assert.Len(t, got, crosspile.AddressLength)
}

func TestAddressClone(t *testing.T) {
	addr := crosspile.NewAddress([]byte("x"))
	cpy := addr.Clone()
	cpy[0]++
	assert.False(t, addr.Equals(cpy))
	assert.Nil(t, crosspile.Address(nil).Clone())
}

func TestAddressBech32(t *testing.T) {
	addr := crosspile.NewAddress([]byte("vault"))
	enc, err := addr.Bech32("tcrs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "tcrs1"), enc)

	got, err := crosspile.ParseAddress("bech32:" + enc)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	// flip the last checksum character
	last := enc[len(enc)-1]
	flipped := byte('q')
	if last == 'q' {
		flipped = 'p'
	}
	_, err = crosspile.ParseAddress("bech32:" + enc[:len(enc)-1] + string(flipped))
	assert.True(t, errors.ErrInput.Is(err))
}
