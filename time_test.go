package crosspile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/crosspile/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"a time as number": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInput,
		},
		"negative time as string": {
			raw:     `"1950-01-01T01:00:00+01:00"`,
			wantErr: errors.ErrInput,
		},
		"invalid string": {
			raw:     `"not a time string"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != tc.wantTime {
				t.Fatalf("want %d time, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := AsUnixTime(time.Now())
	if got := base.Add(time.Minute); got != base+60 {
		t.Fatalf("want %d, got %d", base+60, got)
	}
	if got := base.Add(-5 * time.Second); got != base-5 {
		t.Fatalf("want %d, got %d", base-5, got)
	}
	if !UnixTime(0).IsZero() {
		t.Fatal("zero value must be zero")
	}
	if err := UnixTime(-1).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected validation result: %v", err)
	}
}
