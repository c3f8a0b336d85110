package splitter

import (
	"testing"

	"github.com/iov-one/apestrap/apestraptest/assert"
	"github.com/iov-one/apestrap/errors"
)

func TestFormatShare(t *testing.T) {
	cases := map[string]struct {
		share uint64
		want  string
	}{
		"zero":         {share: 0, want: "0"},
		"half":         {share: 50 * ShareScale, want: "50"},
		"full":         {share: 100 * ShareScale, want: "100"},
		"fraction":     {share: ShareScale / 4, want: "0.25"},
		"smallest":     {share: 1, want: "0.0000000001"},
		"over hundred": {share: 250 * ShareScale, want: "250"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatShare(tc.share))
		})
	}
}

func TestParsePercentage(t *testing.T) {
	cases := map[string]struct {
		input   string
		want    uint64
		wantErr *errors.Error
	}{
		"plain":          {input: "50", want: 50},
		"percent sign":   {input: "25%", want: 25},
		"spaces":         {input: " 7 ", want: 7},
		"zero":           {input: "0", want: 0},
		"trailing zeros": {input: "40.00", want: 40},
		"fraction":       {input: "33.3", wantErr: errors.ErrInput},
		"negative":       {input: "-1", wantErr: errors.ErrInput},
		"not a number":   {input: "half", wantErr: errors.ErrInput},
		"too big":        {input: "100000000000", wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParsePercentage(tc.input)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
