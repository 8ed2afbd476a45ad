package utils

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "number", raw: `600`, want: "600"},
		{name: "quoted number", raw: `"500.01"`, want: "500.01"},
		{name: "negative", raw: `-10`, want: "-10"},
		{name: "padded string", raw: `" 750.5 "`, want: "750.5"},
		{name: "word", raw: `"abc"`, wantErr: true},
		{name: "empty string", raw: `""`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "missing", raw: ``, wantErr: true},
		{name: "bool", raw: `true`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(json.RawMessage(tc.raw))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformedAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestRoundMoneyUsesBankersRounding(t *testing.T) {
	assert.Equal(t, "0.12", FormatMoney(RoundMoney(decimal.RequireFromString("0.125"))))
	assert.Equal(t, "0.14", FormatMoney(RoundMoney(decimal.RequireFromString("0.135"))))
	assert.Equal(t, "1200.00", FormatMoney(RoundMoney(decimal.NewFromInt(1200))))
}

func TestNightsBetween(t *testing.T) {
	in, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	out, err := ParseDate("2025-06-04")
	require.NoError(t, err)

	assert.Equal(t, 3, NightsBetween(in, out))
	assert.Equal(t, "2025-06-04", FormatDate(out))

	_, err = ParseDate("06/04/2025")
	assert.Error(t, err)
}
