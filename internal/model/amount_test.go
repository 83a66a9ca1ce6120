package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Amount
		wantErr bool
	}{
		{name: "plain", in: "1000000", want: 1000000},
		{name: "thousands separators", in: "1,250,000", want: 1250000},
		{name: "currency symbol", in: "$2,500,000", want: 2500000},
		{name: "empty", in: "", want: 0},
		{name: "blank", in: "   ", want: 0},
		{name: "fraction rounds", in: "10.5", want: 11},
		{name: "negative", in: "-300", want: -300},
		{name: "garbage", in: "abc", wantErr: true},
		{name: "max int64", in: "9223372036854775807", want: Amount(math.MaxInt64)},
		{name: "above int64", in: "$99,999,999,999,999,999,999", wantErr: true},
		{name: "below int64", in: "-9223372036854775809", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var body struct {
		Number    Amount  `json:"number"`
		Formatted Amount  `json:"formatted"`
		Null      Amount  `json:"null"`
		Missing   *Amount `json:"missing"`
	}
	err := json.Unmarshal([]byte(`{"number": 1800000, "formatted": "3,800,000", "null": null}`), &body)
	require.NoError(t, err)

	assert.Equal(t, Amount(1800000), body.Number)
	assert.Equal(t, Amount(3800000), body.Formatted)
	assert.Equal(t, Amount(0), body.Null)
	assert.Nil(t, body.Missing)
}

func TestAmount_UnmarshalJSONRejectsNonNumeric(t *testing.T) {
	var body struct {
		Budget Amount `json:"budget"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"budget": "lots"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"budget": true}`), &body))
}

func TestAmount_UnmarshalJSONRejectsOutOfRange(t *testing.T) {
	var body struct {
		Budget Amount `json:"budget"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"budget": 1e20}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"budget": -1e20}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"budget": "99,999,999,999,999,999,999"}`), &body))
	assert.Equal(t, Amount(0), body.Budget)

	require.NoError(t, json.Unmarshal([]byte(`{"budget": 1e6}`), &body))
	assert.Equal(t, Amount(1_000_000), body.Budget)
}

func TestAmount_Percent(t *testing.T) {
	assert.Equal(t, Amount(700000), Amount(1000000).Percent(decimal.RequireFromString("0.7")))
	assert.Equal(t, Amount(300000), Amount(1000000).Percent(decimal.RequireFromString("0.3")))
	// 1 * 0.7 = 0.7 -> 1, 1 * 0.3 = 0.3 -> 0
	assert.Equal(t, Amount(1), Amount(1).Percent(decimal.RequireFromString("0.7")))
	assert.Equal(t, Amount(0), Amount(1).Percent(decimal.RequireFromString("0.3")))
}
