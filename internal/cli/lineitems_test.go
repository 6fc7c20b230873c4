package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobledger/jobledger/internal/domain"
)

func TestParseLineItemSpec_Basic(t *testing.T) {
	li, err := parseLineItemSpec("labor|4|95|Rough-in wiring")
	require.NoError(t, err)

	assert.Equal(t, domain.LineItemLabor, li.Type)
	assert.Equal(t, "Rough-in wiring", li.Description)
	assert.Equal(t, 4.0, li.Quantity)
	assert.Equal(t, 95.0, li.Rate)
	assert.Equal(t, 380.0, li.Amount)
	assert.True(t, li.Taxable)
	assert.NotEmpty(t, li.ID)
}

func TestParseLineItemSpec_NoTaxMarker(t *testing.T) {
	li, err := parseLineItemSpec("permit|1|150|Electrical permit|notax")
	require.NoError(t, err)

	assert.Equal(t, domain.LineItemPermit, li.Type)
	assert.False(t, li.Taxable)
}

func TestParseLineItemSpec_NegativeRateIsACredit(t *testing.T) {
	li, err := parseLineItemSpec("material|1|-50|Returned breaker panel")
	require.NoError(t, err)

	assert.Equal(t, -50.0, li.Amount)
}

func TestParseLineItemSpec_Rejects(t *testing.T) {
	cases := map[string]string{
		"too few fields":    "labor|4|95",
		"bad quantity":      "labor|four|95|Wiring",
		"bad rate":          "labor|4|ninety|Wiring",
		"unknown type":      "consulting|1|200|Site survey",
		"negative quantity": "labor|-1|95|Wiring",
		"bad tax marker":    "labor|4|95|Wiring|exempt",
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseLineItemSpec(spec)
			assert.Error(t, err)
		})
	}
}

func TestParseLineItemFlags_PreservesOrder(t *testing.T) {
	items, err := parseLineItemFlags([]string{
		"labor|8|110|Panel swap",
		"material|1|450|200A panel",
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 0, items[0].Order)
	assert.Equal(t, 1, items[1].Order)
	assert.Equal(t, domain.LineItemMaterial, items[1].Type)
}

func TestParseDateFlag(t *testing.T) {
	d, err := parseDateFlag("due", "2026-03-15")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 2026, d.Year())

	d, err = parseDateFlag("due", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDateFlag("due", "03/15/2026")
	assert.Error(t, err)
}

func TestLooksLikeNumber(t *testing.T) {
	assert.True(t, looksLikeNumber("EST-0001"))
	assert.True(t, looksLikeNumber("inv-12"))
	assert.False(t, looksLikeNumber("12345678-aaaa-bbbb-cccc-1234567890ab"))
	assert.False(t, looksLikeNumber("EST-"))
	assert.False(t, looksLikeNumber("0001"))
}
