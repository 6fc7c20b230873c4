package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem_ComputesAmount(t *testing.T) {
	li, err := NewLineItem("a", LineItemLabor, "rough-in", 6.5, 85, true)
	require.NoError(t, err)

	assert.Equal(t, 552.50, li.Amount)
	assert.Equal(t, Round2(li.Quantity*li.Rate), li.Amount)
}

func TestNewLineItem_RejectsUnknownType(t *testing.T) {
	_, err := NewLineItem("a", "consulting", "x", 1, 10, true)
	require.ErrorIs(t, err, ErrValidation)
}

func TestNewLineItem_RejectsNegativeQuantity(t *testing.T) {
	_, err := NewLineItem("a", LineItemMaterial, "x", -1, 10, true)
	require.ErrorIs(t, err, ErrValidation)
}

func TestNewLineItem_AllowsNegativeRate(t *testing.T) {
	li, err := NewLineItem("a", LineItemMaterial, "returned stock credit", 2, -15, true)
	require.NoError(t, err)
	assert.Equal(t, -30.00, li.Amount)
}

func TestReprice_RecomputesAmount(t *testing.T) {
	li, err := NewLineItem("a", LineItemMaterial, "conduit", 10, 2.5, true)
	require.NoError(t, err)
	require.Equal(t, 25.00, li.Amount)

	require.NoError(t, li.Reprice(4, 3.333))
	assert.Equal(t, 13.33, li.Amount)
}

func TestReprice_RejectsNonFinite(t *testing.T) {
	li, err := NewLineItem("a", LineItemMaterial, "x", 1, 1, false)
	require.NoError(t, err)

	require.ErrorIs(t, li.Reprice(math.NaN(), 1), ErrComputation)
	require.ErrorIs(t, li.Reprice(1, math.Inf(-1)), ErrComputation)
	assert.Equal(t, 1.00, li.Amount, "failed reprice must not mutate the item")
}

func TestCopyLineItems_Detached(t *testing.T) {
	src := []LineItem{
		{ID: "a", Amount: 10},
		{ID: "b", Amount: 20},
	}

	dst := CopyLineItems(src)
	require.Equal(t, src, dst)

	dst[0].Amount = 99
	assert.Equal(t, 10.00, src[0].Amount, "copies must not share backing storage")
}
