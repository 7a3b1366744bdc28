package pricing

import (
	"testing"
	
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	list := List()
	
	require.Len(t, list.Products, 3)
	require.Equal(t, "€20", list.Products[0].Price)
	require.Equal(t, "€25", list.Products[1].Price)
	require.Equal(t, "€25", list.Products[2].Price)
	
	require.Equal(t, "€3", list.AddOns[0].Price)
	require.Equal(t, "€2", list.AddOns[1].Price)
	
	require.Equal(t, "€20 + €3", list.Examples[0].Breakdown)
	require.Equal(t, "€23", list.Examples[0].Total)
	require.Equal(t, "€25 + €3 + €2", list.Examples[1].Breakdown)
	require.Equal(t, "€30", list.Examples[1].Total)
	require.EqualValues(t, 2800, list.Examples[2].TotalCents)
}

func TestProductCode(t *testing.T) {
	require.Equal(t, Retro, ProductCode("Porto Retro 1987 S-XL"))
	require.Equal(t, Kids, ProductCode("Benfica Kids Set"))
	require.Equal(t, Regular, ProductCode("Sporting Home 24/25"))
}

func TestLinePriceCents(t *testing.T) {
	require.EqualValues(t, 2000, LinePriceCents("Benfica Home", false, 1))
	require.EqualValues(t, 5600, LinePriceCents("Retro Porto", true, 2))
}
