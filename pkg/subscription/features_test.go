package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAction(t *testing.T) {
	cases := []struct {
		current, target Tier
		want            Action
		wantErr         error
	}{
		{StarterTier, ProTier, ActionUpgrade, nil},
		{FreeTier, EliteTier, ActionUpgrade, nil},
		{ProTier, StarterTier, ActionDowngrade, nil},
		{EliteTier, ProTier, ActionDowngrade, nil},
		{ProTier, FreeTier, ActionCancel, nil},
		{EliteTier, FreeTier, ActionCancel, nil},
		{FreeTier, FreeTier, ActionCancel, nil},
		{ProTier, ProTier, "", ErrSameTier},
		{StarterTier, StarterTier, "", ErrSameTier},
		{ProTier, Tier("platinum"), "", ErrUnknownTier},
	}

	for _, tc := range cases {
		t.Run(string(tc.current)+"->"+string(tc.target), func(t *testing.T) {
			got, err := ResolveAction(tc.current, tc.target)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCanAddPortfolioItem(t *testing.T) {
	assert.True(t, CanAddPortfolioItem(FreeTier, 4))
	assert.False(t, CanAddPortfolioItem(FreeTier, 5))
	assert.True(t, CanAddPortfolioItem(StarterTier, 14))
	assert.False(t, CanAddPortfolioItem(StarterTier, 15))
	assert.True(t, CanAddPortfolioItem(ProTier, 10_000))
	assert.True(t, CanAddPortfolioItem(EliteTier, 10_000))
	// unknown tiers are treated as free
	assert.False(t, CanAddPortfolioItem(Tier("legacy"), 5))
}

func TestOrdered(t *testing.T) {
	tiers := Ordered()
	require.Len(t, tiers, 4)
	assert.Equal(t, []Tier{FreeTier, StarterTier, ProTier, EliteTier},
		[]Tier{tiers[0].Tier, tiers[1].Tier, tiers[2].Tier, tiers[3].Tier})
	assert.Equal(t, 24.99, Tiers[ProTier].Price)
	assert.Equal(t, Unlimited, Tiers[EliteTier].PortfolioLimit)
}
