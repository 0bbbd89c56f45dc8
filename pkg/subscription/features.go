package subscription

import (
	"errors"
	"sort"
)

type Tier string
type Action string

const (
	FreeTier    Tier = "free"
	StarterTier Tier = "starter"
	ProTier     Tier = "pro"
	EliteTier   Tier = "elite"
)

const (
	ActionUpgrade   Action = "upgrade"
	ActionDowngrade Action = "downgrade"
	ActionCancel    Action = "cancel"
)

// Unlimited marks a tier without a portfolio cap.
const Unlimited = -1

var (
	ErrUnknownTier = errors.New("unknown subscription tier")
	ErrSameTier    = errors.New("already on this tier")
)

type TierInfo struct {
	Tier           Tier     `json:"tier"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Features       []string `json:"features"`
	PortfolioLimit int      `json:"portfolioLimit"`
	Priority       int      `json:"priority"`
}

var Tiers = map[Tier]TierInfo{
	FreeTier: {
		Tier:  FreeTier,
		Name:  "Free",
		Price: 0,
		Features: []string{
			"Basic profile",
			"Up to 5 portfolio items",
			"Standard listing",
			"Basic analytics",
		},
		PortfolioLimit: 5,
		Priority:       0,
	},
	StarterTier: {
		Tier:  StarterTier,
		Name:  "Starter",
		Price: 9.99,
		Features: []string{
			"All Free features",
			"Up to 15 portfolio items",
			"Priority listing",
			"Advanced analytics",
			"Custom branding",
		},
		PortfolioLimit: 15,
		Priority:       1,
	},
	ProTier: {
		Tier:  ProTier,
		Name:  "Pro",
		Price: 24.99,
		Features: []string{
			"All Starter features",
			"Unlimited portfolio items",
			"Top priority listing",
			"Featured badge",
			"Premium analytics",
			"Priority support",
			"Custom booking forms",
		},
		PortfolioLimit: Unlimited,
		Priority:       2,
	},
	EliteTier: {
		Tier:  EliteTier,
		Name:  "Elite",
		Price: 49.99,
		Features: []string{
			"All Pro features",
			"Verified badge",
			"Featured on homepage",
			"Dedicated account manager",
			"API access",
			"White-label options",
			"Advanced integrations",
		},
		PortfolioLimit: Unlimited,
		Priority:       3,
	},
}

func (t Tier) Valid() bool {
	_, ok := Tiers[t]
	return ok
}

// Lookup returns the tier info; unknown tiers fall back to free so stale rows
// never grant more than the base plan.
func Lookup(t Tier) TierInfo {
	if info, ok := Tiers[t]; ok {
		return info
	}
	return Tiers[FreeTier]
}

// Ordered returns every tier sorted by priority.
func Ordered() []TierInfo {
	out := make([]TierInfo, 0, len(Tiers))
	for _, info := range Tiers {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// ResolveAction derives the history action for moving from current to target.
// A move to free is always a cancel, including free to free.
func ResolveAction(current, target Tier) (Action, error) {
	targetInfo, ok := Tiers[target]
	if !ok {
		return "", ErrUnknownTier
	}
	if target == FreeTier {
		return ActionCancel, nil
	}

	currentInfo := Lookup(current)
	switch {
	case targetInfo.Priority > currentInfo.Priority:
		return ActionUpgrade, nil
	case targetInfo.Priority < currentInfo.Priority:
		return ActionDowngrade, nil
	default:
		return "", ErrSameTier
	}
}

// CanAddPortfolioItem reports whether a provider holding count items may add one more.
func CanAddPortfolioItem(t Tier, count int64) bool {
	limit := Lookup(t).PortfolioLimit
	if limit == Unlimited {
		return true
	}
	return count < int64(limit)
}
