package depth

import (
	"fmt"
	"strings"
)

// Policy decides what a team with fewer than n players at a role gets.
type Policy string

// Short group policies.
const (
	// PolicyError fails the aggregation with ErrEmptyGroup.
	PolicyError Policy = "error"
	// PolicyExclude leaves the team's value missing.
	PolicyExclude Policy = "exclude"
	// PolicyLegacy uses the lowest scorer of the undersized group.
	PolicyLegacy Policy = "legacy"
)

// ParsePolicy maps a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyError, PolicyExclude, PolicyLegacy:
		return p, nil
	case "":
		return PolicyError, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}
