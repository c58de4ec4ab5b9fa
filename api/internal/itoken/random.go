package itoken

import (
	"math/rand"
	"sort"
)

// PickRandomDatum walks the student's personalization tree with uniformly
// random choices until it hits a leaf: at a mapping it descends into a random
// key, at a sequence into a random element. Returns nil when the alias has no
// loaded tree.
func PickRandomDatum(alias string, tokens map[string]any, rng *rand.Rand) any {
	tree, ok := tokens[alias]
	if !ok || tree == nil {
		return nil
	}
	return descend(tree, rng)
}

func descend(node any, rng *rand.Rand) any {
	switch n := node.(type) {
	case map[string]any:
		if len(n) == 0 {
			return nil
		}
		// Map iteration order is random but not uniform; sort keys so the
		// choice depends only on the rng.
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return descend(n[keys[rng.Intn(len(keys))]], rng)
	case []any:
		if len(n) == 0 {
			return nil
		}
		return descend(n[rng.Intn(len(n))], rng)
	default:
		return node
	}
}
