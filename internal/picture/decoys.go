package picture

import "strings"

// decoyCategories maps concepts to same-category decoys. When the
// target belongs to a category, decoys come from that category so the
// choice set exercises fine discrimination rather than obvious
// mismatches.
var decoyCategories = map[string][]string{
	"sports":   {"football", "tennis", "basketball", "swimming", "golf", "cricket", "cycling"},
	"animals":  {"dog", "cat", "horse", "rabbit", "elephant", "bird", "cow"},
	"fruit":    {"apple", "banana", "orange", "grapes", "pear", "strawberry", "lemon"},
	"kitchen":  {"pan", "spoon", "kettle", "plate", "fork", "cup", "bowl"},
	"garden":   {"rose", "shovel", "watering can", "lawnmower", "fence", "tulip", "wheelbarrow"},
	"clothing": {"shirt", "trousers", "hat", "scarf", "shoes", "jacket", "gloves"},
	"vehicles": {"car", "bus", "bicycle", "train", "motorbike", "lorry", "boat"},
}

// genericDecoys is the fallback pool for concepts outside every
// category. Everyday objects that photograph distinctly.
var genericDecoys = []string{"chair", "car", "tree", "house", "bicycle", "book", "clock"}

// decoyPool returns decoy candidates for a concept, excluding the
// concept itself. Category membership is checked by member word, so
// "apple" finds the fruit pool without a category label.
func decoyPool(concept string) []string {
	target := strings.ToLower(strings.TrimSpace(concept))

	pool := genericDecoys
	for _, members := range decoyCategories {
		for _, m := range members {
			if m == target {
				pool = members
				break
			}
		}
	}

	out := make([]string, 0, len(pool))
	for _, c := range pool {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}
