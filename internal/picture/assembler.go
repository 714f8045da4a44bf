package picture

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
)

// choiceCount is the size of every assembled set: one correct image
// plus three decoys.
const choiceCount = 4

var choiceLabels = []string{"A", "B", "C", "D"}

// bannedTerms disqualify a search result whose description suggests the
// image is not a plain photograph of the concept.
var bannedTerms = []string{
	"abstract", "illustration", "poster", "drawing", "clipart",
	"clip art", "logo", "diagram", "chart", "icon",
}

// Assembler builds picture-choice sets using a provider chain. The
// providers are tried in order for every query; a generated placeholder
// backs the chain, so assembly always yields four choices.
type Assembler struct {
	providers []SearchProvider
}

// NewAssembler creates an Assembler over the given provider chain.
// Works with zero providers, in which case every image is a
// placeholder.
func NewAssembler(providers ...SearchProvider) *Assembler {
	return &Assembler{providers: providers}
}

// GetPictureChoices assembles four choices for the target concept,
// exactly one correct. The optional topic disambiguates the image
// query ("bat" reads differently under "sports" and "animals").
func (a *Assembler) GetPictureChoices(ctx context.Context, concept, topic string) []PictureChoice {
	correctURL := a.resolveImage(ctx, concept, topic)

	used := map[string]bool{correctURL: true}
	decoyURLs := a.resolveDecoys(ctx, concept, used)

	choices := make([]PictureChoice, 0, choiceCount)
	choices = append(choices, PictureChoice{ImageURL: correctURL, IsCorrect: true})
	for _, u := range decoyURLs {
		choices = append(choices, PictureChoice{ImageURL: u})
	}

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	for i := range choices {
		choices[i].ID = choiceLabels[i]
	}

	return enforceSingleCorrect(choices)
}

// resolveImage finds one image for a concept, trying each query
// variant against each provider before falling back to a placeholder.
func (a *Assembler) resolveImage(ctx context.Context, concept, topic string) string {
	for _, query := range queryVariants(concept, topic) {
		for _, p := range a.providers {
			results, err := p.Search(ctx, query)
			if err != nil {
				// A failing provider is skipped, not fatal.
				continue
			}
			for _, r := range results {
				if simpleImage(r, concept) {
					return r.ImageURL
				}
			}
		}
	}
	return PlaceholderImage(concept)
}

// resolveDecoys picks decoy concepts and resolves their images one at
// a time until three distinct URLs are collected, topping up with
// placeholders when providers run dry.
func (a *Assembler) resolveDecoys(ctx context.Context, concept string, used map[string]bool) []string {
	candidates := decoyPool(concept)
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > 6 {
		candidates = candidates[:6]
	}

	var urls []string
	for _, c := range candidates {
		if len(urls) == choiceCount-1 {
			break
		}
		u := a.resolveImage(ctx, c, "")
		if used[u] {
			continue
		}
		used[u] = true
		urls = append(urls, u)
	}

	// Placeholders are deterministic per label, so synthetic labels keep
	// the URLs unique even when the candidate pool is exhausted.
	for i := 0; len(urls) < choiceCount-1; i++ {
		u := PlaceholderImage(fmt.Sprintf("option %d", i+1))
		if used[u] {
			continue
		}
		used[u] = true
		urls = append(urls, u)
	}

	return urls
}

// queryVariants returns the searches to try, most specific first.
func queryVariants(concept, topic string) []string {
	var variants []string
	if topic != "" && !strings.EqualFold(topic, concept) {
		variants = append(variants, concept+" "+topic)
	}
	variants = append(variants, concept, concept+" photo")
	return variants
}

// simpleImage accepts a result that looks like a plain photograph of
// the concept: no banned terms, and either a short description or one
// that mentions the concept.
func simpleImage(r SearchResult, concept string) bool {
	if r.ImageURL == "" {
		return false
	}
	desc := strings.ToLower(r.Description)
	for _, term := range bannedTerms {
		if strings.Contains(desc, term) {
			return false
		}
	}
	return len(desc) < 60 || strings.Contains(desc, strings.ToLower(concept))
}

// enforceSingleCorrect guarantees exactly one correct entry. Runs on
// every assembled set, not just suspect ones.
func enforceSingleCorrect(choices []PictureChoice) []PictureChoice {
	first := -1
	for i := range choices {
		if choices[i].IsCorrect {
			if first == -1 {
				first = i
			} else {
				choices[i].IsCorrect = false
			}
		}
	}
	if first == -1 && len(choices) > 0 {
		choices[0].IsCorrect = true
	}
	return choices
}
