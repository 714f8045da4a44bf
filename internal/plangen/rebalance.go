package plangen

import (
	"fmt"
	"strings"
)

// genericDistractors tops up picture items that arrived with fewer than
// three distractor labels.
var genericDistractors = []string{"chair", "car", "tree"}

// maxDistractors is the distractor count per picture item after rebalancing.
const maxDistractors = 3

// blockMeta carries the presentation fields of the first source block of
// each type, so rebalanced blocks keep the model's topic and wording.
type blockMeta struct {
	id          string
	topic       string
	difficulty  string
	description string
}

// Rebalance rebuilds the generated blocks into exactly target items
// distributed across the four block types:
//
//   - target == 4: exactly one item per type.
//   - target > 4: picture_description gets floor(target/2)+1 items (a
//     strict majority); the remainder is distributed round-robin over the
//     other three types. Types the round-robin leaves at zero are
//     omitted; a block is never emitted without items.
//
// When the model undersupplied a type, deterministic fallback items are
// synthesized from the block's topic instead of failing. Picture items
// keep up to three provided distractors, topped up with generic fillers.
func Rebalance(blocks []TherapyBlock, target int, difficulty string) []TherapyBlock {
	pools := make(map[BlockType][]TherapyItem)
	metas := make(map[BlockType]blockMeta)

	fallbackTopic := "everyday life"
	if len(blocks) > 0 && strings.TrimSpace(blocks[0].Topic) != "" {
		fallbackTopic = blocks[0].Topic
	}

	for _, b := range blocks {
		t := b.Type
		if !knownBlockType(t) {
			continue
		}
		pools[t] = append(pools[t], b.Items...)
		if _, seen := metas[t]; !seen {
			metas[t] = blockMeta{
				id:          b.ID,
				topic:       b.Topic,
				difficulty:  b.Difficulty,
				description: b.Description,
			}
		}
	}

	counts := targetCounts(target)

	out := make([]TherapyBlock, 0, len(BlockTypes))
	for _, t := range BlockTypes {
		if counts[t] == 0 {
			continue
		}
		meta := metas[t]
		if strings.TrimSpace(meta.topic) == "" {
			meta.topic = fallbackTopic
		}
		if strings.TrimSpace(meta.difficulty) == "" {
			meta.difficulty = difficulty
		}
		if strings.TrimSpace(meta.description) == "" {
			meta.description = defaultDescription(t)
		}
		if strings.TrimSpace(meta.id) == "" {
			meta.id = fmt.Sprintf("block-%s", t)
		}

		items := make([]TherapyItem, 0, counts[t])
		pool := pools[t]
		for i := 0; i < counts[t]; i++ {
			var item TherapyItem
			if i < len(pool) {
				item = pool[i]
			} else {
				item = fallbackItem(t, meta.topic)
			}
			if t == BlockPictureDescription {
				item.Distractors = normalizeDistractors(item.Distractors, item.Answer)
			} else {
				item.Distractors = nil
			}
			items = append(items, item)
		}

		out = append(out, TherapyBlock{
			ID:          meta.id,
			Type:        t,
			Topic:       meta.topic,
			Difficulty:  meta.difficulty,
			Description: meta.description,
			Items:       items,
		})
	}

	return out
}

// targetCounts computes the per-type item counts for a target total.
func targetCounts(target int) map[BlockType]int {
	counts := make(map[BlockType]int, len(BlockTypes))
	if target <= MinItems {
		for _, t := range BlockTypes {
			counts[t] = 1
		}
		return counts
	}

	counts[BlockPictureDescription] = target/2 + 1
	others := []BlockType{BlockWordRepetition, BlockSentenceCompletion, BlockWordFinding}
	remaining := target - counts[BlockPictureDescription]
	for i := 0; i < remaining; i++ {
		counts[others[i%len(others)]]++
	}
	return counts
}

// fallbackItem synthesizes a deterministic item from the block topic.
func fallbackItem(t BlockType, topic string) TherapyItem {
	word := topicWord(topic)
	switch t {
	case BlockPictureDescription:
		return TherapyItem{
			Prompt: fmt.Sprintf("Look at the picture. Which one shows the %s?", word),
			Answer: word,
		}
	case BlockWordRepetition:
		return TherapyItem{
			Prompt: fmt.Sprintf("Repeat after me: %s.", word),
			Answer: word,
		}
	case BlockSentenceCompletion:
		return TherapyItem{
			Prompt: fmt.Sprintf("Finish the sentence: When I think about %s, I feel ___.", topic),
			Answer: "happy",
		}
	default: // BlockWordFinding
		return TherapyItem{
			Prompt: fmt.Sprintf("Name something that goes with %s.", topic),
			Answer: word,
		}
	}
}

// normalizeDistractors keeps up to three provided labels and tops up
// with generic fillers, never duplicating each other or the answer.
func normalizeDistractors(provided []string, answer string) []string {
	out := make([]string, 0, maxDistractors)
	seen := map[string]bool{strings.ToLower(strings.TrimSpace(answer)): true}

	add := func(s string) {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] || len(out) >= maxDistractors {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	for _, d := range provided {
		add(d)
	}
	for _, d := range genericDistractors {
		add(d)
	}
	return out
}

// topicWord extracts the last word of a topic label as the target word.
func topicWord(topic string) string {
	fields := strings.Fields(strings.TrimSpace(topic))
	if len(fields) == 0 {
		return "home"
	}
	return strings.ToLower(fields[len(fields)-1])
}

func knownBlockType(t BlockType) bool {
	for _, known := range BlockTypes {
		if t == known {
			return true
		}
	}
	return false
}

func defaultDescription(t BlockType) string {
	switch t {
	case BlockPictureDescription:
		return "Look at each picture and name what you see."
	case BlockWordRepetition:
		return "Repeat each word or phrase out loud."
	case BlockSentenceCompletion:
		return "Finish each sentence with the missing word."
	default:
		return "Find the word that fits each clue."
	}
}
