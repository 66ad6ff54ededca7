package argot

import (
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/argot/token"
)

// suggestThreshold rejects matches whose fuzzy score falls below it, so
// wildly unrelated input does not produce a nonsense suggestion.
const suggestThreshold = 0

// suggest returns the known name closest to an unrecognized token, or
// the empty string when nothing is plausibly close. Flag tokens match
// against flag names, word tokens against command words.
func suggest(meta Meta, t token.Token) string {
	var names []string

	meta.Walk(func(it Item) {
		switch it.Kind {
		case ItemFlag, ItemArgument:
			if t.IsFlag() {
				if it.Short != 0 {
					names = append(names, "-"+string(it.Short))
				}

				if it.Long != "" {
					names = append(names, "--"+it.Long)
				}
			}

		case ItemCommand:
			if !t.IsFlag() {
				names = append(names, it.Long)
			}
		}
	})

	if len(names) == 0 {
		return ""
	}

	matches := fuzzy.Find(t.String(), names)
	if len(matches) == 0 || matches[0].Score < suggestThreshold {
		return ""
	}

	return matches[0].Str
}
