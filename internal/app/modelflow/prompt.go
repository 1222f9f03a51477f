package modelflow

import (
	"fmt"
	"sort"
	"strings"
)

const systemPrompt = `You are a thoughtful journaling companion. The user shares a short journal entry and you reply with a three-part reflection.

Your role:
- You read with care and without judgment.
- You mirror back what the entry says, notice a pattern, and offer one gentle next step.
- You are NOT a therapist and you do NOT give medical or psychiatric advice.

Style:
- Answer in the SAME LANGUAGE as the entry.
- Each part is 1-3 sentences of simple, everyday language.
- Ground everything in what the entry actually says; never invent events.

Respond with exactly these three labeled sections and nothing else:
SUMMARY: a brief restatement of what the entry is about.
PATTERN: a theme, habit or recurring thread you notice in the entry.
SUGGESTION: one small, realistic step the writer could try.`

// Prompt is the system prompt plus the content sent as "user".
type Prompt struct {
	System string
	User   string
}

// BuildPrompt assembles the prompts for one journal entry. Preferences are
// appended verbatim in a stable order; their meaning is between the client
// and the model.
func BuildPrompt(content string, prefs map[string]any) Prompt {
	var user strings.Builder
	user.WriteString("Journal entry:\n")
	user.WriteString(content)

	if len(prefs) > 0 {
		keys := make([]string, 0, len(prefs))
		for k := range prefs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		user.WriteString("\n\nWriter preferences:\n")
		for _, k := range keys {
			fmt.Fprintf(&user, "- %s: %v\n", k, prefs[k])
		}
	}

	return Prompt{
		System: systemPrompt,
		User:   user.String(),
	}
}
