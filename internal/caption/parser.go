package caption

import (
	"regexp"
	"strings"
)

// ParseOptions controls speaker-name resolution and the fallback
// behavior for scripts without speaker labels.
type ParseOptions struct {
	// display names by first-seen speaker id
	SpeakerNames map[int]string

	// display names by raw label, matched case-insensitively
	LabelNames map[string]string

	// treat a script without any speaker-prefixed line as a single
	// anonymous speaker instead of failing
	AnonymousFallback bool
}

// matches "Label: text" turns. Labels are short word-like strings so a
// colon inside a continuation sentence does not start a new turn.
var speakerLineRegex = regexp.MustCompile(
	`^\s*([A-Za-z][A-Za-z0-9 ._'-]{0,40}?)\s*:\s*(.*)$`,
)

// ParseScript splits raw multi-speaker script text into ordered
// utterances. Lines that do not match the speaker-prefix pattern
// continue the previous utterance; blank lines are ignored. Speaker ids
// are assigned in first-seen order of the normalized label and are
// scoped to this call.
func ParseScript(script string, opts ParseOptions) ([]Utterance, error) {
	var utterances []Utterance
	idsByLabel := make(map[string]int)
	namesByID := make(map[int]string)

	var current *Utterance

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(current.Text)
		if current.Text != "" {
			utterances = append(utterances, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(script, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		matches := speakerLineRegex.FindStringSubmatch(line)
		if matches == nil {
			// continuation of the previous turn
			if current != nil {
				current.Text += " " + strings.TrimSpace(line)
			}
			continue
		}

		flush()

		label := strings.TrimSpace(matches[1])
		normalized := strings.ToLower(label)

		id, seen := idsByLabel[normalized]
		if !seen {
			id = len(idsByLabel)
			idsByLabel[normalized] = id
			// display name is fixed at first sight of a label so
			// later casing variants render consistently
			namesByID[id] = resolveSpeakerName(opts, id, label)
		}

		current = &Utterance{
			SpeakerID:   id,
			SpeakerName: namesByID[id],
			Text:        strings.TrimSpace(matches[2]),
		}
	}
	flush()

	if len(utterances) == 0 {
		if opts.AnonymousFallback && strings.TrimSpace(script) != "" {
			return []Utterance{anonymousUtterance(script, opts)}, nil
		}
		return nil, &ScriptFormatError{
			Reason: "no speaker-prefixed lines found",
		}
	}

	return utterances, nil
}

func resolveSpeakerName(opts ParseOptions, id int, label string) string {
	if name, ok := opts.LabelNames[strings.ToLower(label)]; ok {
		return name
	}
	if name, ok := opts.SpeakerNames[id]; ok {
		return name
	}
	return label
}

// collapses the whole script into one turn for an unnamed speaker
func anonymousUtterance(script string, opts ParseOptions) Utterance {
	lines := strings.Split(script, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	name := "Speaker 0"
	if mapped, ok := opts.SpeakerNames[0]; ok {
		name = mapped
	}

	return Utterance{
		SpeakerID:   0,
		SpeakerName: name,
		Text:        strings.Join(parts, " "),
	}
}
