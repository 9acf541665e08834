package transcribe

import (
	"strings"

	"github.com/lzhgus/VibeVoice/internal/caption"
)

// MatchSpeakers assigns speaker identity to transcribed segments by
// word-overlap similarity against the parsed script. The input slice
// is not mutated; a new slice is returned.
func MatchSpeakers(
	segments []caption.Segment,
	utterances []caption.Utterance,
) []caption.Segment {
	matched := make([]caption.Segment, len(segments))

	for i, seg := range segments {
		matched[i] = seg

		best, score := bestUtteranceMatch(seg.Text, utterances)
		if score > 0 {
			matched[i].SpeakerID = best.SpeakerID
			matched[i].SpeakerName = best.SpeakerName
		}
	}

	return matched
}

func bestUtteranceMatch(
	text string,
	utterances []caption.Utterance,
) (caption.Utterance, float64) {
	segWords := wordSet(text)

	var best caption.Utterance
	bestScore := 0.0

	for _, u := range utterances {
		uttWords := wordSet(u.Text)
		if len(segWords) == 0 || len(uttWords) == 0 {
			continue
		}

		overlap := 0
		for word := range segWords {
			if uttWords[word] {
				overlap++
			}
		}

		larger := len(segWords)
		if len(uttWords) > larger {
			larger = len(uttWords)
		}

		if score := float64(overlap) / float64(larger); score > bestScore {
			bestScore = score
			best = u
		}
	}

	return best, bestScore
}

func wordSet(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[strings.Trim(word, `.,;:!?"'`)] = true
	}
	return set
}
