package caption

import (
	"strings"
	"time"
)

// sub-slice of an utterance produced by splitting
type piece struct {
	text     string
	words    int
	duration time.Duration

	// single word whose estimated duration exceeds the cap; kept
	// unsplit because word-count integrity is the hard constraint
	degenerate bool
}

// how many words before a forced cut to look back for punctuation
const boundaryWindow = 4

// splitPieces breaks utterance text into pieces satisfying both the
// word-count cap and the duration cap. Cuts prefer sentence or clause
// boundaries near the even word division and fall back to a plain
// word-count cut. The parent duration is redistributed across pieces
// proportionally to word count so pacing stays consistent with the
// word-rate model.
func (b *Builder) splitPieces(text string, raw time.Duration) []piece {
	words := strings.Fields(text)
	total := len(words)
	if total == 0 {
		return nil
	}

	perWord := raw / time.Duration(total)

	maxWords := b.cfg.MaxWordsPerSegment
	if perWord > 0 {
		if byDuration := int(b.cfg.MaxSegmentDuration / perWord); byDuration < maxWords {
			maxWords = byDuration
		}
	}
	if maxWords < 1 {
		maxWords = 1
	}

	var pieces []piece
	allocated := time.Duration(0)
	remaining := words

	for len(remaining) > 0 {
		cut := maxWords
		if cut > len(remaining) {
			cut = len(remaining)
		}

		if cut < len(remaining) {
			// prefer a clause boundary just before the forced cut
			for j := cut; j > cut-boundaryWindow && j > 1; j-- {
				if endsWithClauseBreak(remaining[j-1]) {
					cut = j
					break
				}
			}
		}

		chunk := remaining[:cut]
		remaining = remaining[cut:]

		var duration time.Duration
		if len(remaining) == 0 {
			// keep the sum exact
			duration = raw - allocated
		} else {
			duration = time.Duration(
				int64(raw) * int64(cut) / int64(total),
			)
		}
		allocated += duration

		pieces = append(pieces, piece{
			text:       strings.Join(chunk, " "),
			words:      cut,
			duration:   duration,
			degenerate: cut == 1 && duration > b.cfg.MaxSegmentDuration,
		})
	}

	return pieces
}

func endsWithClauseBreak(word string) bool {
	trimmed := strings.TrimRight(word, `"')]`)
	if trimmed == "" {
		return false
	}
	return strings.ContainsRune(".,;:!?", rune(trimmed[len(trimmed)-1]))
}
