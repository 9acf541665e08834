package caption

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Estimator computes an estimated spoken duration for utterance text.
// It is a pure function of the text and the configuration: identical
// input always yields the identical estimate.
type Estimator struct {
	cfg Config
}

func NewEstimator(cfg Config) *Estimator {
	return &Estimator{cfg: cfg}
}

// acronyms and tokens mixing letters with digits read slower
var techTermRegex = regexp.MustCompile(
	`\b[A-Z]{2,}\b|[A-Za-z]+\d|\d[A-Za-z]+`,
)

// Estimate returns the estimated spoken duration for text.
//
// The base estimate comes from the word count at the configured
// speaking rate. Punctuation pauses are additive so they scale with
// punctuation density rather than raw length; content uplifts are
// percentages of the base so they stay proportionate on short text.
func (e *Estimator) Estimate(text string) time.Duration {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	wordsPerSecond := float64(e.cfg.WordsPerMinute) / 60.0
	base := float64(len(words)) / wordsPerSecond

	uplift := 0.0
	if containsDigit(text) {
		uplift += e.cfg.DigitUplift
	}
	if techTermRegex.MatchString(text) {
		uplift += e.cfg.TechTermUplift
	}
	if len(words) > 30 {
		uplift += e.cfg.LongUtteranceUplift
	}
	if len(words) < 5 {
		uplift -= e.cfg.ShortUtteranceCut
	}

	estimated := time.Duration(base * (1 + uplift) * float64(time.Second))
	estimated += e.punctuationPauses(text)

	return estimated
}

func (e *Estimator) punctuationPauses(text string) time.Duration {
	var pauses time.Duration
	pauses += time.Duration(strings.Count(text, ".")) * e.cfg.SentencePause
	pauses += time.Duration(strings.Count(text, "?")) * e.cfg.QuestionPause
	pauses += time.Duration(strings.Count(text, "!")) * e.cfg.ExclamationPause
	pauses += time.Duration(strings.Count(text, ",")) * e.cfg.CommaPause
	return pauses
}

func containsDigit(text string) bool {
	for _, r := range text {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
