package caption

import "time"

// Config holds every tunable used by the estimator, the timeline builder
// and the splitter. A Config is immutable for the duration of a call and
// safe to share read-only across concurrent calls.
type Config struct {
	// average speaking rate used for the base estimate
	WordsPerMinute int

	MinSegmentDuration time.Duration
	MaxSegmentDuration time.Duration

	// pause inserted when the speaker changes between utterances
	PauseBetweenSpeakers time.Duration
	// pause inserted between utterances from the same speaker
	PauseBetweenSegments time.Duration

	MaxWordsPerSegment int

	// additive pauses per punctuation mark
	SentencePause    time.Duration
	QuestionPause    time.Duration
	ExclamationPause time.Duration
	CommaPause       time.Duration

	// percentage uplifts applied to the base estimate, as fractions.
	// Digits and technical terms slow articulation; very long
	// utterances need breathing room; very short ones are spoken
	// slightly faster.
	DigitUplift         float64
	TechTermUplift      float64
	LongUtteranceUplift float64
	ShortUtteranceCut   float64

	// rescale is skipped when the natural total is within this
	// tolerance of the target duration
	RescaleTolerance time.Duration
}

func DefaultConfig() Config {
	return Config{
		WordsPerMinute:       150,
		MinSegmentDuration:   time.Second,
		MaxSegmentDuration:   10 * time.Second,
		PauseBetweenSpeakers: 500 * time.Millisecond,
		PauseBetweenSegments: 300 * time.Millisecond,
		MaxWordsPerSegment:   15,
		SentencePause:        500 * time.Millisecond,
		QuestionPause:        400 * time.Millisecond,
		ExclamationPause:     400 * time.Millisecond,
		CommaPause:           300 * time.Millisecond,
		DigitUplift:          0.05,
		TechTermUplift:       0.05,
		LongUtteranceUplift:  0.10,
		ShortUtteranceCut:    0.05,
		RescaleTolerance:     50 * time.Millisecond,
	}
}

// Validate fails fast on contradictory bounds.
func (c Config) Validate() error {
	if c.WordsPerMinute <= 0 {
		return &ConfigError{
			Field:  "words_per_minute",
			Reason: "must be positive",
		}
	}
	if c.MaxWordsPerSegment <= 0 {
		return &ConfigError{
			Field:  "max_words_per_segment",
			Reason: "must be positive",
		}
	}
	if c.MinSegmentDuration < 0 {
		return &ConfigError{
			Field:  "min_segment_duration",
			Reason: "must not be negative",
		}
	}
	if c.MaxSegmentDuration <= 0 {
		return &ConfigError{
			Field:  "max_segment_duration",
			Reason: "must be positive",
		}
	}
	if c.MinSegmentDuration > c.MaxSegmentDuration {
		return &ConfigError{
			Field:  "min_segment_duration",
			Reason: "exceeds max_segment_duration",
		}
	}
	if c.PauseBetweenSpeakers < 0 || c.PauseBetweenSegments < 0 {
		return &ConfigError{
			Field:  "pauses",
			Reason: "must not be negative",
		}
	}
	return nil
}
