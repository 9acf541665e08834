package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lzhgus/VibeVoice/internal/caption"
)

// File is the TOML representation of the caption tuning constants.
// Durations are expressed as float seconds. Unset fields keep the
// values of the base configuration.
type File struct {
	Timing    Timing    `toml:"timing"`
	Pauses    Pauses    `toml:"pauses"`
	Estimator Estimator `toml:"estimator"`
}

type Timing struct {
	WordsPerMinute     int     `toml:"words_per_minute"`
	MinSegmentDuration float64 `toml:"min_segment_duration"`
	MaxSegmentDuration float64 `toml:"max_segment_duration"`
	MaxWordsPerSegment int     `toml:"max_words_per_segment"`
}

type Pauses struct {
	BetweenSpeakers float64 `toml:"between_speakers"`
	BetweenSegments float64 `toml:"between_segments"`
}

type Estimator struct {
	SentencePause       float64 `toml:"sentence_pause"`
	QuestionPause       float64 `toml:"question_pause"`
	ExclamationPause    float64 `toml:"exclamation_pause"`
	CommaPause          float64 `toml:"comma_pause"`
	DigitUplift         float64 `toml:"digit_uplift"`
	TechTermUplift      float64 `toml:"tech_term_uplift"`
	LongUtteranceUplift float64 `toml:"long_utterance_uplift"`
	ShortUtteranceCut   float64 `toml:"short_utterance_cut"`
}

// Load reads a TOML tuning file and overlays it on base. The merged
// configuration is validated before it is returned.
func Load(path string, base caption.Config) (caption.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config: %w", err)
	}

	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("failed to parse config: %w", err)
	}

	merged := file.apply(base)
	if err := merged.Validate(); err != nil {
		return base, err
	}
	return merged, nil
}

func (f File) apply(cfg caption.Config) caption.Config {
	if f.Timing.WordsPerMinute > 0 {
		cfg.WordsPerMinute = f.Timing.WordsPerMinute
	}
	if f.Timing.MinSegmentDuration > 0 {
		cfg.MinSegmentDuration = seconds(f.Timing.MinSegmentDuration)
	}
	if f.Timing.MaxSegmentDuration > 0 {
		cfg.MaxSegmentDuration = seconds(f.Timing.MaxSegmentDuration)
	}
	if f.Timing.MaxWordsPerSegment > 0 {
		cfg.MaxWordsPerSegment = f.Timing.MaxWordsPerSegment
	}
	if f.Pauses.BetweenSpeakers > 0 {
		cfg.PauseBetweenSpeakers = seconds(f.Pauses.BetweenSpeakers)
	}
	if f.Pauses.BetweenSegments > 0 {
		cfg.PauseBetweenSegments = seconds(f.Pauses.BetweenSegments)
	}
	if f.Estimator.SentencePause > 0 {
		cfg.SentencePause = seconds(f.Estimator.SentencePause)
	}
	if f.Estimator.QuestionPause > 0 {
		cfg.QuestionPause = seconds(f.Estimator.QuestionPause)
	}
	if f.Estimator.ExclamationPause > 0 {
		cfg.ExclamationPause = seconds(f.Estimator.ExclamationPause)
	}
	if f.Estimator.CommaPause > 0 {
		cfg.CommaPause = seconds(f.Estimator.CommaPause)
	}
	if f.Estimator.DigitUplift > 0 {
		cfg.DigitUplift = f.Estimator.DigitUplift
	}
	if f.Estimator.TechTermUplift > 0 {
		cfg.TechTermUplift = f.Estimator.TechTermUplift
	}
	if f.Estimator.LongUtteranceUplift > 0 {
		cfg.LongUtteranceUplift = f.Estimator.LongUtteranceUplift
	}
	if f.Estimator.ShortUtteranceCut > 0 {
		cfg.ShortUtteranceCut = f.Estimator.ShortUtteranceCut
	}
	return cfg
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
