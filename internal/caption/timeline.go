package caption

import (
	"fmt"
	"time"
)

// Builder walks parsed utterances and assigns cumulative start/end
// times using the duration estimator. Output segments are created
// fresh on every call and never mutated afterwards.
type Builder struct {
	cfg Config
	est *Estimator
}

func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, est: NewEstimator(cfg)}, nil
}

// Build produces the ordered caption timeline for utterances. When
// total is positive the timeline is linearly rescaled so the last
// segment ends exactly at total; a zero total leaves the natural
// cumulative sum in place. Warnings report degraded-but-valid output.
func (b *Builder) Build(
	utterances []Utterance,
	total time.Duration,
) ([]Segment, []Warning, error) {
	if len(utterances) == 0 {
		return nil, nil, nil
	}

	var segments []Segment
	var warnings []Warning
	cursor := time.Duration(0)

	for i, u := range utterances {
		raw := b.est.Estimate(u.Text)

		if u.WordCount() > b.cfg.MaxWordsPerSegment ||
			raw > b.cfg.MaxSegmentDuration {
			// too-long utterances are split, never truncated
			for _, p := range b.splitPieces(u.Text, raw) {
				duration := p.duration
				if p.degenerate {
					warnings = append(warnings, Warning{
						Code:         WarnOversizedWord,
						SegmentIndex: len(segments),
						Message: fmt.Sprintf(
							"single word %q exceeds max segment duration",
							p.text,
						),
					})
				} else if duration > b.cfg.MaxSegmentDuration {
					duration = b.cfg.MaxSegmentDuration
				}
				if duration < b.cfg.MinSegmentDuration {
					duration = b.cfg.MinSegmentDuration
				}

				segments = append(segments, Segment{
					StartTime:   cursor,
					EndTime:     cursor + duration,
					Text:        p.text,
					SpeakerID:   u.SpeakerID,
					SpeakerName: u.SpeakerName,
					Confidence:  1.0,
				})
				cursor += duration
			}
		} else {
			duration := clampDuration(
				raw,
				b.cfg.MinSegmentDuration,
				b.cfg.MaxSegmentDuration,
			)
			segments = append(segments, Segment{
				StartTime:   cursor,
				EndTime:     cursor + duration,
				Text:        u.Text,
				SpeakerID:   u.SpeakerID,
				SpeakerName: u.SpeakerName,
				Confidence:  1.0,
			})
			cursor += duration
		}

		if i < len(utterances)-1 {
			if utterances[i+1].SpeakerID != u.SpeakerID {
				cursor += b.cfg.PauseBetweenSpeakers
			} else {
				cursor += b.cfg.PauseBetweenSegments
			}
		}
	}

	if total > 0 {
		warnings = append(warnings, b.rescale(segments, total)...)
	}

	return segments, warnings, nil
}

// rescale applies a uniform linear scale so the timeline matches a
// known true audio duration. Pauses scale proportionally; relative
// ordering and non-overlap are preserved.
func (b *Builder) rescale(segments []Segment, total time.Duration) []Warning {
	if len(segments) == 0 {
		return nil
	}

	natural := segments[len(segments)-1].EndTime
	if natural <= 0 {
		return nil
	}

	// the final segment must never run past the audio, so only a
	// surplus inside the tolerance is left untouched
	if natural <= total && total-natural <= b.cfg.RescaleTolerance {
		return nil
	}

	factor := float64(total) / float64(natural)

	var warnings []Warning
	if factor > 3.0 || factor < 1.0/3.0 {
		warnings = append(warnings, Warning{
			Code:         WarnExtremeRescale,
			SegmentIndex: -1,
			Message: fmt.Sprintf(
				"rescale factor %.2f: estimate and true duration diverge badly",
				factor,
			),
		})
	}

	for i := range segments {
		segments[i].StartTime = time.Duration(
			float64(segments[i].StartTime) * factor,
		)
		segments[i].EndTime = time.Duration(
			float64(segments[i].EndTime) * factor,
		)
	}
	segments[len(segments)-1].EndTime = total

	return warnings
}

func clampDuration(d, min, max time.Duration) time.Duration {
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}
