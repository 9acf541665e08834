package caption

import (
	"errors"
	"testing"
	"time"
)

func mustParse(t *testing.T, script string) []Utterance {
	t.Helper()
	utterances, err := ParseScript(script, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	return utterances
}

func mustBuild(
	t *testing.T,
	cfg Config,
	script string,
	total time.Duration,
) ([]Segment, []Warning) {
	t.Helper()
	builder, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	segments, warnings, err := builder.Build(mustParse(t, script), total)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return segments, warnings
}

func TestBuildTwoSpeakerScenario(t *testing.T) {
	cfg := DefaultConfig()
	script := "Alice: Hello there.\nFrank: Hi, good to be here."

	segments, warnings := mustBuild(t, cfg, script, 0)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	alice, frank := segments[0], segments[1]

	if alice.StartTime != 0 {
		t.Errorf("Alice should start at 0, got %v", alice.StartTime)
	}

	// Frank starts one speaker-change pause after Alice ends
	within(t, frank.StartTime, alice.EndTime+cfg.PauseBetweenSpeakers,
		"Frank start")

	// durations derive from word counts plus sentence-ending pauses
	est := NewEstimator(cfg)
	within(t, alice.Duration(), est.Estimate("Hello there."), "Alice duration")
	within(t, frank.Duration(), est.Estimate("Hi, good to be here."),
		"Frank duration")

	for i, seg := range segments {
		if seg.Confidence != 1.0 {
			t.Errorf("segment %d: script-derived confidence must be 1.0", i)
		}
	}
}

func TestBuildPauseSelection(t *testing.T) {
	cfg := DefaultConfig()
	script := "Alice: First thought here today.\n" +
		"Alice: Second thought here today.\n" +
		"Bob: A reply arrives here now."

	segments, _ := mustBuild(t, cfg, script, 0)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	within(t, segments[1].StartTime-segments[0].EndTime,
		cfg.PauseBetweenSegments, "same-speaker pause")
	within(t, segments[2].StartTime-segments[1].EndTime,
		cfg.PauseBetweenSpeakers, "speaker-change pause")
}

func TestBuildMinimumDurationClamp(t *testing.T) {
	cfg := DefaultConfig()
	segments, _ := mustBuild(t, cfg, "Alice: Hi.", 0)

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Duration() != cfg.MinSegmentDuration {
		t.Errorf(
			"expected clamp to %v, got %v",
			cfg.MinSegmentDuration, segments[0].Duration(),
		)
	}
}

const rescaleScript = "Alice: Welcome back to the deep dive, everyone.\n" +
	"Frank: Glad to join again for another long conversation today.\n" +
	"Alice: Let us get started with the first topic on the list."

func TestBuildRescaleToTotal(t *testing.T) {
	cfg := DefaultConfig()
	natural, _ := mustBuild(t, cfg, rescaleScript, 0)
	naturalEnd := natural[len(natural)-1].EndTime

	// a 20% longer true duration scales every timestamp by 1.2
	total := naturalEnd * 6 / 5
	scaled, warnings := mustBuild(t, cfg, rescaleScript, total)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if got := scaled[len(scaled)-1].EndTime; got != total {
		t.Errorf("last segment must end at %v, got %v", total, got)
	}

	factor := float64(total) / float64(naturalEnd)
	for i := range natural {
		wantStart := time.Duration(float64(natural[i].StartTime) * factor)
		wantEnd := time.Duration(float64(natural[i].EndTime) * factor)
		within(t, scaled[i].StartTime, wantStart, "scaled start")
		within(t, scaled[i].EndTime, wantEnd, "scaled end")
	}

	// inter-segment ratios survive the rescale
	for i := 1; i < len(scaled); i++ {
		naturalGap := natural[i].StartTime - natural[i-1].EndTime
		scaledGap := scaled[i].StartTime - scaled[i-1].EndTime
		within(t, scaledGap, time.Duration(float64(naturalGap)*factor),
			"scaled pause")
	}
}

func TestBuildRescaleSkippedWithinTolerance(t *testing.T) {
	cfg := DefaultConfig()
	natural, _ := mustBuild(t, cfg, rescaleScript, 0)
	naturalEnd := natural[len(natural)-1].EndTime

	segments, _ := mustBuild(t, cfg, rescaleScript,
		naturalEnd+20*time.Millisecond)

	if got := segments[len(segments)-1].EndTime; got != naturalEnd {
		t.Errorf("timeline should be untouched, last end %v != %v",
			got, naturalEnd)
	}
}

func TestBuildRescaleShrinksOverrun(t *testing.T) {
	cfg := DefaultConfig()
	natural, _ := mustBuild(t, cfg, rescaleScript, 0)
	naturalEnd := natural[len(natural)-1].EndTime

	// even a tiny overrun past the audio end must be reconciled
	total := naturalEnd - 20*time.Millisecond
	segments, _ := mustBuild(t, cfg, rescaleScript, total)

	if got := segments[len(segments)-1].EndTime; got != total {
		t.Errorf("last segment must end at %v, got %v", total, got)
	}
}

func TestBuildExtremeRescaleWarning(t *testing.T) {
	cfg := DefaultConfig()
	natural, _ := mustBuild(t, cfg, rescaleScript, 0)
	naturalEnd := natural[len(natural)-1].EndTime

	segments, warnings := mustBuild(t, cfg, rescaleScript, naturalEnd*4)

	found := false
	for _, w := range warnings {
		if w.Code == WarnExtremeRescale {
			found = true
		}
	}
	if !found {
		t.Error("expected extreme rescale warning")
	}
	if got := segments[len(segments)-1].EndTime; got != naturalEnd*4 {
		t.Errorf("output must still be valid, last end %v", got)
	}
}

func TestBuildInvariants(t *testing.T) {
	cfg := DefaultConfig()
	script := "Speaker 1: Welcome back everyone, today we cover 12 topics " +
		"ranging from GPU benchmarks to power budgets, and we will take " +
		"our time going through every single one of them carefully, " +
		"because the details really matter here.\n" +
		"Speaker 2: That sounds great!\n" +
		"Speaker 1: Then let us begin."

	segments, _ := mustBuild(t, cfg, script, 0)

	for i, seg := range segments {
		if seg.EndTime <= seg.StartTime {
			t.Errorf("segment %d: end %v not after start %v",
				i, seg.EndTime, seg.StartTime)
		}
		if seg.WordCount() > cfg.MaxWordsPerSegment {
			t.Errorf("segment %d: %d words exceeds cap", i, seg.WordCount())
		}
		if seg.Duration() < cfg.MinSegmentDuration ||
			seg.Duration() > cfg.MaxSegmentDuration {
			t.Errorf("segment %d: duration %v out of bounds",
				i, seg.Duration())
		}
		if i > 0 && seg.StartTime < segments[i-1].EndTime {
			t.Errorf("segment %d overlaps previous", i)
		}
	}
}

func TestBuildEmptyUtterances(t *testing.T) {
	builder, err := NewBuilder(DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	segments, warnings, err := builder.Build(nil, 0)
	if err != nil || segments != nil || warnings != nil {
		t.Errorf("empty input should yield empty output, got %v %v %v",
			segments, warnings, err)
	}
}

func TestNewBuilderRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min above max", func(c *Config) {
			c.MinSegmentDuration = 20 * time.Second
		}},
		{"zero wpm", func(c *Config) { c.WordsPerMinute = 0 }},
		{"zero word cap", func(c *Config) { c.MaxWordsPerSegment = 0 }},
		{"negative pause", func(c *Config) {
			c.PauseBetweenSpeakers = -time.Second
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := NewBuilder(cfg)
			if err == nil {
				t.Fatal("expected config error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected *ConfigError, got %T", err)
			}
		})
	}
}
