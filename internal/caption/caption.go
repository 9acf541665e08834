package caption

import (
	"strings"
	"time"
)

// one speaker turn as written in the script
type Utterance struct {
	SpeakerID   int
	SpeakerName string
	Text        string
}

func (u Utterance) WordCount() int {
	return len(strings.Fields(u.Text))
}

// one timed, renderable caption unit
type Segment struct {
	StartTime   time.Duration
	EndTime     time.Duration
	Text        string
	SpeakerID   int
	SpeakerName string

	// 1.0 for script-derived segments; transcription-derived
	// segments carry the model's confidence instead
	Confidence float64
}

func (s Segment) Duration() time.Duration {
	return s.EndTime - s.StartTime
}

func (s Segment) WordCount() int {
	return len(strings.Fields(s.Text))
}

// represents supported caption output formats
type Format string

const (
	FormatSRT          Format = "srt"
	FormatVTT          Format = "vtt"
	FormatJSON         Format = "json"
	FormatTranscript   Format = "transcript"
	FormatScriptTiming Format = "timing"
)

// AllFormats lists every supported output format in render order.
func AllFormats() []Format {
	return []Format{
		FormatSRT,
		FormatVTT,
		FormatJSON,
		FormatTranscript,
		FormatScriptTiming,
	}
}

// warning category
type WarningCode string

const (
	WarnOversizedWord  WarningCode = "oversized_word"
	WarnExtremeRescale WarningCode = "extreme_rescale"
)

// Warning reports a non-fatal condition found while building a timeline.
// The accompanying output is still valid.
type Warning struct {
	Code    WarningCode
	Message string

	// index of the affected segment, or -1 when the warning
	// applies to the whole timeline
	SegmentIndex int
}

func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}
