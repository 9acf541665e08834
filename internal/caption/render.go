package caption

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// identifies the structured-data document
const (
	jsonFormatName = "vibevoice_captions"
	jsonVersion    = "1.0"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	case "json":
		return FormatJSON, nil
	case "transcript":
		return FormatTranscript, nil
	case "timing", "script-timing":
		return FormatScriptTiming, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Render produces the textual representation of segments in the given
// format. Rendering never mutates its input; all formats accept the
// same sequence and disagree only in textual shape.
func Render(segments []Segment, format Format) (string, error) {
	switch format {
	case FormatSRT:
		return renderSRT(segments), nil
	case FormatVTT:
		return renderVTT(segments), nil
	case FormatJSON:
		return renderJSON(segments)
	case FormatTranscript:
		return renderTranscript(segments), nil
	case FormatScriptTiming:
		return renderScriptTiming(segments), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func renderSRT(segments []Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(seg.StartTime),
			formatSRTTime(seg.EndTime)))

		if seg.SpeakerName != "" {
			sb.WriteString(fmt.Sprintf("[%s] %s", seg.SpeakerName, seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func renderVTT(segments []Segment) string {
	var sb strings.Builder

	// VTT header
	sb.WriteString("WEBVTT\n\n")

	for i, seg := range segments {
		// cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatVTTTime(seg.StartTime),
			formatVTTTime(seg.EndTime)))

		if seg.SpeakerName != "" {
			sb.WriteString(fmt.Sprintf("<v %s>%s", seg.SpeakerName, seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// segment fields as float seconds for programmatic use
type jsonSegment struct {
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Text        string  `json:"text"`
	SpeakerID   int     `json:"speaker_id"`
	SpeakerName string  `json:"speaker_name"`
	Confidence  float64 `json:"confidence"`
	WordCount   int     `json:"word_count"`
}

type jsonDocument struct {
	Format        string        `json:"format"`
	Version       string        `json:"version"`
	Segments      []jsonSegment `json:"segments"`
	TotalSegments int           `json:"total_segments"`
	TotalDuration float64       `json:"total_duration"`
}

func renderJSON(segments []Segment) (string, error) {
	doc := jsonDocument{
		Format:        jsonFormatName,
		Version:       jsonVersion,
		Segments:      make([]jsonSegment, 0, len(segments)),
		TotalSegments: len(segments),
	}

	for _, seg := range segments {
		doc.Segments = append(doc.Segments, jsonSegment{
			StartTime:   seg.StartTime.Seconds(),
			EndTime:     seg.EndTime.Seconds(),
			Text:        seg.Text,
			SpeakerID:   seg.SpeakerID,
			SpeakerName: seg.SpeakerName,
			Confidence:  seg.Confidence,
			WordCount:   seg.WordCount(),
		})
		if end := seg.EndTime.Seconds(); end > doc.TotalDuration {
			doc.TotalDuration = end
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal captions: %w", err)
	}
	return string(data) + "\n", nil
}

func renderTranscript(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(transcriptLine(seg))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderScriptTiming(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(transcriptLine(seg))
		sb.WriteString(fmt.Sprintf("\n    (duration: %.1fs)\n",
			seg.Duration().Seconds()))
	}
	return sb.String()
}

func transcriptLine(seg Segment) string {
	if seg.SpeakerName != "" {
		return fmt.Sprintf("[%s] %s: %s",
			formatClockTime(seg.StartTime), seg.SpeakerName, seg.Text)
	}
	return fmt.Sprintf("[%s] %s", formatClockTime(seg.StartTime), seg.Text)
}

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func formatVTTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

func formatClockTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
