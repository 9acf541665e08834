package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lzhgus/VibeVoice/internal/audio"
	"github.com/lzhgus/VibeVoice/internal/caption"
	"github.com/lzhgus/VibeVoice/internal/config"
)

var generateCmd = &cobra.Command{
	Use:   "generate [script_file]",
	Short: "Generate timed captions from a speaker script",
	Long: `Generate caption files for a multi-speaker script without access
to the audio waveform. Timing is estimated from word counts at the
configured speaking rate, with punctuation and content adjustments,
then rescaled to the true audio duration when one is known.

The script uses the "Speaker: utterance" convention. Supply the
generated audio file to probe its duration, or pass the duration
directly.

Examples:
  vibecap generate podcast.txt --audio podcast.wav
  vibecap generate podcast.txt --duration 93.5 --speakers Alice,Frank
  vibecap generate podcast.txt --audio podcast.wav --formats srt,vtt,json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		StringP("audio", "a", "", "Generated audio file to probe for the true duration")
	generateCmd.Flags().
		Float64P("duration", "d", 0, "True audio duration in seconds (alternative to --audio)")
	generateCmd.Flags().
		StringSliceP("speakers", "s", nil, "Speaker display names in first-seen order")
	generateCmd.Flags().
		StringSliceP("formats", "f", []string{"srt"}, "Output formats (srt, vtt, json, transcript, timing)")
	generateCmd.Flags().
		StringP("config", "c", "", "TOML file with timing tuning constants")
	generateCmd.Flags().
		Int("wpm", 0, "Speaking rate in words per minute")
	generateCmd.Flags().
		Int("max-words", 0, "Maximum words per caption segment")
	generateCmd.Flags().
		Float64("min-duration", 0, "Minimum segment duration in seconds")
	generateCmd.Flags().
		Float64("max-duration", 0, "Maximum segment duration in seconds")
	generateCmd.Flags().
		Bool("anonymous-fallback", false, "Treat a script without speaker labels as a single speaker")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]

	scriptData, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	speakers, _ := cmd.Flags().GetStringSlice("speakers")
	anonymous, _ := cmd.Flags().GetBool("anonymous-fallback")

	opts := caption.ParseOptions{
		SpeakerNames:      speakerNameMap(speakers),
		AnonymousFallback: anonymous,
	}

	utterances, err := caption.ParseScript(string(scriptData), opts)
	if err != nil {
		return err
	}

	logger.Infow("Parsed script",
		"utterances", len(utterances),
		"speakers", countSpeakers(utterances),
	)

	total, base, err := resolveDuration(cmd, scriptPath)
	if err != nil {
		return err
	}

	builder, err := caption.NewBuilder(cfg)
	if err != nil {
		return err
	}

	segments, warnings, err := builder.Build(utterances, total)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warnw("Timeline warning",
			"code", w.Code,
			"segment", w.SegmentIndex,
			"message", w.Message,
		)
	}

	formats, err := parseFormats(cmd)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(scriptPath), "captions")
	}

	paths, err := caption.WritePackage(segments, formats, outputDir, base)
	if err != nil {
		return err
	}

	fmt.Printf("Captions generated successfully: %s\n", outputDir)
	fmt.Printf("  Segments: %d\n", len(segments))
	if total > 0 {
		fmt.Printf("  Duration: %s\n", total.Round(time.Millisecond))
	}
	for _, format := range formats {
		fmt.Printf("  %s: %s\n", strings.ToUpper(string(format)), paths[format])
	}

	return nil
}

// resolveConfig merges the optional TOML file and flag overrides onto
// the defaults.
func resolveConfig(cmd *cobra.Command) (caption.Config, error) {
	cfg := caption.DefaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if wpm, _ := cmd.Flags().GetInt("wpm"); wpm > 0 {
		cfg.WordsPerMinute = wpm
	}
	if maxWords, _ := cmd.Flags().GetInt("max-words"); maxWords > 0 {
		cfg.MaxWordsPerSegment = maxWords
	}
	if min, _ := cmd.Flags().GetFloat64("min-duration"); min > 0 {
		cfg.MinSegmentDuration = time.Duration(min * float64(time.Second))
	}
	if max, _ := cmd.Flags().GetFloat64("max-duration"); max > 0 {
		cfg.MaxSegmentDuration = time.Duration(max * float64(time.Second))
	}

	return cfg, cfg.Validate()
}

// resolveDuration returns the target total duration and the output
// base name, preferring a probed audio file over an explicit value.
func resolveDuration(
	cmd *cobra.Command,
	scriptPath string,
) (time.Duration, string, error) {
	base := strings.TrimSuffix(
		filepath.Base(scriptPath), filepath.Ext(scriptPath),
	)

	audioPath, _ := cmd.Flags().GetString("audio")
	if audioPath != "" {
		if !audio.IsAudioFile(audioPath) {
			return 0, "", fmt.Errorf(
				"unsupported audio file type: %s", filepath.Ext(audioPath),
			)
		}
		duration, err := audio.GetDuration(audioPath)
		if err != nil {
			return 0, "", err
		}
		base = strings.TrimSuffix(
			filepath.Base(audioPath), filepath.Ext(audioPath),
		)
		logger.Infow("Probed audio duration",
			"audio", audioPath,
			"duration", duration.String(),
		)
		return duration, base, nil
	}

	seconds, _ := cmd.Flags().GetFloat64("duration")
	if seconds < 0 {
		return 0, "", fmt.Errorf("duration must not be negative")
	}
	return time.Duration(seconds * float64(time.Second)), base, nil
}

func parseFormats(cmd *cobra.Command) ([]caption.Format, error) {
	names, _ := cmd.Flags().GetStringSlice("formats")

	formats := make([]caption.Format, 0, len(names))
	for _, name := range names {
		format, err := caption.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}
	return formats, nil
}

func speakerNameMap(names []string) map[int]string {
	if len(names) == 0 {
		return nil
	}
	mapping := make(map[int]string, len(names))
	for i, name := range names {
		mapping[i] = strings.TrimSpace(name)
	}
	return mapping
}

func countSpeakers(utterances []caption.Utterance) int {
	seen := make(map[int]bool)
	for _, u := range utterances {
		seen[u.SpeakerID] = true
	}
	return len(seen)
}
