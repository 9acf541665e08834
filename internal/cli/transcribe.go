package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lzhgus/VibeVoice/internal/audio"
	"github.com/lzhgus/VibeVoice/internal/caption"
	"github.com/lzhgus/VibeVoice/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio_file]",
	Short: "Generate captions by transcribing the finished audio",
	Long: `Generate captions for an audio file by re-deriving timing from the
waveform through a speech-recognition provider, instead of estimating
it from the script. Segments carry the model's confidence score.

When the original script is supplied, speakers are matched to the
transcribed segments by text similarity.

Examples:
  vibecap transcribe podcast.wav
  vibecap transcribe podcast.wav --provider gemini --script podcast.txt
  vibecap transcribe podcast.mp3 --formats srt,json`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		StringP("provider", "p", "openai", "Transcription provider (openai, gemini)")
	transcribeCmd.Flags().
		StringP("api-key", "k", "", "Provider API key (or OPENAI_API_KEY / GEMINI_API_KEY env var)")
	transcribeCmd.Flags().
		String("model", "", "Provider model override")
	transcribeCmd.Flags().
		StringP("language", "l", "", "Language code of the audio (e.g., en, es)")
	transcribeCmd.Flags().
		String("script", "", "Original script for speaker matching")
	transcribeCmd.Flags().
		StringSliceP("speakers", "s", nil, "Speaker display names in first-seen order")
	transcribeCmd.Flags().
		StringSliceP("formats", "f", []string{"srt"}, "Output formats (srt, vtt, json, transcript, timing)")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	audioPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", audioPath)
	}
	if !audio.IsAudioFile(audioPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected audio file)",
			filepath.Ext(audioPath),
		)
	}

	providerStr, _ := cmd.Flags().GetString("provider")
	provider := transcribe.Provider(strings.ToLower(providerStr))

	apiKey, err := resolveAPIKey(cmd, provider)
	if err != nil {
		return err
	}

	model, _ := cmd.Flags().GetString("model")
	language, _ := cmd.Flags().GetString("language")

	transcriber, err := transcribe.Factory(ctx, provider, apiKey, transcribe.Options{
		Language: language,
		Model:    model,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio",
		"input", audioPath,
		"provider", provider,
	)

	result, err := transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	segments := result.Segments
	if scriptPath, _ := cmd.Flags().GetString("script"); scriptPath != "" {
		segments, err = matchScriptSpeakers(cmd, scriptPath, segments)
		if err != nil {
			return err
		}
	}

	logger.Infow("Transcription complete",
		"segments", len(segments),
		"duration", result.Duration.String(),
	)

	formats, err := parseFormats(cmd)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(audioPath), "captions")
	}
	base := strings.TrimSuffix(
		filepath.Base(audioPath), filepath.Ext(audioPath),
	)

	paths, err := caption.WritePackage(segments, formats, outputDir, base)
	if err != nil {
		return err
	}

	fmt.Printf("Captions generated successfully: %s\n", outputDir)
	fmt.Printf("  Segments: %d\n", len(segments))
	fmt.Printf("  Duration: %s\n", result.Duration.Round(time.Millisecond))
	for _, format := range formats {
		fmt.Printf("  %s: %s\n", strings.ToUpper(string(format)), paths[format])
	}

	return nil
}

func resolveAPIKey(
	cmd *cobra.Command,
	provider transcribe.Provider,
) (string, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey != "" {
		return apiKey, nil
	}

	envVar := "OPENAI_API_KEY"
	if provider == transcribe.ProviderGemini {
		envVar = "GEMINI_API_KEY"
	}
	if apiKey = os.Getenv(envVar); apiKey != "" {
		return apiKey, nil
	}

	return "", fmt.Errorf(
		"API key is required: use --api-key flag or set %s environment variable",
		envVar,
	)
}

func matchScriptSpeakers(
	cmd *cobra.Command,
	scriptPath string,
	segments []caption.Segment,
) ([]caption.Segment, error) {
	scriptData, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	speakers, _ := cmd.Flags().GetStringSlice("speakers")
	utterances, err := caption.ParseScript(string(scriptData), caption.ParseOptions{
		SpeakerNames: speakerNameMap(speakers),
	})
	if err != nil {
		return nil, err
	}

	return transcribe.MatchSpeakers(segments, utterances), nil
}
