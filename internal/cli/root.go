package cli

import (
	"github.com/spf13/cobra"

	"github.com/lzhgus/VibeVoice/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vibecap",
	Short: "Script-timed caption generator for synthesized speech",
	Long: `Vibecap reconstructs per-utterance caption timing for generated
audio directly from the speaker script, without transcribing the
waveform, and renders the result as SRT, VTT, JSON, transcript, or
annotated script output.

An alternative transcription path re-derives captions from the
finished audio via a speech-recognition provider.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("output-dir", "o", "", "Directory for caption files")
}
