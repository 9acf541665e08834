package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lzhgus/VibeVoice/internal/caption"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported caption output formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, format := range caption.AllFormats() {
			fmt.Printf("  %-12s %s\n",
				format, caption.ExtensionForFormat(format))
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
