package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adr1978/coverstudio"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in canvas presets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range coverstudio.CanvasPresets {
			fmt.Printf("%-10s %4d x %d\n", p.Name, p.Width, p.Height)
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
