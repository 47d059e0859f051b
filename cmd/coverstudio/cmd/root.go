package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adr1978/coverstudio"
)

var (
	presetName  string
	transparent bool
	docPath     string
	scriptPath  string
	exportDir   string
	winWidth    int
	winHeight   int
)

var rootCmd = &cobra.Command{
	Use:   "coverstudio [images...]",
	Short: "Layered cover-image compositor",
	Long: `An interactive editor for composing cover images from up to five
layers, with pattern fills, alignment tools, and undo/redo.

Examples:
  coverstudio photo.png logo.png                  # Open editor with two layers
  coverstudio --preset banner --transparent       # Empty banner canvas, no backdrop
  coverstudio --doc cover.json                    # Resume a saved document
  coverstudio export cover.json -o out.png -s 2   # Headless 2x export`,
	Args: cobra.ArbitraryArgs,
	RunE: runStudio,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&presetName, "preset", "p", "square",
		"canvas preset (see 'coverstudio presets')")
	rootCmd.Flags().BoolVar(&transparent, "transparent", false,
		"transparent canvas background")
	rootCmd.Flags().StringVarP(&docPath, "doc", "d", "",
		"open a saved document instead of a fresh canvas")
	rootCmd.Flags().StringVar(&scriptPath, "script", "",
		"run a JSON interaction script on startup")
	rootCmd.Flags().StringVarP(&exportDir, "export-dir", "o", ".",
		"directory for quick exports (Ctrl+S)")
	rootCmd.Flags().IntVar(&winWidth, "width", 1280, "window width")
	rootCmd.Flags().IntVar(&winHeight, "height", 800, "window height")
}

func runStudio(cmd *cobra.Command, args []string) error {
	var doc *coverstudio.Document
	if docPath != "" {
		var err error
		doc, err = coverstudio.LoadDocumentFile(docPath)
		if err != nil {
			return err
		}
	} else {
		doc = coverstudio.NewDocument(coverstudio.PresetByName(presetName))
		if transparent {
			doc.Background = coverstudio.TransparentBackground
		}
	}

	if len(args) > 0 {
		doc.AddFiles(args...)
	}

	return coverstudio.Run(doc, coverstudio.RunConfig{
		Title:      "Cover Studio",
		Width:      winWidth,
		Height:     winHeight,
		ExportDir:  exportDir,
		ScriptPath: scriptPath,
	})
}
