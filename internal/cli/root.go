package cli

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
)

// SetVersion sets the version information displayed by --version,
// typically injected via ldflags at build time.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the uperrorbar CLI and returns an error if the command
// fails.
func Execute() error {
	var (
		verbose bool
		opts    renderOptions
	)

	root := &cobra.Command{
		Use:   "uperrorbar <input.csv>",
		Short: "uperrorbar draws upward error bars from CSV data",
		Long: `uperrorbar reads observations from a CSV file with columns
x, y, ymax and an optional discrete group column, builds a layered
plot with upward-pointing error bars and writes it as a PNG image.`,
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			return render(cmd.Context(), opts)
		},
	}

	if commit != "" {
		root.SetVersionTemplate("uperrorbar " + version + "\ncommit: " + commit + "\n")
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVarP(&opts.output, "out", "o", "uperrorbar.png", "output PNG file")
	root.Flags().Float64VarP(&opts.width, "width", "w", 0, "cap width of the error bars in data units (0: automatic)")
	root.Flags().StringVarP(&opts.theme, "theme", "t", "", "TOML theme file")
	root.Flags().IntVar(&opts.size, "size", 600, "image width and height in pixels")

	return root.Execute()
}
