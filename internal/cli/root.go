// Package cli holds the sheeter command definitions.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Run builds the command tree and executes it with args.
// Streams are parameters so tests can drive the CLI in memory.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	return root.ExecuteContext(ctx)
}

type rootFlags struct {
	verbose bool
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	rootCmd := &cobra.Command{
		Use:           "sheeter",
		Short:         "Turn JSON records into tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log translator activity to stderr")

	rootCmd.AddCommand(newConvertCmd(&flags))
	rootCmd.AddCommand(newHeaderCmd(&flags))
	rootCmd.AddCommand(newFormatsCmd())
	return rootCmd
}

func (f *rootFlags) logger() (*zap.Logger, error) {
	if !f.verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
