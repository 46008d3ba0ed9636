package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/risor-io/rescue"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "rescue",
	Short: "Demonstrations of code-based error propagation",
	Long: `Runs small scenarios showing how raised codes travel through nested
protected regions: handler matching, finally guards, early exits, and the
uncaught path.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if debug {
			level = zerolog.DebugLevel
		}
		rescue.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Log propagation events while scenarios run")
	rootCmd.AddCommand(nestedCmd)
	rootCmd.AddCommand(retryCmd)
	rootCmd.AddCommand(uncaughtCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
