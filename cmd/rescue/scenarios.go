package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/risor-io/rescue"
)

// Codes used by the demo scenarios.
const (
	codeNotFound  = 404
	codeConflict  = 409
	codeTransient = 503
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

func trace(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

var nestedCmd = &cobra.Command{
	Use:   "nested",
	Short: "An inner region's unmatched code reaches the outer handler chain",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		rescue.Do(ctx, func(ctx context.Context) {
			rescue.Do(ctx, func(ctx context.Context) {
				trace("inner body raising %d", codeConflict)
				rescue.Raise(ctx, codeConflict)
			},
				rescue.Catch(codeNotFound, func(ctx context.Context, code int) {
					trace("inner handler (unreachable)")
				}),
				rescue.Finally(func(ctx context.Context) {
					trace(yellow("inner finally releasing resources"))
				}),
			)
		},
			rescue.Catch(codeConflict, func(ctx context.Context, code int) {
				trace(green("outer handler consumed code %d"), code)
			}),
			rescue.Finally(func(ctx context.Context) {
				trace(yellow("outer finally"))
			}),
		)
	},
}

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Early exits drive a retry loop; failures aggregate as errors",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		attempts := 0
	loop:
		for {
			out := rescue.Do(ctx, func(ctx context.Context) {
				attempts++
				trace("attempt %d", attempts)
				if attempts < 3 {
					rescue.Raise(ctx, codeTransient)
				}
				rescue.Break(ctx)
			},
				rescue.Catch(codeTransient, func(ctx context.Context, code int) {
					trace(yellow("transient failure, will retry"))
				}),
			)
			if out.Exit == rescue.ExitBreak {
				break loop
			}
		}
		trace(green("succeeded after %d attempts"), attempts)

		// The same failures seen through the error-return bridge.
		err := rescue.AttemptAll(ctx,
			func(ctx context.Context) { rescue.Raise(ctx, codeNotFound) },
			func(ctx context.Context) {},
			func(ctx context.Context) { rescue.Raise(ctx, codeConflict) },
		)
		trace("aggregated: %s", red(err.Error()))
	},
}

var uncaughtCmd = &cobra.Command{
	Use:   "uncaught",
	Short: "Raise with no enclosing region: report and non-zero exit",
	Run: func(cmd *cobra.Command, args []string) {
		trace(red("raising %d outside any region"), codeNotFound)
		rescue.Raise(context.Background(), codeNotFound)
	},
}
