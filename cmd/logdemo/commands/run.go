package commands

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/logargs/cmd"
	clierrors "github.com/thoreinstein/logargs/internal/errors"
	"github.com/thoreinstein/logargs/internal/logging"
)

// Targets used by the simulated workload.
const (
	targetApp = "logdemo"
	targetDB  = "logdemo/db"
)

// runRequests holds the value of the --requests flag.
var runRequests int

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&runRequests, "requests", "n", 3, "number of simulated requests")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Emit sample log records across targets and spans",
	Long: `Simulate a few requests, each inside a span, logging at every level
under the "logdemo" and "logdemo/db" targets. Use -v or a filter such as
LOGDEMO_LOG=info,logdemo/db=trace to see how the records are selected.`,
	Args: cobra.MatchAll(cobra.NoArgs, func(_ *cobra.Command, _ []string) error {
		if runRequests < 0 {
			err := errors.Newf("--requests must not be negative, got %d", runRequests)
			return clierrors.NewUserError(err, "")
		}
		return nil
	}),
	RunE: func(cmd *cobra.Command, _ []string) error {
		simulate(cmd.Context(), runRequests)

		dropped := guard.Dropped()
		if dropped > 0 {
			logging.FromContext(cmd.Context()).Warn("log records dropped", "count", dropped)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "handled %d requests\n", runRequests)
		return nil
	},
}

func simulate(ctx context.Context, requests int) {
	logger := logging.FromContext(ctx)
	app := logging.Target(logger, targetApp)
	db := logging.Target(logger, targetDB)

	app.InfoContext(ctx, "starting", "version", buildinfo.Version, "requests", requests)
	for i := range requests {
		reqCtx, span := logging.StartSpan(ctx, app, "request", "id", i)

		db.DebugContext(reqCtx, "query", "table", "users", "rows", i*3)
		db.Log(reqCtx, logging.LevelTrace, "row decoded", "index", i)
		if i%2 == 1 {
			app.WarnContext(reqCtx, "slow request", "id", i, "api_token", "ghp_0123456789abcdef")
		}

		span.End()
	}
	app.InfoContext(ctx, "finished")
}
