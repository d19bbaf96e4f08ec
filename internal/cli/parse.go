package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacolabs/eventflow/internal/control"
)

var (
	noLaunch  bool
	asJSON    bool
	parseWait time.Duration
)

var parseCmd = &cobra.Command{
	Use:   "parse [text...]",
	Short: "Parse one text into a calendar event and launch the calendar",
	Args:  cobra.MinimumNArgs(1),
	Run:   runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&noLaunch, "no-launch", false, "process the text but skip the calendar launch")
	parseCmd.Flags().BoolVar(&asJSON, "json", false, "print the outcome envelope as JSON")
	parseCmd.Flags().DurationVar(&parseWait, "timeout", 2*time.Minute, "overall deadline for the request")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	text := strings.Join(args, " ")

	app, err := control.NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize eventflow", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), parseWait)
	defer cancel()

	outcome := app.Orchestrator().Process(ctx, text)

	if outcome.Success && outcome.Result != nil && !noLaunch {
		launchResult := app.Dispatcher().Launch(ctx, outcome.Result)
		if launchResult.Success {
			slog.Info("Calendar launched",
				"strategy", launchResult.Strategy, "app", launchResult.AppUsed)
		} else {
			slog.Warn("All launch strategies failed", "error", launchResult.ErrorMessage)
			outcome = app.Orchestrator().RecoverLaunchFailure(outcome.Result, launchResult.ErrorMessage)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(outcome)
	} else {
		printOutcome(outcome)
	}

	if !outcome.Success {
		os.Exit(1)
	}
}
