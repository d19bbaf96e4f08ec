package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacolabs/eventflow/internal/core/domain"
	"github.com/jacolabs/eventflow/internal/health"
)

var statusPort int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the health endpoint of a running eventflow daemon",
	Run:   runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusPort, "port", 8080, "daemon health port")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%d/health/detailed", statusPort))
	if err != nil {
		slog.Error("Daemon unreachable", "port", statusPort, "error", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var report health.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		slog.Error("Malformed health response", "error", err)
		os.Exit(1)
	}

	fmt.Printf("status:           %s\n", report.Status)
	fmt.Printf("network:          %v\n", report.NetworkAvailable)
	fmt.Printf("queued requests:  %d\n", report.QueuedRequests)
	fmt.Printf("requests total:   %d\n", report.RequestsTotal)
	fmt.Printf("successes total:  %d\n", report.SuccessesTotal)
	for errType, n := range report.ErrorCounts {
		fmt.Printf("  error %-22s %d\n", errType+":", n)
	}
	for strategy, n := range report.StrategyCounts {
		fmt.Printf("  strategy %-19s %d\n", strategy+":", n)
	}
}

// printOutcome renders an outcome envelope for humans.
func printOutcome(out *domain.Outcome) {
	if out.Success {
		fmt.Println("ok")
	} else {
		fmt.Println("failed")
	}
	if out.Strategy != domain.StrategyNone {
		fmt.Printf("strategy:  %s\n", out.Strategy)
	}
	if out.Message != "" {
		fmt.Printf("message:   %s\n", out.Message)
	}
	if out.RequiredAction != domain.ActionNone {
		fmt.Printf("action:    %s\n", out.RequiredAction)
	}
	if r := out.Result; r != nil {
		fmt.Printf("title:     %s\n", r.Title)
		fmt.Printf("start:     %s\n", r.StartDateTime)
		if r.EndDateTime != "" {
			fmt.Printf("end:       %s\n", r.EndDateTime)
		}
		if r.Location != "" {
			fmt.Printf("location:  %s\n", r.Location)
		}
		fmt.Printf("confidence: %.2f", r.Confidence)
		if r.FallbackApplied {
			fmt.Print(" (synthesized)")
		}
		fmt.Println()
	}
	if out.Assessment != nil {
		for _, s := range out.Assessment.Suggestions {
			fmt.Printf("hint:      %s\n", s.Message)
		}
	}
}
