package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fin-tools/credit-atlas/pkg/adapters"
	"github.com/fin-tools/credit-atlas/pkg/models/api"
	"github.com/fin-tools/credit-atlas/pkg/runtime/terminal/export"
	"github.com/fin-tools/credit-atlas/pkg/services/underwriting"

	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	settingsPath string
	asJSON       bool
	reporter     *export.Reporter
}

// NewAnalyzeCmd builds the analyze command. The single argument is a
// JSON file holding the extracted documents plus loan terms.
func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze <request.json>",
		Short: "Run the underwriting analysis over extracted documents",
		Args:  cobra.ExactArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.settingsPath, "settings", "", "Path to an analysis settings file")
	cmd.Flags().BoolVar(&ac.asJSON, "json", false, "Emit the full report as JSON instead of text")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}

	var req api.AnalysisRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse request file: %w", err)
	}

	settings := underwriting.DefaultSettings()
	if ac.settingsPath != "" {
		loaded, err := underwriting.LoadSettings(ac.settingsPath)
		if err != nil {
			return err
		}
		settings = *loaded
	}

	ctrl := underwriting.NewController(settings)
	report, err := ctrl.Analyze(cmd.Context(), adapters.MapRequestToRecords(req), adapters.MapLoanTermsToDomain(req.Loan))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if ac.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(adapters.MapReportToApi(report))
	}

	return ac.reporter.Handle(report)
}
