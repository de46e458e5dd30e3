package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jander99/claude-config/internal/coordination"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the agent coordination graph",
	Long: `Validate the coordination graph derived from the configured persona
definitions.

This command checks:
  - Circular hand-off chains (self, direct, and transitive cycles)
  - References to undefined agents
  - Bidirectional awareness between coordinating agents
  - Shared coordination traits on hand-off edges
  - Reachability of every agent from the entry points

The exit code indicates the result:
  0 - Graph is valid (may have warnings)
  1 - Graph has cycles or error-severity issues`,
	RunE: runValidate,
}

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation report as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	rc, err := newRunContext()
	if err != nil {
		return err
	}
	defer rc.close()

	validator := coordination.NewValidator(coordination.WithLogger(rc.log.WithPhase("validate")))
	report := validator.ValidateCoordination(rc.records)

	if validateJSON {
		if err := outputJSON(report); err != nil {
			return err
		}
	} else {
		fmt.Print(renderReport(report))
	}

	if !report.IsValid {
		return fmt.Errorf("coordination validation failed: %d error(s)", len(report.Errors))
	}
	return nil
}
