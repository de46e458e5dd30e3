package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jander99/claude-config/internal/coordination"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Analyze the coordination graph and suggest improvements",
	Long: `Precompute reachability, degree, and path data for the coordination
graph and print advisory suggestions: bottleneck agents, overly long
hand-off chains, dead-end entry points, and model tier imbalance.`,
	RunE: runOptimize,
}

var optimizeJSON bool

func init() {
	optimizeCmd.Flags().BoolVar(&optimizeJSON, "json", false, "Output optimization stats as JSON")
	rootCmd.AddCommand(optimizeCmd)
}

// optimizeOutput is the JSON output shape for the optimize command.
type optimizeOutput struct {
	Stats       coordination.OptimizationStats `json:"stats"`
	Suggestions []string                       `json:"suggestions,omitempty"`
}

func runOptimize(cmd *cobra.Command, args []string) error {
	rc, err := newRunContext()
	if err != nil {
		return err
	}
	defer rc.close()

	validator := coordination.NewValidator(coordination.WithLogger(rc.log.WithPhase("optimize")))
	graph := validator.BuildCoordinationGraph(rc.records)
	metadata := validator.ExtractAgentMetadata(rc.records)
	entryPoints := validator.FindEntryPoints(rc.records, graph)

	result := rc.newOptimizer().Optimize(graph, metadata, entryPoints)

	if optimizeJSON {
		return outputJSON(optimizeOutput{Stats: result.Stats, Suggestions: result.Suggestions})
	}
	fmt.Print(renderStats(result))
	return nil
}
