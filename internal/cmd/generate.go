package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jander99/claude-config/internal/compose"
	"github.com/jander99/claude-config/internal/coordination"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate agent prompt files and CLAUDE.md",
	Long: `Validate the coordination graph, then render agents/<name>.md for every
persona plus the master CLAUDE.md coordination document into the
configured output directory.

Generation is refused when validation fails. Use --check to render
without writing anything.`,
	RunE: runGenerate,
}

var generateCheck bool

func init() {
	generateCmd.Flags().BoolVar(&generateCheck, "check", false, "Render documents without writing files")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rc, err := newRunContext()
	if err != nil {
		return err
	}
	defer rc.close()

	validator := coordination.NewValidator(coordination.WithLogger(rc.log.WithPhase("validate")))
	report := validator.ValidateCoordination(rc.records)
	if !report.IsValid {
		fmt.Print(renderReport(report))
		return fmt.Errorf("refusing to generate: coordination validation failed")
	}

	graph := validator.BuildCoordinationGraph(rc.records)
	metadata := validator.ExtractAgentMetadata(rc.records)
	entryPoints := validator.FindEntryPoints(rc.records, graph)
	result := rc.newOptimizer().Optimize(graph, metadata, entryPoints)

	composeLog := rc.log.WithPhase("compose")
	out, err := compose.Render(rc.defs, rc.library, graph, report, result, entryPoints)
	if err != nil {
		composeLog.Error("rendering failed", "error", err.Error())
		return err
	}

	if generateCheck {
		fmt.Printf("check passed: %d agent file(s) and CLAUDE.md would be written to %s\n",
			len(out.AgentFiles), rc.cfg.Output.Dir)
		return nil
	}

	if err := compose.WriteFiles(rc.cfg.Output.Dir, out); err != nil {
		composeLog.Error("writing failed", "error", err.Error())
		return err
	}
	composeLog.Info("documents written",
		"agents", len(out.AgentFiles), "dir", rc.cfg.Output.Dir)
	fmt.Printf("wrote %d agent file(s) and CLAUDE.md to %s\n", len(out.AgentFiles), rc.cfg.Output.Dir)
	return nil
}
