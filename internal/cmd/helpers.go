package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jander99/claude-config/internal/config"
	"github.com/jander99/claude-config/internal/coordination"
	"github.com/jander99/claude-config/internal/logging"
	"github.com/jander99/claude-config/internal/persona"
)

// runContext bundles everything a command needs after configuration and
// persona loading.
type runContext struct {
	cfg     *config.Config
	log     *logging.Logger
	defs    []*persona.Definition
	library *persona.Library
	records []coordination.AgentRecord
}

// newRunContext loads configuration, opens the logger, and loads every
// persona and trait definition.
func newRunContext() (*runContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.NewLogger(cfg.Logging.Dir, strings.ToUpper(cfg.Logging.Level), logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, err
	}

	loadLog := log.WithPhase("load")
	defs, err := persona.LoadAll(cfg.Personas.Dirs)
	if err != nil {
		loadLog.Error("failed to load personas", "error", err.Error())
		log.Close()
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}
	if len(defs) == 0 {
		log.Close()
		return nil, fmt.Errorf("no persona definitions found in %v", cfg.Personas.Dirs)
	}

	library, err := persona.LoadLibrary(cfg.Personas.TraitsDir)
	if err != nil {
		loadLog.Error("failed to load trait library", "error", err.Error())
		log.Close()
		return nil, fmt.Errorf("failed to load trait library: %w", err)
	}

	loadLog.Info("personas loaded", "personas", len(defs), "traits", library.Len())

	return &runContext{
		cfg:     cfg,
		log:     log,
		defs:    defs,
		library: library,
		records: persona.Records(defs),
	}, nil
}

// close releases the run context's resources.
func (rc *runContext) close() {
	_ = rc.log.Close()
}

// newOptimizer builds an optimizer from the configured bounds.
func (rc *runContext) newOptimizer() *coordination.Optimizer {
	return coordination.NewOptimizer(
		coordination.WithMaxPathLength(rc.cfg.Optimizer.MaxPathLength),
		coordination.WithMaxDepth(rc.cfg.Optimizer.MaxDepth),
		coordination.WithCacheSize(rc.cfg.Optimizer.CacheSize),
	)
}

// outputJSON writes a value as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
