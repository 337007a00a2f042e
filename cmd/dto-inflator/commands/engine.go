package commands

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"dto-inflator/dto"
	"dto-inflator/options"
	"dto-inflator/schema"
)

// engineFlags are the flags shared by commands that build an engine.
type engineFlags struct {
	schemaPath  string
	conversions string
	merge       string
	parallel    int
	verbose     bool
}

// newLogger returns a development logger when verbose is set and a no-op
// logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}

// loadEngine loads the schema into a fresh registry and builds an engine
// over it. Schema warnings are logged.
func loadEngine(f engineFlags, logger *zap.Logger) (*dto.Engine, error) {
	if f.schemaPath == "" {
		return nil, fmt.Errorf("%w: --schema is required", cli.ErrUsage)
	}

	conv := options.CategoryDefault

	if f.conversions != "" {
		c, ok := options.ParseCategories(f.conversions)
		if !ok {
			return nil, fmt.Errorf("%w: invalid --conversions %q", cli.ErrUsage, f.conversions)
		}

		conv = c
	}

	mode, ok := dto.ParseMergeMode(f.merge)
	if !ok {
		return nil, fmt.Errorf("%w: invalid --merge %q, want recursive or overlay", cli.ErrUsage, f.merge)
	}

	reg := dto.NewRegistry()

	_, warnings, err := schema.Load(f.schemaPath, reg)
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		logger.Warn("schema warning", zap.String("schema", f.schemaPath), zap.String("diagnostic", w))
	}

	logger.Debug("schema loaded",
		zap.String("schema", f.schemaPath),
		zap.Strings("types", reg.Names()),
		zap.Stringer("conversions", conv),
		zap.Stringer("merge", mode))

	return dto.New(reg,
		dto.WithLogger(logger),
		dto.WithConversions(conv),
		dto.WithMergeMode(mode),
		dto.WithParallelism(f.parallel),
	), nil
}
