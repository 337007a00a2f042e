package commands

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/scott-cotton/cli"

	"dto-inflator/dto"
)

type inflateConfig struct {
	*cli.Command

	Schema      string `cli:"name=schema aliases=s desc='schema file declaring the DTO types'"`
	Type        string `cli:"name=type aliases=t desc='type to inflate into'"`
	Short       bool   `cli:"name=short desc='expand short keys before inflating'"`
	Many        bool   `cli:"name=many desc='require the input to be a list of records'"`
	Dump        bool   `cli:"name=dump desc='dump the typed instances instead of deflated JSON'"`
	Conversions string `cli:"name=conversions desc='allowed value conversion categories'"`
	Merge       string `cli:"name=merge desc='overflow merge mode: recursive or overlay'"`
	Parallel    int    `cli:"name=parallel desc='inflate up to this many list items at once'"`
	Verbose     bool   `cli:"name=verbose aliases=v desc='log engine decisions to stderr'"`
}

// InflateCommand returns the inflate subcommand.
func InflateCommand() *cli.Command {
	cfg := &inflateConfig{}
	opts, _ := cli.StructOpts(cfg)

	return cli.NewCommandAt(&cfg.Command, "inflate").
		WithSynopsis("inflate --schema FILE --type NAME [FILE|-] - Inflate records into DTOs").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *inflateConfig) flags() engineFlags {
	return engineFlags{
		schemaPath:  cfg.Schema,
		conversions: cfg.Conversions,
		merge:       cfg.Merge,
		parallel:    cfg.Parallel,
		verbose:     cfg.Verbose,
	}
}

func (cfg *inflateConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}

	if cfg.Type == "" {
		return fmt.Errorf("%w: --type is required", cli.ErrUsage)
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: inflate takes at most one input file, got %v", cli.ErrUsage, args)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	e, err := loadEngine(cfg.flags(), logger)
	if err != nil {
		return err
	}

	items, isList, err := loadItems(cc.In, args, cfg.Many)
	if err != nil {
		return err
	}

	insts, err := e.InflateMany(cfg.Type, items, callOptions(cfg.Short)...)
	if err != nil {
		return fmt.Errorf("failed to inflate %s: %w", cfg.Type, err)
	}

	return writeInflated(cc.Out, e, insts, isList, cfg.Dump)
}

// loadItems reads and decodes the input named by args.
func loadItems(in io.Reader, args []string, many bool) ([]any, bool, error) {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	data, err := readInput(in, path)
	if err != nil {
		return nil, false, err
	}

	v, err := decodeInput(data)
	if err != nil {
		return nil, false, err
	}

	return inputItems(v, many)
}

func callOptions(short bool) []dto.CallOption {
	return []dto.CallOption{dto.WithShortKeys(short)}
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// writeInflated prints the instances, as deflated JSON or as a dump. A
// single input object prints a single value rather than a list.
func writeInflated(w io.Writer, e *dto.Engine, insts []dto.DTO, isList, dump bool) error {
	if dump {
		if isList {
			dumpConfig.Fdump(w, insts)
		} else {
			for _, inst := range insts {
				dumpConfig.Fdump(w, inst)
			}
		}

		return nil
	}

	recs, err := dto.DeflateMany(e, insts)
	if err != nil {
		return fmt.Errorf("failed to deflate: %w", err)
	}

	if isList {
		return writeJSON(w, recs)
	}

	return writeJSON(w, recs[0])
}
