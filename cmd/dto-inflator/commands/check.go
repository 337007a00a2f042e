package commands

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"dto-inflator/dto"
	"dto-inflator/internal/diagnostic"
	"dto-inflator/internal/match"
	"dto-inflator/schema"
)

const maxSuggestions = 3

type checkConfig struct {
	*cli.Command

	Schema  string `cli:"name=schema aliases=s desc='schema file to validate'"`
	Type    string `cli:"name=type aliases=t desc='also inflate the input into this type and report unmapped keys'"`
	Short   bool   `cli:"name=short desc='expand short keys before inflating'"`
	Color   bool   `cli:"name=color desc='colorize output even when not writing to a terminal'"`
	Verbose bool   `cli:"name=verbose aliases=v desc='log engine decisions to stderr'"`
}

// CheckCommand returns the check subcommand. It validates a schema and,
// with --type, reports input keys that no attribute of the type picks up.
func CheckCommand() *cli.Command {
	cfg := &checkConfig{}
	opts, _ := cli.StructOpts(cfg)

	return cli.NewCommandAt(&cfg.Command, "check").
		WithSynopsis("check --schema FILE [--type NAME [FILE|-]] - Validate a schema and its input").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *checkConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}

	if cfg.Schema == "" {
		return fmt.Errorf("%w: --schema is required", cli.ErrUsage)
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: check takes at most one input file, got %v", cli.ErrUsage, args)
	}

	f, err := schema.LoadFile(cfg.Schema)
	if err != nil {
		return err
	}

	diags := schema.Validate(f, nil)

	if cfg.Type != "" && diags.IsValid() {
		inputDiags, err := cfg.checkInput(cc.In, f, args)
		if err != nil {
			return err
		}

		diags.Merge(*inputDiags)
	}

	printDiagnostics(cc.Out, diags, useColor(cc.Out, cfg.Color))

	if diags.HasErrors() {
		return cli.ExitCodeErr(1)
	}

	return nil
}

func (cfg *checkConfig) checkInput(in io.Reader, f *schema.File, args []string) (*diagnostic.Diagnostics, error) {
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, err
	}

	defer func() { _ = logger.Sync() }()

	reg := dto.NewRegistry()
	if err := schema.Apply(f, reg); err != nil {
		return nil, err
	}

	items, _, err := loadItems(in, args, false)
	if err != nil {
		return nil, err
	}

	e := dto.New(reg, dto.WithLogger(logger))

	return checkRecords(e, cfg.Type, items, callOptions(cfg.Short)...), nil
}

// checkRecords inflates items into typeName and reports every key that
// ended up in the overflow bag of a root instance, with suggestions taken
// from the type's attributes and rename keys. Inflate failures are errors.
func checkRecords(e *dto.Engine, typeName string, items []any, opts ...dto.CallOption) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	desc, ok := e.Registry().Describe(typeName)
	if !ok {
		suggestions := match.Suggest(typeName, e.Registry().Names(), maxSuggestions)
		diags.AddError("unknown_type", fmt.Sprintf("type %q is not declared", typeName), typeName, "", suggestions...)

		return diags
	}

	known := slices.Clone(desc.Attributes)
	for from := range desc.FieldRenameMap {
		known = append(known, from)
	}

	for i, item := range items {
		inst, err := e.InflateObject(typeName, item, opts...)
		if err != nil {
			diags.AddError("inflate_failed", fmt.Sprintf("item %d: %v", i, err), desc.Name, "")
			continue
		}

		extra := dto.Unmapped(inst)
		for _, key := range extra.Keys() {
			diags.AddWarning("unmapped_field",
				fmt.Sprintf("item %d: key %q is not an attribute and is kept as unmapped data", i, key),
				desc.Name, key, match.Suggest(key, known, maxSuggestions)...)
		}
	}

	return diags
}

// printDiagnostics writes one line per diagnostic, most severe first,
// followed by a summary line.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics, colorize bool) {
	styles := map[diagnostic.DiagnosticSeverity]*color.Color{
		diagnostic.DiagnosticError:   color.New(color.FgRed, color.Bold),
		diagnostic.DiagnosticWarning: color.New(color.FgYellow),
		diagnostic.DiagnosticInfo:    color.New(color.FgCyan),
	}

	for _, c := range styles {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s: %s\n", styles[d.Severity].Sprint(d.Severity), d)
	}

	fmt.Fprintf(w, "%d error(s), %d warning(s), %d info(s)\n", len(diags.Errors), len(diags.Warnings), len(diags.Infos))
}
