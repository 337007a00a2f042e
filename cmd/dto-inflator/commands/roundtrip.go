package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/segmentio/encoding/json"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"dto-inflator/dto"
)

type roundTripConfig struct {
	*cli.Command

	Schema      string `cli:"name=schema aliases=s desc='schema file declaring the DTO types'"`
	Type        string `cli:"name=type aliases=t desc='type to inflate into'"`
	Short       bool   `cli:"name=short desc='expand short keys before inflating'"`
	Conversions string `cli:"name=conversions desc='allowed value conversion categories'"`
	Merge       string `cli:"name=merge desc='overflow merge mode: recursive or overlay'"`
	Color       bool   `cli:"name=color desc='colorize diffs even when not writing to a terminal'"`
	Verbose     bool   `cli:"name=verbose aliases=v desc='log engine decisions to stderr'"`
}

// RoundTripCommand returns the roundtrip subcommand, which inflates each
// input record, deflates it again and reports where the result differs.
func RoundTripCommand() *cli.Command {
	cfg := &roundTripConfig{}
	opts, _ := cli.StructOpts(cfg)

	return cli.NewCommandAt(&cfg.Command, "roundtrip").
		WithSynopsis("roundtrip --schema FILE --type NAME [FILE|-] - Check that records survive inflate and deflate").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *roundTripConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}

	if cfg.Type == "" {
		return fmt.Errorf("%w: --type is required", cli.ErrUsage)
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: roundtrip takes at most one input file, got %v", cli.ErrUsage, args)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync() }()

	e, err := loadEngine(engineFlags{
		schemaPath:  cfg.Schema,
		conversions: cfg.Conversions,
		merge:       cfg.Merge,
		verbose:     cfg.Verbose,
	}, logger)
	if err != nil {
		return err
	}

	items, _, err := loadItems(cc.In, args, false)
	if err != nil {
		return err
	}

	results, err := roundTrip(e, cfg.Type, items, callOptions(cfg.Short)...)
	if err != nil {
		return err
	}

	if writeRoundTrip(cc.Out, results, useColor(cc.Out, cfg.Color)) > 0 {
		return cli.ExitCodeErr(1)
	}

	return nil
}

// roundTripResult compares one input item with its deflated form.
type roundTripResult struct {
	Index  int
	Input  []byte // indented JSON
	Output []byte // indented JSON
	Patch  []byte // merge patch turning Input into Output
}

// Equal reports whether the item came back unchanged.
func (r roundTripResult) Equal() bool {
	return string(bytes.TrimSpace(r.Patch)) == "{}"
}

// roundTrip inflates every item into typeName, deflates it and compares.
func roundTrip(e *dto.Engine, typeName string, items []any, opts ...dto.CallOption) ([]roundTripResult, error) {
	insts, err := e.InflateMany(typeName, items, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to inflate %s: %w", typeName, err)
	}

	results := make([]roundTripResult, len(insts))

	for i, inst := range insts {
		rec, err := e.Deflate(inst)
		if err != nil {
			return nil, fmt.Errorf("failed to deflate item %d: %w", i, err)
		}

		in, err := json.MarshalIndent(items[i], "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode item %d: %w", i, err)
		}

		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode item %d: %w", i, err)
		}

		patch, err := jsonpatch.CreateMergePatch(in, out)
		if err != nil {
			return nil, fmt.Errorf("failed to diff item %d: %w", i, err)
		}

		results[i] = roundTripResult{Index: i, Input: in, Output: out, Patch: patch}
	}

	return results, nil
}

// writeRoundTrip reports every result and returns the number of items
// that changed.
func writeRoundTrip(w io.Writer, results []roundTripResult, colorize bool) int {
	ok, bad := color.New(color.FgGreen), color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{ok, bad} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	changed := 0

	for _, r := range results {
		if r.Equal() {
			fmt.Fprintf(w, "item %d: %s\n", r.Index, ok.Sprint("ok"))
			continue
		}

		changed++

		fmt.Fprintf(w, "item %d: %s\n", r.Index, bad.Sprint("changed"))
		fmt.Fprintf(w, "merge patch: %s\n", compactJSON(r.Patch))
		fmt.Fprint(w, textDiff(r.Input, r.Output, colorize))
	}

	fmt.Fprintf(w, "%d of %d item(s) changed\n", changed, len(results))

	return changed
}

func compactJSON(data []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return string(data)
	}

	return buf.String()
}

// textDiff returns a line diff of a and b. Without color, lines are
// prefixed with "- ", "+ " or two spaces.
func textDiff(a, b []byte, colorize bool) string {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(withNewline(a), withNewline(b))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	if colorize {
		return dmp.DiffPrettyText(diffs)
	}

	var sb strings.Builder

	for _, d := range diffs {
		prefix := "  "

		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+ "
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffEqual:
		}

		for line := range strings.SplitAfterSeq(d.Text, "\n") {
			if line == "" {
				continue
			}

			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}

	return sb.String()
}

func withNewline(b []byte) string {
	s := string(b)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	return s
}
