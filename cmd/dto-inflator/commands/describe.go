package commands

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"dto-inflator/dto"
	"dto-inflator/schema"
)

type describeConfig struct {
	*cli.Command

	Schema string `cli:"name=schema aliases=s desc='schema file declaring the DTO types'"`
}

// DescribeCommand returns the describe subcommand, which prints the
// compiled metadata of the schema's types in schema form.
func DescribeCommand() *cli.Command {
	cfg := &describeConfig{}
	opts, _ := cli.StructOpts(cfg)

	return cli.NewCommandAt(&cfg.Command, "describe").
		WithSynopsis("describe --schema FILE [NAME...] - Print the compiled type metadata").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *describeConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}

	if cfg.Schema == "" {
		return fmt.Errorf("%w: --schema is required", cli.ErrUsage)
	}

	reg := dto.NewRegistry()
	if _, _, err := schema.Load(cfg.Schema, reg); err != nil {
		return err
	}

	for _, name := range args {
		if !reg.Has(name) {
			return fmt.Errorf("%w: %q", dto.ErrUnknownType, name)
		}
	}

	data, err := schema.Marshal(schema.Export(reg, args...))
	if err != nil {
		return err
	}

	_, err = cc.Out.Write(data)

	return err
}
