package commands

import "github.com/scott-cotton/cli"

const usageText = `dto-inflator - inflate plain records into typed DTOs

Usage:
  dto-inflator inflate   --schema FILE --type NAME [--short] [--many] [--dump] [FILE|-]
  dto-inflator roundtrip --schema FILE --type NAME [--short] [FILE|-]
  dto-inflator check     --schema FILE [--type NAME [FILE|-]]
  dto-inflator describe  --schema FILE [NAME...]

Input files hold JSON or YAML. Without a file, or with "-", stdin is read.

Examples:
  dto-inflator inflate --schema types.yaml --type Person person.json
  dto-inflator inflate --schema types.yaml --type User --short --many users.yaml
  dto-inflator roundtrip --schema types.yaml --type Person person.json
  dto-inflator check --schema types.yaml
  dto-inflator check --schema types.yaml --type Person person.json`

// Root returns the root command for dto-inflator.
func Root() *cli.Command {
	return cli.NewCommand("dto-inflator").
		WithSynopsis("dto-inflator - inflate plain records into typed DTOs").
		WithDescription(usageText).
		WithSubs(
			InflateCommand(),
			RoundTripCommand(),
			CheckCommand(),
			DescribeCommand(),
		)
}
