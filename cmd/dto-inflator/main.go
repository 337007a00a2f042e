// Package main provides the CLI entrypoint for dto-inflator.
//
// dto-inflator loads DTO type declarations from a YAML schema file and:
//   - inflates JSON or YAML records into those types
//   - checks that records survive an inflate/deflate round trip
//   - validates schema files with "did you mean" suggestions
package main

import (
	"context"

	"github.com/scott-cotton/cli"

	"dto-inflator/cmd/dto-inflator/commands"
)

func main() {
	cli.MainContext(context.Background(), commands.Root())
}
