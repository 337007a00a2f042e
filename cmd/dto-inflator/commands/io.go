package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"

	"dto-inflator/record"
)

var errEmptyInput = errors.New("empty input")

// readInput reads path, or r when path is empty or "-".
func readInput(r io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}

	return data, nil
}

// decodeInput decodes a JSON document, falling back to YAML, and
// normalizes the result to plain form.
func decodeInput(data []byte) (any, error) {
	var v any

	if err := json.Unmarshal(data, &v); err != nil {
		v = nil

		if yerr := yaml.Unmarshal(data, &v); yerr != nil {
			return nil, fmt.Errorf("input is neither JSON (%w) nor YAML (%w)", err, yerr)
		}
	}

	if v == nil {
		return nil, errEmptyInput
	}

	return record.Normalize(v)
}

// inputItems returns the items to inflate: the elements of a list, or the
// single input object.
func inputItems(v any, many bool) ([]any, bool, error) {
	if list, ok := v.([]any); ok {
		return list, true, nil
	}

	if many {
		return nil, false, fmt.Errorf("--many expects a list, got %s", describeKind(v))
	}

	return []any{v}, false, nil
}

func describeKind(v any) string {
	switch record.KindOf(v) {
	case record.KindRecord:
		return "an object"
	case record.KindList:
		return "a list"
	default:
		return fmt.Sprintf("a scalar (%T)", v)
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	data = append(data, '\n')

	_, err = w.Write(data)

	return err
}

// useColor reports whether w is a terminal. force overrides detection.
func useColor(w io.Writer, force bool) bool {
	if force {
		return true
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd())
}
