package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatTOML  outputFormat = "toml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", formatTable:
		return formatTable, nil
	case formatJSON, formatYAML, formatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json, yaml or toml)", s)
	}
}

// render writes v in the requested format. Structured formats share the
// JSON field names of the API; table output is left to the caller.
func render(w io.Writer, format outputFormat, v any, table func(io.Writer) error) error {
	if format == formatTable {
		return table(w)
	}
	if format == formatJSON {
		raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	doc, err := asDocument(v)
	if err != nil {
		return err
	}

	var raw []byte
	switch format {
	case formatYAML:
		raw, err = yaml.Marshal(doc)
	case formatTOML:
		raw, err = toml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", format, err)
	}
	_, err = w.Write(raw)
	return err
}

// asDocument round-trips v through JSON so every format uses the wire names.
func asDocument(v any) (map[string]any, error) {
	raw, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	var doc map[string]any
	if err := sonic.ConfigStd.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("output is not an object: %w", err)
	}
	return doc, nil
}
