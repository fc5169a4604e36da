package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// defaultConfigPaths lists the configuration files in precedence order.
func defaultConfigPaths() []string {
	var paths []string
	if p := os.Getenv("DOCVIEW_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, "docview.yaml", "~/.config/docview/config.yaml")
}

// yamlConfig loads flag values from a YAML mapping keyed by flag name.
// Keys may use underscores in place of hyphens.
func yamlConfig(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if v, ok := values[key]; ok && v != nil {
				return flagValue(v), nil
			}
		}
		return nil, nil
	}), nil
}

// flagValue renders a YAML value the way it would be typed on the command
// line. Sequences become comma-separated lists.
func flagValue(v any) string {
	if items, ok := v.([]any); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
