package cli

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/utcalc/log"
)

// Configuration file extensions, in increasing order of precedence.
var configFormats = []struct {
	ext  string
	load kong.ConfigurationLoader
}{
	{".json", loadJSON},
	{".yaml", loadYAML},
	{".yml", loadYAML},
	{".toml", loadTOML},
}

// configurations returns a [kong.Configuration] option for each supported
// configuration file format at base.
func configurations(base string) []kong.Option {
	opts := make([]kong.Option, len(configFormats))
	for i, f := range configFormats {
		opts[i] = kong.Configuration(f.load, base+f.ext)
	}

	return opts
}

// loadJSON, loadYAML and loadTOML are [kong.ConfigurationLoader]s. Each
// reads a document whose keys are flag names:
//
//	log-level: debug
//	log_format: text
//	log:
//	  pretty: false
//
// Nested tables join their keys with '-', so the last entry above sets
// --log-pretty. A file that does not decode is ignored with a warning.
// Command-line flags override configuration files.
func loadJSON(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}

	err := json.NewDecoder(r).Decode(&values)
	if errors.Is(err, io.EOF) {
		err = nil
	}

	return decoded("json", values, err), nil
}

func loadYAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}

	err := yaml.NewDecoder(r).Decode(&values)
	if errors.Is(err, io.EOF) {
		err = nil
	}

	return decoded("yaml", values, err), nil
}

func loadTOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}

	_, err := toml.NewDecoder(r).Decode(&values)

	return decoded("toml", values, err), nil
}

func decoded(format string, values map[string]any, err error) config {
	if err != nil {
		log.Warn("ignoring configuration file",
			slog.String("format", format),
			slog.Any("error", err),
		)

		return config{}
	}

	cfg := config{}
	cfg.flatten("", values)

	log.Debug("loaded configuration file",
		slog.String("format", format),
		slog.Any("keys", slices.Sorted(maps.Keys(cfg))),
	)

	return cfg
}

// config implements [kong.Resolver] over a flattened configuration file.
type config map[string]any

func (r config) flatten(prefix string, values map[string]any) {
	for key, value := range values {
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := value.(type) {
		case map[string]any:
			r.flatten(key, v)
		default:
			r[key] = flagValue(v)
		}
	}
}

// flagValue converts numbers to strings, which every kong mapper accepts.
func flagValue(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = flagValue(e)
		}

		return list
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[name]; ok {
			return value, nil
		}
	}

	return nil, nil
}
