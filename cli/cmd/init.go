package cmd

import (
	"bytes"
	"context"
	"encoding"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/utcalc/log"
	"github.com/ardnew/utcalc/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Configuration file formats accepted by init.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Init generates a configuration file with current flag values.
type Init struct {
	Force  bool   `help:"Overwrite existing configuration file" short:"f"`
	Format string `default:"yaml" enum:"yaml,toml,json" help:"Configuration file format (${enum})."`
}

// ignoreFlags are flag name prefixes that never belong in a configuration
// file.
var ignoreFlags = []string{"help", "version", "now", "source", profile.Tag}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	base, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	confPath := base + "." + i.format()

	data, err := i.encode(i.flagValues(ctx))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !i.Force {
		flag |= os.O_EXCL
	}

	file, err := os.OpenFile(confPath, flag, 0o600)
	if err != nil {
		if os.IsExist(err) {
			err = ErrFileExists
		}

		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	if _, err = file.Write(data); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.String("format", i.format()),
	)

	return nil
}

func (i *Init) format() string {
	if i.Format == "" {
		return FormatYAML
	}

	return i.Format
}

func (i *Init) encode(values map[string]any) ([]byte, error) {
	switch i.format() {
	case FormatYAML:
		return yaml.MarshalWithOptions(values, yaml.Indent(defaultConfigIndent))

	case FormatTOML:
		var buf bytes.Buffer

		enc := toml.NewEncoder(&buf)
		enc.Indent = strings.Repeat(" ", defaultConfigIndent)

		if err := enc.Encode(values); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil

	case FormatJSON:
		data, err := json.MarshalIndent(
			values, "", strings.Repeat(" ", defaultConfigIndent),
		)
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil

	default:
		return nil, ErrInvalidOutput.With(slog.String("format", i.Format))
	}
}

// flagValues collects the current value of every configurable flag, keyed by
// flag name. Unset strings and empty lists are omitted.
func (i *Init) flagValues(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)
	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoreFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v, ok := configValue(ktx.FlagValue(flag)); ok {
			values[flag.Name] = v
		}
	}

	return values
}

// configValue converts a flag value into a plain value every encoder
// understands.
func configValue(val any) (any, bool) {
	switch v := val.(type) {
	case nil:
		return nil, false

	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v, true

	case string:
		if v == "" {
			return nil, false
		}

		return v, true

	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil || len(text) == 0 {
			return nil, false
		}

		return string(text), true
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.String:
		return configValue(rv.String())

	case reflect.Slice:
		if rv.Len() == 0 {
			return nil, false
		}

		list := make([]any, 0, rv.Len())

		for n := range rv.Len() {
			if v, ok := configValue(rv.Index(n).Interface()); ok {
				list = append(list, v)
			}
		}

		if len(list) == 0 {
			return nil, false
		}

		return list, true

	default:
		return configValue(fmt.Sprint(val))
	}
}
