package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

type resolverCLI struct {
	Log struct {
		Level  string `default:"info"`
		Pretty bool   `default:"true" negatable:""`
	} `embed:"" prefix:"log-"`
	Count int      `default:"1"`
	Tag   []string `name:"tag"`
}

func TestLoaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		load kong.ConfigurationLoader
		doc  string
	}{
		{
			name: "json_hyphen",
			load: loadJSON,
			doc:  `{"log-level": "debug", "log-pretty": false, "count": 7, "tag": ["a", "b"]}`,
		},
		{
			name: "json_nested",
			load: loadJSON,
			doc:  `{"log": {"level": "debug", "pretty": false}, "count": 7, "tag": ["a", "b"]}`,
		},
		{
			name: "yaml_underscore",
			load: loadYAML,
			doc:  "log_level: debug\nlog_pretty: false\ncount: 7\ntag: [a, b]\n",
		},
		{
			name: "yaml_nested",
			load: loadYAML,
			doc:  "log:\n  level: debug\n  pretty: false\ncount: 7\ntag:\n  - a\n  - b\n",
		},
		{
			name: "toml_table",
			load: loadTOML,
			doc:  "count = 7\ntag = [\"a\", \"b\"]\n\n[log]\nlevel = \"debug\"\npretty = false\n",
		},
		{
			name: "toml_hyphen",
			load: loadTOML,
			doc:  "log-level = \"debug\"\nlog-pretty = false\ncount = 7\ntag = [\"a\", \"b\"]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver, err := tt.load(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatal(err)
			}

			var cli resolverCLI

			parser, err := kong.New(&cli, kong.Resolvers(resolver))
			if err != nil {
				t.Fatal(err)
			}

			if _, err := parser.Parse(nil); err != nil {
				t.Fatal(err)
			}

			if cli.Log.Level != "debug" || cli.Log.Pretty || cli.Count != 7 {
				t.Errorf("resolved %+v", cli)
			}

			if diff := cmp.Diff([]string{"a", "b"}, cli.Tag); diff != "" {
				t.Errorf("tag mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadersFlagsOverride(t *testing.T) {
	t.Parallel()

	resolver, err := loadYAML(strings.NewReader("count: 7\n"))
	if err != nil {
		t.Fatal(err)
	}

	var cli resolverCLI

	parser, err := kong.New(&cli, kong.Resolvers(resolver))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--count=3"}); err != nil {
		t.Fatal(err)
	}

	if cli.Count != 3 {
		t.Errorf("count = %d, want command-line value 3", cli.Count)
	}
}

func TestLoadersIgnoreInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		load kong.ConfigurationLoader
		doc  string
	}{
		{"json_empty", loadJSON, ""},
		{"json_invalid", loadJSON, "{"},
		{"yaml_empty", loadYAML, ""},
		{"yaml_invalid", loadYAML, "a: [b"},
		{"toml_empty", loadTOML, ""},
		{"toml_invalid", loadTOML, "= 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver, err := tt.load(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("loader error = %v, want nil", err)
			}

			if r, ok := resolver.(config); !ok || len(r) != 0 {
				t.Errorf("resolver = %#v, want empty config", resolver)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	cfg := config{}
	cfg.flatten("", map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": int64(1)},
			"d": 2.5,
		},
		"e": []any{uint64(3), "x"},
		"f": true,
	})

	want := config{
		"a-b-c": "1",
		"a-d":   "2.5",
		"e":     []any{"3", "x"},
		"f":     true,
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("flatten mismatch (-want +got):\n%s", diff)
	}
}
