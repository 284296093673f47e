package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
)

// recordView is the serialized form of a [Record].
type recordView struct {
	Line    int    `json:"line"    yaml:"line"`
	Input   string `json:"input"   yaml:"input"`
	Offset  string `json:"offset"  yaml:"offset"`
	Kind    string `json:"kind"    yaml:"kind"`
	Display string `json:"display" yaml:"display"`
	Numeric string `json:"numeric" yaml:"numeric"`
}

func (rs Records) view() []recordView {
	views := make([]recordView, len(rs))
	for i, r := range rs {
		views[i] = recordView{
			Line:    i + 1,
			Input:   r.Input,
			Offset:  r.Offset.String(),
			Kind:    r.Expression.Kind().String(),
			Display: r.Display(),
			Numeric: r.Numeric(),
		}
	}

	return views
}

// MarshalJSON implements json.Marshaler for Records.
func (rs Records) MarshalJSON() ([]byte, error) {
	return json.Marshal(rs.view())
}

// FormatJSON writes the records as a JSON array to the writer.
func (rs Records) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(rs.view(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(rs.view())
	}

	if err != nil {
		return ErrFormat.Wrap(err)
	}

	if _, err = fmt.Fprintln(w, string(jsonData)); err != nil {
		return ErrFormat.Wrap(err)
	}

	return nil
}

// FormatYAML writes the records as a YAML sequence to the writer.
// An indent of zero selects flow style.
func (rs Records) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, rs.view(), opts...)
	if err != nil {
		return ErrFormat.Wrap(err)
	}

	if _, err = fmt.Fprint(w, string(yamlData)); err != nil {
		return ErrFormat.Wrap(err)
	}

	return nil
}

// FormatText writes one "display<TAB>numeric" line per record.
func (rs Records) FormatText(_ context.Context, w io.Writer) error {
	var sb strings.Builder

	for _, r := range rs {
		sb.WriteString(r.Display())
		sb.WriteByte('\t')
		sb.WriteString(r.Numeric())
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return ErrFormat.Wrap(err)
	}

	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// FormatTable writes the records as a bordered table with line numbers.
func (rs Records) FormatTable(_ context.Context, w io.Writer) error {
	rows := make([][]string, len(rs))
	for i, r := range rs {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.Input,
			r.Offset.String(),
			r.Display(),
			r.Numeric(),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "INPUT", "OFFSET", "DISPLAY", "NUMERIC").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return ErrFormat.Wrap(err)
	}

	return nil
}
