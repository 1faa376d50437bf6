package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an output format other than table, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Separator is printed between reports in table format.
var Separator = strings.Repeat("-", 100)

// ResultWriter renders results one after another to a single stream.
type ResultWriter interface {
	Write(res *Result) error
	Close() error
}

// NewResultWriter returns the writer for format. An empty format means table.
func NewResultWriter(w io.Writer, format string) (ResultWriter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return &tableWriter{w: w}, nil
	case "json", "ndjson":
		return &ndjsonWriter{enc: json.NewEncoder(w)}, nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlWriter{enc: enc}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ------------------- table -------------------

type tableWriter struct {
	w       io.Writer
	written int
}

func (t *tableWriter) Write(res *Result) error {
	if t.written > 0 {
		if _, err := fmt.Fprintln(t.w, Separator); err != nil {
			return err
		}
	}
	t.written++

	if _, err := fmt.Fprintf(t.w, "%s (%s)\n\n", res.Title, res.Name); err != nil {
		return err
	}
	if len(res.Rows) == 0 {
		_, err := fmt.Fprintln(t.w, "(no rows)")
		return err
	}

	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))
	cells := make([]string, len(res.Columns))
	for _, row := range res.Rows {
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func (t *tableWriter) Close() error { return nil }

// ------------------- json -------------------

// ndjsonWriter writes one object per row: {"report": ..., "row": {...}}.
type ndjsonWriter struct {
	enc *json.Encoder
}

type ndjsonLine struct {
	Report string         `json:"report"`
	Row    map[string]any `json:"row"`
}

func (n *ndjsonWriter) Write(res *Result) error {
	for _, row := range res.Rows {
		line := ndjsonLine{Report: res.Name, Row: make(map[string]any, len(row))}
		for i, v := range row {
			line.Row[res.Columns[i]] = jsonValue(v)
		}
		if err := n.enc.Encode(line); err != nil {
			return fmt.Errorf("failed to write %s row: %w", res.Name, err)
		}
	}
	return nil
}

func (n *ndjsonWriter) Close() error { return nil }

// ------------------- yaml -------------------

// yamlWriter writes one document per report. Mappings are built as nodes so
// the column order survives.
type yamlWriter struct {
	enc *yaml.Encoder
}

func (y *yamlWriter) Write(res *Result) error {
	rows := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range res.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, v := range row {
			val := &yaml.Node{}
			if err := val.Encode(jsonValue(v)); err != nil {
				return fmt.Errorf("failed to encode %s.%s: %w", res.Name, res.Columns[i], err)
			}
			m.Content = append(m.Content, scalar(res.Columns[i]), val)
		}
		rows.Content = append(rows.Content, m)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content,
		scalar("report"), scalar(res.Name),
		scalar("title"), scalar(res.Title),
		scalar("rows"), rows,
	)
	if err := y.enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", res.Name, err)
	}
	return nil
}

func (y *yamlWriter) Close() error { return y.enc.Close() }

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
