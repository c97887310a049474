package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
)

const emptyTable = "<empty>\n"

// marshalTable renders v as aligned columns. A list of objects becomes one
// row per object with a column per field; anything else is flattened into
// FIELD/VALUE rows.
func marshalTable(v any) ([]byte, error) {
	// Round trip through JSON so field names and omitempty follow json tags.
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if rows, cols, ok := objectList(generic); ok {
		writeRow(tw, upper(cols))
		for _, row := range rows {
			cells := make([]string, len(cols))
			for i, c := range cols {
				cells[i] = cell(row[c])
			}
			writeRow(tw, cells)
		}
	} else {
		flat := map[string]string{}
		flatten("", generic, flat)
		if len(flat) == 0 {
			return []byte(emptyTable), nil
		}
		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		writeRow(tw, []string{"FIELD", "VALUE"})
		for _, k := range keys {
			writeRow(tw, []string{k, flat[k]})
		}
	}

	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// objectList reports whether v is a non-empty list of flat objects and
// returns its rows and the union of their keys in first-seen order.
func objectList(v any) ([]map[string]any, []string, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, nil, false
	}

	rows := make([]map[string]any, 0, len(list))
	var cols []string
	seen := map[string]bool{}
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, nil, false
		}
		keys := make([]string, 0, len(obj))
		for k, val := range obj {
			switch val.(type) {
			case map[string]any, []any:
				return nil, nil, false
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
		rows = append(rows, obj)
	}
	return rows, cols, true
}

func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, val, out)
		}
	case []any:
		for i, val := range t {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), val, out)
		}
	default:
		if prefix != "" {
			out[prefix] = cell(t)
		}
	}
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}

func upper(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.ToUpper(c)
	}
	return out
}

func writeRow(tw *tabwriter.Writer, cells []string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}
