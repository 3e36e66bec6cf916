package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"numlist/internal/model"
)

// Write writes v in the requested format.
//
// Supported formats:
// - json (default)
// - text: one "[x] value" line per item for pages, "ok" for acks; other values fall
//   back to JSON.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteText(w io.Writer, v any) error {
	switch t := v.(type) {
	case model.Page:
		return writePageText(w, t)
	case model.Ack:
		if t.Success {
			_, err := fmt.Fprintln(w, "ok")
			return err
		}
		_, err := fmt.Fprintln(w, "failed")
		return err
	default:
		return WriteJSON(w, v, true)
	}
}

func writePageText(w io.Writer, p model.Page) error {
	selected := make(map[int64]struct{}, len(p.Selected))
	for _, id := range p.Selected {
		selected[id] = struct{}{}
	}
	var b strings.Builder
	for _, it := range p.Items {
		if _, ok := selected[it.ID]; ok {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
		b.WriteString(strconv.FormatInt(it.Value, 10))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d of %d shown, %d selected\n", len(p.Items), p.Total, len(p.Selected))
	_, err := io.WriteString(w, b.String())
	return err
}
