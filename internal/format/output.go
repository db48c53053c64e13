package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write writes command output in the requested format.
//
// Supported formats:
// - json (default)
// - raw (no trailing-newline JSON re-encode; for piping single values)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "raw":
		_, err := fmt.Fprint(w, v)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands, one value per line
// unless pretty-printing is requested.
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
