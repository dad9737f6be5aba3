package util

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Print writes v to w in the configured output format. For text output the text
// function renders v, if it is nil v is printed with %+v.
func Print(w io.Writer, format string, v any, text func() string) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		if text != nil {
			_, err := fmt.Fprintln(w, text())
			return err
		}
		_, err := fmt.Fprintf(w, "%+v\n", v)
		return err
	}
}
