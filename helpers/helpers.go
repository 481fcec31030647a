package helpers

import (
	// Go Internal Packages
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON writes v to w in pretty format with indent
func PrintJSON(w io.Writer, v any) error {
	res, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(res))
	return err
}
