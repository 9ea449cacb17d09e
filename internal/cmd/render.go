package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/julienstroheker/httperr/enhancer"
	"github.com/julienstroheker/httperr/internal/config"
)

// renderFailure writes err as a table or as its JSON projection. Errors that
// were not enhanced are written as a single line.
func renderFailure(w io.Writer, output config.Output, err error) error {
	enhanced, ok := enhancer.As(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "Request failed: %v\n", err)
		return werr
	}

	if output == config.OutputJSON {
		raw, jerr := json.MarshalIndent(enhanced, "", "  ")
		if jerr != nil {
			return jerr
		}
		_, werr := fmt.Fprintf(w, "%s\n", raw)
		return werr
	}

	ctx := enhanced.Transport().ToJSON()
	data := pterm.TableData{
		{"Field", "Value"},
		{"Kind", enhanced.Kind()},
		{"Method", ctx.Method},
		{"URL", ctx.URL},
	}
	if ctx.Status != 0 {
		data = append(data, []string{"Status", strconv.Itoa(ctx.Status)})
	}
	if ctx.Message != "" {
		data = append(data, []string{"Message", ctx.Message})
	}
	if ctx.Code != "" {
		data = append(data, []string{"Code", ctx.Code})
	}

	table, terr := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if terr != nil {
		return terr
	}
	if _, werr := fmt.Fprintln(w, table); werr != nil {
		return werr
	}

	if hint := hintFor(ctx.Code); hint != "" {
		_, werr := fmt.Fprintf(w, "\n%s\n", hint)
		return werr
	}
	return nil
}
