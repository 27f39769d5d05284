package main

import (
	"encoding/json"
	"fmt"
	"io"

	"fundlookup/cmd/fundlookup/ui"
	"fundlookup/internal/logging"
	"fundlookup/internal/lookup"

	"github.com/spf13/cobra"
)

var lookupJSON bool

func runLookup(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	res, err := newLoader(cfg).Load(ctx)
	if err != nil {
		return fmt.Errorf("dataset load interrupted: %w", err)
	}

	opts := ui.FormOptionsFromConfig(cfg)
	m := lookup.NewModel(opts.Projection).Loaded(res).WithQuery(args[0]).Evaluate()
	logging.Lookup("one-shot lookup: query=%q outcome=%s records=%d", m.Query(), m.State().Kind(), m.Dataset().Len())

	if lookupJSON {
		return writeLookupJSON(cmd.OutOrStdout(), m.Query(), m.State(), opts)
	}
	writeLookupText(cmd.OutOrStdout(), m.State(), opts)
	return nil
}

func writeLookupJSON(w io.Writer, query string, state lookup.State, opts ui.FormOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lookup.NewResponse(query, state, opts.Placeholder, opts.NotFoundMessage)); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func writeLookupText(w io.Writer, state lookup.State, opts ui.FormOptions) {
	styles := ui.DefaultStyles()
	if state.Kind() != lookup.KindFound {
		fmt.Fprintln(w, styles.Error.Render(opts.NotFoundMessage))
		return
	}

	table := ui.NewSimpleTable("Result:", []string{"Field", "Value"})
	for _, col := range opts.Projection.Columns {
		table.AddRow(col, state.Value(col, opts.Placeholder))
	}
	fmt.Fprint(w, table.View(styles))
}
