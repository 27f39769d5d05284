package main

import (
	"fmt"
	"time"

	"fundlookup/cmd/fundlookup/ui"

	"github.com/spf13/cobra"
)

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	res, err := newLoader(cfg).Load(ctx)
	if err != nil {
		return fmt.Errorf("dataset load interrupted: %w", err)
	}

	out := cmd.OutOrStdout()
	styles := ui.DefaultStyles()

	fmt.Fprintf(out, "Source:  %s\n", cfg.Dataset.Source)
	if res.Err != nil {
		fmt.Fprintf(out, "Status:  %s\n", styles.Error.Render("load failed"))
		return fmt.Errorf("dataset load failed: %w", res.Err)
	}

	ds := res.Snapshot()
	fmt.Fprintf(out, "Status:  %s in %s\n", styles.Success.Render("loaded"), res.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "Records: %d\n", ds.Len())
	if ds.Len() == 0 {
		fmt.Fprintln(out, "Warning: dataset is empty, every lookup will report not found")
	}

	table := ui.NewSimpleTable("Columns", []string{"Column", "Role", "Present"})
	table.AddRow(cfg.Lookup.KeyColumn, "key", presence(ds.HasColumn(cfg.Lookup.KeyColumn)))
	for _, col := range cfg.Lookup.Projection {
		table.AddRow(col, "projected", presence(ds.HasColumn(col)))
	}
	fmt.Fprint(out, table.View(styles))

	if !ds.HasColumn(cfg.Lookup.KeyColumn) {
		fmt.Fprintf(out, "Warning: key column %q missing, every lookup will report not found\n", cfg.Lookup.KeyColumn)
	}
	return nil
}

func presence(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
