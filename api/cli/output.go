package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/app"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/db"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReport(w io.Writer, format string, r app.RunReport) error {
	if format == "json" {
		return writeJSON(w, r)
	}
	fmt.Fprintf(w, "run %s %s\n", r.ID, r.Stage)
	fmt.Fprintf(w, "  base url: %s\n", r.BaseURL)
	fmt.Fprintf(w, "  duration: %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	if r.SetupError != "" {
		fmt.Fprintf(w, "  setup error: %s\n", r.SetupError)
		return nil
	}
	fmt.Fprintf(w, "  seeded:   %d/%d bills\n", r.Seed.Created, r.Seed.Attempted)
	writeVerdictLines(w, r.Verdicts)
	if err := r.Err(); err != nil {
		fmt.Fprintln(w, err.Error())
	}
	return nil
}

func writeVerdictLines(w io.Writer, verdicts []app.PeriodVerdict) {
	for _, v := range verdicts {
		result := "ok"
		if !v.OK {
			result = "FAIL"
		}
		fmt.Fprintf(w, "  %-6s %3d  %s\n", v.Period, v.StatusCode, result)
	}
}

func writeVerdicts(w io.Writer, format string, verdicts []app.PeriodVerdict) error {
	if format == "json" {
		return writeJSON(w, verdicts)
	}
	writeVerdictLines(w, verdicts)
	return nil
}

func writeSeed(w io.Writer, format string, res app.SeedResult) error {
	if format == "json" {
		return writeJSON(w, res)
	}
	fmt.Fprintf(w, "seeded %d/%d bills\n", res.Created, res.Attempted)
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}

func writeToken(w io.Writer, format string, info app.TokenInfo) error {
	if format == "json" {
		return writeJSON(w, info)
	}
	fmt.Fprintf(w, "login ok: token length %d\n", info.Length)
	if !info.JWT {
		return nil
	}
	if info.Subject != "" {
		fmt.Fprintf(w, "  subject: %s\n", info.Subject)
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(w, "  expires: %s\n", info.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return nil
}

func writeRuns(w io.Writer, format string, runs []db.RunSummary) error {
	if format == "json" {
		if runs == nil {
			runs = []db.RunSummary{}
		}
		return writeJSON(w, runs)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTAGE\tBILLS\tFAILURES\tBASE URL")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Stage, r.BillsCreated, r.FailureCount, r.BaseURL)
	}
	return tw.Flush()
}
