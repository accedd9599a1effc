package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/middleware"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/service"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List the snapshot dates in the sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		dates, err := svc.Dates(service.SourceMain)
		if err != nil {
			return err
		}
		for _, d := range dates {
			fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Average score of one outlet over a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := queryFromFlags(cmd, true)
		if err != nil {
			return err
		}
		svc, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		score, period, err := svc.Score(q)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if score == nil {
			fmt.Fprintf(out, "%s: no data (%s..%s)\n", q.Outlet, period.Start, period.End)
			return nil
		}
		fmt.Fprintf(out, "%s: %s (%s..%s)\n", q.Outlet, statusColor(schema.Status(*score), formatFloat(*score)), period.Start, period.End)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Per-outlet performance table for a dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := queryFromFlags(cmd, false)
		if err != nil {
			return err
		}
		svc, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		report, err := svc.Report(cmd.Context(), q)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		return renderReport(cmd.OutOrStdout(), report)
	},
}

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Correlate each sub-metric with the score of one outlet",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := queryFromFlags(cmd, true)
		if err != nil {
			return err
		}
		svc, err := loadService(cmd.Context())
		if err != nil {
			return err
		}
		report, err := service.NewStatsService(svc).Correlate(q)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	for _, c := range []*cobra.Command{scoreCmd, reportCmd, correlateCmd} {
		c.Flags().String("dashboard", "general", "dashboard name")
		c.Flags().String("type", "nota", "content type: nota, video, both")
		c.Flags().String("granularity", "daily", "daily, weekly, monthly, yearly, all, custom")
		c.Flags().String("date", "", "anchor date (default latest)")
		c.Flags().String("start", "", "custom period start")
		c.Flags().String("end", "", "custom period end")
	}
	scoreCmd.Flags().String("outlet", "", "outlet name")
	correlateCmd.Flags().String("outlet", "", "outlet name")
	reportCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(datesCmd, scoreCmd, reportCmd, correlateCmd)
}

// queryFromFlags applies the API's validation rules to the command flags.
func queryFromFlags(cmd *cobra.Command, needOutlet bool) (service.Query, error) {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	var (
		q   service.Query
		msg string
	)
	if q.Dashboard, msg = middleware.ValidateDashboard(get("dashboard")); msg != "" {
		return q, fmt.Errorf("%s", msg)
	}
	if needOutlet {
		if q.Outlet, msg = middleware.ValidateOutlet(get("outlet")); msg != "" {
			return q, fmt.Errorf("%s", msg)
		}
	}
	if q.Type, msg = middleware.ValidateContentType(get("type")); msg != "" {
		return q, fmt.Errorf("%s", msg)
	}
	if q.Granularity, msg = middleware.ValidateGranularity(get("granularity")); msg != "" {
		return q, fmt.Errorf("%s", msg)
	}
	for _, f := range []struct {
		name string
		dst  *string
	}{{"date", &q.Date}, {"start", &q.Start}, {"end", &q.End}} {
		if *f.dst, msg = middleware.ValidateDate(f.name, get(f.name)); msg != "" {
			return q, fmt.Errorf("%s", msg)
		}
	}
	return q, nil
}

func renderReport(w io.Writer, r *model.DashboardReport) error {
	fmt.Fprintf(w, "%s (%s) %s..%s vs %s..%s\n", r.Dashboard, r.ContentType,
		r.Current.Start, r.Current.End, r.Previous.Start, r.Previous.End)

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
	)
	table.Header([]string{"Outlet", "Score", "Previous", "Change", "Status"})

	rows := make([][]string, 0, len(r.Performance))
	for _, p := range r.Performance {
		if !p.HasData {
			rows = append(rows, []string{p.Name, "-", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			p.Name,
			formatFloat(p.Score),
			formatFloat(p.PreviousScore),
			formatFloat(p.Change) + "%",
			statusColor(p.Status, p.Status),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "overall %s (previous %s)\n", formatFloat(r.Overall.Current), formatFloat(r.Overall.Previous))
	return nil
}

func statusColor(status, text string) string {
	switch status {
	case schema.StatusGood:
		return color.GreenString(text)
	case schema.StatusNeedsImprovement:
		return color.YellowString(text)
	case schema.StatusPoor:
		return color.RedString(text)
	}
	return text
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
