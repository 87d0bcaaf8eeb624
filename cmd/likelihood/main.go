package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/climate-likelihood/internal/app"
	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/config"
	"github.com/i474232898/climate-likelihood/internal/observability"
	"github.com/i474232898/climate-likelihood/internal/report"
)

type CLI struct {
	Date   string  `arg:"" help:"Target date (YYYY/MM/DD)."`
	Lat    float64 `required:"" help:"Latitude in decimal degrees."`
	Lon    float64 `required:"" help:"Longitude in decimal degrees."`
	Days   int     `default:"2" help:"Days either side of the target date."`
	Years  int     `default:"2" help:"Number of prior years to compare."`
	Format string  `default:"table" enum:"table,json,csv,html" help:"Output format (table, json, csv, html)."`
	Yearly bool    `help:"Include the per-year breakdown."`
	Raw    bool    `help:"Include raw daily rows in JSON output."`
}

func (c *CLI) request() (climate.Request, error) {
	if c.Lat < -90 || c.Lat > 90 {
		return climate.Request{}, fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return climate.Request{}, fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	target, err := climate.ParseDate(c.Date)
	if err != nil {
		return climate.Request{}, err
	}
	return climate.Request{
		Point:      climate.Point{Lat: c.Lat, Lon: c.Lon},
		TargetDate: target,
		DayRadius:  c.Days,
		YearCount:  c.Years,
	}, nil
}

func (c *CLI) Run(ctx context.Context, out io.Writer) error {
	req, err := c.request()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LogLevel, "text")

	components, err := app.Build(cfg, prometheus.NewRegistry(), logger)
	if err != nil {
		return err
	}

	a, err := components.Service.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed (%s): %w", climate.Reason(err), err)
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "    ")
		if c.Yearly {
			return enc.Encode(report.Yearly(a, c.Raw))
		}
		return enc.Encode(report.Full(a, c.Raw))
	case "csv":
		return report.WriteCSV(out, a.Result.Combined)
	case "html":
		return report.RenderChart(out, a)
	default:
		if a.Location != "" {
			fmt.Fprintf(out, "Location: %s\n", a.Location)
		}
		if c.Yearly {
			report.RenderYears(out, a.Result.Years)
		}
		report.RenderStatistics(out, a.Final.Statistics)
		report.RenderPredictions(out, a.Final.Predictions)
		return nil
	}
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("likelihood"),
		kong.Description("Estimate weather-condition likelihoods for a date and place from prior years of NASA POWER data."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kctx.FatalIfErrorf(cli.Run(ctx, os.Stdout))
}
