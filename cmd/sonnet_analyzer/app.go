package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/majid-mohammad/gosonnet/internal/analysis"
	"github.com/majid-mohammad/gosonnet/internal/density"
	"github.com/majid-mohammad/gosonnet/internal/report"
)

// App is the Wails-bound backend. Report generation runs in a goroutine and
// streams progress to the frontend over events.
type App struct {
	ctx context.Context
}

func NewApp() *App {
	return &App{}
}

// Startup saves the context so the runtime methods can be called later.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	runtime.WindowSetTitle(a.ctx, "Sonnet Density Analyzer")
}

func (a *App) sendStatus(message string) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "statusUpdate", message)
	}
	slog.Info(message)
}

func (a *App) clearLog() {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "clearLog")
	}
}

func (a *App) fail(message string) {
	a.sendStatus(message)
	runtime.EventsEmit(a.ctx, "generationComplete", false, message)
}

// HandleGenerateReport parses a Sonnet current-density CSV export and writes
// a PDF report. When rescale is true the samples are rescaled to powerDBm of
// input power at 50 ohms before analysis. Progress is reported over events;
// the return value is only an immediate acknowledgement.
func (a *App) HandleGenerateReport(csvFilePath, pdfFilePath string, powerDBm float64, rescale bool) (string, error) {
	a.clearLog()
	a.sendStatus(fmt.Sprintf("Request: CSV=[%s], PDF=[%s]", csvFilePath, pdfFilePath))

	var power *float64
	if rescale {
		power = density.Bound(powerDBm)
		a.sendStatus(fmt.Sprintf("Rescaling to %.1f dBm input power", powerDBm))
	}
	opts := analysis.Options{PowerDBm: power}
	plotOpts := report.PlotOptions{PowerDBm: power, Scale: 2}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.fail(fmt.Sprintf("PANIC recovered: %v", r))
			}
		}()

		runtime.EventsEmit(a.ctx, "generationStart")

		a.sendStatus(fmt.Sprintf("Parsing: %s", csvFilePath))
		doc, err := density.Open(csvFilePath, true)
		if err != nil {
			a.fail(fmt.Sprintf("Error parsing CSV: %v", err))
			return
		}
		h, err := doc.Header()
		if err != nil {
			a.fail(fmt.Sprintf("Error reading header: %v", err))
			return
		}
		a.sendStatus(fmt.Sprintf("Parsed %s: %.3f GHz, level %s, %d ports.",
			h.SourceFileName, h.FrequencyHz/1e9, h.LevelString, len(h.Ports)))

		a.sendStatus("Analyzing grid...")
		stats, err := analysis.Summarize(doc, opts)
		if err != nil {
			a.fail(fmt.Sprintf("Error analyzing grid: %v", err))
			return
		}
		a.sendStatus(fmt.Sprintf("Analysis complete: peak %.4g %s at (%.4g, %.4g).",
			stats.Max, h.CurrentUnitLabel, stats.PeakX, stats.PeakY))

		hotspots, err := analysis.RankHotspots(doc, opts)
		if err != nil {
			a.fail(fmt.Sprintf("Error ranking hotspots: %v", err))
			return
		}

		a.sendStatus("Generating plots...")
		images := make(map[string][]byte)
		plots := []struct {
			name   string
			create func() ([]byte, error)
		}{
			{"heatmap", func() ([]byte, error) { return report.CreateHeatmap(doc, plotOpts) }},
			{"colorbar", func() ([]byte, error) { return report.CreateColorBar(doc, plotOpts) }},
			{"profile", func() ([]byte, error) {
				return report.CreateProfilePlot(doc, plotOpts, stats.PeakY, stats.Mean)
			}},
		}
		for _, p := range plots {
			a.sendStatus(fmt.Sprintf("Plot: %s", p.name))
			img, err := p.create()
			if err != nil {
				a.sendStatus(fmt.Sprintf("Error generating plot %s: %v", p.name, err))
				continue
			}
			images[p.name] = img
		}
		a.sendStatus("Plot generation complete.")

		a.sendStatus(fmt.Sprintf("Generating PDF: %s...", pdfFilePath))
		if err := report.BuildReport(pdfFilePath, doc, stats, hotspots, images); err != nil {
			a.fail(fmt.Sprintf("Error generating PDF report: %v", err))
			return
		}
		successMsg := fmt.Sprintf("PDF report successfully generated: %s", pdfFilePath)
		a.sendStatus(successMsg)
		runtime.EventsEmit(a.ctx, "generationComplete", true, successMsg)
	}()

	return "Report generation started in background.", nil
}
