package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"

	"github.com/cratestats/cratestats/internal/model"
)

// renderDownloadsChart renders a crate's daily download totals as a bar
// chart followed by a summary line. The oldest days are dropped when the
// series is wider than the chart.
func renderDownloadsChart(resp model.DownloadResponse, width, height int) string {
	if len(resp.Downloads) == 0 {
		return helpStyle.Render("No downloads recorded for " + crateLabel(resp))
	}

	chartWidth := width - 4
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := height
	if chartHeight < 4 {
		chartHeight = 4
	}

	// One column and one gap per day.
	maxBars := chartWidth / 2
	points := resp.Downloads
	if len(points) > maxBars {
		points = points[len(points)-maxBars:]
	}

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)
	for _, p := range points {
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: p.Date.String(), Value: float64(p.Downloads), Style: barStyle},
			},
		})
	}
	bc.Draw()

	return bc.View() + "\n" + renderSummary(resp)
}

func renderSummary(resp model.DownloadResponse) string {
	var total int64
	peak := resp.Downloads[0]
	for _, p := range resp.Downloads {
		total += p.Downloads
		if p.Downloads > peak.Downloads {
			peak = p
		}
	}
	first := resp.Downloads[0].Date
	last := resp.Downloads[len(resp.Downloads)-1].Date

	parts := []string{
		fmt.Sprintf("Total: %d", total),
		fmt.Sprintf("%s to %s", first, last),
		fmt.Sprintf("Peak: %d on %s", peak.Downloads, peak.Date),
	}
	return summaryStyle.Render(strings.Join(parts, " | "))
}

func crateLabel(resp model.DownloadResponse) string {
	if resp.Version != "" {
		return resp.Name + "@" + resp.Version
	}
	return resp.Name
}
