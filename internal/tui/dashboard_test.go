package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cratestats/cratestats/internal/model"
)

func point(date string, downloads int64) model.DownloadPoint {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.DownloadPoint{Date: d, Downloads: downloads}
}

func TestSplitCrateArg(t *testing.T) {
	cases := []struct {
		in            string
		name, version string
	}{
		{"serde", "serde", ""},
		{"serde@1.0.0", "serde", "1.0.0"},
		{"  tokio  ", "tokio", ""},
		{"@1.0.0", "@1.0.0", ""},
		{"a@b@c", "a@b", "c"},
		{"", "", ""},
	}
	for _, tc := range cases {
		name, version := splitCrateArg(tc.in)
		if name != tc.name || version != tc.version {
			t.Errorf("splitCrateArg(%q) = %q/%q, want %q/%q",
				tc.in, name, version, tc.name, tc.version)
		}
	}
}

func TestDashboardResultMsgUpdatesView(t *testing.T) {
	m := NewDashboardModel(NewClient("http://127.0.0.1:1"))
	m.fetching = true

	resp := model.DownloadResponse{
		Name:      "serde",
		Downloads: []model.DownloadPoint{point("2020-01-01", 12)},
	}
	updated, _ := m.Update(resultMsg{resp: resp})
	dm := updated.(*DashboardModel)

	if dm.fetching {
		t.Error("fetching still true after result")
	}
	if dm.resp == nil || dm.resp.Name != "serde" {
		t.Fatalf("resp = %+v, want serde response", dm.resp)
	}
	view := dm.View()
	if !strings.Contains(view, "Total: 12") {
		t.Errorf("view missing summary, got:\n%s", view)
	}
}

func TestDashboardErrorShownInBand(t *testing.T) {
	m := NewDashboardModel(NewClient("http://127.0.0.1:1"))
	m.fetching = true

	updated, _ := m.Update(fetchErrMsg{err: errors.New("api returned 500 Internal Server Error")})
	dm := updated.(*DashboardModel)

	if dm.fetching {
		t.Error("fetching still true after error")
	}
	if !strings.Contains(dm.View(), "api returned 500") {
		t.Error("view does not surface the API error")
	}
}

func TestDashboardEnterWithEmptyInput(t *testing.T) {
	m := NewDashboardModel(NewClient("http://127.0.0.1:1"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter with empty input issued a command")
	}
	if m.fetching {
		t.Error("enter with empty input started a fetch")
	}
}

func TestRenderDownloadsChartEmpty(t *testing.T) {
	out := renderDownloadsChart(model.DownloadResponse{
		Name:      "unknown-pkg",
		Downloads: []model.DownloadPoint{},
	}, 80, 10)
	if !strings.Contains(out, "No downloads recorded") {
		t.Errorf("empty chart output = %q", out)
	}
	if !strings.Contains(out, "unknown-pkg") {
		t.Error("empty chart output does not name the crate")
	}
}

func TestRenderDownloadsChartSummary(t *testing.T) {
	resp := model.DownloadResponse{
		Name:    "serde",
		Version: "1.0.0",
		Downloads: []model.DownloadPoint{
			point("2020-01-01", 5),
			point("2020-01-02", 3),
			point("2020-01-03", 9),
		},
	}
	out := renderDownloadsChart(resp, 80, 10)
	if !strings.Contains(out, "Total: 17") {
		t.Errorf("summary missing total, got:\n%s", out)
	}
	if !strings.Contains(out, "Peak: 9 on 2020-01-03") {
		t.Errorf("summary missing peak, got:\n%s", out)
	}
	if !strings.Contains(out, "2020-01-01 to 2020-01-03") {
		t.Errorf("summary missing date span, got:\n%s", out)
	}
}

func TestCrateLabel(t *testing.T) {
	if got := crateLabel(model.DownloadResponse{Name: "serde"}); got != "serde" {
		t.Errorf("crateLabel = %q, want serde", got)
	}
	if got := crateLabel(model.DownloadResponse{Name: "serde", Version: "1.0.0"}); got != "serde@1.0.0" {
		t.Errorf("crateLabel = %q, want serde@1.0.0", got)
	}
}

func TestFetchCmdTimesOutAgainstDeadEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a dead endpoint")
	}
	client := NewClient("http://127.0.0.1:1")
	start := time.Now()
	msg := fetchCmd(client, "serde", "")()
	if _, ok := msg.(fetchErrMsg); !ok {
		t.Fatalf("fetchCmd msg = %T, want fetchErrMsg", msg)
	}
	if time.Since(start) > fetchTimeout+5*time.Second {
		t.Error("fetchCmd did not respect its timeout")
	}
}
