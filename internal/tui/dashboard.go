package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cratestats/cratestats/internal/model"
)

const fetchTimeout = 10 * time.Second

type resultMsg struct {
	resp model.DownloadResponse
}

type fetchErrMsg struct {
	err error
}

// DashboardModel is the single-page crate downloads dashboard. Type a
// crate name (optionally "name@version") and press enter to chart its
// daily downloads.
type DashboardModel struct {
	client *Client

	input    textinput.Model
	spin     spinner.Model
	fetching bool
	resp     *model.DownloadResponse
	err      error

	width  int
	height int
}

// NewDashboardModel creates the dashboard bound to an API client.
func NewDashboardModel(client *Client) *DashboardModel {
	input := textinput.New()
	input.Placeholder = "crate name, or name@version (e.g. serde@1.0.0)"
	input.CharLimit = 128
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &DashboardModel{
		client: client,
		input:  input,
		spin:   spin,
		width:  80,
		height: 24,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			name, version := splitCrateArg(m.input.Value())
			if name == "" || m.fetching {
				return m, nil
			}
			m.fetching = true
			m.err = nil
			return m, tea.Batch(m.spin.Tick, fetchCmd(m.client, name, version))
		}

	case resultMsg:
		m.fetching = false
		resp := msg.resp
		m.resp = &resp
		return m, nil

	case fetchErrMsg:
		m.fetching = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *DashboardModel) View() string {
	title := titleStyle.Render("cratestats")
	prompt := sectionStyle.Width(m.width - 2).Render(m.input.View())

	var content string
	switch {
	case m.fetching:
		content = m.spin.View() + " fetching..."
	case m.err != nil:
		content = errorStyle.Render("Error: " + m.err.Error())
	case m.resp != nil:
		chartHeight := m.height - 10
		content = renderDownloadsChart(*m.resp, m.width, chartHeight)
	default:
		content = helpStyle.Render("Enter a crate name to chart its daily downloads.")
	}

	body := sectionStyle.Width(m.width - 2).Render(content)
	help := helpStyle.Render("enter: fetch | esc: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, prompt, body, help)
}

// splitCrateArg splits "name@version" into its parts; a bare name selects
// all versions.
func splitCrateArg(arg string) (name, version string) {
	arg = strings.TrimSpace(arg)
	if at := strings.LastIndex(arg, "@"); at > 0 {
		return arg[:at], arg[at+1:]
	}
	return arg, ""
}

func fetchCmd(client *Client, name, version string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		resp, err := client.DownloadTimeseries(ctx, name, version)
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return resultMsg{resp: resp}
	}
}
