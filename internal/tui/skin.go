package tui

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Skin defines the dashboard palette. Fields hold terminal color values
// (ANSI 256 codes or hex strings).
type Skin struct {
	Accent string `yaml:"accent"`
	Border string `yaml:"border"`
	Text   string `yaml:"text"`
	Muted  string `yaml:"muted"`
	Bar    string `yaml:"bar"`
	Error  string `yaml:"error"`
}

var defaultSkin = Skin{
	Accent: "214",
	Border: "240",
	Text:   "252",
	Muted:  "245",
	Bar:    "39",
	Error:  "196",
}

// Package-level styles, rebuilt whenever a skin is applied.
var (
	titleStyle   lipgloss.Style
	sectionStyle lipgloss.Style
	summaryStyle lipgloss.Style
	helpStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	barStyle     lipgloss.Style
)

func init() {
	applySkin(defaultSkin)
}

func applySkin(s Skin) {
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Accent)).Bold(true)
	sectionStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.Border)).
		Padding(0, 1)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Text))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Muted))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Error))
	barStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Bar)).
		Background(lipgloss.Color(s.Bar))
}

// InitializeSkin loads {configDir}/skins/{name}.yml and applies it over the
// default palette. An empty or "default" name keeps the built-in skin.
func InitializeSkin(name, configDir string) error {
	if name == "" || name == "default" {
		applySkin(defaultSkin)
		return nil
	}

	data, err := os.ReadFile(filepath.Join(configDir, "skins", name+".yml"))
	if err != nil {
		return err
	}

	skin := defaultSkin
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return err
	}
	applySkin(skin)
	return nil
}
