package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inovacc/roundboard/internal/model"
)

const (
	fieldSourceURL = iota
	fieldSourcePrefix
	fieldStorage
	fieldSyncInterval
	fieldRolloverInterval
	fieldHistoryDays
	fieldFetchTimeout
	fieldFetchConcurrency
	fieldSiteDir
	fieldSiteTitle
	fieldOldResults
	fieldAnalyticsID
	fieldCount
)

var configureLabels = [fieldCount]string{
	"Source URL or directory:",
	"Source prefix (folder, e.g. results/):",
	"Storage backend (bolt or sqlite):",
	"Sync interval (seconds):",
	"New day check interval (seconds):",
	"History days fetched at start:",
	"Fetch timeout (seconds):",
	"Parallel fetches:",
	"Site export directory:",
	"Site title:",
	"Old results shown:",
	"Analytics ID (optional):",
}

// SaveConfigFunc persists a configuration.
type SaveConfigFunc func(model.Config) error

type ConfigureModel struct {
	form
	base  model.Config
	save  SaveConfigFunc
	Saved bool
	Err   error
}

// NewConfigureModel prefills the form from cfg.
func NewConfigureModel(cfg model.Config, save SaveConfigFunc) *ConfigureModel {
	values := [fieldCount]string{
		cfg.SourceURL,
		cfg.SourcePrefix,
		cfg.StorageBackend,
		strconv.Itoa(cfg.SyncIntervalSeconds),
		strconv.Itoa(cfg.RolloverIntervalSeconds),
		strconv.Itoa(cfg.HistoryDays),
		strconv.Itoa(cfg.FetchTimeoutSeconds),
		strconv.Itoa(cfg.FetchConcurrency),
		cfg.SiteDir,
		cfg.SiteTitle,
		strconv.Itoa(cfg.OldResultsLimit),
		cfg.AnalyticsID,
	}

	placeholders := [fieldCount]string{
		"https://example.com or /srv/results",
		"results/ (optional)",
		model.StorageBolt,
		"300",
		"60",
		"30",
		"15",
		"4",
		"site",
		"Kolkata FF Results",
		"20",
		"G-XXXXXXXXXX",
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		limit := 256

		switch i {
		case fieldSyncInterval, fieldRolloverInterval, fieldHistoryDays, fieldFetchTimeout, fieldFetchConcurrency, fieldOldResults:
			limit = 10
		case fieldStorage:
			limit = 6
		}

		inputs[i] = newInput(placeholders[i], values[i], limit)
	}

	return &ConfigureModel{
		form: newForm(inputs),
		base: cfg,
		save: save,
	}
}

func (m *ConfigureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ConfigureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case successMsg:
		m.Saved = true
		return m, tea.Quit
	case errMsg:
		m.Err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Submit on enter when on submitted button
			if s == "enter" && m.onSubmit() {
				return m, m.saveConfig
			}

			return m, m.navigate(s)
		}
	}

	// Handle character input and blinking
	return m, m.updateInputs(msg)
}

func (m *ConfigureModel) View() string {
	if m.Saved {
		return successStyle.Render("\n  ✓ Configuration saved successfully!\n\n")
	}

	if m.Err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  ✗ Error: %v\n\n", m.Err))
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Configure roundboard") + "\n")
	b.WriteString(blurredStyle.Render("Edit the fields below and press Tab to navigate") + "\n\n")

	for i, label := range configureLabels {
		fmt.Fprintf(&b, fmtV1, blurredStyle.Render(label), m.inputs[i].View())
	}

	fmt.Fprintf(&b, "\n\n %s\n\n", m.button())
	b.WriteString(helpStyle.Render(" tab/shift+tab: navigate • enter: submit • esc: quit"))

	return b.String()
}

// Config builds the configuration from the form. Unparseable numbers keep
// the value the form was opened with.
func (m *ConfigureModel) Config() model.Config {
	cfg := m.base

	value := func(i int) string {
		return strings.TrimSpace(m.inputs[i].Value())
	}

	number := func(i int, fallback int) int {
		n, err := strconv.Atoi(value(i))
		if err != nil {
			return fallback
		}

		return n
	}

	cfg.SourceURL = value(fieldSourceURL)
	cfg.SourcePrefix = value(fieldSourcePrefix)
	cfg.StorageBackend = strings.ToLower(value(fieldStorage))
	cfg.SyncIntervalSeconds = number(fieldSyncInterval, m.base.SyncIntervalSeconds)
	cfg.RolloverIntervalSeconds = number(fieldRolloverInterval, m.base.RolloverIntervalSeconds)
	cfg.HistoryDays = number(fieldHistoryDays, m.base.HistoryDays)
	cfg.FetchTimeoutSeconds = number(fieldFetchTimeout, m.base.FetchTimeoutSeconds)
	cfg.FetchConcurrency = number(fieldFetchConcurrency, m.base.FetchConcurrency)
	cfg.SiteDir = value(fieldSiteDir)
	cfg.SiteTitle = value(fieldSiteTitle)
	cfg.OldResultsLimit = number(fieldOldResults, m.base.OldResultsLimit)
	cfg.AnalyticsID = value(fieldAnalyticsID)

	if cfg.StorageBackend == "" {
		cfg.StorageBackend = model.StorageBolt
	}

	if cfg.SourcePrefix != "" && !strings.HasSuffix(cfg.SourcePrefix, "/") {
		cfg.SourcePrefix += "/"
	}

	return cfg
}

func (m *ConfigureModel) saveConfig() tea.Msg {
	if err := m.save(m.Config()); err != nil {
		return errMsg{err}
	}

	return successMsg{}
}
