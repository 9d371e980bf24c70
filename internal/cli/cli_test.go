package cli

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/roundboard/internal/model"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(key(string(r)))
	}

	return m
}

func TestForm_FocusWraps(t *testing.T) {
	m := NewEditModel("28 October 2025", model.RoundRecord{}, nil)

	m.Update(key("shift+tab"))
	assert.True(t, m.onSubmit())

	m.Update(key("tab"))
	assert.Equal(t, 0, m.focusIndex)
	assert.True(t, m.inputs[0].Focused())
}

func TestEditModel_SubmitsDigits(t *testing.T) {
	var saved [model.RoundCount]string

	save := func(d [model.RoundCount]string) (model.RoundRecord, error) {
		saved = d

		var rec model.RoundRecord
		rec.Rounds[0] = model.NewRound(d[0])

		return rec, nil
	}

	existing := model.RoundRecord{}
	existing.Rounds[1] = model.NewRound("108")

	m := NewEditModel("28 October 2025", existing, save)
	typeText(m, "23x9")

	assert.Equal(t, "239", m.Digits()[0], "non-digits are rejected while typing")
	assert.Contains(t, m.View(), "sum 4")

	for i := 0; i < model.RoundCount; i++ {
		m.Update(key("tab"))
	}

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, successMsg{}, msg)

	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	assert.True(t, m.Saved)
	assert.Equal(t, [model.RoundCount]string{"239", "108"}, saved)
	assert.Contains(t, m.View(), "Saved 1 rounds")
}

func TestEditModel_ErrorKeepsFormOpen(t *testing.T) {
	m := NewEditModel("x", model.RoundRecord{}, func([model.RoundCount]string) (model.RoundRecord, error) {
		return model.RoundRecord{}, &model.InvalidRoundError{Round: 1, Digits: "12"}
	})

	_, cmd := m.Update(errMsg{m.saveRounds().(errMsg).err})
	assert.Nil(t, cmd)
	assert.False(t, m.Saved)
	assert.Contains(t, m.View(), "must be exactly 3 digits")
}

func TestConfigureModel_BuildsConfig(t *testing.T) {
	base := model.DefaultConfig()

	var saved model.Config

	m := NewConfigureModel(base, func(cfg model.Config) error {
		saved = cfg
		return nil
	})

	typeText(m, "/srv/results")

	m.Update(key("tab"))
	typeText(m, "daily")

	for i := 0; i < fieldCount-1; i++ {
		m.Update(key("tab"))
	}

	require.True(t, m.onSubmit())

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)

	m.Update(cmd())
	assert.True(t, m.Saved)

	assert.Equal(t, "/srv/results", saved.SourceURL)
	assert.Equal(t, "daily/", saved.SourcePrefix)
	assert.Equal(t, base.SyncIntervalSeconds, saved.SyncIntervalSeconds)
	assert.Equal(t, base.StorageBackend, saved.StorageBackend)
}

func TestConfigureModel_SaveError(t *testing.T) {
	m := NewConfigureModel(model.DefaultConfig(), func(model.Config) error {
		return errors.New("read-only file system")
	})

	m.Update(m.saveConfig())
	assert.Contains(t, m.View(), "read-only file system")
}
