package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/turbofive/wit/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var interactiveCommitRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

// promptTriggerIdentity fills in the trigger repository and commit from the
// terminal when the CI environment did not provide them.
func promptTriggerIdentity(cfg *config.Config) error {
	if cfg.Repository == "" {
		repo, err := promptString("Triggering repository (owner/name)", func(s string) error {
			if !strings.Contains(s, "/") || strings.TrimSpace(s) == "" {
				return fmt.Errorf("expected owner/name")
			}
			return nil
		})
		if err != nil {
			return err
		}
		cfg.Repository = repo
	}

	if cfg.Commit == "" {
		commit, err := promptString("Triggering commit (full hash)", func(s string) error {
			if !interactiveCommitRe.MatchString(s) {
				return fmt.Errorf("expected a full 40-character commit hash")
			}
			return nil
		})
		if err != nil {
			return err
		}
		cfg.Commit = commit
	}

	return nil
}

// inputModel is a bubbletea model for one validated text input.
type inputModel struct {
	textInput textinput.Model
	title     string
	validate  func(string) error
	errMsg    string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			val := m.textInput.Value()
			if m.validate != nil {
				if err := m.validate(val); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(m.textInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func promptString(title string, validate func(string) error) (string, error) {
	ti := textinput.New()
	ti.Focus()

	m := inputModel{textInput: ti, title: title, validate: validate}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}

	result := final.(inputModel)
	if result.aborted {
		return "", fmt.Errorf("aborted")
	}
	return result.textInput.Value(), nil
}
