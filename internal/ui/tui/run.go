package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/dwhctl/internal/provisioning"
)

// RunProvisionTUI runs fn under the provisioning dashboard. fn receives an
// observer that feeds the display and should return once provisioning ends.
func RunProvisionTUI(clusterID, region string, fn func(observer provisioning.Observer) error) error {
	return runTUI(NewProvisionModel(clusterID, region), fn)
}

// RunDestroyTUI runs fn under the teardown dashboard.
func RunDestroyTUI(clusterID, region string, fn func(observer provisioning.Observer) error) error {
	return runTUI(NewDestroyModel(clusterID, region), fn)
}

func runTUI(m Model, fn func(observer provisioning.Observer) error) error {
	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		if err := fn(NewProgramObserver(p)); err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}
