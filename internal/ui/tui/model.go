package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/dwhctl/internal/ui/benchmarks"
)

// Phase represents a provisioning phase for display.
type Phase struct {
	Name   string
	Key    string
	Done   bool
	Active bool
	Err    error
}

// Attribute is a key/value pair recorded during provisioning.
type Attribute struct {
	Key   string
	Value string
}

// Model is the Bubble Tea model for the provisioning dashboard.
type Model struct {
	// Cluster info
	ClusterID string
	Region    string

	// Provisioning phases
	Phases []Phase

	// Latest resource status while waiting on the control plane
	LastStatus string

	// Attributes persisted so far
	Recorded []Attribute

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	phaseStart time.Time
	completed  map[string]time.Duration

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool

	// Mode
	Mode string // "provision", "destroy"
}

// NewProvisionModel creates a model for the provision command TUI.
func NewProvisionModel(clusterID, region string) Model {
	return Model{
		ClusterID:        clusterID,
		Region:           region,
		StartTime:        time.Now(),
		Mode:             "provision",
		PerformanceScale: 1.0,
		completed:        make(map[string]time.Duration),
		Phases: []Phase{
			{Name: "Access Role", Key: "identity"},
			{Name: "Warehouse Cluster", Key: "warehouse"},
			{Name: "Endpoint", Key: "endpoint"},
			{Name: "Network Ingress", Key: "ingress"},
		},
	}
}

// NewDestroyModel creates a model for the destroy command TUI.
func NewDestroyModel(clusterID, region string) Model {
	return Model{
		ClusterID:        clusterID,
		Region:           region,
		StartTime:        time.Now(),
		Mode:             "destroy",
		PerformanceScale: 1.0,
		completed:        make(map[string]time.Duration),
		Phases: []Phase{
			{Name: "Warehouse Cluster", Key: "warehouse"},
			{Name: "Access Role", Key: "identity"},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case StatusMsg:
		m.LastStatus = formatStatus(msg)

	case RecordedMsg:
		m.record(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Key == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Mark previous phases as done
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	if msg.Done {
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
		if !m.phaseStart.IsZero() {
			m.completed[m.benchmarkKey(msg.Phase)] = time.Since(m.phaseStart)
		}
	} else {
		m.Phases[idx].Active = true
		m.phaseStart = time.Now()
		m.LastStatus = ""
	}

	if msg.Err != nil {
		m.Phases[idx].Err = msg.Err
	}
}

func (m *Model) record(msg RecordedMsg) {
	for i, attr := range m.Recorded {
		if attr.Key == msg.Key {
			m.Recorded[i].Value = msg.Value
			return
		}
	}
	m.Recorded = append(m.Recorded, Attribute{Key: msg.Key, Value: msg.Value})
}

func (m *Model) updateETA() {
	current := ""
	for _, phase := range m.Phases {
		if phase.Active && !phase.Done {
			current = m.benchmarkKey(phase.Key)
			break
		}
	}
	if current == "" {
		m.EstimatedRemaining = 0
		return
	}

	phaseElapsed := time.Since(m.phaseStart)
	m.PerformanceScale = benchmarks.PerformanceScale(current, phaseElapsed, m.completed)
	m.EstimatedRemaining = benchmarks.EstimateRemainingWithScale(m.order(), current, phaseElapsed, m.completed, m.PerformanceScale)
}

func (m Model) order() []string {
	if m.Mode == "destroy" {
		return benchmarks.TeardownOrder
	}
	return benchmarks.ProvisionOrder
}

// benchmarkKey maps a phase key to its benchmarks table entry. Teardown
// phases reuse the provisioning phase names, so destroy mode namespaces them.
func (m Model) benchmarkKey(key string) string {
	if m.Mode == "destroy" {
		return "teardown:" + key
	}
	return key
}

func formatStatus(msg StatusMsg) string {
	s := msg.Status
	if s == "" {
		return ""
	}
	if msg.Resource != "" {
		s = fmt.Sprintf("%s: %s", msg.Resource, s)
	}
	if msg.Elapsed > 0 {
		s = fmt.Sprintf("%s (%s)", s, formatDuration(msg.Elapsed))
	}
	return s
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
