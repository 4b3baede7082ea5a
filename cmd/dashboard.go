package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"speedprobe/internal/core/domain"
	"speedprobe/internal/core/ports"
	"speedprobe/internal/stats"
	"speedprobe/pkg/ui"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Launch live latency dashboard (alias: dash)",
	Long: `Launch a full-screen dashboard that pings the target server once a
second and draws a live latency sparkline with rolling statistics.

Keyboard Shortcuts:
  p           Pause / resume pinging
  r           Reset collected samples
  ?           Toggle help
  q, Ctrl+C   Quit`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	m := newDashboardModel(getContext(), apiClient)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}

// Messages
type pingResultMsg struct {
	sample domain.PingSample
	err    error
}

type tickMsg time.Time

// Key bindings
type dashboardKeyMap struct {
	Pause key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reset, k.Help, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Reset}, {k.Help, k.Quit}}
}

var dashboardKeys = dashboardKeyMap{
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause/resume"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset samples"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

const maxDashboardSamples = 120

// Dashboard model
type dashboardModel struct {
	ctx     context.Context
	prober  ports.Prober
	keys    dashboardKeyMap
	help    help.Model
	width   int
	height  int
	paused  bool
	rtts    []float64 // milliseconds, oldest first
	sent    int
	lost    int
	lastErr string
}

func newDashboardModel(ctx context.Context, prober ports.Prober) dashboardModel {
	return dashboardModel{
		ctx:    ctx,
		prober: prober,
		keys:   dashboardKeys,
		help:   help.New(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.pingCmd(), tickCmd())
}

func (m dashboardModel) pingCmd() tea.Cmd {
	return func() tea.Msg {
		sample, err := m.prober.Ping(m.ctx)
		return pingResultMsg{sample: sample, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.rtts = nil
			m.sent = 0
			m.lost = 0
			m.lastErr = ""
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case pingResultMsg:
		m.sent++
		if msg.err != nil {
			m.lost++
			m.lastErr = msg.err.Error()
		} else {
			m.lastErr = ""
			m.rtts = append(m.rtts, float64(msg.sample.RTT.Microseconds())/1000)
			if len(m.rtts) > maxDashboardSamples {
				m.rtts = m.rtts[1:]
			}
		}
		return m, nil

	case tickMsg:
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(m.pingCmd(), tickCmd())
	}

	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	title := ui.StyleTitle.Render("speedprobe") + ui.FormatMuted("  "+m.prober.BaseURL())
	if m.paused {
		title += "  " + ui.StyleWarning.Render("[paused]")
	}
	b.WriteString(title + "\n\n")

	if len(m.rtts) == 0 {
		b.WriteString(ui.FormatMuted("Waiting for first ping...") + "\n")
	} else {
		avg, _ := stats.Mean(m.rtts)
		min, _ := stats.Min(m.rtts)
		max, _ := stats.Max(m.rtts)
		jitter, _ := stats.StdDev(m.rtts)

		b.WriteString(fmt.Sprintf("%s   %s   %s   %s\n\n",
			ui.RenderKeyValue("avg", ui.FormatLatency(avg)),
			ui.RenderKeyValue("min/max", fmt.Sprintf("%.1f/%.1f ms", min, max)),
			ui.RenderKeyValue("jitter", fmt.Sprintf("%.1f ms", jitter)),
			ui.RenderKeyValue("loss", fmt.Sprintf("%d/%d", m.lost, m.sent)),
		))
		b.WriteString(m.renderSparkline() + "\n")
	}

	if m.lastErr != "" {
		b.WriteString("\n" + ui.FormatError(m.lastErr) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// renderSparkline draws recent latencies as a unicode bar strip scaled
// to the worst sample in the window.
func (m dashboardModel) renderSparkline() string {
	bars := []rune("▁▂▃▄▅▆▇█")

	width := m.width - 6
	if width < 10 {
		width = 10
	}
	samples := m.rtts
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	max, _ := stats.Max(samples)
	if max <= 0 {
		max = 1
	}

	var sb strings.Builder
	for _, v := range samples {
		idx := int(v / max * float64(len(bars)-1))
		if idx >= len(bars) {
			idx = len(bars) - 1
		}
		sb.WriteRune(bars[idx])
	}
	return ui.StyleAccent.Render(sb.String())
}
