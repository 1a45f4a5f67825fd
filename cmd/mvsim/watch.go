package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/mvsim/internal/node"
)

var (
	watchHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	watchLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	watchValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	watchGraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	watchHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	watchHistory     = 200
)

// odometryMsg is one decoded "mvsim.Odometry" publish, delivered to the
// bubbletea program from the Subscribe goroutine.
type odometryMsg odometry

type watchErrMsg struct{ err error }

// watchModel renders live odometry for one topic as a scrolling trace of
// forward speed plus the most recent planar state.
type watchModel struct {
	topic    string
	node     string
	last     odometry
	vxHist   []float64
	received int
	err      error
}

func newWatchModel(topic string) watchModel {
	return watchModel{topic: topic, vxHist: make([]float64, 0, watchHistory)}
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case odometryMsg:
		m.last = odometry(msg)
		m.node = m.last.Node
		m.received++
		if len(m.last.X) > 3 {
			m.vxHist = append(m.vxHist, m.last.X[3])
			if len(m.vxHist) > watchHistory {
				m.vxHist = m.vxHist[1:]
			}
		}
	case watchErrMsg:
		m.err = msg.err
	}
	return m, nil
}

func (m watchModel) View() string {
	var s strings.Builder
	s.WriteString(watchHeaderStyle.Render(fmt.Sprintf("mvsim watch: %s", m.topic)) + "\n")

	if m.err != nil {
		s.WriteString("error: " + m.err.Error() + "\n")
		s.WriteString(watchHelpStyle.Render("q: quit"))
		return s.String()
	}

	if len(m.vxHist) > 1 {
		chart := asciigraph.Plot(m.vxHist, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("vx (m/s)"))
		s.WriteString(watchGraphStyle.Render(chart) + "\n")
	}

	s.WriteString(watchLabelStyle.Render("node") + watchValueStyle.Render(m.node) + "\n")
	s.WriteString(watchLabelStyle.Render("samples") + watchValueStyle.Render(fmt.Sprintf("%d", m.received)) + "\n")
	s.WriteString(watchLabelStyle.Render("time") + watchValueStyle.Render(fmt.Sprintf("%.2fs", m.last.Time)) + "\n")
	labels := []string{"x", "y", "yaw", "vx", "vy", "omega"}
	for i, v := range m.last.X {
		if i >= len(labels) {
			break
		}
		s.WriteString(watchLabelStyle.Render(labels[i]) + watchValueStyle.Render(fmt.Sprintf("%.4f", v)) + "\n")
	}
	s.WriteString(watchHelpStyle.Render("\nq: quit"))
	return s.String()
}

// watchTopic runs an interactive bubbletea program that subscribes to
// topicName through n and renders each "mvsim.Odometry" publish live.
func watchTopic(ctx context.Context, n *node.Node, topicName string) error {
	p := tea.NewProgram(newWatchModel(topicName))

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		err := n.Subscribe(subCtx, topicName, func(typeName string, payload []byte) {
			if typeName != "mvsim.Odometry" {
				return
			}
			var o odometry
			if err := msgpack.Unmarshal(payload, &o); err != nil {
				p.Send(watchErrMsg{err: err})
				return
			}
			p.Send(odometryMsg(o))
		})
		if err != nil && subCtx.Err() == nil {
			p.Send(watchErrMsg{err: err})
		}
	}()

	_, err := p.Run()
	return err
}
