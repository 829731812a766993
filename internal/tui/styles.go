package tui

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	eventStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	flyingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Bold(true)
	landedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	crashedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)
