// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	onlineStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	offlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	pulseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badgeStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
