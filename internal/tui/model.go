// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-visit-sync/models"
)

const defaultPollInterval = time.Second

type syncStatusSource interface {
	Status() models.SyncStatusSnapshot
	SyncNow(ctx context.Context) (models.SyncReport, error)
}

type pendingLister interface {
	ListPending(ctx context.Context) ([]models.PendingVisitView, error)
}

type statusModel struct {
	ctx          context.Context
	sync         syncStatusSource
	visits       pendingLister
	buildInfo    models.AppBuildInfo
	pollInterval time.Duration

	spinner spinner.Model
	status  models.SyncStatusSnapshot
	pending []models.PendingVisitView

	// requested is set while a cycle started from the board is running.
	requested     bool
	showPending   bool
	showBuildInfo bool
	message       string
	listErr       string
}

func newStatusModel(ctx context.Context, sync syncStatusSource, visits pendingLister, buildInfo models.AppBuildInfo) statusModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return statusModel{
		ctx:          ctx,
		sync:         sync,
		visits:       visits,
		buildInfo:    buildInfo,
		pollInterval: defaultPollInterval,
		spinner:      s,
		status:       sync.Status(),
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdPoll())
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tickMsg:
		m.status = m.sync.Status()
		if m.showPending {
			return m, tea.Batch(m.cmdPoll(), m.cmdLoadPending())
		}
		return m, m.cmdPoll()

	case syncDoneMsg:
		m.requested = false
		m.message = reportMessage(msg.report, msg.err)
		m.status = m.sync.Status()
		if m.showPending {
			return m, m.cmdLoadPending()
		}
		return m, nil

	case pendingLoadedMsg:
		if msg.err != nil {
			m.listErr = msg.err.Error()
			return m, nil
		}
		m.listErr = ""
		m.pending = msg.views
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m statusModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.esc):
		m.showBuildInfo = false
		m.showPending = false
		return m, nil

	case key.Matches(msg, keys.info):
		m.showBuildInfo = !m.showBuildInfo
		return m, nil
	}

	if m.showBuildInfo {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.sync):
		if m.requested {
			m.message = "Sync already requested"
			return m, nil
		}
		m.requested = true
		m.message = ""
		return m, m.cmdSync()

	case key.Matches(msg, keys.pending):
		m.showPending = !m.showPending
		if m.showPending {
			return m, m.cmdLoadPending()
		}
	}

	return m, nil
}

func (m statusModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo)
	}

	var b strings.Builder

	b.WriteString("Connection:  ")
	switch {
	case m.status.Online && m.status.JustReconnected:
		b.WriteString(onlineStyle.Render("ONLINE") + " " + pulseStyle.Render("reconnected"))
	case m.status.Online:
		b.WriteString(onlineStyle.Render("ONLINE"))
	default:
		b.WriteString(offlineStyle.Render("OFFLINE"))
	}
	b.WriteString("\n")

	b.WriteString("Pending:     " + badgeStyle.Render(fmt.Sprintf("%d", m.status.PendingCount)) + "\n")

	b.WriteString("Sync:        ")
	if m.status.IsSyncing || m.requested {
		b.WriteString(m.spinner.View() + " Syncing...")
	} else {
		b.WriteString("idle")
	}
	b.WriteString("\n")

	b.WriteString("Last sync:   " + formatTime(m.status.LastSyncTime) + "\n")

	if m.status.Error != nil {
		b.WriteString(errorStyle.Render("Error: "+humanizeSyncError(*m.status.Error)) + "\n")
	}
	if m.message != "" {
		b.WriteString("\n" + m.message + "\n")
	}

	if m.showPending {
		b.WriteString("\n" + m.viewPending())
	}

	return renderPage("VISIT SYNC", strings.TrimRight(b.String(), "\n"), "s: sync now │ p: pending │ v: about │ q: quit")
}

func (m statusModel) viewPending() string {
	if m.listErr != "" {
		return errorStyle.Render("Error: " + m.listErr)
	}
	if len(m.pending) == 0 {
		return "No visits waiting for sync"
	}

	var b strings.Builder
	b.WriteString("Local ID                             │ Status  │ Photos │ Last error\n")
	b.WriteString("─────────────────────────────────────┼─────────┼────────┼──────────────────\n")
	for _, v := range m.pending {
		lastErr := "-"
		if v.LastError != nil {
			lastErr = fitText(*v.LastError, 40)
		}
		fmt.Fprintf(&b, "%-36s │ %-7s │ %-6d │ %s\n", fitText(v.LocalID, 36), v.SyncStatus, len(v.Photos), lastErr)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m statusModel) cmdPoll() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m statusModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	svc := m.sync

	return func() tea.Msg {
		report, err := svc.SyncNow(ctx)
		return syncDoneMsg{report: report, err: err}
	}
}

func (m statusModel) cmdLoadPending() tea.Cmd {
	ctx := m.ctx
	svc := m.visits

	return func() tea.Msg {
		views, err := svc.ListPending(ctx)
		return pendingLoadedMsg{views: views, err: err}
	}
}

func reportMessage(report models.SyncReport, err error) string {
	switch {
	case err != nil:
		return "Sync failed: " + humanizeSyncError(err.Error())
	case report.Skipped && report.SkipReason == models.SkipReasonBusy:
		return "Sync already running"
	case report.Skipped:
		return "Offline, sync postponed"
	case report.Processed == 0:
		return "Nothing to sync"
	default:
		return fmt.Sprintf("Synced %d of %d, %d remaining", report.Synced, report.Processed, report.Remaining)
	}
}
