// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connectivity

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-visit-sync/internal/config"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/models"
)

// Monitor holds the process-wide connectivity state.
//
// The state starts offline and unknown. The first observation (probe or
// SetOnline) sets it without raising JustReconnected; later offline to online
// edges raise it for ReconnectWindow. Going offline inside the window clears
// the flag, and the next reconnect starts a fresh window.
type Monitor struct {
	prober          Prober
	probeInterval   time.Duration
	reconnectWindow time.Duration
	logger          *logger.Logger

	// transitionMu serialises state changes together with their delivery so
	// subscribers observe transitions in order.
	transitionMu sync.Mutex

	mu          sync.RWMutex
	state       models.ConnectivityState
	known       bool
	window      *time.Timer
	windowGen   uint64
	subscribers []func(models.ConnectivityState)
}

// NewMonitor creates a Monitor that polls prober. Non-positive durations in
// cfg fall back to the config defaults.
func NewMonitor(prober Prober, cfg config.ClientConnectivity, log *logger.Logger) *Monitor {
	probeInterval := cfg.ProbeInterval
	if probeInterval <= 0 {
		probeInterval = config.DefaultProbeInterval
	}
	reconnectWindow := cfg.ReconnectWindow
	if reconnectWindow <= 0 {
		reconnectWindow = config.DefaultReconnectWindow
	}

	return &Monitor{
		prober:          prober,
		probeInterval:   probeInterval,
		reconnectWindow: reconnectWindow,
		logger:          log,
	}
}

// OnTransition registers fn to be called after every state change, including
// the end of a reconnect window. fn runs on the goroutine that caused the
// change and must not call SetOnline.
func (m *Monitor) OnTransition(fn func(models.ConnectivityState)) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, fn)
	m.mu.Unlock()
}

// State returns a snapshot of the current state.
func (m *Monitor) State() models.ConnectivityState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Run probes immediately, then every probe interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.probe(ctx)

	ticker := time.NewTicker(m.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.stopWindow()
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// SetOnline records an externally observed reachability change.
func (m *Monitor) SetOnline(online bool) {
	m.transitionMu.Lock()
	defer m.transitionMu.Unlock()

	m.mu.Lock()
	if m.known && m.state.IsOnline == online {
		m.mu.Unlock()
		return
	}

	first := !m.known
	m.known = true
	m.state.IsOnline = online

	if online && !first {
		m.state.JustReconnected = true
		m.restartWindowLocked()
	} else {
		m.state.JustReconnected = false
		m.stopWindowLocked()
	}

	snapshot := m.state
	subscribers := slices.Clone(m.subscribers)
	m.mu.Unlock()

	m.logger.Info().
		Str("func", "Monitor.SetOnline").
		Bool("online", snapshot.IsOnline).
		Bool("just_reconnected", snapshot.JustReconnected).
		Msg("connectivity changed")

	notify(subscribers, snapshot)
}

func (m *Monitor) probe(ctx context.Context) {
	err := m.prober.Probe(ctx)
	if ctx.Err() != nil {
		// shutdown, not an outage
		return
	}
	if err != nil {
		m.logger.Debug().Err(err).Str("func", "Monitor.probe").Msg("platform probe failed")
	}
	m.SetOnline(err == nil)
}

// restartWindowLocked schedules the end of the reconnect pulse. Caller holds mu.
func (m *Monitor) restartWindowLocked() {
	m.stopWindowLocked()

	m.windowGen++
	gen := m.windowGen
	m.window = time.AfterFunc(m.reconnectWindow, func() { m.endWindow(gen) })
}

func (m *Monitor) stopWindowLocked() {
	if m.window != nil {
		m.window.Stop()
		m.window = nil
	}
}

func (m *Monitor) stopWindow() {
	m.mu.Lock()
	m.stopWindowLocked()
	m.mu.Unlock()
}

func (m *Monitor) endWindow(gen uint64) {
	m.transitionMu.Lock()
	defer m.transitionMu.Unlock()

	m.mu.Lock()
	if gen != m.windowGen || !m.state.JustReconnected {
		m.mu.Unlock()
		return
	}
	m.state.JustReconnected = false
	m.window = nil

	snapshot := m.state
	subscribers := slices.Clone(m.subscribers)
	m.mu.Unlock()

	notify(subscribers, snapshot)
}

func notify(subscribers []func(models.ConnectivityState), state models.ConnectivityState) {
	for _, fn := range subscribers {
		fn(state)
	}
}
