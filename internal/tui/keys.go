// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	sync    key.Binding
	pending key.Binding
	info    key.Binding
	esc     key.Binding
	quit    key.Binding
}

var keys = keyMap{
	sync:    key.NewBinding(key.WithKeys("s")),
	pending: key.NewBinding(key.WithKeys("p")),
	info:    key.NewBinding(key.WithKeys("v")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
}
