// Package tui renders the terminal status board of the visit sync client.
//
// The board polls the sync engine once per second and shows the
// connectivity state, the pending counter, a spinner while a cycle runs, the
// time of the last completed cycle and the aggregate error. "s" starts a
// cycle, "p" toggles the list of waiting visits, "v" shows build info and
// "q" quits.
package tui
