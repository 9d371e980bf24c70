// Package cli provides the terminal user interface components for
// roundboard.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Configure: configuration wizard with form navigation
//   - Edit: manual entry of the eight rounds of a day
//
// Both forms share the focus handling in form.go: tab, shift+tab, up and
// down move between inputs, enter on the submit button saves.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
