// Package ui is the Bubble Tea front end of modaldemo.
//
// The screen is an element tree (internal/dom). Dialogs are pushed onto the
// app.modals channel, which mounts them under the modal layer and traps
// focus inside the top one. Keys go through the leader-key registry first,
// then Esc closes the top dialog, and everything else is dispatched to the
// document, where Tab cycling and button activation happen.
//
// Channels used by the App:
//   - app.modals: overlay.Modals, nested dialogs
//   - app.shell: overlay.Shell, header and footer overrides
//   - app.tabs: overlay.Tabs, settings sections
//   - app.toasts: toast.Queue, transient notifications
package ui
