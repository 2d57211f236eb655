package ui

// DialogKind names a dialog the base screen can open.
type DialogKind int

const (
	DialogProfile DialogKind = iota
	DialogPalette
	DialogSettings
	DialogConfirmQuit
)

func (k DialogKind) String() string {
	switch k {
	case DialogProfile:
		return "profile"
	case DialogPalette:
		return "palette"
	case DialogSettings:
		return "settings"
	case DialogConfirmQuit:
		return "confirm-quit"
	default:
		return "unknown"
	}
}

// OpenDialogMsg pushes a dialog onto app.modals (SPC d, SPC p, SPC s).
type OpenDialogMsg struct {
	Kind DialogKind
}

// DismissModalMsg closes the top dialog (Esc).
type DismissModalMsg struct{}

// ShowToastMsg enqueues a toast (SPC t t). An empty Text gets a numbered default.
type ShowToastMsg struct {
	Text string
}

// DismissToastMsg dismisses the newest dismissable toast (SPC t d).
type DismissToastMsg struct{}

// ClearToastsMsg cancels every toast (SPC t c).
type ClearToastsMsg struct{}

// ToastsChangedMsg is sent from the toast queue when an item expires, so the
// program redraws.
type ToastsChangedMsg struct{}
