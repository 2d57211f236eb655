package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/utils/clock"

	"modalstack/internal/channel"
	"modalstack/internal/dom"
	"modalstack/internal/focus"
	"modalstack/internal/overlay"
	"modalstack/internal/stack"
	"modalstack/internal/toast"
	"modalstack/internal/ui/textutil"
)

// Channel tags used by the application.
const (
	TagModals channel.Tag = "app.modals"
	TagShell  channel.Tag = "app.shell"
	TagTabs   channel.Tag = "app.tabs"
	TagToasts channel.Tag = "app.toasts"
)

const footerFocusWidth = 30

// AppOptions configures NewAppModel. Zero values fall back to defaults.
type AppOptions struct {
	Logger           logr.Logger
	Clock            clock.WithDelayedExecution
	TracerProvider   trace.TracerProvider
	ToastTimeout     time.Duration
	ToastDismissable bool
	TabPolicy        stack.Policy
}

// AppModel is the root model: a base screen with dialogs stacked over it,
// a toast column and the leader-key menu.
type AppModel struct {
	Doc        *dom.Document
	Channels   *channel.Registry
	Trap       *focus.Trap
	Modals     *overlay.Modals
	Shell      *overlay.Shell
	Tabs       *overlay.Tabs[string]
	Toasts     *toast.Queue[string]
	KeyHandler *KeyHandler
	Log        logr.Logger

	opts   AppOptions
	clock  clock.WithDelayedExecution
	keys   focus.KeyMap
	base   *dom.Element
	notify func(tea.Msg)

	width, height int

	pending      []tea.Cmd
	toastHandles map[uint64]*toast.Handle[string]
	toastSeq     int
	dialogSeq    int
	tabSeq       int
	dialogs      map[stack.ID]DialogKind
	afterKey     map[stack.ID]func()
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model.
func NewAppModel(opts AppOptions) (*AppModel, error) {
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}

	a := &AppModel{
		Doc:          dom.NewDocument(),
		Channels:     channel.NewRegistry(),
		Log:          opts.Logger,
		opts:         opts,
		clock:        opts.Clock,
		keys:         focus.DefaultKeyMap(),
		toastHandles: make(map[uint64]*toast.Handle[string]),
		dialogs:      make(map[stack.ID]DialogKind),
		afterKey:     make(map[stack.ID]func()),
	}

	trapOpts := []focus.Option{
		focus.WithLogger(opts.Logger),
		focus.WithTag(TagModals),
		focus.WithKeyMap(a.keys),
	}
	if opts.TracerProvider != nil {
		trapOpts = append(trapOpts, focus.WithTracerProvider(opts.TracerProvider))
	}
	a.Trap = focus.NewTrap(a.Doc, trapOpts...)

	a.base = a.newBaseScreen()
	host := dom.NewContainer("modal-host")
	a.Doc.Body().Append(a.base, host)

	a.Modals = overlay.NewModals(stack.New[overlay.Modal](TagModals), a.Trap, a.Doc, host,
		overlay.WithModalsLogger(opts.Logger))
	a.Shell = overlay.NewShell(TagShell, overlay.Layout{Header: a.header, Footer: a.footer})
	a.Tabs = overlay.NewTabs[string](TagTabs, opts.TabPolicy, "General", "Keys", "About")
	a.Toasts = toast.NewQueue[string](opts.Clock,
		toast.WithLogger(opts.Logger.WithValues("channel", TagToasts.String())),
		toast.OnChange(a.toastsChanged),
	)

	for tag, v := range map[channel.Tag]any{
		TagModals: a.Modals,
		TagShell:  a.Shell,
		TagTabs:   a.Tabs,
		TagToasts: a.Toasts,
	} {
		if err := a.Channels.Register(tag, v); err != nil {
			return nil, fmt.Errorf("register channel: %w", err)
		}
	}

	reg := NewKeybindRegistry()
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDescForLayer("q", tea.Quit, "Quit", []Layer{LayerBase})
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC d", openDialogCmd(DialogProfile), "Dialog")
	reg.BindWithDesc("SPC p", openDialogCmd(DialogPalette), "Palette")
	reg.BindWithDesc("SPC s", openDialogCmd(DialogSettings), "Settings")
	reg.BindWithDesc("SPC t t", func() tea.Msg { return ShowToastMsg{} }, "Show")
	reg.BindWithDesc("SPC t d", func() tea.Msg { return DismissToastMsg{} }, "Dismiss")
	reg.BindWithDesc("SPC t c", func() tea.Msg { return ClearToastsMsg{} }, "Clear all")
	a.KeyHandler = NewKeyHandler(reg)

	a.Doc.Focus(a.Doc.GetElementByID("open-dialog"))
	return a, nil
}

func openDialogCmd(kind DialogKind) tea.Cmd {
	return func() tea.Msg { return OpenDialogMsg{Kind: kind} }
}

func (a *AppModel) newBaseScreen() *dom.Element {
	return dom.NewContainer("base",
		dom.NewText("Tab moves focus, Enter activates, SPC opens the menu."),
		dom.NewInput("base-note", dom.InputText, "Note"),
		dom.NewContainer("base-actions",
			dom.NewButton("open-dialog", "Open dialog").WithClick(func() { a.openDialog(DialogProfile) }),
			dom.NewButton("open-palette", "Palette").WithClick(func() { a.openDialog(DialogPalette) }),
			dom.NewButton("open-settings", "Settings").WithClick(func() { a.openDialog(DialogSettings) }),
			dom.NewButton("show-toast", "Toast").WithClick(func() { a.showToast("") }),
			dom.NewButton("quit", "Quit").WithClick(func() { a.openDialog(DialogConfirmQuit) }),
		),
	)
}

// SetNotify sets the func used to wake the program when a toast expires.
// Pass tea.Program.Send before calling Run.
func (a *AppModel) SetNotify(fn func(tea.Msg)) {
	a.notify = fn
}

// Layer returns the input layer keys currently go to.
func (a *AppModel) Layer() Layer {
	if a.Modals.Len() > 0 {
		return LayerModal
	}
	return LayerBase
}

// Close closes every dialog and cancels every toast timer.
func (a *AppModel) Close() {
	a.Modals.Close()
	a.Toasts.Close()
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.SetWindowTitle("modalstack")
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case OpenDialogMsg:
		a.openDialog(msg.Kind)
	case DismissModalMsg:
		a.Modals.Pop()
	case ShowToastMsg:
		a.showToast(msg.Text)
	case DismissToastMsg:
		a.dismissToast()
	case ClearToastsMsg:
		a.clearToasts()
	case ToastsChangedMsg:
		a.pruneToastHandles()
	}
	return a, a.flush()
}

// handleKey routes a key. Typing into a text field wins over bindings;
// then the leader menu and app bindings; then Esc closes the top dialog;
// everything else goes to the document, where the focus trap sees it.
func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := msg.String()
	layer := a.Layer()

	if dom.Editable(a.Doc.ActiveElement()) && !a.KeyHandler.LeaderWaiting && s != "esc" && s != "ctrl+c" {
		return a.dispatch(msg)
	}
	if consumed, cmd := a.KeyHandler.Handle(msg, layer); consumed {
		return cmd
	}
	if s == "esc" {
		if layer == LayerModal {
			a.emit(func() tea.Msg { return DismissModalMsg{} })
		}
		return a.flush()
	}
	return a.dispatch(msg)
}

func (a *AppModel) dispatch(msg tea.KeyMsg) tea.Cmd {
	a.Doc.DispatchKey(msg)
	for _, fn := range a.afterKey {
		fn()
	}
	return a.flush()
}

// emit queues cmd to be returned from the current Update.
func (a *AppModel) emit(cmd tea.Cmd) {
	a.pending = append(a.pending, cmd)
}

func (a *AppModel) flush() tea.Cmd {
	if len(a.pending) == 0 {
		return nil
	}
	cmds := a.pending
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *AppModel) showToast(text string) {
	if text == "" {
		a.toastSeq++
		text = fmt.Sprintf("Toast #%d", a.toastSeq)
	}
	h := a.Toasts.Enqueue(text, a.opts.ToastTimeout, a.opts.ToastDismissable)
	a.toastHandles[h.ID()] = h
}

// dismissToast dismisses the newest dismissable toast.
func (a *AppModel) dismissToast() {
	items := a.Toasts.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Dismissable {
			continue
		}
		a.Toasts.Dismiss(items[i].ID)
		delete(a.toastHandles, items[i].ID)
		return
	}
	a.Log.V(1).Info("no dismissable toast")
}

func (a *AppModel) clearToasts() {
	for id, h := range a.toastHandles {
		h.Cancel()
		delete(a.toastHandles, id)
	}
}

func (a *AppModel) pruneToastHandles() {
	live := make(map[uint64]struct{})
	for _, it := range a.Toasts.Items() {
		live[it.ID] = struct{}{}
	}
	for id := range a.toastHandles {
		if _, ok := live[id]; !ok {
			delete(a.toastHandles, id)
		}
	}
}

// toastsChanged runs on the timer goroutine when a toast expires, and inline
// on every other change. Send blocks until Update returns, so it goes
// through its own goroutine.
func (a *AppModel) toastsChanged() {
	if notify := a.notify; notify != nil {
		go notify(ToastsChangedMsg{})
	}
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	width, height := a.size()
	layer := a.Layer()

	var body string
	if layer == LayerModal {
		body = a.renderModalLayer(width, height-4)
	} else {
		body = RenderElement(a.Doc, a.base, width)
	}
	rows := []string{a.Shell.Render(body, width)}
	if t := a.renderToasts(width); t != "" {
		rows = append(rows, t)
	}
	if a.KeyHandler.LeaderWaiting {
		rows = append(rows, RenderKeybindHelp(a.KeyHandler, layer))
	} else {
		rows = append(rows, RenderStatusHelp(layer, a.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *AppModel) size() (int, int) {
	w, h := a.width, a.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

func (a *AppModel) header(int) string {
	return Styles.Title.Render("modalstack") + Styles.Muted.Render("  focus trap and overlay stack demo")
}

func (a *AppModel) footer(int) string {
	focused := "none"
	if el := a.Doc.ActiveElement(); el != nil && el.ID != "" {
		focused = el.ID
	}
	status := textutil.PadRight("focus: "+focused, footerFocusWidth)
	return Styles.Muted.Render(fmt.Sprintf("%s  dialogs: %d  toasts: %d", status, a.Modals.Len(), a.Toasts.Len()))
}
