package windows

import (
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/text/language"

	"github.com/magpierre/datagrid/internal/config"
	"github.com/magpierre/datagrid/internal/summary"
)

// Options configures the main window.
type Options struct {
	Config config.Config
	// Layout is applied to every opened dataset. May be nil.
	Layout *config.Layout
	Logger *slog.Logger
}

// MainWindow is the grid browser: a Delta Sharing table tree on the left,
// one tab per dataset and a status bar.
type MainWindow struct {
	a          fyne.App
	w          fyne.Window
	cfg        config.Config
	logger     *slog.Logger
	profile    string
	themeMode  ThemeMode
	browser    *DataBrowser
	tree       *NavigationTree
	treeWidget *widget.Tree
	left       fyne.CanvasObject
	statusBar  *widget.Label
}

// NewMainWindow builds the window on a. Call ShowAndRun to start.
func NewMainWindow(a fyne.App, opts Options) *MainWindow {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := &MainWindow{
		a:      a,
		cfg:    opts.Config,
		logger: logger,
		tree:   NewNavigationTree(),
	}

	t.themeMode = LoadThemeMode(a.Preferences(), ParseThemeMode(opts.Config.Theme))
	a.Settings().SetTheme(&GridTheme{Mode: t.themeMode})

	t.w = a.NewWindow("Data Grid")
	t.w.Resize(fyne.NewSize(1000, 700))

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}

	tag, err := language.Parse(opts.Config.Locale)
	if err != nil {
		tag = language.English
	}
	t.browser = NewDataBrowser(opts.Config.GridConfig(), opts.Layout, summary.NewPrinter(tag), logger, t.SetStatus)

	t.treeWidget = t.tree.NewWidget(t.loadDeltaTable)
	t.left = widget.NewCard("", "Tables", t.treeWidget)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MenuIcon(), t.toggleTree),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), t.OpenFile),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.exportData),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), t.editRenderer),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), t.cycleTheme),
	)

	split := container.NewHSplit(t.left, t.browser.Tabs())
	split.SetOffset(0.2)
	t.w.SetContent(container.NewBorder(toolbar, container.NewHBox(t.statusBar), nil, nil, split))
	return t
}

// Window returns the Fyne window.
func (t *MainWindow) Window() fyne.Window {
	return t.w
}

// Browser returns the tab host.
func (t *MainWindow) Browser() *DataBrowser {
	return t.browser
}

// ShowAndRun shows the window and runs the app.
func (t *MainWindow) ShowAndRun() {
	t.w.ShowAndRun()
}

// SetStatus updates the status bar message.
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

func (t *MainWindow) toggleTree() {
	if t.left.Visible() {
		t.left.Hide()
	} else {
		t.left.Show()
	}
}

func (t *MainWindow) cycleTheme() {
	t.themeMode = t.themeMode.Next()
	ApplyThemeMode(t.a, t.themeMode)
	t.SetStatus("Theme: " + string(t.themeMode))
}

func (t *MainWindow) editRenderer() {
	data := t.browser.Current()
	if data == nil {
		dialog.ShowInformation("Column Renderer", "Open a table first", t.w)
		return
	}
	NewRenderEditor(t.w, data.View()).Show()
}
