// Command barview previews a bar chart in the terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/bar-toolkit/pkg/barfile"
	"github.com/ha1tch/bar-toolkit/pkg/chart"
)

// MessageType selects the status bar style of a message.
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// Viewer holds all viewer state
type Viewer struct {
	screen     tcell.Screen
	chart      *chart.Chart
	filename   string
	config     Config
	configPath string
	log        *slog.Logger

	message     string
	messageType MessageType

	bars     []termBar // bars of the last draw, in render order
	selected int       // index into bars, -1 = none
}

// NewViewer returns a viewer of c drawing to screen.
func NewViewer(screen tcell.Screen, c *chart.Chart, filename string, cfg Config, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	return &Viewer{
		screen:     screen,
		chart:      c,
		filename:   filename,
		config:     cfg,
		configPath: ConfigPath(),
		log:        log,
		selected:   -1,
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: barview <chart file>")
		os.Exit(1)
	}
	filename := os.Args[1]

	// The screen owns the terminal; log to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := os.Getenv("BARVIEW_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			defer f.Close()
			logOut = f
		}
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := barfile.Load(filename, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
		os.Exit(1)
	}
	if err := c.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid chart %s: %v\n", filename, err)
		os.Exit(1)
	}

	cfg, found := LoadConfig(ConfigPath())
	if !found {
		cfg.Horizontal = c.Horizontal
		cfg.PrintValues = c.PrintValues
		cfg.Position = c.PrintValuesPosition
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.Clear()

	v := NewViewer(screen, c, filename, cfg, log)
	v.run()

	screen.Fini()
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case nil:
			// Screen finalized.
			return
		}
	}
}

// handleKey applies a key press; it returns true to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab, tcell.KeyRight, tcell.KeyDown:
		v.selectNext(1)
		return false
	case tcell.KeyBacktab, tcell.KeyLeft, tcell.KeyUp:
		v.selectNext(-1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'h':
		v.config.Horizontal = !v.config.Horizontal
		v.selected = -1
		v.showMessage(fmt.Sprintf("Orientation: %s", orientationName(v.config.Horizontal)), MsgInfo)
	case 'v':
		v.config.PrintValues = !v.config.PrintValues
		v.showMessage(fmt.Sprintf("Print values: %v", v.config.PrintValues), MsgInfo)
	case 'p':
		v.config.Position = nextPosition(v.config.Position)
		v.showMessage("Value position: "+v.config.Position, MsgInfo)
	case 'l':
		v.chart.Logarithmic = !v.chart.Logarithmic
		v.selected = -1
		v.showMessage(fmt.Sprintf("Logarithmic: %v", v.chart.Logarithmic), MsgInfo)
	case 't':
		if v.config.FileType == "svg" {
			v.config.FileType = "png"
		} else {
			v.config.FileType = "svg"
		}
		v.showMessage("Export type: "+v.config.FileType, MsgInfo)
	case 's':
		if err := SaveConfig(v.configPath, v.config); err != nil {
			v.showMessage("Save failed: "+err.Error(), MsgError)
		} else {
			v.showMessage("Preferences saved to "+v.configPath, MsgSuccess)
		}
	case 'e':
		path, err := v.export()
		if err != nil {
			v.showMessage("Export failed: "+err.Error(), MsgError)
		} else {
			v.showMessage("Written: "+path, MsgSuccess)
		}
	}
	return false
}

func (v *Viewer) selectNext(step int) {
	n := len(v.bars)
	if n == 0 {
		v.selected = -1
		return
	}
	if v.selected < 0 {
		if step > 0 {
			v.selected = 0
		} else {
			v.selected = n - 1
		}
		return
	}
	v.selected = ((v.selected+step)%n + n) % n
}

func (v *Viewer) showMessage(msg string, t MessageType) {
	v.message = msg
	v.messageType = t
}

// view returns the chart with the viewer preferences applied.
func (v *Viewer) view() *chart.Chart {
	c := *v.chart
	c.Horizontal = v.config.Horizontal
	c.PrintValues = v.config.PrintValues
	c.PrintValuesPosition = v.config.Position
	return &c
}

// export renders the chart next to its source file.
func (v *Viewer) export() (string, error) {
	c := v.view()
	base := strings.TrimSuffix(v.filename, filepath.Ext(v.filename))
	path := base + "." + v.config.FileType

	if v.config.FileType == "png" {
		f, err := os.Create(path)
		if err != nil {
			return "", err
		}
		if err := barfile.RenderPNG(c, f, barfile.PNGOptions{Logger: v.log}); err != nil {
			f.Close()
			return "", err
		}
		return path, f.Close()
	}

	svg, err := barfile.GenerateSVG(c, barfile.SVGOptions{Logger: v.log})
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(svg), 0644)
}

func orientationName(horizontal bool) string {
	if horizontal {
		return "horizontal"
	}
	return "vertical"
}

func nextPosition(p string) string {
	switch p {
	case chart.PositionTop:
		return chart.PositionMiddle
	case chart.PositionMiddle:
		return chart.PositionBottom
	}
	return chart.PositionTop
}
