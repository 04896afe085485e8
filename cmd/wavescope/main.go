// wavescope renders a saved wave as a terminal oscillogram.
//
// Usage: wavescope [-zoom N] <file.txt|file.wav>
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/soundlab/wave-factory/waveio"
)

func main() {
	var zoom int
	flag.IntVar(&zoom, "zoom", 1, "Samples per column divisor (higher = more detail)")
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	path := flag.Arg(0)
	samples, err := loadSamples(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading wave: %v\n", err)
		os.Exit(1)
	}
	if len(samples) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %s contains no samples\n", path)
		os.Exit(1)
	}

	if err := runViewer(path, samples, zoom); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: wavescope [options] <file.txt|file.wav>")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nControls:")
	fmt.Fprintln(os.Stderr, "  q, Esc, Ctrl+C    Quit")
	fmt.Fprintln(os.Stderr, "  Left/Right, h/l   Pan")
	fmt.Fprintln(os.Stderr, "  +, =              Zoom in")
	fmt.Fprintln(os.Stderr, "  -, _              Zoom out")
	fmt.Fprintln(os.Stderr, "  0                 Reset view")
}

func loadSamples(path string) ([]int16, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		samples, _, err := waveio.ReadWAV(path)
		return samples, err
	}
	return waveio.ReadText(path)
}

// viewer holds the visible window over the sample array.
type viewer struct {
	samples []int16
	offset  int // first visible sample
	zoom    int // zoom-in factor; samples per column = len/width/zoom
}

func runViewer(title string, samples []int16, zoom int) error {
	if zoom < 1 {
		zoom = 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)

	v := &viewer{samples: samples, zoom: zoom}

	for {
		v.draw(screen, title)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev, screen) {
				return nil
			}
		}
	}
}

// handleKey processes one key event; returns true to quit.
func (v *viewer) handleKey(ev *tcell.EventKey, screen tcell.Screen) bool {
	width, _ := screen.Size()
	step := v.visibleSamples(width) / 4

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
		return true
	case tcell.KeyLeft:
		v.pan(-step)
	case tcell.KeyRight:
		v.pan(step)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'h':
			v.pan(-step)
		case 'l':
			v.pan(step)
		case '+', '=':
			v.zoom *= 2
		case '-', '_':
			if v.zoom > 1 {
				v.zoom /= 2
			}
		case '0':
			v.zoom = 1
			v.offset = 0
		}
	}
	return false
}

// visibleSamples is how many samples the current zoom maps onto the
// screen width.
func (v *viewer) visibleSamples(width int) int {
	n := len(v.samples) / v.zoom
	if n < width {
		n = width
	}
	return n
}

func (v *viewer) pan(delta int) {
	v.offset += delta
	if v.offset < 0 {
		v.offset = 0
	}
	if v.offset >= len(v.samples) {
		v.offset = len(v.samples) - 1
	}
}

func (v *viewer) draw(screen tcell.Screen, title string) {
	screen.Clear()
	width, height := screen.Size()
	if width < 1 || height < 3 {
		return
	}

	plotH := height - 1 // last row is the status bar
	mid := plotH / 2
	axis := tcell.StyleDefault.Foreground(tcell.ColorGray)
	trace := tcell.StyleDefault.Foreground(tcell.ColorGreen)

	for x := 0; x < width; x++ {
		screen.SetContent(x, mid, '-', nil, axis)
	}

	perColumn := v.visibleSamples(width) / width
	if perColumn < 1 {
		perColumn = 1
	}

	for x := 0; x < width; x++ {
		start := v.offset + x*perColumn
		if start >= len(v.samples) {
			break
		}
		end := start + perColumn
		if end > len(v.samples) {
			end = len(v.samples)
		}

		// min/max over the column's window so peaks survive decimation
		lo, hi := v.samples[start], v.samples[start]
		for _, s := range v.samples[start:end] {
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}

		yTop := mid - int(float64(hi)/32768.0*float64(mid))
		yBot := mid - int(float64(lo)/32768.0*float64(mid))
		for y := yTop; y <= yBot; y++ {
			if y >= 0 && y < plotH {
				screen.SetContent(x, y, '█', nil, trace)
			}
		}
	}

	status := fmt.Sprintf(" %s | %d samples | offset %d | zoom x%d ",
		title, len(v.samples), v.offset, v.zoom)
	statusStyle := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		screen.SetContent(x, height-1, r, nil, statusStyle)
	}
}
