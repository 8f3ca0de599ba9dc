package analyzers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const progressBarWidth = 40

// progressBar redraws a single terminal line as lines are processed. It only writes
// when the whole percentage changes, so large files do not flood the writer.
type progressBar struct {
	w       io.Writer
	total   int
	lastPct int
}

func newProgressBar(w io.Writer, total int) *progressBar {
	return &progressBar{w: w, total: total, lastPct: -1}
}

func (p *progressBar) Update(processed int) {
	if p.total <= 0 {
		return
	}
	pct := processed * 100 / p.total
	if pct > 100 {
		pct = 100
	}
	if pct == p.lastPct {
		return
	}
	p.lastPct = pct

	filled := pct * progressBarWidth / 100
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", progressBarWidth-filled)
	fmt.Fprintf(p.w, "\r  [%s] %3d%% (%d/%d)", bar, pct, processed, p.total)
}

func (p *progressBar) Done() {
	if p.total > 0 {
		fmt.Fprintln(p.w)
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
