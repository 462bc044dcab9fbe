package diag

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-resample/internal/arrays"
)

// ErrNoData is returned by WritePS when there is no finite point to draw.
var ErrNoData = errors.New("diag: no finite samples to plot")

// Page geometry in PostScript points (A4 portrait).
const (
	pageWidth  = 595
	pageHeight = 842
	margin     = 50
	divisions  = 10
)

// WritePS renders a as a PostScript page: a grid, the original samples as a
// black polyline with dots and the resampled values as a red polyline.
// NaN values break the curves.
func WritePS(w io.Writer, a Arrays, title string) error {
	xlo, xhi, okx := bounds(a.X, a.XNew)
	ylo, yhi, oky := bounds(a.V, a.VNew)

	if !okx || !oky {
		return ErrNoData
	}

	xlo, xhi = pad(xlo, xhi)
	ylo, yhi = pad(ylo, yhi)

	p := &plotter{
		w:   bufio.NewWriter(w),
		xlo: xlo, xhi: xhi,
		ylo: ylo, yhi: yhi,
	}

	p.printf("%%!PS-Adobe-3.0\n")
	p.printf("%%%%BoundingBox: 0 0 %d %d\n", pageWidth, pageHeight)
	p.printf("%%%%Title: %s\n", escape(title))
	p.printf("%%%%EndComments\n")
	p.printf("/grid_color {.7 1 1} def\n")
	p.printf("/grid_major_color {1 .6 .6} def\n")
	p.printf("/radius 1.5 def\n")

	p.grid()

	p.printf("\n%% original\n0 0 0 setrgbcolor 1 setlinewidth\n")
	p.curve(a.X, a.V)
	p.dots(a.X, a.V)

	p.printf("\n%% resampled\n1 0 0 setrgbcolor .75 setlinewidth\n")
	p.curve(a.XNew, a.VNew)

	p.printf("\n0 0 0 setrgbcolor /Helvetica findfont 12 scalefont setfont\n")
	p.printf("%d %d moveto (%s) show\n", margin, pageHeight-margin+15, escape(title))
	p.printf("%d %d moveto (x: %g .. %g   y: %g .. %g) show\n",
		margin, margin-20, xlo, xhi, ylo, yhi)
	p.printf("\nshowpage\n%%%%EOF\n")

	if p.err != nil {
		return p.err
	}

	return p.w.Flush()
}

// PSSink writes a PostScript plot on every failure. With Dir set each plot
// gets its own file named after a fresh UUID; otherwise Path is overwritten.
// Write errors are logged, never returned.
type PSSink struct {
	Path   string
	Dir    string
	Title  string
	Logger *slog.Logger
}

func (s PSSink) target() string {
	if s.Dir == "" {
		return s.Path
	}

	return filepath.Join(s.Dir, "resample-"+uuid.New().String()+".ps")
}

// OnFailure implements Sink.
func (s PSSink) OnFailure(a Arrays) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path := s.target()

	if err := s.write(path, a); err != nil {
		logger.Warn("diagnostics plot not written", "path", path, "error", err)
		return
	}

	logger.Info("diagnostics plot written", "path", path)
}

func (s PSSink) write(path string, a Arrays) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WritePS(f, a, s.Title)
}

type plotter struct {
	w        *bufio.Writer
	err      error
	xlo, xhi float64
	ylo, yhi float64
}

func (p *plotter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// page maps data coordinates to page coordinates.
func (p *plotter) page(x, y float64) (float64, float64) {
	px := margin + (x-p.xlo)/(p.xhi-p.xlo)*(pageWidth-2*margin)
	py := margin + (y-p.ylo)/(p.yhi-p.ylo)*(pageHeight-2*margin)

	return px, py
}

func (p *plotter) grid() {
	const w, h = pageWidth - 2*margin, pageHeight - 2*margin

	p.printf("\n%% grid\ngsave .5 setlinewidth grid_color setrgbcolor newpath\n")

	for i := 1; i < divisions; i++ {
		p.printf("%g %d moveto 0 %d rlineto\n", margin+float64(i)*w/divisions, margin, h)
		p.printf("%d %g moveto %d 0 rlineto\n", margin, margin+float64(i)*h/divisions, w)
	}

	p.printf("stroke\n1.5 setlinewidth grid_major_color setrgbcolor\n")
	p.printf("newpath %d %d moveto %d 0 rlineto 0 %d rlineto %d 0 rlineto closepath stroke\n",
		margin, margin, w, h, -w)
	p.printf("grestore\n")
}

// curve strokes a polyline through the finite points of (xs, ys).
func (p *plotter) curve(xs, ys []float64) {
	n := min(len(xs), len(ys))
	open := false

	p.printf("newpath\n")

	for i := range n {
		if !finite(xs[i]) || !finite(ys[i]) {
			open = false
			continue
		}

		px, py := p.page(xs[i], ys[i])
		if open {
			p.printf("%.3f %.3f lineto\n", px, py)
		} else {
			p.printf("%.3f %.3f moveto\n", px, py)
			open = true
		}
	}

	p.printf("stroke\n")
}

func (p *plotter) dots(xs, ys []float64) {
	n := min(len(xs), len(ys))

	for i := range n {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}

		px, py := p.page(xs[i], ys[i])
		p.printf("newpath %.3f %.3f radius 0 360 arc fill\n", px, py)
	}
}

// bounds returns the finite extent of a and b together.
func bounds(a, b []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)

	for _, s := range [][]float64{a, b} {
		l, h, found := arrays.MinMax(finiteOnly(s))
		if !found {
			continue
		}

		lo, hi, ok = math.Min(lo, l), math.Max(hi, h), true
	}

	return lo, hi, ok
}

// pad widens [lo, hi] by 5% and makes degenerate ranges non-empty.
func pad(lo, hi float64) (float64, float64) {
	if hi == lo {
		d := math.Max(math.Abs(lo), 1) * 0.5
		return lo - d, hi + d
	}

	d := (hi - lo) * 0.05

	return lo - d, hi + d
}

func finiteOnly(x []float64) []float64 {
	out := make([]float64, 0, len(x))

	for _, v := range x {
		if finite(v) {
			out = append(out, v)
		}
	}

	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

var psEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\n", " ")

func escape(s string) string {
	return psEscaper.Replace(s)
}
