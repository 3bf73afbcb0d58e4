package diagram

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Figure size and resolution
const (
	FigureWidth  = 10 * vg.Inch
	FigureHeight = 5 * vg.Inch
	FigureDPI    = 150
)

var (
	colorGoverning = color.RGBA{R: 220, G: 20, B: 20, A: 255}
	colorSafe      = color.RGBA{R: 20, G: 150, B: 60, A: 255}
	colorBar       = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorTarget    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
)

// SaveFigure renders the two-panel figure and writes it to filename.
// The format follows the extension (.png, .svg, .pdf); no extension means png.
func SaveFigure(data FigureData, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		filename += ".png"
		ext = ".png"
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}

	bw := bufio.NewWriter(f)
	err = WriteFigure(bw, data, ext)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filename)
		return "", err
	}
	return filename, nil
}

// WriteFigure renders the figure in the given format (".png", ".svg", ".pdf")
func WriteFigure(w io.Writer, data FigureData, format string) error {
	if len(data.Members) == 0 {
		return fmt.Errorf("figure has no members")
	}

	var canvas vg.CanvasWriterTo
	switch format {
	case ".png":
		canvas = vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(FigureWidth, FigureHeight),
			vgimg.UseDPI(FigureDPI),
		)}
	case ".svg":
		canvas = vgsvg.New(FigureWidth, FigureHeight)
	case ".pdf":
		canvas = vgpdf.New(FigureWidth, FigureHeight)
	default:
		return fmt.Errorf("unsupported figure format %q (want .png, .svg or .pdf)", format)
	}

	if err := drawFigure(draw.New(canvas), data); err != nil {
		return err
	}
	_, err := canvas.WriteTo(w)
	return err
}

func drawFigure(dc draw.Canvas, data FigureData) error {
	left, err := AssemblyPlot(data)
	if err != nil {
		return err
	}
	right, err := SafetyFactorPlot(data)
	if err != nil {
		return err
	}

	// Super title across both panels
	sty := left.Title.TextStyle
	sty.Font.Size = vg.Points(14)
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - vg.Points(6)}, data.SuperTitle())

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadTop:    vg.Points(30),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(6),
		PadX:      vg.Points(24),
	}
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])
	return nil
}

// AssemblyPlot draws every member polyline, governing members in red
func AssemblyPlot(data FigureData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Max allowable load: %.3f kips", data.AllowableLoad)
	p.X.Label.Text = "X location (inches)"
	p.Y.Label.Text = "Y location (inches)"
	p.Add(plotter.NewGrid())

	for _, m := range data.Members {
		if len(m.Points) < 2 {
			return nil, fmt.Errorf("member %s needs at least 2 points, got %d", m.Name, len(m.Points))
		}
		pts := make(plotter.XYs, len(m.Points))
		for i, pt := range m.Points {
			pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2.5)
		line.LineStyle.Color = colorSafe
		if m.Governs {
			line.LineStyle.Color = colorGoverning
		}
		p.Add(line)
		p.Legend.Add(m.Name, line)

		joints, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		joints.GlyphStyle.Color = color.Black
		joints.GlyphStyle.Radius = vg.Points(3)
		joints.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(joints)
	}

	p.Legend.Top = true
	return p, nil
}

// SafetyFactorPlot draws one bar per member with its safety factor printed
// above it and a dashed line at the target factor
func SafetyFactorPlot(data FigureData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Safety Factor by Member"
	p.X.Label.Text = "Member"
	p.Y.Label.Text = "Safety Factor"

	values := make(plotter.Values, len(data.Members))
	names := make([]string, len(data.Members))
	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(data.Members)),
		Labels: make([]string, len(data.Members)),
	}
	for i, m := range data.Members {
		values[i] = m.SafetyFactor
		names[i] = m.Name
		labels.XYs[i] = plotter.XY{X: float64(i), Y: m.SafetyFactor}
		labels.Labels[i] = fmt.Sprintf("%.3f", m.SafetyFactor)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(36))
	if err != nil {
		return nil, err
	}
	bars.Color = colorBar
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	lbl, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	lbl.Offset = vg.Point{Y: vg.Points(3)}
	for i := range lbl.TextStyle {
		lbl.TextStyle[i].XAlign = draw.XCenter
	}
	p.Add(lbl)

	if data.TargetFactor > 0 {
		target, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: data.TargetFactor},
			{X: float64(len(data.Members)) - 0.5, Y: data.TargetFactor},
		})
		if err != nil {
			return nil, err
		}
		target.LineStyle.Color = colorTarget
		target.LineStyle.Width = vg.Points(1.5)
		target.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(target)
		p.Legend.Add(fmt.Sprintf("target %.2f", data.TargetFactor), target)
		p.Legend.Top = true
	}

	p.Y.Min = 0
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v)
	}
	p.Y.Max = math.Max(top, data.TargetFactor) * 1.15
	return p, nil
}
