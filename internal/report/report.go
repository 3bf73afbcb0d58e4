package report

import (
	"fmt"
	"os"
	"time"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/alexiusacademia/gotruss/internal/diagram"
)

// Options selects what a run writes to disk
type Options struct {
	Dir    string
	Figure bool
	PDF    bool
	XLSX   bool
	Now    time.Time
}

// Save writes the outputs of a run under opts.Dir. The run info text file is
// always written; the other files only when requested. The returned Paths
// leaves unwritten entries empty.
func Save(res *assembly.Result, opts Options) (Paths, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return Paths{}, fmt.Errorf("creating output directory: %w", err)
	}

	all := PathsFor(opts.Dir, opts.Now)
	var written Paths

	if opts.Figure {
		if _, err := diagram.SaveFigure(FigureData(res), all.Figure); err != nil {
			return written, fmt.Errorf("saving figure: %w", err)
		}
		written.Figure = all.Figure
	}

	if err := SaveRunInfo(all.RunInfo, res); err != nil {
		return written, fmt.Errorf("saving run info: %w", err)
	}
	written.RunInfo = all.RunInfo

	if opts.PDF {
		if err := WritePDF(all.PDF, res, written.Figure, opts.Now); err != nil {
			return written, fmt.Errorf("saving pdf report: %w", err)
		}
		written.PDF = all.PDF
	}

	if opts.XLSX {
		if err := WriteXLSX(all.XLSX, res); err != nil {
			return written, fmt.Errorf("saving xlsx report: %w", err)
		}
		written.XLSX = all.XLSX
	}

	return written, nil
}
