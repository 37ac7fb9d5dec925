/*
NAME
  stats_plot.go

DESCRIPTION
  RenderBitratePlot is a library function (not a command-line dumper) that
  renders a stream's per-packet size series to a PNG, for use from tests and
  interactive diagnostics.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavl

import (
	"bytes"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderBitratePlot renders sizes (one entry per packet, in bytes) as a
// line plot titled title and returns the encoded PNG bytes. It is intended
// for diagnostics and tests, not for any on-disk or wire format.
func RenderBitratePlot(title string, sizes []float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "packet index"
	p.Y.Label.Text = "size (bytes)"

	pts := make(plotter.XYs, len(sizes))
	for i, sz := range sizes {
		pts[i].X = float64(i)
		pts[i].Y = sz
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "building bitrate line plotter")
	}
	p.Add(line)

	w, err := p.WriterTo(6*vg.Inch, 3*vg.Inch, "png")
	if err != nil {
		return nil, errors.Wrap(err, "creating plot writer")
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "encoding plot png")
	}
	return buf.Bytes(), nil
}
