package internal

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

func prepareScatter(scatter *charts.Scatter, title string) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "800px",
			Width:  "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Build an interactive chart of the mesh: vertices as a scatter series, with
// one line series overlapped per edge.
func (m *Mesh) Chart(title string) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter, title)

	points := make([]opts.ScatterData, 0, m.numVertices)
	for _, v := range m.Vertices() {
		p := v.Point()
		points = append(points, opts.ScatterData{
			Value: []float64{p.X, p.Y},
		})
	}
	scatter.AddSeries("Vertices", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "black",
			}),
		)

	for _, e := range m.Edges() {
		name, color, width := "Edges", "gray", float32(1)
		if e.IsConstrained() {
			name, color, width = "Constraints", "darkcyan", 3
		}
		a, b := e.V1().Point(), e.V2().Point()
		line := charts.NewLine()
		line.AddSeries(name, []opts.LineData{
			{Value: []float64{a.X, a.Y}},
			{Value: []float64{b.X, b.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: color,
				Width: width,
			}),
		)
		scatter.Overlap(line)
	}
	return scatter
}

// Write the chart as a standalone HTML page.
func (m *Mesh) RenderHTML(w io.Writer, title string) error {
	return errors.Wrap(m.Chart(title).Render(w), "rendering mesh chart")
}
