// Package render draws the registered polynomial family and the fitted
// lower envelope as a self-contained HTML line chart. Rendering is
// purely presentational; it consumes the problem and a solver solution
// and has no algorithmic content.
package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/polyenv/polyenv/internal/conic"
	"github.com/polyenv/polyenv/internal/envelope"
)

// Options configures the envelope chart.
type Options struct {
	// Points is the number of samples across the extended domain;
	// values below 2 select the default of 1000.
	Points int

	// Title overrides the generated chart title when non-empty.
	Title string
}

// WriteChart samples every registered polynomial, plus the envelope
// recovered from sol when sol is non-nil, and renders a line chart to w.
// The sampling range extends 5% past the domain on each side; dashed
// mark lines indicate the domain boundaries. The envelope is drawn with
// a small downward offset so it stays visible underneath the family.
func WriteChart(w io.Writer, prob *envelope.Problem, sol *conic.Solution, o Options) error {
	if prob.Count() == 0 {
		return fmt.Errorf("render: %w", envelope.ErrEmptyInstance)
	}
	points := o.Points
	if points < 2 {
		points = 1000
	}

	cfg := prob.Config()
	dom := cfg.Domain[0]
	pad := 0.05 * (dom.Max - dom.Min)
	xMin, xMax := dom.Min-pad, dom.Max+pad

	xs := make([]float64, points)
	for i := range xs {
		xs[i] = xMin + float64(i)*(xMax-xMin)/float64(points-1)
	}

	family := make([][]float64, prob.Count())
	for i := range family {
		ys, err := prob.Curve(prob.Bound(i), xs)
		if err != nil {
			return fmt.Errorf("render: sampling polynomial %d: %w", i, err)
		}
		family[i] = ys
	}

	var envCurve []float64
	if sol != nil {
		env, err := prob.ProjectInterpolant(sol)
		if err != nil {
			return fmt.Errorf("render: projecting solution: %w", err)
		}
		envCurve, err = prob.Curve(env, xs)
		if err != nil {
			return fmt.Errorf("render: sampling envelope: %w", err)
		}
	}

	// Visible range: the family's minimum inside the domain, up to the
	// highest point the pointwise minimum reaches.
	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	for i, x := range xs {
		if x < dom.Min || x > dom.Max {
			continue
		}
		localMin := math.Inf(1)
		for _, ys := range family {
			yMin = math.Min(yMin, ys[i])
			localMin = math.Min(localMin, ys[i])
		}
		yMax = math.Max(yMax, localMin)
	}

	title := o.Title
	if title == "" {
		mode := "unweighted"
		if cfg.Weighted {
			mode = "weighted"
		}
		title = fmt.Sprintf("Lower envelope, %s, degree %d", mode, prob.Dimension()-1)
	}

	yBoundOffset := (yMax - yMin) / 50
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Min:  yMin - yBoundOffset,
			Max:  yMax + yBoundOffset,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	for i, ys := range family {
		line.AddSeries(fmt.Sprintf("p%d", i), lineData(xs, ys))
	}

	if envCurve != nil {
		offset := (yMax - yMin) / 100
		shifted := make([]float64, len(envCurve))
		for i, y := range envCurve {
			shifted[i] = y - offset
		}
		line.AddSeries("lower envelope", lineData(xs, shifted),
			charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  "domain min",
				XAxis: dom.Min,
			}),
			charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  "domain max",
				XAxis: dom.Max,
			}),
			charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				Label:     &opts.Label{Show: opts.Bool(true)},
				LineStyle: &opts.LineStyle{Type: "dashed", Width: 1},
			}),
		)
	}

	return line.Render(w)
}

func lineData(xs, ys []float64) []opts.LineData {
	data := make([]opts.LineData, len(xs))
	for i := range xs {
		data[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
	}
	return data
}
