package charts

import (
	"fmt"
	"math"
	"strconv"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"
)

// needle geometry in paper coordinates
var (
	needleCoords = [3][2]float64{
		{0.235, 0.5},
		{0.24, 0.65},
		{0.245, 0.5},
	}
	needlePivot = [2]float64{0.24, 0.5}
)

const needleSweep = -80.0

// SentimentGauge draws polarity in [-1, 1] as a half dial: a blank base pie
// for the scale labels, a coloured meter pie and a needle rotated around the
// dial centre.
func SentimentGauge(polarity float64) *grob.Fig {
	polarity = math.Max(-1, math.Min(1, polarity))

	white := "rgb(255, 255, 255)"
	base := &grob.Pie{
		Name:   "Gauge",
		Values: types.DataArray([]float64{40, 20, 20, 20}),
		Labels: types.DataArray([]string{"-", "-1", "0", "1"}),
		Domain: &grob.PieDomain{X: []float64{0, .48}},
		Marker: &grob.PieMarker{
			Colors: colors(white, white, white, white),
			Line:   &grob.PieMarkerLine{Width: types.ArrayOKValue(types.N(0))},
		},
		Hole:         types.N(.4),
		Direction:    grob.PieDirectionClockwise,
		Rotation:     types.N(108),
		Showlegend:   types.False,
		Hoverinfo:    types.ArrayOKValue(grob.PieHoverinfoNone),
		Textinfo:     grob.PieTextinfoLabel,
		Textposition: types.ArrayOKValue(grob.PieTextpositionOutside),
	}

	third := 50.0 / 3
	meter := &grob.Pie{
		Name:   "Gauge",
		Values: types.DataArray([]float64{50, third, third, third}),
		Labels: types.DataArray([]string{"Polarity", "Negative", "Neutral", "Positive"}),
		Marker: &grob.PieMarker{
			Colors: colors(
				white,
				"rgb(255, 102, 102)", // light red
				"rgb(192, 192, 192)", // grey
				"rgb(178, 255, 102)", // light green
			),
		},
		Domain:       &grob.PieDomain{X: []float64{0, 0.48}},
		Hole:         types.N(.3),
		Direction:    grob.PieDirectionClockwise,
		Rotation:     types.N(90),
		Showlegend:   types.False,
		Textinfo:     grob.PieTextinfoLabel,
		Textposition: types.ArrayOKValue(grob.PieTextpositionInside),
		Hoverinfo:    types.ArrayOKValue(grob.PieHoverinfoNone),
	}

	return &grob.Fig{
		Data: []types.Trace{base, meter},
		Layout: &grob.Layout{
			Xaxis: &grob.LayoutXaxis{
				Showticklabels: types.False,
				Showgrid:       types.False,
				Zeroline:       types.False,
			},
			Yaxis: &grob.LayoutYaxis{
				Showticklabels: types.False,
				Showgrid:       types.False,
				Zeroline:       types.False,
			},
			Shapes: []grob.LayoutShape{{
				Type:      grob.LayoutShapeTypePath,
				Path:      types.S(NeedlePath(polarity)),
				Fillcolor: "rgba(44, 160, 101, 0.5)",
				Line:      &grob.LayoutShapeLine{Width: types.N(0.5)},
				Xref:      grob.LayoutShapeXrefPaper,
				Yref:      grob.LayoutShapeYrefPaper,
			}},
			Annotations: []grob.LayoutAnnotation{{
				Xref:      grob.LayoutAnnotationXrefPaper,
				Yref:      grob.LayoutAnnotationYrefPaper,
				X:         0.23,
				Y:         0.45,
				Showarrow: types.False,
				Text:      types.S(formatPolarity(polarity)),
			}},
		},
	}
}

// NeedlePath is the svg path of the needle pointing at polarity
func NeedlePath(polarity float64) string {
	p := rotateNeedle(needleSweep * polarity)
	return fmt.Sprintf("M %s %s L %s %s L %s %s Z",
		coord(p[0][0]), coord(p[0][1]),
		coord(p[1][0]), coord(p[1][1]),
		coord(p[2][0]), coord(p[2][1]),
	)
}

// rotateNeedle turns the needle counter-clockwise by angle degrees
func rotateNeedle(angle float64) [3][2]float64 {
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)

	var res [3][2]float64
	for i, pt := range needleCoords {
		dx := pt[0] - needlePivot[0]
		dy := pt[1] - needlePivot[1]
		res[i] = [2]float64{
			dx*cos - dy*sin + needlePivot[0],
			dx*sin + dy*cos + needlePivot[1],
		}
	}
	return res
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatPolarity(polarity float64) string {
	rounded := math.Round(polarity*1000) / 1000
	if rounded == 0 {
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
