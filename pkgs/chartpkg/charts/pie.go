package charts

import (
	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/aggregator"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
)

const DEFAULT_PIE_TERMS = 10

// WordFrequencyPie shows the top n terms of posts and replies as two donuts
// side by side.
func WordFrequencyPie(postWords, replyWords model.WordCountTable, n int) *grob.Fig {
	if n <= 0 {
		n = DEFAULT_PIE_TERMS
	}

	return &grob.Fig{
		Data: []types.Trace{
			donut(aggregator.Head(postWords, n), 0, "Tweets"),
			donut(aggregator.Head(replyWords, n), 1, "Replies"),
		},
		Layout: &grob.Layout{
			Title: title("Word Frequency"),
			Grid:  &grob.LayoutGrid{Rows: types.I(1), Columns: types.I(2)},
			Annotations: []grob.LayoutAnnotation{
				donutLabel("Tweets", 0.20),
				donutLabel("Replies", 0.8),
			},
		},
	}
}

func donut(words model.WordCountTable, column int, name string) *grob.Pie {
	labels := make([]string, 0, len(words))
	values := make([]float64, 0, len(words))
	for _, w := range words {
		labels = append(labels, w.Word)
		values = append(values, float64(w.Count))
	}

	return &grob.Pie{
		Name:   types.S(name),
		Labels: types.DataArray(labels),
		Values: types.DataArray(values),
		Domain: &grob.PieDomain{Column: types.I(column)},
		Hole:   types.N(.4),
	}
}

func donutLabel(text string, x float64) grob.LayoutAnnotation {
	return grob.LayoutAnnotation{
		Font:      &grob.LayoutAnnotationFont{Size: types.N(20)},
		Showarrow: types.False,
		Text:      types.S(text),
		X:         x,
		Y:         0.5,
	}
}
