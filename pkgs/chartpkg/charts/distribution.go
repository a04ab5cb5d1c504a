package charts

import (
	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
)

const polarityBins = 20

// PolarityHistogram bins the polarity of every post
func PolarityHistogram(posts model.PostTable) *grob.Fig {
	polarities := make([]float64, 0, len(posts))
	for _, p := range posts {
		polarities = append(polarities, p.Polarity)
	}

	return &grob.Fig{
		Data: []types.Trace{&grob.Histogram{
			Name:   "polarity",
			X:      types.DataArray(polarities),
			Nbinsx: types.I(polarityBins),
			Marker: &grob.HistogramMarker{Color: colorValue("rgba(44, 160, 101, 0.7)")},
		}},
		Layout: &grob.Layout{
			Title:      title("Polarity Distribution"),
			Xaxis:      &grob.LayoutXaxis{Title: &grob.LayoutXaxisTitle{Text: "polarity"}},
			Yaxis:      &grob.LayoutYaxis{Title: &grob.LayoutYaxisTitle{Text: "posts"}},
			Showlegend: types.False,
		},
	}
}

// DescriptionInfluenceBar plots the average net influence per description
// word. Words no description contains are left as gaps.
func DescriptionInfluenceBar(words model.WordCountTable) *grob.Fig {
	labels := make([]string, 0, len(words))
	values := make([]*float64, 0, len(words))
	for _, w := range words {
		labels = append(labels, w.Word)
		if !w.AvgNetInfluence.Valid {
			values = append(values, nil)
			continue
		}
		v := w.AvgNetInfluence.Float64
		values = append(values, &v)
	}

	return &grob.Fig{
		Data: []types.Trace{&grob.Bar{
			Name:   "avg_net_influence",
			X:      types.DataArray(labels),
			Y:      types.DataArray(values),
			Marker: &grob.BarMarker{Color: colorValue("rgba(93, 164, 214, 0.7)")},
		}},
		Layout: &grob.Layout{
			Title:      title("Net Influence by Description Word"),
			Yaxis:      &grob.LayoutYaxis{Title: &grob.LayoutYaxisTitle{Text: "average net influence"}},
			Showlegend: types.False,
		},
	}
}
