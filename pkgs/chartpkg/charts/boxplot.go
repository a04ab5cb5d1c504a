package charts

import (
	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
)

// EngagementBoxplot compares favorites and retweets of the ranked posts
func EngagementBoxplot(posts model.PostTable) *grob.Fig {
	favorites := make([]int64, 0, len(posts))
	retweets := make([]int64, 0, len(posts))
	for _, p := range posts {
		favorites = append(favorites, p.Favorites)
		retweets = append(retweets, p.Retweets)
	}

	return &grob.Fig{
		Data: []types.Trace{
			engagementBox("favorites", favorites, "rgba(93, 164, 214, 0.5)"),
			engagementBox("retweets", retweets, "rgba(255, 65, 54, 0.5)"),
		},
		Layout: &grob.Layout{
			Title: title("Retweets and Favorites"),
			Yaxis: &grob.LayoutYaxis{
				Autorange:     grob.LayoutYaxisAutorangeTrue,
				Showgrid:      types.True,
				Zeroline:      types.True,
				Dtick:         5,
				Gridcolor:     "rgb(255, 255, 255)",
				Gridwidth:     types.N(1),
				Zerolinecolor: "rgb(255, 255, 255)",
				Zerolinewidth: types.N(2),
			},
			Margin: &grob.LayoutMargin{
				L: types.N(40),
				R: types.N(30),
				B: types.N(80),
				T: types.N(100),
			},
			PaperBgcolor: "rgb(243, 243, 243)",
			PlotBgcolor:  "rgb(243, 243, 243)",
			Showlegend:   types.False,
		},
	}
}

func engagementBox(name string, values []int64, color string) *grob.Box {
	return &grob.Box{
		Name:         types.S(name),
		Y:            types.DataArray(values),
		Boxpoints:    grob.BoxBoxpointsAll,
		Jitter:       types.N(0.5),
		Whiskerwidth: types.N(0.2),
		Fillcolor:    types.C(color),
		Marker:       &grob.BoxMarker{Size: types.N(2)},
		Line:         &grob.BoxLine{Width: types.N(1)},
	}
}
