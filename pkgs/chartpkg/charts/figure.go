package charts

import (
	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"
)

// Cdn is the plotly.js bundle matching the generated graph objects
func Cdn() string {
	return (&grob.Fig{}).Info().Cdn
}

////////////////////////////////////////////////////////////////////////////////

func title(text string) *grob.LayoutTitle {
	return &grob.LayoutTitle{Text: types.S(text)}
}

func colorValue(c string) *types.ArrayOK[*types.ColorWithColorScale] {
	return types.ArrayOKValue(types.UseColor(types.C(c)))
}

func colors(cs ...string) *types.DataArrayType {
	return types.DataArray(types.CN(cs))
}
