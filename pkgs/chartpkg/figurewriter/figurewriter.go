package figurewriter

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	log "github.com/sirupsen/logrus"
)

var page = template.Must(template.New("figure").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.Cdn}}"></script>
</head>
<body>
<div id="figure" style="width:100%;height:100vh;"></div>
<script>
var figure = {{.Figure}};
Plotly.newPlot("figure", figure.data, figure.layout, {responsive: true});
</script>
</body>
</html>
`))

type pageData struct {
	Title  string
	Cdn    string
	Figure *grob.Fig
}

////////////////////////////////////////////////////////////////////////////////

// Write renders fig as a standalone html page at path
func Write(path string, title string, fig *grob.Fig) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := page.Execute(file, pageData{Title: title, Cdn: fig.Info().Cdn, Figure: fig}); err != nil {
		return fmt.Errorf("failed to render %s: %w", title, err)
	}
	return file.Close()
}

// WriteAll writes <dir>/<name>.html for every figure, replacing older files
func WriteAll(dir string, figures map[string]*grob.Fig) ([]string, error) {
	names := make([]string, 0, len(figures))
	for name := range figures {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name+".html")
		if err := Write(path, name, figures[name]); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"caller": "WriteAll", "path": path}).Debugln("figure written")
		paths = append(paths, path)
	}
	return paths, nil
}
