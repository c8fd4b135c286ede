package overview

import (
	"github.com/cornish/revu/codeview"
	"github.com/cornish/revu/linter"
)

// Options configures an overview build.
type Options struct {
	Geometry Geometry
	Shapes   ShapeOptions
}

// DefaultOptions returns pixel geometry with default shape options.
func DefaultOptions() Options {
	return Options{
		Geometry: DefaultGeometry(),
		Shapes:   DefaultShapeOptions(),
	}
}

// Overview is the painted result for one file at one height.
type Overview struct {
	Rows       []Row
	RowCount   int
	ChunkSize  int
	TotalLines int
}

// RowForLine returns the index of the row that holds line.
func (o Overview) RowForLine(line int) (int, bool) {
	if line < 1 || line > o.TotalLines || o.ChunkSize <= 0 {
		return 0, false
	}
	idx := (line - 1) / o.ChunkSize
	if idx >= len(o.Rows) {
		return 0, false
	}
	return idx, true
}

// Build derives the whole overview from content, the measured height and the
// selected messages. An unmeasured or zero height yields an empty overview.
func Build(content string, height int, measured bool, messages *linter.MessageMap, opts Options) Overview {
	if !measured || height <= 0 {
		return Overview{}
	}

	lines := codeview.Lines(content)
	rowCount := opts.Geometry.RowCount(height)
	groups := AggregateLines(lines, rowCount, opts.Shapes)

	rows := make([]Row, len(groups))
	for i, group := range groups {
		rows[i] = Paint(i, group, messages, opts.Geometry)
	}

	return Overview{
		Rows:       rows,
		RowCount:   rowCount,
		ChunkSize:  ChunkSize(len(lines), rowCount),
		TotalLines: len(lines),
	}
}
