package overview

import "github.com/cornish/revu/codeview"

// RowGroup is a contiguous run of line shapes drawn as one overview row.
type RowGroup struct {
	Shapes []LineShape
}

// Representative returns the first line of the group.
func (g *RowGroup) Representative() (line int, ok bool) {
	if g == nil || len(g.Shapes) == 0 {
		return 0, false
	}
	return g.Shapes[0].Line, true
}

// Lines returns every line number in the group.
func (g *RowGroup) Lines() []int {
	if g == nil {
		return nil
	}
	lines := make([]int, len(g.Shapes))
	for i, s := range g.Shapes {
		lines[i] = s.Line
	}
	return lines
}

// ChunkSize returns how many lines each row group holds.
// Files that fit get one line per row; otherwise lines are spread evenly.
func ChunkSize(totalLines, rowCount int) int {
	if rowCount <= 0 || totalLines <= rowCount {
		return 1
	}
	return (totalLines + rowCount - 1) / rowCount
}

// Aggregate splits content into exactly rowCount row slots using the default
// shape options. Slots past the last group are nil.
func Aggregate(content string, rowCount int) []*RowGroup {
	return AggregateLines(codeview.Lines(content), rowCount, DefaultShapeOptions())
}

// AggregateLines is Aggregate for already split lines.
func AggregateLines(lines []string, rowCount int, opts ShapeOptions) []*RowGroup {
	if rowCount <= 0 {
		return nil
	}
	return AggregateShapes(GenerateLineShapes(lines, opts), rowCount)
}

// AggregateShapes partitions shapes into groups of ChunkSize and returns
// exactly rowCount slots.
func AggregateShapes(shapes []LineShape, rowCount int) []*RowGroup {
	if rowCount <= 0 {
		return nil
	}

	size := ChunkSize(len(shapes), rowCount)
	slots := make([]*RowGroup, rowCount)
	for i := 0; i < rowCount; i++ {
		start := i * size
		if start >= len(shapes) {
			break
		}
		end := start + size
		if end > len(shapes) {
			end = len(shapes)
		}
		slots[i] = &RowGroup{Shapes: shapes[start:end]}
	}
	return slots
}
