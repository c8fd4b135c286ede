package overview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTwoRows(t *testing.T) {
	groups := Aggregate("a\nb\nc\nd", 2)
	require.Len(t, groups, 2)
	assert.Equal(t, []int{1, 2}, groups[0].Lines())
	assert.Equal(t, []int{3, 4}, groups[1].Lines())

	line, ok := groups[1].Representative()
	assert.True(t, ok)
	assert.Equal(t, 3, line)
}

func TestAggregateZeroRows(t *testing.T) {
	assert.Empty(t, Aggregate("a\nb", 0))
	assert.Empty(t, Aggregate("a\nb", -3))
}

func TestAggregateEmptyContent(t *testing.T) {
	groups := Aggregate("", 3)
	require.Len(t, groups, 3)
	for _, g := range groups {
		assert.Nil(t, g)
	}
}

func TestAggregateFewerLinesThanRows(t *testing.T) {
	groups := Aggregate("a\nb", 5)
	require.Len(t, groups, 5)
	assert.Equal(t, []int{1}, groups[0].Lines())
	assert.Equal(t, []int{2}, groups[1].Lines())
	assert.Nil(t, groups[2])
	assert.Nil(t, groups[4])
}

func TestAggregateSlotCounts(t *testing.T) {
	for _, total := range []int{1, 2, 7, 10, 11, 99, 100, 101, 257} {
		for _, rows := range []int{1, 3, 10, 50} {
			t.Run(fmt.Sprintf("%d lines %d rows", total, rows), func(t *testing.T) {
				lines := make([]string, total)
				for i := range lines {
					lines[i] = "x"
				}
				groups := Aggregate(strings.Join(lines, "\n"), rows)
				require.Len(t, groups, rows)

				size := ChunkSize(total, rows)
				wantFilled := (total + size - 1) / size
				if wantFilled > rows {
					wantFilled = rows
				}

				filled := 0
				next := 1
				for _, g := range groups {
					if g == nil {
						continue
					}
					filled++
					for _, line := range g.Lines() {
						assert.Equal(t, next, line, "groups partition lines in order")
						next++
					}
				}
				assert.Equal(t, wantFilled, filled)
				assert.Equal(t, total+1, next, "every line belongs to a group")
			})
		}
	}
}

func TestRowGroupNil(t *testing.T) {
	var g *RowGroup
	_, ok := g.Representative()
	assert.False(t, ok)
	assert.Nil(t, g.Lines())
}
