package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleMap() *Map {
	return &Map{
		Listed:   []ListItem{{ID: 30, Version: "3.0"}, {ID: 20, Version: "2.0"}},
		Unlisted: []ListItem{{ID: 25, Version: "2.5b"}, {ID: 10, Version: "1.0"}},
	}
}

func TestMapAll(t *testing.T) {
	all := sampleMap().All()
	ids := make([]int, len(all))
	for i, v := range all {
		ids[i] = v.ID
	}
	assert.Equal(t, []int{30, 20, 25, 10}, ids)

	var nilMap *Map
	assert.Nil(t, nilMap.All())
	assert.Equal(t, 0, nilMap.Len())
}

func TestMapFind(t *testing.T) {
	m := sampleMap()

	v, ch, ok := m.Find(25)
	assert.True(t, ok)
	assert.Equal(t, "2.5b", v.Version)
	assert.Equal(t, ChannelUnlisted, ch)

	_, _, ok = m.Find(99)
	assert.False(t, ok)
}

func TestPredicates(t *testing.T) {
	higher := HigherVersionsThan(20)
	assert.True(t, higher(ListItem{ID: 21}))
	assert.False(t, higher(ListItem{ID: 20}))
	assert.False(t, higher(ListItem{ID: 5}))

	lower := LowerVersionsThan(20)
	assert.True(t, lower(ListItem{ID: 19}))
	assert.False(t, lower(ListItem{ID: 20}))

	assert.False(t, HigherVersionsThan(0)(ListItem{ID: 5}), "unset id selects nothing")
	assert.False(t, LowerVersionsThan(0)(ListItem{ID: 5}))
}
