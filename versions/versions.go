// Package versions holds the version list of an extension and the state
// machine behind the compare-versions chooser.
package versions

import "context"

// Channel is the distribution channel of a version.
type Channel string

const (
	ChannelListed   Channel = "listed"
	ChannelUnlisted Channel = "unlisted"
)

// ListItem is one entry of a version list.
type ListItem struct {
	ID      int
	Version string
}

// Map is the version list of one extension, newest first within each channel.
type Map struct {
	Listed   []ListItem
	Unlisted []ListItem
}

// All returns listed versions followed by unlisted ones.
func (m *Map) All() []ListItem {
	if m == nil {
		return nil
	}
	all := make([]ListItem, 0, len(m.Listed)+len(m.Unlisted))
	all = append(all, m.Listed...)
	return append(all, m.Unlisted...)
}

// Find looks a version up by id.
func (m *Map) Find(id int) (ListItem, Channel, bool) {
	if m == nil {
		return ListItem{}, "", false
	}
	for _, v := range m.Listed {
		if v.ID == id {
			return v, ChannelListed, true
		}
	}
	for _, v := range m.Unlisted {
		if v.ID == id {
			return v, ChannelUnlisted, true
		}
	}
	return ListItem{}, "", false
}

// Len returns the total number of versions.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Listed) + len(m.Unlisted)
}

// Predicate decides whether a version may be picked.
type Predicate func(ListItem) bool

// HigherVersionsThan accepts versions newer than id.
// An unset id (zero) accepts nothing.
func HigherVersionsThan(id int) Predicate {
	return func(v ListItem) bool {
		return id > 0 && v.ID > id
	}
}

// LowerVersionsThan accepts versions older than id.
// An unset id (zero) accepts nothing.
func LowerVersionsThan(id int) Predicate {
	return func(v ListItem) bool {
		return id > 0 && v.ID < id
	}
}

// Fetcher loads the version list of an extension.
type Fetcher interface {
	FetchVersionsList(ctx context.Context, addonID int) (*Map, error)
}
