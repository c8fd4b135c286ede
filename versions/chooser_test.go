package versions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	m     *Map
	err   error
	calls int
}

func (f *stubFetcher) FetchVersionsList(_ context.Context, _ int) (*Map, error) {
	f.calls++
	return f.m, f.err
}

func TestSynchronizeCopiesCurrentVersions(t *testing.T) {
	store := NewStore()
	store.SetVersions(7, sampleMap())
	store.SetCurrent(20, 30)

	c := NewChooser(7, "en-US", store, &stubFetcher{})
	assert.False(t, c.Mount())

	st := store.State()
	assert.Equal(t, 20, st.PendingBase)
	assert.Equal(t, 30, st.PendingHead)
}

func TestSynchronizeDefaultsToLowestVersion(t *testing.T) {
	store := NewStore()
	store.SetVersions(7, sampleMap())
	store.SetCurrent(0, 30)

	c := NewChooser(7, "en-US", store, &stubFetcher{})
	c.Mount()

	st := store.State()
	assert.Equal(t, 10, st.PendingBase, "last entry of listed then unlisted")
	assert.Equal(t, 30, st.PendingHead)
}

func TestSynchronizeKeepsExistingPendingBase(t *testing.T) {
	store := NewStore()
	store.SetVersions(7, sampleMap())
	store.SetPendingBase(25)
	store.SetCurrent(20, 30)

	NewChooser(7, "en-US", store, &stubFetcher{}).Mount()

	st := store.State()
	assert.Equal(t, 25, st.PendingBase)
	assert.Equal(t, 30, st.PendingHead)
}

func TestMountFetchesMissingVersions(t *testing.T) {
	store := NewStore()
	store.SetCurrent(0, 30)
	fetcher := &stubFetcher{m: sampleMap()}
	c := NewChooser(7, "en-US", store, fetcher)

	require.True(t, c.Mount())
	assert.True(t, c.Loading())
	assert.Nil(t, c.BaseOptions())
	assert.Equal(t, 0, store.State().PendingBase)

	m, err := c.Fetch(context.Background())
	require.NoError(t, err)
	c.Receive(m)

	assert.False(t, c.Loading())
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 10, store.State().PendingBase, "receiving versions re-synchronizes")
}

func TestFetchError(t *testing.T) {
	boom := errors.New("boom")
	c := NewChooser(7, "en-US", NewStore(), &stubFetcher{err: boom})
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestOptions(t *testing.T) {
	store := NewStore()
	store.SetVersions(7, sampleMap())
	store.SetCurrent(20, 30)
	c := NewChooser(7, "en-US", store, &stubFetcher{})
	c.Mount()

	base := c.BaseOptions()
	require.Len(t, base, 4)
	selectable := map[int]bool{}
	for _, o := range base {
		selectable[o.Item.ID] = o.Selectable
	}
	assert.Equal(t, map[int]bool{30: false, 20: true, 25: true, 10: true}, selectable)
	assert.True(t, base[1].Selected)
	assert.Equal(t, ChannelUnlisted, base[2].Channel)

	head := c.HeadOptions()
	selectable = map[int]bool{}
	for _, o := range head {
		selectable[o.Item.ID] = o.Selectable
	}
	assert.Equal(t, map[int]bool{30: true, 20: false, 25: true, 10: false}, selectable)
	assert.True(t, head[0].Selected)
}

func TestSubmit(t *testing.T) {
	store := NewStore()
	store.SetVersions(7, sampleMap())
	store.SetCurrent(20, 30)
	store.SetSelectedPath("lib/main.js")
	c := NewChooser(7, "en-US", store, &stubFetcher{})
	c.Mount()
	c.Show()

	route, ok := c.Submit()
	require.True(t, ok)
	assert.Equal(t, "/en-US/compare/7/versions/20...30/?path=lib%2Fmain.js", route)
	assert.False(t, c.Visible())
}

func TestSubmitDisabledForSameVersion(t *testing.T) {
	store := NewStore()
	store.SetVersions(7, sampleMap())
	store.SetCurrent(30, 30)
	c := NewChooser(7, "en-US", store, &stubFetcher{})
	c.Mount()
	c.Show()

	assert.False(t, c.CanSubmit())
	_, ok := c.Submit()
	assert.False(t, ok)
	assert.True(t, c.Visible())

	c.SetBase(10)
	route, ok := c.Submit()
	require.True(t, ok)
	assert.Equal(t, "/en-US/compare/7/versions/10...30/", route)
}

func TestBrowse(t *testing.T) {
	store := NewStore()
	c := NewChooser(7, "en-US", store, &stubFetcher{})

	_, ok := c.BrowseHead()
	assert.False(t, ok, "disabled without a version")

	c.SetHead(30)
	route, ok := c.BrowseHead()
	require.True(t, ok)
	assert.Equal(t, "/en-US/browse/7/versions/30/", route)

	c.SetBase(10)
	route, ok = c.BrowseBase()
	require.True(t, ok)
	assert.Equal(t, "/en-US/browse/7/versions/10/", route)
}

func TestStoreOnChange(t *testing.T) {
	store := NewStore()
	changes := 0
	store.OnChange(func() { changes++ })
	store.SetPendingHead(3)
	store.SetSelectedPath("x")
	assert.Equal(t, 2, changes)
}

func TestPending(t *testing.T) {
	store := NewStore()
	c := NewChooser(7, "en-US", store, &stubFetcher{})

	base, head := c.Pending()
	assert.Zero(t, base)
	assert.Zero(t, head)

	store.SetVersions(7, sampleMap())
	c.SetHead(30)
	base, head = c.Pending()
	assert.Equal(t, 10, base)
	assert.Equal(t, 30, head)
	assert.False(t, c.Visible(), "reading pending versions does not open the chooser")
}
