package versions

import "context"

// Option is one row of a version list in the chooser.
type Option struct {
	Item       ListItem
	Channel    Channel
	Selectable bool
	Selected   bool
}

// Chooser drives the compare-versions popover: it keeps the pending
// selection in sync with the versions on screen and produces routes.
type Chooser struct {
	AddonID int
	Lang    string

	store   *Store
	fetcher Fetcher
	visible bool
}

// NewChooser creates a chooser over store.
func NewChooser(addonID int, lang string, store *Store, fetcher Fetcher) *Chooser {
	return &Chooser{
		AddonID: addonID,
		Lang:    lang,
		store:   store,
		fetcher: fetcher,
	}
}

// Visible reports whether the chooser is shown.
func (c *Chooser) Visible() bool { return c.visible }

// Show opens the chooser.
func (c *Chooser) Show() { c.visible = true }

// Hide closes the chooser.
func (c *Chooser) Hide() { c.visible = false }

// Loading reports whether the version list is still missing.
func (c *Chooser) Loading() bool {
	return c.store.Versions(c.AddonID) == nil
}

// Mount synchronizes the pending selection and reports whether the
// version list has to be fetched first.
func (c *Chooser) Mount() (needsFetch bool) {
	c.Synchronize()
	return c.Loading()
}

// Fetch loads the version list. It does not touch the store, so it can run
// off the UI goroutine; pass the result to Receive.
func (c *Chooser) Fetch(ctx context.Context) (*Map, error) {
	return c.fetcher.FetchVersionsList(ctx, c.AddonID)
}

// Receive stores a fetched version list.
func (c *Chooser) Receive(m *Map) {
	c.store.SetVersions(c.AddonID, m)
	c.Synchronize()
}

// Synchronize fills in unset pending versions, one rule per pass, until
// nothing changes:
//
//  1. copy the current base into an unset pending base
//  2. copy the current head into an unset pending head
//  3. stop once a pending base exists
//  4. otherwise pick the lowest available version as the pending base
func (c *Chooser) Synchronize() {
	for c.synchronizeOnce() {
	}
}

func (c *Chooser) synchronizeOnce() bool {
	st := c.store.State()

	if st.PendingBase == 0 && st.CurrentBase != 0 {
		c.store.SetPendingBase(st.CurrentBase)
		return true
	}
	if st.PendingHead == 0 && st.CurrentHead != 0 {
		c.store.SetPendingHead(st.CurrentHead)
		return true
	}
	if st.PendingBase != 0 {
		return false
	}

	all := c.store.Versions(c.AddonID).All()
	if len(all) == 0 || all[len(all)-1].ID == 0 {
		return false
	}
	c.store.SetPendingBase(all[len(all)-1].ID)
	return true
}

// SetBase changes the pending old version.
func (c *Chooser) SetBase(id int) {
	c.store.SetPendingBase(id)
	c.Synchronize()
}

// SetHead changes the pending new version.
func (c *Chooser) SetHead(id int) {
	c.store.SetPendingHead(id)
	c.Synchronize()
}

// BaseOptions lists candidates for the old version: older than the pending head.
func (c *Chooser) BaseOptions() []Option {
	st := c.store.State()
	return c.options(LowerVersionsThan(st.PendingHead), st.PendingBase)
}

// HeadOptions lists candidates for the new version: newer than the pending base.
func (c *Chooser) HeadOptions() []Option {
	st := c.store.State()
	return c.options(HigherVersionsThan(st.PendingBase), st.PendingHead)
}

func (c *Chooser) options(selectable Predicate, selected int) []Option {
	m := c.store.Versions(c.AddonID)
	if m == nil {
		return nil
	}
	opts := make([]Option, 0, m.Len())
	add := func(items []ListItem, ch Channel) {
		for _, v := range items {
			opts = append(opts, Option{
				Item:       v,
				Channel:    ch,
				Selectable: selectable(v),
				Selected:   v.ID == selected,
			})
		}
	}
	add(m.Listed, ChannelListed)
	add(m.Unlisted, ChannelUnlisted)
	return opts
}

// CanSubmit reports whether the pending versions differ.
func (c *Chooser) CanSubmit() bool {
	st := c.store.State()
	return st.PendingBase != st.PendingHead
}

// Submit hides the chooser and returns the compare route for the pending
// versions, keeping the selected path. ok is false while submitting is
// disabled.
func (c *Chooser) Submit() (route string, ok bool) {
	if !c.CanSubmit() {
		return "", false
	}
	st := c.store.State()
	c.Hide()
	return CompareURL(c.Lang, c.AddonID, st.PendingBase, st.PendingHead, st.SelectedPath), true
}

// BrowseBase returns the browse route for the pending old version.
func (c *Chooser) BrowseBase() (string, bool) {
	return c.browse(c.store.State().PendingBase)
}

// BrowseHead returns the browse route for the pending new version.
func (c *Chooser) BrowseHead() (string, bool) {
	return c.browse(c.store.State().PendingHead)
}

func (c *Chooser) browse(id int) (string, bool) {
	if id == 0 {
		return "", false
	}
	c.Hide()
	return BrowseURL(c.Lang, c.AddonID, id), true
}

// Pending returns the pending old and new version ids; 0 means unset.
func (c *Chooser) Pending() (base, head int) {
	st := c.store.State()
	return st.PendingBase, st.PendingHead
}
