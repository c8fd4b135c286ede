package versions

// State is the version selection state shared by the viewer.
// Zero ids mean "unset".
type State struct {
	ByAddonID map[int]*Map

	CurrentBase int // Base version of the open comparison
	CurrentHead int // Version being viewed

	PendingBase int // Chooser selections not yet submitted
	PendingHead int

	SelectedPath string
}

// Store owns State and notifies a listener after each change.
type Store struct {
	state    State
	onChange func()
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: State{ByAddonID: make(map[int]*Map)}}
}

// OnChange sets the change listener.
func (s *Store) OnChange(fn func()) {
	s.onChange = fn
}

// State returns a copy of the current state.
func (s *Store) State() State {
	return s.state
}

// Versions returns the version list of addonID, or nil when not loaded.
func (s *Store) Versions(addonID int) *Map {
	return s.state.ByAddonID[addonID]
}

// SetVersions stores the version list of addonID.
func (s *Store) SetVersions(addonID int, m *Map) {
	s.state.ByAddonID[addonID] = m
	s.changed()
}

// SetCurrent records the versions on screen.
func (s *Store) SetCurrent(base, head int) {
	s.state.CurrentBase = base
	s.state.CurrentHead = head
	s.changed()
}

// SetPendingBase selects the chooser's old version.
func (s *Store) SetPendingBase(id int) {
	s.state.PendingBase = id
	s.changed()
}

// SetPendingHead selects the chooser's new version.
func (s *Store) SetPendingHead(id int) {
	s.state.PendingHead = id
	s.changed()
}

// SetSelectedPath records the file on screen.
func (s *Store) SetSelectedPath(p string) {
	s.state.SelectedPath = p
	s.changed()
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
