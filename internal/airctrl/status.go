package airctrl

// Store holds the last known raw status of one device. It is confined to the
// actor that owns the device connection: observed statuses replace the map,
// accepted command batches are merged in optimistically so projections
// reflect a write before the next observation confirms it.
type Store struct {
	status    RawStatus
	available bool
}

// NewStore returns an empty store marked unavailable.
func NewStore() *Store {
	return &Store{status: RawStatus{}}
}

// Replace installs a freshly observed status and marks the device available.
func (s *Store) Replace(status RawStatus) {
	next := make(RawStatus, len(status))
	for k, v := range status {
		next[k] = v
	}
	s.status = next
	s.available = true
}

// Merge applies an accepted write batch on top of the current status.
func (s *Store) Merge(batch RawStatus) {
	for k, v := range batch {
		s.status[k] = v
	}
}

// SetUnavailable marks the device unreachable. The last status is kept so a
// reconnect can diff against it.
func (s *Store) SetUnavailable() {
	s.available = false
}

// Available reports whether the device has a current status.
func (s *Store) Available() bool {
	return s.available
}

// Get looks up one raw key.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.status[key]
	return v, ok
}

// Current returns the stored status. The map must not be mutated by callers;
// it is replaced wholesale on the next observation.
func (s *Store) Current() RawStatus {
	return s.status
}
