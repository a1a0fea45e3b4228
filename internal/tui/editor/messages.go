package editor

import "time"

// SavedMsg reports a completed save.
type SavedMsg struct {
	At time.Time
}

// SaveFailedMsg reports a save that the storage backend rejected.
type SaveFailedMsg struct {
	Err error
}

// clearNoticeMsg expires the notice with the matching sequence number.
type clearNoticeMsg struct {
	seq int
}
