package editor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	saveTimeout = 10 * time.Second
	noticeTTL   = 4 * time.Second
)

// Saver persists the editing session.
type Saver interface {
	Save(ctx context.Context) error
}

// saveCmd runs the save off the update loop.
func saveCmd(ctx context.Context, s Saver, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, saveTimeout)
		defer cancel()
		if err := s.Save(ctx); err != nil {
			return SaveFailedMsg{Err: err}
		}
		return SavedMsg{At: now()}
	}
}

func clearNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}
