package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/alexisbeaulieu97/pagesmith/internal/builder"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
	"github.com/alexisbeaulieu97/pagesmith/pkg/diff"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

// Status summarises the page against what is persisted.
type Status struct {
	Components int
	Hidden     int
	SelectedID string
	Dirty      bool
	LastSaved  *time.Time
	UndoDepth  int
	RedoDepth  int
	Theme      string
	// Stored reports whether a saved page exists.
	Stored bool
	Stats  diff.Stats
	// Diff is a unified diff of the saved page JSON against the current one.
	Diff string
}

// Status compares the current page with the stored document.
func (s *Session) Status(ctx context.Context) (Status, error) {
	state := s.Builder.State()
	st := Status{
		Components: len(state.Components),
		SelectedID: state.SelectedID,
		Dirty:      state.IsDirty,
		LastSaved:  state.LastSaved,
		UndoDepth:  state.UndoDepth,
		RedoDepth:  state.RedoDepth,
		Theme:      s.Theme.CurrentTheme(),
	}
	for _, c := range state.Components {
		if !c.IsVisible {
			st.Hidden++
		}
	}

	saved, err := s.Storage.Get(ctx, builder.StorageKey)
	switch {
	case errors.Is(err, ports.ErrKeyNotFound):
		saved = []byte("[]")
	case err != nil:
		return st, pserrors.NewPersistenceError("status", builder.StorageKey, err)
	default:
		st.Stored = true
	}

	current, err := page.MarshalList(state.Components)
	if err != nil {
		return st, err
	}

	before, after := pretty(saved), pretty(current)
	st.Stats = diff.Count(before, after)
	st.Diff = diff.GenerateUnifiedDiff(before, after, "saved", "current", 3)
	return st, nil
}

// pretty indents JSON for line diffs; invalid JSON is returned unchanged.
func pretty(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}
