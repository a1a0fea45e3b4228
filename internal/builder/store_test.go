package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/pagesmith/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("component_%d", n)
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	base := []Option{
		WithIDGenerator(sequentialIDs()),
		WithClock(func() time.Time { return time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC) }),
		WithStorage(storage.NewMemoryStore()),
	}
	return NewStore(append(base, opts...)...)
}

func addHero(s *Store, title string) string {
	return s.AddComponent(page.Draft{Type: page.TypeHero, Props: &page.HeroProps{Title: title, BackgroundType: "solid", Alignment: "center"}})
}

func titles(s *Store) []string {
	var out []string
	for _, c := range s.Components() {
		out = append(out, c.Summary())
	}
	return out
}

func requireDenseOrder(t *testing.T, s *Store) {
	t.Helper()
	for i, c := range s.Components() {
		require.Equal(t, i, c.Order, "component %s", c.ID)
	}
}

func TestAddComponentAssignsIdentityAndSelects(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := s.AddComponent(page.Draft{Type: page.TypeAbout})

	state := s.State()
	require.Len(t, state.Components, 1)
	c := state.Components[0]
	require.Equal(t, id, c.ID)
	require.Equal(t, 0, c.Order)
	require.True(t, c.IsVisible)
	require.Equal(t, page.DefaultAnimation(), *c.Animation)
	require.Equal(t, "About Me", c.Summary(), "registry defaults fill missing props")
	require.Equal(t, id, state.SelectedID)
	require.True(t, state.IsDirty)
	require.True(t, state.CanUndo)
	require.False(t, state.CanRedo)

	hidden := s.AddComponent(page.Draft{Type: page.TypeFooter, Hidden: true})
	comp, ok := s.Component(hidden)
	require.True(t, ok)
	require.False(t, comp.IsVisible)
	require.Equal(t, 1, comp.Order)
}

func TestAddComponentDefaultIDFormat(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.AddComponent(page.Draft{Type: page.TypeHero})
	require.Regexp(t, `^component_[0-9a-f-]{36}$`, id)
}

func TestAddComponentCopiesDraftProps(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	props := &page.HeroProps{Title: "Original"}
	id := s.AddComponent(page.Draft{Props: props})
	props.Title = "Mutated"

	c, ok := s.Component(id)
	require.True(t, ok)
	require.Equal(t, page.TypeHero, c.Type)
	require.Equal(t, "Original", c.Summary())
}

func TestReorderSpliceSemantics(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addHero(s, "A")
	addHero(s, "B")
	addHero(s, "C")

	require.NoError(t, s.ReorderComponents(0, 2))
	require.Equal(t, []string{"B", "C", "A"}, titles(s))
	requireDenseOrder(t, s)

	require.NoError(t, s.ReorderComponents(2, 0))
	require.Equal(t, []string{"A", "B", "C"}, titles(s))
	requireDenseOrder(t, s)
}

func TestReorderSameIndexIsNoOp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addHero(s, "A")
	addHero(s, "B")
	depth := s.State().UndoDepth

	require.NoError(t, s.ReorderComponents(1, 1))
	require.Equal(t, depth, s.State().UndoDepth)
	require.Equal(t, []string{"A", "B"}, titles(s))
}

func TestReorderOutOfRange(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addHero(s, "A")
	addHero(s, "B")
	before := s.State()

	for _, tc := range [][2]int{{-1, 0}, {0, 2}, {5, 1}} {
		err := s.ReorderComponents(tc[0], tc[1])
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	after := s.State()
	require.Equal(t, before.UndoDepth, after.UndoDepth)
	require.Empty(t, cmp.Diff(before.Components, after.Components))
}

func TestDeleteClearsSelectionAndRenumbers(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a := addHero(s, "A")
	b := addHero(s, "B")
	addHero(s, "C")
	require.True(t, s.SelectComponent(b))

	require.True(t, s.DeleteComponent(b))
	require.Equal(t, []string{"A", "C"}, titles(s))
	require.Empty(t, s.State().SelectedID)
	requireDenseOrder(t, s)

	require.True(t, s.SelectComponent(a))
	require.False(t, s.DeleteComponent("missing"))
	require.Equal(t, a, s.State().SelectedID)
}

func TestUpdateComponent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := addHero(s, "A")
	depth := s.State().UndoDepth

	ok, err := s.UpdateComponent("missing", page.Update{IsVisible: page.Visible(false)})
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, depth, s.State().UndoDepth)

	ok, err = s.UpdateComponent(id, page.Update{Props: &page.FooterProps{CompanyName: "x"}})
	require.False(t, ok)
	var validationErr *pserrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, depth, s.State().UndoDepth)

	ok, err = s.UpdateComponent(id, page.Update{
		Props:     &page.HeroProps{Title: "A2"},
		IsVisible: page.Visible(false),
		Animation: &page.Animation{Type: "bounce", Duration: 1},
	})
	require.NoError(t, err)
	require.True(t, ok)

	c, _ := s.Component(id)
	require.Equal(t, "A2", c.Summary())
	require.False(t, c.IsVisible)
	require.Equal(t, "bounce", c.Animation.Type)
	require.Equal(t, depth+1, s.State().UndoDepth)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := addHero(s, "A")

	_, err := s.UpdateComponent(id, page.Update{IsVisible: page.Visible(false)})
	require.NoError(t, err)

	c, _ := s.Component(id)
	require.Equal(t, "A", c.Summary())
	require.Equal(t, "fadeIn", c.Animation.Type)
}

func TestUpdateWithoutChangeRecordsNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	id := addHero(s, "A")
	require.NoError(t, s.Save(ctx))
	depth := s.State().UndoDepth
	c, _ := s.Component(id)

	for name, upd := range map[string]page.Update{
		"same visibility": {IsVisible: page.Visible(true)},
		"same props":      {Props: c.Props.Clone()},
		"same animation":  {Animation: &page.Animation{Type: c.Animation.Type, Duration: c.Animation.Duration, Delay: c.Animation.Delay}},
	} {
		ok, err := s.UpdateComponent(id, upd)
		require.NoError(t, err, name)
		require.True(t, ok, name)

		state := s.State()
		require.Equal(t, depth, state.UndoDepth, name)
		require.False(t, state.IsDirty, name)
	}
}

func TestDuplicateIsDeepAndSelected(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := s.AddComponent(page.Draft{Type: page.TypeAbout})

	dup, ok := s.DuplicateComponent(id)
	require.True(t, ok)
	require.NotEqual(t, id, dup)
	require.Equal(t, dup, s.State().SelectedID)
	requireDenseOrder(t, s)

	about, _ := s.Component(dup)
	props := about.Props.(*page.AboutProps)
	props.Skills[0].Name = "changed"
	_, err := s.UpdateComponent(dup, page.Update{Props: props})
	require.NoError(t, err)

	orig, _ := s.Component(id)
	require.Equal(t, "JavaScript", orig.Props.(*page.AboutProps).Skills[0].Name)

	_, ok = s.DuplicateComponent("missing")
	require.False(t, ok)
}

func TestSelectionDoesNotTouchHistoryOrDirty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := addHero(s, "A")
	require.NoError(t, s.Save(context.Background()))

	require.True(t, s.SelectComponent(id))
	s.ClearSelection()
	require.False(t, s.SelectComponent("missing"))

	state := s.State()
	require.False(t, state.IsDirty)
	require.Equal(t, 1, state.UndoDepth)
	require.Empty(t, state.SelectedID)
}

func TestUndoRedoLinearHistory(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addHero(s, "A")
	addHero(s, "B")

	require.True(t, s.Undo())
	require.Equal(t, []string{"A"}, titles(s))
	require.True(t, s.State().CanRedo)

	addHero(s, "C")
	require.False(t, s.State().CanRedo)
	require.False(t, s.Redo())
	require.Equal(t, []string{"A", "C"}, titles(s))
}

func TestUndoThenRedoRestoresState(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addHero(s, "A")
	addHero(s, "B")
	require.NoError(t, s.ReorderComponents(0, 1))
	before := s.Components()

	require.True(t, s.Undo())
	require.True(t, s.Redo())
	require.Empty(t, cmp.Diff(before, s.Components()))
}

func TestUndoRestoresPreOperationList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(t *testing.T, s *Store, id string)
	}{
		{
			name: "update",
			mutate: func(t *testing.T, s *Store, id string) {
				ok, err := s.UpdateComponent(id, page.Update{Props: &page.HeroProps{Title: "changed"}, IsVisible: page.Visible(false)})
				require.NoError(t, err)
				require.True(t, ok)
			},
		},
		{
			name: "delete",
			mutate: func(t *testing.T, s *Store, id string) {
				require.True(t, s.DeleteComponent(id))
			},
		},
		{
			name: "duplicate",
			mutate: func(t *testing.T, s *Store, id string) {
				_, ok := s.DuplicateComponent(id)
				require.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t)
			first := addHero(s, "A")
			addHero(s, "B")
			before := s.Components()

			tt.mutate(t, s, first)
			after := s.Components()
			require.NotEmpty(t, cmp.Diff(before, after))

			require.True(t, s.Undo())
			require.Empty(t, cmp.Diff(before, s.Components()))

			require.True(t, s.Redo())
			require.Empty(t, cmp.Diff(after, s.Components()))
			requireDenseOrder(t, s)
		})
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.False(t, s.Undo())
	require.False(t, s.Redo())
	require.False(t, s.State().IsDirty)
}

func TestUndoClearsStaleSelection(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := addHero(s, "A")
	require.Equal(t, id, s.State().SelectedID)

	require.True(t, s.Undo())
	require.Empty(t, s.State().SelectedID)
}

func TestUndoBackToSavedBaselineIsClean(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addHero(s, "A")
	require.NoError(t, s.Save(context.Background()))
	addHero(s, "B")
	require.True(t, s.State().IsDirty)

	require.True(t, s.Undo())
	require.False(t, s.State().IsDirty)

	require.True(t, s.Redo())
	require.True(t, s.State().IsDirty)
}

func TestHistoryIsBounded(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, WithHistoryLimit(5))
	for i := 0; i < 8; i++ {
		addHero(s, fmt.Sprint(i))
	}
	require.Equal(t, 5, s.State().UndoDepth)

	for s.Undo() {
	}
	// the three oldest snapshots were discarded
	require.Equal(t, []string{"0", "1", "2"}, titles(s))
}

func TestSavePersistsAndClearsDirty(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemoryStore()
	s := newTestStore(t, WithStorage(kv))
	addHero(s, "A")

	require.NoError(t, s.Save(context.Background()))
	state := s.State()
	require.False(t, state.IsDirty)
	require.False(t, state.IsSaving)
	require.NotNil(t, state.LastSaved)

	data, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	list, err := page.UnmarshalList(data)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(s.Components(), list))
}

type failingStore struct {
	ports.KeyValueStore
	err error
}

func (f failingStore) Put(context.Context, string, []byte) error { return f.err }

func TestSaveFailureKeepsDirty(t *testing.T) {
	t.Parallel()

	diskFull := errors.New("disk full")
	s := newTestStore(t, WithStorage(failingStore{err: diskFull}))
	addHero(s, "A")

	err := s.Save(context.Background())
	var persistenceErr *pserrors.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	require.ErrorIs(t, err, diskFull)

	state := s.State()
	require.True(t, state.IsDirty)
	require.False(t, state.IsSaving)
	require.Nil(t, state.LastSaved)
}

func TestSaveWithoutStorage(t *testing.T) {
	t.Parallel()

	s := NewStore()
	require.ErrorIs(t, s.Save(context.Background()), ErrNoStorage)
}

type blockingStore struct {
	*storage.MemoryStore
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) Put(ctx context.Context, key string, value []byte) error {
	close(b.entered)
	<-b.release
	return b.MemoryStore.Put(ctx, key, value)
}

func TestMutationDuringSaveKeepsDirty(t *testing.T) {
	t.Parallel()

	kv := &blockingStore{MemoryStore: storage.NewMemoryStore(), entered: make(chan struct{}), release: make(chan struct{})}
	s := newTestStore(t, WithStorage(kv))
	addHero(s, "A")

	done := make(chan error, 1)
	go func() { done <- s.Save(context.Background()) }()

	<-kv.entered
	require.True(t, s.State().IsSaving)
	addHero(s, "B")
	close(kv.release)
	require.NoError(t, <-done)

	state := s.State()
	require.True(t, state.IsDirty)
	require.False(t, state.IsSaving)
	require.NotNil(t, state.LastSaved)

	data, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	saved, err := page.UnmarshalList(data)
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

func TestRestore(t *testing.T) {
	t.Parallel()

	kv := storage.NewMemoryStore()
	ctx := context.Background()

	empty := newTestStore(t, WithStorage(kv))
	ok, err := empty.Restore(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	writer := newTestStore(t, WithStorage(kv))
	addHero(writer, "A")
	writer.AddComponent(page.Draft{Type: page.TypeFooter, Hidden: true})
	require.NoError(t, writer.Save(ctx))

	reader := newTestStore(t, WithStorage(kv))
	ok, err = reader.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, cmp.Diff(writer.Components(), reader.Components()))

	state := reader.State()
	require.False(t, state.IsDirty)
	require.False(t, state.CanUndo)
	require.NotNil(t, state.LastSaved)
}

func TestRestoreRejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for name, payload := range map[string]string{
		"not json":     `{"oops"`,
		"unknown type": `[{"id":"x","type":"banner","props":{},"order":0,"isVisible":true}]`,
		"duplicate id": `[{"id":"x","type":"hero","props":{},"order":0,"isVisible":true},{"id":"x","type":"hero","props":{},"order":1,"isVisible":true}]`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			require.NoError(t, kv.Put(ctx, StorageKey, []byte(payload)))

			s := newTestStore(t, WithStorage(kv))
			addHero(s, "keep")
			ok, err := s.Restore(ctx)
			require.False(t, ok)
			var parseErr *pserrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, []string{"keep"}, titles(s))
		})
	}
}

func TestLoadPageNormalizesAndResets(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addHero(s, "old")

	s.LoadPage([]page.PlacedComponent{
		{ID: "x", Type: page.TypeHero, Props: &page.HeroProps{Title: "X"}, Order: 7, IsVisible: true},
		{ID: "y", Type: page.TypeFooter, Props: &page.FooterProps{CompanyName: "Y"}, Order: 3, IsVisible: true},
	})

	state := s.State()
	require.Equal(t, []string{"X", "Y"}, titles(s))
	require.Equal(t, "x", state.Components[0].ID)
	requireDenseOrder(t, s)
	require.Empty(t, state.SelectedID)
	require.False(t, state.IsDirty)
	require.False(t, state.CanUndo)
	require.False(t, state.CanRedo)
	require.NotNil(t, state.LastSaved)
}

func TestClearPage(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addHero(s, "A")
	require.NoError(t, s.Save(context.Background()))
	addHero(s, "B")

	s.ClearPage()
	state := s.State()
	require.Empty(t, state.Components)
	require.Empty(t, state.SelectedID)
	require.False(t, state.IsDirty)
	require.False(t, state.CanUndo)
	require.Nil(t, state.LastSaved)
}

func TestMarkDirty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.False(t, s.State().IsDirty)
	s.MarkDirty()
	require.True(t, s.State().IsDirty)
}

func TestStatePublishesNoInternalAliases(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	id := addHero(s, "A")

	state := s.State()
	state.Components[0].Props.(*page.HeroProps).Title = "mutated"
	c, _ := s.Component(id)
	require.Equal(t, "A", c.Summary())
}

func TestOperationsPublishEvents(t *testing.T) {
	t.Parallel()

	publisher := events.NewLoggingPublisher(logger.NewNoOp())
	var (
		mu   sync.Mutex
		seen []string
	)
	_, err := publisher.Subscribe(events.Wildcard, func(_ context.Context, e ports.DomainEvent) error {
		mu.Lock()
		seen = append(seen, e.EventType())
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)

	s := newTestStore(t, WithPublisher(publisher))
	a := addHero(s, "A")
	b := addHero(s, "B")
	_, _ = s.UpdateComponent(a, page.Update{IsVisible: page.Visible(false)})
	require.NoError(t, s.ReorderComponents(0, 1))
	_, _ = s.DuplicateComponent(a)
	s.SelectComponent(b)
	s.DeleteComponent(b)
	s.Undo()
	s.Redo()
	require.NoError(t, s.Save(context.Background()))
	s.LoadPage(nil)
	s.ClearPage()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{
		ports.EventComponentAdded,
		ports.EventComponentAdded,
		ports.EventComponentUpdated,
		ports.EventComponentsReordered,
		ports.EventComponentDuplicated,
		ports.EventSelectionChanged,
		ports.EventComponentDeleted,
		ports.EventHistoryUndo,
		ports.EventHistoryRedo,
		ports.EventPageSaved,
		ports.EventPageLoaded,
		ports.EventPageCleared,
	}, seen)
}

func TestConcurrentMutationsKeepInvariants(t *testing.T) {
	t.Parallel()

	s := NewStore(WithStorage(storage.NewMemoryStore()))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := s.AddComponent(page.Draft{Type: page.TypeBlog})
			if i%3 == 0 {
				s.DeleteComponent(id)
			}
			if i%5 == 0 {
				_ = s.Save(context.Background())
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 13, s.Len())
	requireDenseOrder(t, s)
	seen := map[string]bool{}
	for _, c := range s.Components() {
		require.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}
