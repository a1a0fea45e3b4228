package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
	"github.com/alexisbeaulieu97/pagesmith/internal/registry"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

// StorageKey is the fixed key the page is persisted under.
const StorageKey = "builder-storage"

var (
	// ErrIndexOutOfRange is returned by ReorderComponents for invalid positions.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoStorage is returned by Save and Restore when no backend is configured.
	ErrNoStorage = errors.New("no storage backend configured")
)

// State is a read-only snapshot of the builder.
type State struct {
	Components []page.PlacedComponent
	SelectedID string
	IsDirty    bool
	IsSaving   bool
	LastSaved  *time.Time
	CanUndo    bool
	CanRedo    bool
	UndoDepth  int
	RedoDepth  int
}

// Store owns the page under construction. All mutations are serialized behind
// a single mutex; Save additionally serializes with itself.
type Store struct {
	mu     sync.Mutex
	saveMu sync.Mutex

	components []page.PlacedComponent
	selectedID string
	dirty      bool
	saving     bool
	lastSaved  *time.Time
	history    *History

	// baseline is the list as last saved or loaded; undo/redo compare against it.
	baseline []page.PlacedComponent
	// revision counts mutations; generation counts wholesale replacements.
	revision   uint64
	generation uint64

	storage   ports.KeyValueStore
	publisher ports.EventPublisher
	logger    ports.Logger
	now       func() time.Time
	newID     func() string
}

// NewStore creates an empty builder.
func NewStore(opts ...Option) *Store {
	s := &Store{
		components: []page.PlacedComponent{},
		baseline:   []page.PlacedComponent{},
		history:    NewHistory(DefaultHistoryLimit),
		logger:     logger.NewNoOp(),
		now:        time.Now,
		newID:      NewComponentID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddComponent appends a block built from draft and selects it. Missing props
// are filled from the registry defaults; props are not validated here.
func (s *Store) AddComponent(draft page.Draft) string {
	typ := draft.Type
	if typ == "" && draft.Props != nil {
		typ = draft.Props.Type()
	}

	var props page.Props
	if draft.Props != nil {
		props = draft.Props.Clone()
	} else if defaults, err := registry.DefaultProps(typ); err == nil {
		props = defaults
	}

	anim := page.DefaultAnimation()
	if draft.Animation != nil {
		anim = *draft.Animation
	}

	s.mu.Lock()
	s.record()
	component := page.PlacedComponent{
		ID:        s.newID(),
		Type:      typ,
		Props:     props,
		Order:     len(s.components),
		IsVisible: !draft.Hidden,
		Animation: &anim,
	}
	s.components = append(s.components, component)
	s.selectedID = component.ID
	s.touch()
	s.mu.Unlock()

	s.logger.Debug(context.Background(), "component added", "component_id", component.ID, "component_type", string(typ))
	s.publish(ports.NewEvent(ports.EventComponentAdded,
		"component_id", component.ID,
		"component_type", string(typ),
		"order", component.Order,
	))
	return component.ID
}

// UpdateComponent merges the non-nil fields of upd into the block with the
// given id. It reports false when no such block exists. Props of a different
// variant are rejected with a validation error and nothing changes. An update
// that leaves the block unchanged records no history and does not dirty the page.
func (s *Store) UpdateComponent(id string, upd page.Update) (bool, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	current := s.components[idx]
	if upd.Props != nil && upd.Props.Type() != current.Type {
		s.mu.Unlock()
		return false, pserrors.NewValidationError("props",
			fmt.Sprintf("%s props cannot be applied to %s block %s", upd.Props.Type(), current.Type, id), nil)
	}
	if upd.Empty() {
		s.mu.Unlock()
		return true, nil
	}

	next := current
	if upd.Props != nil {
		next.Props = upd.Props.Clone()
	}
	if upd.IsVisible != nil {
		next.IsVisible = *upd.IsVisible
	}
	if upd.Animation != nil {
		anim := *upd.Animation
		next.Animation = &anim
	}
	if page.Equal([]page.PlacedComponent{current}, []page.PlacedComponent{next}) {
		s.mu.Unlock()
		return true, nil
	}

	s.record()
	s.components[idx] = next
	s.touch()
	s.mu.Unlock()

	s.publish(ports.NewEvent(ports.EventComponentUpdated,
		"component_id", id,
		"props_changed", upd.Props != nil,
		"visibility_changed", upd.IsVisible != nil,
		"animation_changed", upd.Animation != nil,
	))
	return true, nil
}

// DeleteComponent removes the block with the given id.
func (s *Store) DeleteComponent(id string) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.record()
	s.components = append(s.components[:idx:idx], s.components[idx+1:]...)
	page.Renumber(s.components)
	wasSelected := s.selectedID == id
	if wasSelected {
		s.selectedID = ""
	}
	s.touch()
	s.mu.Unlock()

	s.publish(ports.NewEvent(ports.EventComponentDeleted, "component_id", id, "was_selected", wasSelected))
	return true
}

// ReorderComponents moves the block at from to position to using splice
// semantics and renumbers every Order. Equal indices change nothing.
func (s *Store) ReorderComponents(from, to int) error {
	s.mu.Lock()
	n := len(s.components)
	if from < 0 || from >= n || to < 0 || to >= n {
		s.mu.Unlock()
		return fmt.Errorf("%w: move %d -> %d with %d components", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		s.mu.Unlock()
		return nil
	}

	s.record()
	moved := s.components[from]
	rest := append(s.components[:from:from], s.components[from+1:]...)
	list := make([]page.PlacedComponent, 0, n)
	list = append(list, rest[:to]...)
	list = append(list, moved)
	list = append(list, rest[to:]...)
	page.Renumber(list)
	s.components = list
	s.touch()
	s.mu.Unlock()

	s.publish(ports.NewEvent(ports.EventComponentsReordered, "component_id", moved.ID, "from", from, "to", to))
	return nil
}

// DuplicateComponent appends a deep copy of the block with a fresh id and
// selects it.
func (s *Store) DuplicateComponent(id string) (string, bool) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return "", false
	}
	s.record()
	clone := s.components[idx].Clone()
	clone.ID = s.newID()
	clone.Order = len(s.components)
	s.components = append(s.components, clone)
	s.selectedID = clone.ID
	s.touch()
	s.mu.Unlock()

	s.publish(ports.NewEvent(ports.EventComponentDuplicated, "source_id", id, "component_id", clone.ID))
	return clone.ID, true
}

// SelectComponent marks id as selected. Unknown ids are refused.
func (s *Store) SelectComponent(id string) bool {
	s.mu.Lock()
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		return false
	}
	changed := s.selectedID != id
	s.selectedID = id
	s.mu.Unlock()

	if changed {
		s.publish(ports.NewEvent(ports.EventSelectionChanged, "component_id", id))
	}
	return true
}

// ClearSelection deselects any block.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	changed := s.selectedID != ""
	s.selectedID = ""
	s.mu.Unlock()

	if changed {
		s.publish(ports.NewEvent(ports.EventSelectionChanged, "component_id", ""))
	}
}

// Undo restores the previous snapshot.
func (s *Store) Undo() bool {
	return s.travel(true)
}

// Redo re-applies the most recently undone snapshot.
func (s *Store) Redo() bool {
	return s.travel(false)
}

func (s *Store) travel(back bool) bool {
	s.mu.Lock()
	var (
		list []page.PlacedComponent
		ok   bool
	)
	if back {
		list, ok = s.history.Undo(s.components)
	} else {
		list, ok = s.history.Redo(s.components)
	}
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.components = list
	if s.selectedID != "" && s.indexOf(s.selectedID) < 0 {
		s.selectedID = ""
	}
	s.revision++
	s.dirty = !page.Equal(s.components, s.baseline)
	dirty := s.dirty
	undoDepth, redoDepth := s.history.UndoDepth(), s.history.RedoDepth()
	s.mu.Unlock()

	eventType := ports.EventHistoryRedo
	if back {
		eventType = ports.EventHistoryUndo
	}
	s.publish(ports.NewEvent(eventType, "dirty", dirty, "undo_depth", undoDepth, "redo_depth", redoDepth))
	return true
}

// LoadPage replaces the page verbatim, resets history and marks it clean.
func (s *Store) LoadPage(components []page.PlacedComponent) {
	list := page.CloneList(components)
	page.Renumber(list)
	now := s.now()

	s.mu.Lock()
	s.components = list
	s.baseline = page.CloneList(list)
	s.selectedID = ""
	s.history.Clear()
	s.dirty = false
	s.lastSaved = &now
	s.revision++
	s.generation++
	s.mu.Unlock()

	s.publish(ports.NewEvent(ports.EventPageLoaded, "components", len(list)))
}

// ClearPage empties the page and forgets history and the last save.
func (s *Store) ClearPage() {
	s.mu.Lock()
	s.components = []page.PlacedComponent{}
	s.baseline = []page.PlacedComponent{}
	s.selectedID = ""
	s.history.Clear()
	s.dirty = false
	s.lastSaved = nil
	s.revision++
	s.generation++
	s.mu.Unlock()

	s.publish(ports.NewEvent(ports.EventPageCleared))
}

// MarkDirty flags unsaved changes made outside the store's own operations.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
}

// Save persists the page under StorageKey. On failure the dirty flag and
// LastSaved are left untouched and a *errors.PersistenceError is returned.
func (s *Store) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.storage == nil {
		s.mu.Unlock()
		return pserrors.NewPersistenceError("save", StorageKey, ErrNoStorage)
	}
	snapshot := page.CloneList(s.components)
	revision, generation := s.revision, s.generation
	s.saving = true
	s.mu.Unlock()

	data, err := page.MarshalList(snapshot)
	if err == nil {
		err = s.storage.Put(ctx, StorageKey, data)
	}

	s.mu.Lock()
	s.saving = false
	if err != nil {
		s.mu.Unlock()
		s.logger.Error(ctx, "failed to save page", "key", StorageKey, "error", err)
		s.publish(ports.NewEvent(ports.EventPageSaveFailed, "key", StorageKey, "error", err.Error()))
		return pserrors.NewPersistenceError("save", StorageKey, err)
	}
	now := s.now()
	if generation == s.generation {
		s.baseline = snapshot
		s.lastSaved = &now
		if revision == s.revision {
			s.dirty = false
		}
	}
	dirty := s.dirty
	s.mu.Unlock()

	s.logger.Info(ctx, "page saved", "key", StorageKey, "components", len(snapshot), "bytes", len(data))
	s.publish(ports.NewEvent(ports.EventPageSaved, "key", StorageKey, "components", len(snapshot), "dirty", dirty))
	return nil
}

// Restore loads the persisted page. It reports false when nothing is stored.
// Payloads that fail to decode are rejected with a *errors.ParseError.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	storage := s.storage
	s.mu.Unlock()
	if storage == nil {
		return false, pserrors.NewPersistenceError("restore", StorageKey, ErrNoStorage)
	}

	data, err := storage.Get(ctx, StorageKey)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pserrors.NewPersistenceError("restore", StorageKey, err)
	}

	list, err := DecodePage(data)
	if err != nil {
		s.logger.Warn(ctx, "discarding malformed page payload", "key", StorageKey, "error", err)
		return false, err
	}

	s.LoadPage(list)
	return true, nil
}

// State returns a deep-copied snapshot of the builder.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastSaved *time.Time
	if s.lastSaved != nil {
		t := *s.lastSaved
		lastSaved = &t
	}
	return State{
		Components: page.CloneList(s.components),
		SelectedID: s.selectedID,
		IsDirty:    s.dirty,
		IsSaving:   s.saving,
		LastSaved:  lastSaved,
		CanUndo:    s.history.CanUndo(),
		CanRedo:    s.history.CanRedo(),
		UndoDepth:  s.history.UndoDepth(),
		RedoDepth:  s.history.RedoDepth(),
	}
}

// Components returns a deep copy of the ordered block list.
func (s *Store) Components() []page.PlacedComponent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page.CloneList(s.components)
}

// Component returns a copy of the block with the given id.
func (s *Store) Component(id string) (page.PlacedComponent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return page.PlacedComponent{}, false
	}
	return s.components[idx].Clone(), true
}

// IndexOf returns the list position of id, or -1.
func (s *Store) IndexOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id)
}

// Selected returns the selected block, if any.
func (s *Store) Selected() (page.PlacedComponent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" {
		return page.PlacedComponent{}, false
	}
	idx := s.indexOf(s.selectedID)
	if idx < 0 {
		return page.PlacedComponent{}, false
	}
	return s.components[idx].Clone(), true
}

// Len returns the number of blocks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.components)
}

// Baseline returns the list as of the last save or load.
func (s *Store) Baseline() []page.PlacedComponent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return page.CloneList(s.baseline)
}

func (s *Store) indexOf(id string) int {
	for i := range s.components {
		if s.components[i].ID == id {
			return i
		}
	}
	return -1
}

// record must be called with mu held, before the mutation.
func (s *Store) record() {
	s.history.Record(s.components)
}

// touch must be called with mu held, after the mutation.
func (s *Store) touch() {
	s.dirty = true
	s.revision++
}

func (s *Store) publish(event ports.Event) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(context.Background(), event)
}

// DecodePage parses a persisted page and checks that every block has a
// unique id. Failures are returned as *errors.ParseError.
func DecodePage(data []byte) ([]page.PlacedComponent, error) {
	list, err := page.UnmarshalList(data)
	if err != nil {
		return nil, pserrors.NewParseError(StorageKey, 0, err)
	}
	if err := checkIDs(list); err != nil {
		return nil, pserrors.NewParseError(StorageKey, 0, err)
	}
	return list, nil
}

func checkIDs(list []page.PlacedComponent) error {
	seen := make(map[string]struct{}, len(list))
	for i, c := range list {
		if c.ID == "" {
			return fmt.Errorf("component at index %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate component id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
