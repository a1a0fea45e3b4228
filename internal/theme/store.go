package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

// StorageKey is the fixed key the theme state is persisted under.
const StorageKey = "theme-store"

var (
	// ErrUnknownTheme is returned for palette names that do not exist.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrUnknownColorKey is returned for slots outside Keys.
	ErrUnknownColorKey = errors.New("unknown color key")
	// ErrProtectedTheme is returned when overwriting a built-in palette.
	ErrProtectedTheme = errors.New("built-in themes cannot be modified")
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// VariableSink receives the active palette as CSS custom properties.
type VariableSink interface {
	SetVariable(name, value string)
}

// Variable is one rendered custom property.
type Variable struct {
	Name  string
	Value string
}

// Store holds the active palette, user overrides and saved custom palettes.
type Store struct {
	mu           sync.RWMutex
	current      string
	customColors Palette
	themes       map[string]Palette

	sink      VariableSink
	storage   ports.KeyValueStore
	publisher ports.EventPublisher
	logger    ports.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSink mirrors every palette change into sink.
func WithSink(sink VariableSink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithStorage sets the backend used by Save and Restore.
func WithStorage(storage ports.KeyValueStore) Option {
	return func(s *Store) { s.storage = storage }
}

// WithPublisher sets the event publisher.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithLogger sets the structured logger.
func WithLogger(l ports.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns a store on the default palette with no overrides.
func NewStore(opts ...Option) *Store {
	s := &Store{
		current:      DefaultTheme,
		customColors: Palette{},
		themes:       make(map[string]Palette, len(builtins)),
		logger:       logger.NewNoOp(),
	}
	for name, p := range builtins {
		s.themes[name] = p.Clone()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentTheme returns the active palette name.
func (s *Store) CurrentTheme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CustomColors returns the active overrides.
func (s *Store) CustomColors() Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customColors.Clone()
}

// Names returns every palette name, built-ins first.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedNames(s.themes)
}

// Palette returns a stored palette by name.
func (s *Store) Palette(name string) (Palette, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.themes[name]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// SetTheme switches the active palette. Overrides are kept.
func (s *Store) SetTheme(name string) error {
	s.mu.Lock()
	if _, ok := s.themes[name]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	s.current = name
	s.mu.Unlock()

	s.changed("set_theme")
	return nil
}

// UpdateCustomColor overrides one slot of the active palette.
func (s *Store) UpdateCustomColor(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownColorKey, key)
	}
	if err := validatorInstance().Var(value, "required,hexcolor"); err != nil {
		return pserrors.NewValidationError(key, fmt.Sprintf("%q is not a hex color", value), err)
	}

	s.mu.Lock()
	s.customColors[key] = value
	s.mu.Unlock()

	s.changed("update_color")
	return nil
}

// ResetCustomColors drops every override.
func (s *Store) ResetCustomColors() {
	s.mu.Lock()
	s.customColors = Palette{}
	s.mu.Unlock()

	s.changed("reset_colors")
}

// SaveCustomTheme stores the merged active palette under name.
func (s *Store) SaveCustomTheme(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pserrors.NewValidationError("name", "theme name is required", nil)
	}
	if IsBuiltin(name) {
		return fmt.Errorf("%w: %q", ErrProtectedTheme, name)
	}

	s.mu.Lock()
	s.themes[name] = s.mergedLocked()
	s.mu.Unlock()
	return nil
}

// DeleteCustomTheme removes a saved palette. Built-ins are never removed. If
// the active palette is deleted the default becomes active.
func (s *Store) DeleteCustomTheme(name string) bool {
	if IsBuiltin(name) {
		return false
	}

	s.mu.Lock()
	if _, ok := s.themes[name]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.themes, name)
	wasActive := s.current == name
	if wasActive {
		s.current = DefaultTheme
	}
	s.mu.Unlock()

	if wasActive {
		s.changed("delete_theme")
	}
	return true
}

// CurrentColors returns the active palette merged with overrides.
func (s *Store) CurrentColors() Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mergedLocked()
}

// Variables returns the active palette as ordered custom properties.
func (s *Store) Variables() []Variable {
	colors := s.CurrentColors()
	out := make([]Variable, 0, len(Keys))
	for _, key := range Keys {
		if v, ok := colors[key]; ok {
			out = append(out, Variable{Name: CSSName(key), Value: v})
		}
	}
	return out
}

// CSSVariables renders the active palette as declarations, one per line.
func (s *Store) CSSVariables() string {
	var b strings.Builder
	for _, v := range s.Variables() {
		fmt.Fprintf(&b, "%s: %s;\n", v.Name, v.Value)
	}
	return b.String()
}

// Apply mirrors the active palette into sink.
func (s *Store) Apply(sink VariableSink) {
	if sink == nil {
		return
	}
	for _, v := range s.Variables() {
		sink.SetVariable(v.Name, v.Value)
	}
}

type persistedState struct {
	CurrentTheme string             `json:"currentTheme"`
	CustomColors Palette            `json:"customColors"`
	Themes       map[string]Palette `json:"themes"`
}

// Save persists the theme state under StorageKey.
func (s *Store) Save(ctx context.Context) error {
	if s.storage == nil {
		return pserrors.NewPersistenceError("save", StorageKey, errors.New("no storage backend configured"))
	}

	s.mu.RLock()
	custom := make(map[string]Palette)
	for name, p := range s.themes {
		if !IsBuiltin(name) {
			custom[name] = p.Clone()
		}
	}
	state := persistedState{CurrentTheme: s.current, CustomColors: s.customColors.Clone(), Themes: custom}
	s.mu.RUnlock()

	data, err := json.Marshal(state)
	if err == nil {
		err = s.storage.Put(ctx, StorageKey, data)
	}
	if err != nil {
		s.logger.Error(ctx, "failed to save theme", "error", err)
		return pserrors.NewPersistenceError("save", StorageKey, err)
	}
	return nil
}

// Restore loads persisted theme state. It reports false when nothing is
// stored. Unknown palette slots and invalid colors are dropped.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	if s.storage == nil {
		return false, pserrors.NewPersistenceError("restore", StorageKey, errors.New("no storage backend configured"))
	}
	data, err := s.storage.Get(ctx, StorageKey)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pserrors.NewPersistenceError("restore", StorageKey, err)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return false, pserrors.NewParseError(StorageKey, 0, err)
	}

	s.mu.Lock()
	s.themes = make(map[string]Palette, len(builtins)+len(state.Themes))
	for name, p := range builtins {
		s.themes[name] = p.Clone()
	}
	for name, p := range state.Themes {
		if IsBuiltin(name) {
			continue
		}
		s.themes[name] = builtins[DefaultTheme].Merge(sanitize(p))
	}
	s.customColors = sanitize(state.CustomColors)
	s.current = DefaultTheme
	if _, ok := s.themes[state.CurrentTheme]; ok {
		s.current = state.CurrentTheme
	}
	s.mu.Unlock()

	s.changed("restore")
	return true, nil
}

func sanitize(p Palette) Palette {
	out := Palette{}
	for k, v := range p {
		if IsKey(k) && validatorInstance().Var(v, "hexcolor") == nil {
			out[k] = v
		}
	}
	return out
}

func (s *Store) mergedLocked() Palette {
	base, ok := s.themes[s.current]
	if !ok {
		base = builtins[DefaultTheme]
	}
	return base.Merge(s.customColors)
}

func (s *Store) changed(reason string) {
	if s.sink != nil {
		s.Apply(s.sink)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(context.Background(), ports.NewEvent(ports.EventThemeChanged,
			"theme", s.CurrentTheme(),
			"reason", reason,
		))
	}
}
