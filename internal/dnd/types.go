package dnd

import (
	"context"
	"errors"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
)

var (
	// ErrUnknownType is returned when a library item names an unregistered type.
	ErrUnknownType = errors.New("unknown component type")
	// ErrUnknownComponent is returned when a canvas item references a missing block.
	ErrUnknownComponent = errors.New("unknown component")
)

// Origin says where a dragged item came from.
type Origin int

const (
	OriginLibrary Origin = iota
	OriginCanvas
)

func (o Origin) String() string {
	if o == OriginCanvas {
		return "canvas"
	}
	return "library"
}

// DragItem is the payload of an active gesture.
type DragItem struct {
	ID     string
	Origin Origin
	Type   page.ComponentType
}

// LibraryItem describes a drag from the component library.
func LibraryItem(t page.ComponentType) DragItem {
	return DragItem{ID: "library-" + string(t), Origin: OriginLibrary, Type: t}
}

// CanvasItem describes a drag of an existing block. Its type is resolved at Start.
func CanvasItem(id string) DragItem {
	return DragItem{ID: id, Origin: OriginCanvas}
}

// TargetKind classifies what the pointer is over.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCanvas
	TargetComponent
	TargetZone
)

// Target is a drop location.
type Target struct {
	Kind TargetKind
	ID   string
}

// NoTarget is a release outside any drop location.
func NoTarget() Target { return Target{Kind: TargetNone} }

// CanvasTarget is the canvas drop zone.
func CanvasTarget() Target { return Target{Kind: TargetCanvas, ID: "canvas-drop-zone"} }

// ComponentTarget is an existing block on the canvas.
func ComponentTarget(id string) Target { return Target{Kind: TargetComponent, ID: id} }

// ZoneTarget is a registered named drop zone.
func ZoneTarget(id string) Target { return Target{Kind: TargetZone, ID: id} }

// State is the coordinator's mode.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Action is the effect a drop produced.
type Action string

const (
	ActionNone       Action = "none"
	ActionInsert     Action = "insert"
	ActionReorder    Action = "reorder"
	ActionZoneAccept Action = "zone_accept"
	ActionRejected   Action = "rejected"
)

// Result describes a resolved drop.
type Result struct {
	Action      Action
	ComponentID string
	From        int
	To          int
	ZoneID      string
}

// Builder is the subset of the builder store the coordinator drives.
type Builder interface {
	AddComponent(draft page.Draft) string
	ReorderComponents(from, to int) error
	IndexOf(id string) int
	Component(id string) (page.PlacedComponent, bool)
}

// DropZone is a named target that can accept dragged blocks of some types.
type DropZone interface {
	ID() string
	Accepts(t page.ComponentType) bool
	OnAccept(ctx context.Context, component page.PlacedComponent) error
}

// AcceptFunc performs a zone's effect for an accepted block.
type AcceptFunc func(ctx context.Context, component page.PlacedComponent) error

type funcZone struct {
	id      string
	accepts map[page.ComponentType]struct{}
	fn      AcceptFunc
}

// NewZone builds a DropZone. A nil accepts list admits every type.
func NewZone(id string, accepts []page.ComponentType, fn AcceptFunc) DropZone {
	z := &funcZone{id: id, fn: fn}
	if accepts != nil {
		z.accepts = make(map[page.ComponentType]struct{}, len(accepts))
		for _, t := range accepts {
			z.accepts[t] = struct{}{}
		}
	}
	return z
}

func (z *funcZone) ID() string { return z.id }

func (z *funcZone) Accepts(t page.ComponentType) bool {
	if z.accepts == nil {
		return true
	}
	_, ok := z.accepts[t]
	return ok
}

func (z *funcZone) OnAccept(ctx context.Context, component page.PlacedComponent) error {
	if z.fn == nil {
		return nil
	}
	return z.fn(ctx, component)
}
