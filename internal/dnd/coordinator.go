package dnd

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/logger"
	"github.com/alexisbeaulieu97/pagesmith/internal/ports"
	"github.com/alexisbeaulieu97/pagesmith/internal/registry"
)

// Coordinator turns drag gestures into builder mutations. It is either Idle or
// Dragging exactly one item.
type Coordinator struct {
	mu      sync.Mutex
	builder Builder
	zones   map[string]DropZone
	active  *DragItem
	over    *Target

	logger    ports.Logger
	publisher ports.EventPublisher
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the structured logger.
func WithLogger(l ports.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPublisher sets the event publisher notified of every resolved drop.
func WithPublisher(p ports.EventPublisher) Option {
	return func(c *Coordinator) {
		c.publisher = p
	}
}

// NewCoordinator returns an idle coordinator driving b.
func NewCoordinator(b Builder, opts ...Option) *Coordinator {
	c := &Coordinator{
		builder: b,
		zones:   make(map[string]DropZone),
		logger:  logger.NewNoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterZone adds or replaces a named drop zone.
func (c *Coordinator) RegisterZone(zone DropZone) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zones[zone.ID()] = zone
}

// Zones returns the registered zone ids.
func (c *Coordinator) Zones() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.zones))
	for id := range c.zones {
		out = append(out, id)
	}
	return out
}

// Start begins a gesture. A gesture already in flight is replaced.
func (c *Coordinator) Start(item DragItem) error {
	switch item.Origin {
	case OriginLibrary:
		if _, ok := registry.Lookup(item.Type); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownType, item.Type)
		}
	case OriginCanvas:
		component, ok := c.builder.Component(item.ID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownComponent, item.ID)
		}
		item.Type = component.Type
	default:
		return fmt.Errorf("unknown drag origin %d", item.Origin)
	}

	c.mu.Lock()
	c.active = &item
	c.over = nil
	c.mu.Unlock()
	return nil
}

// Over records the hovered target for visual feedback only.
func (c *Coordinator) Over(target Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return
	}
	c.over = &target
}

// Cancel abandons the gesture without mutating anything.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = nil
	c.over = nil
}

// State reports Idle or Dragging.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return StateDragging
	}
	return StateIdle
}

// Active returns the dragged item, if any.
func (c *Coordinator) Active() (DragItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return DragItem{}, false
	}
	return *c.active, true
}

// Hover returns the last target passed to Over during this gesture.
func (c *Coordinator) Hover() (Target, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.over == nil {
		return Target{}, false
	}
	return *c.over, true
}

// End resolves the drop on target and always returns to Idle.
func (c *Coordinator) End(ctx context.Context, target Target) (Result, error) {
	c.mu.Lock()
	active := c.active
	zone := c.zones[target.ID]
	c.active = nil
	c.over = nil
	c.mu.Unlock()

	if active == nil {
		return Result{Action: ActionNone}, nil
	}

	result, err := c.resolve(ctx, *active, target, zone)
	c.logger.Debug(ctx, "drop resolved",
		"origin", active.Origin.String(),
		"item", active.ID,
		"action", string(result.Action),
		"target", target.ID,
	)
	if c.publisher != nil {
		_ = c.publisher.Publish(ctx, ports.NewEvent(ports.EventDropResolved,
			"origin", active.Origin.String(),
			"action", string(result.Action),
			"component_id", result.ComponentID,
			"zone_id", result.ZoneID,
		))
	}
	return result, err
}

func (c *Coordinator) resolve(ctx context.Context, item DragItem, target Target, zone DropZone) (Result, error) {
	switch {
	case item.Origin == OriginLibrary && target.Kind == TargetCanvas:
		props, err := registry.DefaultProps(item.Type)
		if err != nil {
			return Result{Action: ActionNone}, err
		}
		id := c.builder.AddComponent(page.Draft{Type: item.Type, Props: props})
		idx := c.builder.IndexOf(id)
		return Result{Action: ActionInsert, ComponentID: id, From: -1, To: idx}, nil

	case item.Origin == OriginCanvas && target.Kind == TargetComponent:
		// positions are resolved now; the list may have changed since Start
		from := c.builder.IndexOf(item.ID)
		to := c.builder.IndexOf(target.ID)
		if from < 0 || to < 0 || from == to {
			return Result{Action: ActionNone, ComponentID: item.ID}, nil
		}
		if err := c.builder.ReorderComponents(from, to); err != nil {
			return Result{Action: ActionNone, ComponentID: item.ID}, err
		}
		return Result{Action: ActionReorder, ComponentID: item.ID, From: from, To: to}, nil

	case item.Origin == OriginCanvas && target.Kind == TargetZone:
		if zone == nil {
			return Result{Action: ActionNone, ComponentID: item.ID}, nil
		}
		if !zone.Accepts(item.Type) {
			return Result{Action: ActionRejected, ComponentID: item.ID, ZoneID: zone.ID()}, nil
		}
		component, ok := c.builder.Component(item.ID)
		if !ok {
			return Result{Action: ActionNone, ComponentID: item.ID}, nil
		}
		if err := zone.OnAccept(ctx, component); err != nil {
			return Result{Action: ActionZoneAccept, ComponentID: item.ID, ZoneID: zone.ID()},
				fmt.Errorf("drop zone %s: %w", zone.ID(), err)
		}
		return Result{Action: ActionZoneAccept, ComponentID: item.ID, ZoneID: zone.ID()}, nil

	default:
		return Result{Action: ActionNone, ComponentID: item.ID}, nil
	}
}
