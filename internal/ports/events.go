package ports

import "context"

const (
	// EventComponentAdded is emitted after a block is appended to the page.
	EventComponentAdded = "component.added"
	// EventComponentUpdated is emitted after a block's fields are merged.
	EventComponentUpdated = "component.updated"
	// EventComponentDeleted is emitted after a block is removed.
	EventComponentDeleted = "component.deleted"
	// EventComponentsReordered is emitted after a splice move.
	EventComponentsReordered = "component.reordered"
	// EventComponentDuplicated is emitted after a block is cloned.
	EventComponentDuplicated = "component.duplicated"
	// EventSelectionChanged is emitted when the selected block changes.
	EventSelectionChanged = "selection.changed"
	// EventHistoryUndo is emitted when a snapshot is restored from the past stack.
	EventHistoryUndo = "history.undo"
	// EventHistoryRedo is emitted when a snapshot is restored from the future stack.
	EventHistoryRedo = "history.redo"
	// EventPageSaved is emitted after a successful save.
	EventPageSaved = "page.saved"
	// EventPageSaveFailed is emitted when persistence rejects a save.
	EventPageSaveFailed = "page.save_failed"
	// EventPageLoaded is emitted after the page is replaced wholesale.
	EventPageLoaded = "page.loaded"
	// EventPageCleared is emitted after the page is reset.
	EventPageCleared = "page.cleared"
	// EventDropResolved is emitted when a drag gesture ends.
	EventDropResolved = "dnd.drop_resolved"
	// EventThemeChanged is emitted when the active palette changes.
	EventThemeChanged = "theme.changed"
)

// DomainEvent represents a significant state change. Events carry structured
// payloads that subscribers use for logging or UI refresh.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish returns after all handlers ran. Implementations must be
// thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}

// Event is the stock DomainEvent implementation.
type Event struct {
	Type string
	Data map[string]interface{}
}

// EventType implements DomainEvent.
func (e Event) EventType() string { return e.Type }

// Payload implements DomainEvent.
func (e Event) Payload() interface{} { return e.Data }

// NewEvent builds an Event from alternating key/value pairs.
func NewEvent(eventType string, kv ...interface{}) Event {
	data := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		data[key] = kv[i+1]
	}
	return Event{Type: eventType, Data: data}
}
