package page

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type componentJSON struct {
	ID         string          `json:"id"`
	Type       ComponentType   `json:"type"`
	Props      json.RawMessage `json:"props"`
	Order      int             `json:"order"`
	IsVisible  bool            `json:"isVisible"`
	Animations *Animation      `json:"animations,omitempty"`
}

// MarshalJSON encodes the component with its props nested under "props".
func (c PlacedComponent) MarshalJSON() ([]byte, error) {
	props := json.RawMessage("{}")
	if c.Props != nil {
		raw, err := json.Marshal(c.Props)
		if err != nil {
			return nil, fmt.Errorf("encode props for %s: %w", c.ID, err)
		}
		props = raw
	}
	return json.Marshal(componentJSON{
		ID:         c.ID,
		Type:       c.Type,
		Props:      props,
		Order:      c.Order,
		IsVisible:  c.IsVisible,
		Animations: c.Animation,
	})
}

// UnmarshalJSON decodes a component, dispatching props on the type tag.
func (c *PlacedComponent) UnmarshalJSON(data []byte) error {
	var raw componentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	props, err := DecodeProps(raw.Type, raw.Props)
	if err != nil {
		return err
	}
	*c = PlacedComponent{
		ID:        raw.ID,
		Type:      raw.Type,
		Props:     props,
		Order:     raw.Order,
		IsVisible: raw.IsVisible,
		Animation: raw.Animations,
	}
	return nil
}

// DecodeProps decodes a JSON props object into the variant named by t.
// Unknown fields are rejected.
func DecodeProps(t ComponentType, data []byte) (Props, error) {
	props := NewProps(t)
	if props == nil {
		return nil, &UnknownTypeError{Type: string(t)}
	}
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return props, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(props); err != nil {
		return nil, fmt.Errorf("decode %s props: %w", t, err)
	}
	return props, nil
}

// MarshalList encodes a component list as a JSON array. A nil list encodes as [].
func MarshalList(list []PlacedComponent) ([]byte, error) {
	if list == nil {
		list = []PlacedComponent{}
	}
	return json.Marshal(list)
}

// UnmarshalList decodes a JSON array of components.
func UnmarshalList(data []byte) ([]PlacedComponent, error) {
	var list []PlacedComponent
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []PlacedComponent{}
	}
	return list, nil
}
