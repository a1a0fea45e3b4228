package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

// OpKind names one edit-script operation.
type OpKind string

const (
	OpAdd          OpKind = "add"
	OpUpdate       OpKind = "update"
	OpSet          OpKind = "set"
	OpDelete       OpKind = "delete"
	OpMove         OpKind = "move"
	OpDuplicate    OpKind = "duplicate"
	OpSelect       OpKind = "select"
	OpHide         OpKind = "hide"
	OpShow         OpKind = "show"
	OpUndo         OpKind = "undo"
	OpRedo         OpKind = "redo"
	OpDrag         OpKind = "drag"
	OpLoadTemplate OpKind = "load_template"
	OpClear        OpKind = "clear"
)

// Script is a batch of builder operations applied in one session.
type Script struct {
	Version    string      `yaml:"version" validate:"required,semver"`
	Name       string      `yaml:"name" validate:"max=100"`
	Save       *bool       `yaml:"save,omitempty"`
	Operations []Operation `yaml:"operations" validate:"required,min=1,dive"`
}

// ShouldSave reports whether the page is persisted after the run. Defaults to true.
func (s *Script) ShouldSave() bool {
	return s.Save == nil || *s.Save
}

// Operation is one script entry. Exactly one payload pointer is set for the
// operations that carry one.
//
// Target ids accept literal component ids plus the references "$last" (the
// most recently created block), "$selected" and "@N" (zero-based position).
type Operation struct {
	Op   OpKind `yaml:"op" validate:"required,oneof=add update set delete move duplicate select hide show undo redo drag load_template clear"`
	ID   string `yaml:"id,omitempty"`
	Line int    `yaml:"-"`

	Add          *AddOp      `yaml:"-"`
	Update       *UpdateOp   `yaml:"-"`
	Move         *MoveOp     `yaml:"-"`
	Drag         *DragOp     `yaml:"-"`
	LoadTemplate *TemplateOp `yaml:"-"`
}

// AddOp appends a block, optionally overriding registry defaults.
type AddOp struct {
	Type   string            `yaml:"type" validate:"required"`
	Props  map[string]any    `yaml:"props,omitempty"`
	Values map[string]string `yaml:"values,omitempty"`
	Hidden bool              `yaml:"hidden,omitempty"`
}

// UpdateOp merges props (update) or sets dotted paths (set) on a block.
type UpdateOp struct {
	Props  map[string]any    `yaml:"props,omitempty"`
	Values map[string]string `yaml:"values,omitempty" validate:"omitempty,dive,keys,required,endkeys"`
}

// MoveOp splices the block at From to position To.
type MoveOp struct {
	From *int `yaml:"from" validate:"required,min=0"`
	To   *int `yaml:"to" validate:"required,min=0"`
}

// DragOp replays a full drag gesture. From is "library:<type>" or
// "canvas:<id>"; To is "canvas", "component:<id>", "zone:<id>" or "none".
type DragOp struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// TemplateOp replaces the page with a starter template.
type TemplateOp struct {
	Template string `yaml:"template" validate:"required"`
}

// UnmarshalYAML decodes the common fields then the op-specific payload.
func (o *Operation) UnmarshalYAML(value *yaml.Node) error {
	type baseOp struct {
		Op string `yaml:"op"`
		ID string `yaml:"id"`
	}

	var base baseOp
	if err := value.Decode(&base); err != nil {
		return err
	}

	o.Op = OpKind(base.Op)
	o.ID = base.ID
	o.Line = value.Line

	o.Add = nil
	o.Update = nil
	o.Move = nil
	o.Drag = nil
	o.LoadTemplate = nil

	switch o.Op {
	case OpAdd:
		var add AddOp
		if err := value.Decode(&add); err != nil {
			return err
		}
		o.Add = &add
	case OpUpdate, OpSet:
		var upd UpdateOp
		if err := value.Decode(&upd); err != nil {
			return err
		}
		o.Update = &upd
	case OpMove:
		var mv MoveOp
		if err := value.Decode(&mv); err != nil {
			return err
		}
		o.Move = &mv
	case OpDrag:
		var drag DragOp
		if err := value.Decode(&drag); err != nil {
			return err
		}
		o.Drag = &drag
	case OpLoadTemplate:
		var tpl TemplateOp
		if err := value.Decode(&tpl); err != nil {
			return err
		}
		o.LoadTemplate = &tpl
	}

	return nil
}

// NeedsTarget reports whether the operation addresses an existing block.
func (o Operation) NeedsTarget() bool {
	switch o.Op {
	case OpUpdate, OpSet, OpDelete, OpDuplicate, OpSelect, OpHide, OpShow:
		return true
	}
	return false
}

// ParseScript reads and validates an edit script from disk.
func ParseScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pserrors.NewParseError(path, 0, err)
	}
	return ParseScriptBytes(path, data)
}

// ParseScriptBytes decodes and validates an edit script. path only labels errors.
func ParseScriptBytes(path string, data []byte) (*Script, error) {
	var script Script
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&script); err != nil {
		return nil, pserrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateScript(&script); err != nil {
		return nil, err
	}
	return &script, nil
}

// ValidateScript applies struct rules plus the per-operation requirements
// struct tags cannot express.
func ValidateScript(script *Script) error {
	if script == nil {
		return pserrors.NewValidationError("script", "script is nil", nil)
	}
	if err := convertValidationError(validatorInstance().Struct(script)); err != nil {
		return err
	}

	for i, op := range script.Operations {
		field := fmt.Sprintf("operations[%d]", i)
		if op.NeedsTarget() && op.ID == "" {
			return pserrors.NewValidationError(field+".id", fmt.Sprintf("line %d: %s requires an id", op.Line, op.Op), nil)
		}
		if op.Op == OpUpdate && op.Update != nil && len(op.Update.Props) == 0 {
			return pserrors.NewValidationError(field+".props", fmt.Sprintf("line %d: update requires props", op.Line), nil)
		}
		if op.Op == OpSet && op.Update != nil && len(op.Update.Values) == 0 {
			return pserrors.NewValidationError(field+".values", fmt.Sprintf("line %d: set requires values", op.Line), nil)
		}
	}
	return nil
}
