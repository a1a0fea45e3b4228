package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/pagesmith/internal/config"
	"github.com/alexisbeaulieu97/pagesmith/internal/dnd"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/registry"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

// Component references accepted wherever a script or command takes an id.
const (
	RefLast     = "$last"
	RefSelected = "$selected"
)

// ErrUnresolved is returned when a component reference matches nothing.
var ErrUnresolved = errors.New("component reference does not resolve")

// StepResult records one applied operation.
type StepResult struct {
	Index  int
	Op     config.OpKind
	Line   int
	Target string
	Detail string
}

// Report summarises a script run.
type Report struct {
	Steps   []StepResult
	Created []string
	Saved   bool
}

// Runner applies script operations against a session. It remembers the
// most recently created block for "$last".
type Runner struct {
	s    *Session
	last string
}

// NewRunner returns a Runner bound to s.
func (s *Session) NewRunner() *Runner {
	return &Runner{s: s}
}

// Apply runs every operation of script in order, stopping at the first
// failure. Nothing is persisted when an operation fails; otherwise the page
// is saved unless the script opts out.
func (s *Session) Apply(ctx context.Context, script *config.Script) (Report, error) {
	var report Report
	if script == nil {
		return report, pserrors.NewValidationError("script", "script is nil", nil)
	}

	r := s.NewRunner()
	for i, op := range script.Operations {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		step, created, err := r.Run(ctx, op)
		step.Index = i
		if err != nil {
			s.Logger.Error(ctx, "script operation failed", "index", i, "op", string(op.Op), "line", op.Line, "error", err)
			return report, fmt.Errorf("operation %d (%s, line %d): %w", i, op.Op, op.Line, err)
		}
		report.Steps = append(report.Steps, step)
		if created != "" {
			report.Created = append(report.Created, created)
		}
	}

	if script.ShouldSave() {
		if err := s.Save(ctx); err != nil {
			return report, err
		}
		report.Saved = true
	}
	s.Logger.Info(ctx, "script applied", "name", script.Name, "operations", len(report.Steps), "saved", report.Saved)
	return report, nil
}

// Resolve maps a reference to a component id: "$last", "$selected", "@N"
// (position, negative counts from the end) or a literal id.
func (r *Runner) Resolve(ref string) (string, error) {
	switch {
	case ref == RefLast:
		if r.last == "" || r.s.Builder.IndexOf(r.last) < 0 {
			return "", fmt.Errorf("%w: %s", ErrUnresolved, ref)
		}
		return r.last, nil
	case ref == RefSelected:
		c, ok := r.s.Builder.Selected()
		if !ok {
			return "", fmt.Errorf("%w: nothing is selected", ErrUnresolved)
		}
		return c.ID, nil
	case strings.HasPrefix(ref, "@"):
		return r.s.ResolvePosition(strings.TrimPrefix(ref, "@"))
	default:
		if r.s.Builder.IndexOf(ref) < 0 {
			return "", fmt.Errorf("%w: %q", ErrUnresolved, ref)
		}
		return ref, nil
	}
}

// ResolvePosition maps a zero-based position (negative from the end) to an id.
func (s *Session) ResolvePosition(pos string) (string, error) {
	n, err := strconv.Atoi(pos)
	if err != nil {
		return "", fmt.Errorf("%w: bad position %q", ErrUnresolved, pos)
	}
	list := s.Builder.Components()
	if n < 0 {
		n += len(list)
	}
	if n < 0 || n >= len(list) {
		return "", fmt.Errorf("%w: position %s out of range (page has %d blocks)", ErrUnresolved, pos, len(list))
	}
	return list[n].ID, nil
}

// Run applies one operation. created is the id of a block the operation
// added, if any.
func (r *Runner) Run(ctx context.Context, op config.Operation) (StepResult, string, error) {
	step := StepResult{Op: op.Op, Line: op.Line}
	b := r.s.Builder

	var target string
	if op.NeedsTarget() {
		id, err := r.Resolve(op.ID)
		if err != nil {
			return step, "", err
		}
		target = id
		step.Target = id
	}

	switch op.Op {
	case config.OpAdd:
		if op.Add == nil {
			return step, "", pserrors.NewValidationError("add", "missing payload", nil)
		}
		typ, err := page.ParseType(op.Add.Type)
		if err != nil {
			return step, "", err
		}
		props, err := BuildProps(typ, op.Add.Props, op.Add.Values)
		if err != nil {
			return step, "", err
		}
		id := b.AddComponent(page.Draft{Type: typ, Props: props, Hidden: op.Add.Hidden})
		r.last = id
		step.Target = id
		step.Detail = "added " + typ.Label()
		return step, id, nil

	case config.OpUpdate, config.OpSet:
		if op.Update == nil {
			return step, "", pserrors.NewValidationError(string(op.Op), "missing payload", nil)
		}
		c, _ := b.Component(target)
		props, err := EditProps(c.Props, op.Update.Props, op.Update.Values)
		if err != nil {
			return step, "", err
		}
		if _, err := b.UpdateComponent(target, page.Update{Props: props}); err != nil {
			return step, "", err
		}
		step.Detail = "updated " + c.Type.Label()
		return step, "", nil

	case config.OpDelete:
		b.DeleteComponent(target)
		step.Detail = "deleted"
		return step, "", nil

	case config.OpMove:
		if op.Move == nil || op.Move.From == nil || op.Move.To == nil {
			return step, "", pserrors.NewValidationError("move", "from and to are required", nil)
		}
		if err := b.ReorderComponents(*op.Move.From, *op.Move.To); err != nil {
			return step, "", err
		}
		step.Detail = fmt.Sprintf("moved %d to %d", *op.Move.From, *op.Move.To)
		return step, "", nil

	case config.OpDuplicate:
		id, _ := b.DuplicateComponent(target)
		r.last = id
		step.Detail = "duplicated as " + id
		return step, id, nil

	case config.OpSelect:
		b.SelectComponent(target)
		step.Detail = "selected"
		return step, "", nil

	case config.OpHide, config.OpShow:
		visible := op.Op == config.OpShow
		if _, err := b.UpdateComponent(target, page.Update{IsVisible: page.Visible(visible)}); err != nil {
			return step, "", err
		}
		step.Detail = string(op.Op)
		return step, "", nil

	case config.OpUndo:
		step.Detail = "undone"
		if !b.Undo() {
			step.Detail = "nothing to undo"
		}
		return step, "", nil

	case config.OpRedo:
		step.Detail = "redone"
		if !b.Redo() {
			step.Detail = "nothing to redo"
		}
		return step, "", nil

	case config.OpDrag:
		if op.Drag == nil {
			return step, "", pserrors.NewValidationError("drag", "missing payload", nil)
		}
		res, err := r.drag(ctx, op.Drag.From, op.Drag.To)
		if err != nil {
			return step, "", err
		}
		step.Target = res.ComponentID
		step.Detail = string(res.Action)
		if res.Action == dnd.ActionInsert {
			r.last = res.ComponentID
			return step, res.ComponentID, nil
		}
		return step, "", nil

	case config.OpLoadTemplate:
		if op.LoadTemplate == nil {
			return step, "", pserrors.NewValidationError("load_template", "missing payload", nil)
		}
		if err := r.s.LoadTemplate(op.LoadTemplate.Template); err != nil {
			return step, "", err
		}
		r.last = ""
		step.Detail = "loaded " + op.LoadTemplate.Template
		return step, "", nil

	case config.OpClear:
		b.ClearPage()
		b.MarkDirty()
		r.last = ""
		step.Detail = "cleared"
		return step, "", nil
	}

	return step, "", pserrors.NewValidationError("op", fmt.Sprintf("unsupported operation %q", op.Op), nil)
}

// drag replays a full gesture: start, hover, drop.
func (r *Runner) drag(ctx context.Context, from, to string) (dnd.Result, error) {
	source, ref, ok := strings.Cut(from, ":")
	if !ok {
		return dnd.Result{}, pserrors.NewValidationError("drag.from", fmt.Sprintf("expected library:<type> or canvas:<id>, got %q", from), nil)
	}

	var item dnd.DragItem
	switch source {
	case "library":
		typ, err := page.ParseType(ref)
		if err != nil {
			return dnd.Result{}, err
		}
		item = dnd.LibraryItem(typ)
	case "canvas":
		id, err := r.Resolve(ref)
		if err != nil {
			return dnd.Result{}, err
		}
		item = dnd.CanvasItem(id)
	default:
		return dnd.Result{}, pserrors.NewValidationError("drag.from", fmt.Sprintf("unknown source %q", source), nil)
	}

	target, err := r.target(to)
	if err != nil {
		return dnd.Result{}, err
	}

	coord := r.s.DnD
	if err := coord.Start(item); err != nil {
		return dnd.Result{}, err
	}
	coord.Over(target)
	return coord.End(ctx, target)
}

func (r *Runner) target(spec string) (dnd.Target, error) {
	kind, ref, _ := strings.Cut(spec, ":")
	switch kind {
	case "canvas":
		return dnd.CanvasTarget(), nil
	case "none":
		return dnd.NoTarget(), nil
	case "zone":
		if ref == "" {
			return dnd.Target{}, pserrors.NewValidationError("drag.to", "zone id is required", nil)
		}
		return dnd.ZoneTarget(ref), nil
	case "component":
		id, err := r.Resolve(ref)
		if err != nil {
			return dnd.Target{}, err
		}
		return dnd.ComponentTarget(id), nil
	default:
		return dnd.Target{}, pserrors.NewValidationError("drag.to", fmt.Sprintf("unknown target %q", spec), nil)
	}
}

// BuildProps produces validated props for a new block of type t: registry
// defaults, then merged props, then dotted values.
func BuildProps(t page.ComponentType, props map[string]any, values map[string]string) (page.Props, error) {
	base, err := registry.DefaultProps(t)
	if err != nil {
		return nil, err
	}
	return EditProps(base, props, values)
}

// EditProps merges props and values onto a copy of base and validates the
// result.
func EditProps(base page.Props, props map[string]any, values map[string]string) (page.Props, error) {
	if base == nil {
		return nil, pserrors.NewValidationError("props", "block has no properties", nil)
	}
	out := base.Clone()
	var err error
	if len(props) > 0 {
		if out, err = registry.MergeProps(out, props); err != nil {
			return nil, err
		}
	}
	if len(values) > 0 {
		if out, err = registry.ApplyValues(out, values); err != nil {
			return nil, err
		}
	}
	if err := registry.ValidateProps(out.Type(), out); err != nil {
		return nil, err
	}
	return out, nil
}
