package evmi

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/evmcore/evmi/util"
)

// Step is the per-instruction snapshot handed to hooks: the instruction
// about to run (or that just ran) and borrowed references to the live
// working set, so a hook can inspect (never mutate) stack/memory/storage.
type Step struct {
	Pc    uint64
	Op    Opcode
	Stack *Stack
	Mem   *Memory
	Store Storage
	Ctx   *ExecutionContext
}

// Hook observes the interpreter one instruction at a time. PreRun runs
// before the instruction executes; returning a non-nil error pauses the
// run (used for breakpoints). PostRun runs after, once the stack/memory
// reflect the instruction's effect.
type Hook interface {
	PreRun(step *Step) error
	PostRun(step *Step) error
}

// EmptyHook gives a Hook implementation every method it doesn't need to
// override for free, via embedding; BpPc/BpOpCode/EvmLog all use this to
// implement just the one method they care about.
type EmptyHook struct{}

func (EmptyHook) PreRun(step *Step) error  { return nil }
func (EmptyHook) PostRun(step *Step) error { return nil }

var hookTypes = make(map[string]reflect.Type)

// RegisterHook makes a Hook type known to Hooks' JSON unmarshaling so a
// saved debugger session (breakpoints, tracers) can be reloaded by name.
// Call it from an init() alongside the hook's declaration, one per
// concrete hook type.
func RegisterHook(h Hook) {
	t := reflect.TypeOf(h).Elem()
	hookTypes[t.Name()] = t
}

func makeHookInstance(name string) (Hook, error) {
	t, ok := hookTypes[name]
	if !ok {
		return nil, fmt.Errorf("unregistered hook type: %s", name)
	}
	return reflect.New(t).Interface().(Hook), nil
}

// Hooks is an ordered, attach/detach-able set of Hook instances run on
// every interpreter step.
type Hooks struct {
	arr []Hook
}

// MarshalJSON renders each hook as {"Type": <registered name>, "Value": <hook>}.
func (hks *Hooks) MarshalJSON() ([]byte, error) {
	arr := []any{}
	for _, h := range hks.arr {
		arr = append(arr, map[string]any{
			"Type":  reflect.TypeOf(h).Elem().Name(),
			"Value": h,
		})
	}
	return json.MarshalIndent(arr, "", "  ")
}

// UnmarshalJSON is the inverse of MarshalJSON; hook types must already be
// registered via RegisterHook.
func (hks *Hooks) UnmarshalJSON(bs []byte) error {
	var arr []any
	if e := json.Unmarshal(bs, &arr); e != nil {
		return e
	}
	for _, item := range arr {
		entry, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("invalid hook entry: %v", item)
		}
		typeName, ok := entry["Type"].(string)
		if !ok {
			return fmt.Errorf("hook entry missing 'Type': %v", entry)
		}
		h, e := makeHookInstance(typeName)
		if e != nil {
			return e
		}
		if e := util.MapToStruct(entry["Value"], h); e != nil {
			return e
		}
		hks.Attach(h)
	}
	return nil
}

// PreRunAll invokes every attached hook's PreRun, returning the last
// non-nil error. Running every hook rather than stopping at the first
// error means a caller that detaches the offending hook and resumes
// still gets every other hook's observation for this step.
func (hks *Hooks) PreRunAll(step *Step) error {
	var err error
	for _, h := range hks.arr {
		if e := h.PreRun(step); e != nil {
			err = e
		}
	}
	return err
}

// PostRunAll invokes every attached hook's PostRun, same error semantics
// as PreRunAll.
func (hks *Hooks) PostRunAll(step *Step) error {
	var err error
	for _, h := range hks.arr {
		if e := h.PostRun(step); e != nil {
			err = e
		}
	}
	return err
}

// Attach adds h to the end of the hook list.
func (hks *Hooks) Attach(h Hook) {
	hks.arr = append(hks.arr, h)
}

// Detach removes the hook at index i, a no-op if i is out of range.
func (hks *Hooks) Detach(i int) {
	if i >= 0 && i < len(hks.arr) {
		hks.arr = append(hks.arr[:i], hks.arr[i+1:]...)
	}
}

// List returns the currently attached hooks in attach order.
func (hks *Hooks) List() []Hook {
	return hks.arr
}
