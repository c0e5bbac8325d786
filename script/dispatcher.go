// Package script runs tengo transition handlers. A handler script defines
// any of onPreTransition, onPostTransition and onOnlyMoveCamera; each takes
// the trigger name and may call emit(name) to raise a world event.
package script

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const (
	HookPreTransition  = "onPreTransition"
	HookPostTransition = "onPostTransition"
	HookOnlyMoveCamera = "onOnlyMoveCamera"
)

var hookNames = []string{HookPreTransition, HookPostTransition, HookOnlyMoveCamera}

var (
	ErrEmptyScript = errors.New("script: empty source")
	ErrScriptPanic = errors.New("script: runtime panic")
)

// Dispatcher implements transition.Events on top of a compiled script.
type Dispatcher struct {
	name     string
	compiled *tengo.Compiled
	hooks    map[string]bool
	emit     func(event string)
	err      error
}

// New compiles src for the trigger called name. emit may be nil.
func New(name string, src []byte, emit func(event string)) (*Dispatcher, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, ErrEmptyScript
	}
	d := &Dispatcher{name: name, emit: emit, hooks: map[string]bool{}}

	probe, err := d.compile(src, "")
	if err != nil {
		return nil, fmt.Errorf("script: %s: compile: %w", name, err)
	}
	if err := run(probe); err != nil {
		return nil, fmt.Errorf("script: %s: run: %w", name, err)
	}

	var dispatch strings.Builder
	for _, hook := range hookNames {
		if !probe.IsDefined(hook) {
			continue
		}
		d.hooks[hook] = true
		fmt.Fprintf(&dispatch, "if __hook == %q { %s(__name) }\n", hook, hook)
	}

	compiled, err := d.compile(src, dispatch.String())
	if err != nil {
		return nil, fmt.Errorf("script: %s: compile dispatch: %w", name, err)
	}
	d.compiled = compiled
	return d, nil
}

func (d *Dispatcher) compile(src []byte, dispatch string) (*tengo.Compiled, error) {
	full := string(src)
	if dispatch != "" {
		full += "\n" + dispatch
	}
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__hook", "")
	_ = script.Add("__name", d.name)
	_ = script.Add("emit", &tengo.UserFunction{Name: "emit", Value: d.emitFunc})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (d *Dispatcher) emitFunc(args ...tengo.Object) (tengo.Object, error) {
	if d.emit == nil || d.compiled == nil || len(args) < 1 {
		return tengo.FalseValue, nil
	}
	name, ok := tengo.ToString(args[0])
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return tengo.FalseValue, nil
	}
	d.emit(name)
	return tengo.TrueValue, nil
}

func (d *Dispatcher) Name() string { return d.name }

// Handles reports whether the script defines hook.
func (d *Dispatcher) Handles(hook string) bool { return d.hooks[hook] }

// Err is the last handler failure, if any.
func (d *Dispatcher) Err() error { return d.err }

func (d *Dispatcher) PreTransition() { d.dispatch(HookPreTransition) }
func (d *Dispatcher) PostTransition() { d.dispatch(HookPostTransition) }
func (d *Dispatcher) OnlyMoveCamera() { d.dispatch(HookOnlyMoveCamera) }

func (d *Dispatcher) dispatch(hook string) {
	if d == nil || !d.hooks[hook] {
		return
	}
	if err := d.compiled.Set("__hook", hook); err != nil {
		d.fail(hook, err)
		return
	}
	if err := run(d.compiled); err != nil {
		d.fail(hook, err)
	}
}

// run turns a VM panic (integer division by zero, for one) into an error.
func run(c *tengo.Compiled) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScriptPanic, r)
		}
	}()
	return c.Run()
}

func (d *Dispatcher) fail(hook string, err error) {
	d.err = fmt.Errorf("script: %s %s: %w", d.name, hook, err)
	log.Printf("%v", d.err)
}
