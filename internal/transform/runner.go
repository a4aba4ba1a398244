// Package transform runs user Lua scripts over byte slices.
//
// A script receives the selected bytes as a Lua string and must define
//
//	function filter(input)
//	    return input:upper()
//	end
//
// The returned string replaces the selection. Scripts run inside a
// restricted state: only the base, string, table, and math libraries
// are opened, so a script cannot touch the filesystem or spawn
// processes.
package transform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// ErrRunnerClosed is returned when a filter is requested after Close.
var ErrRunnerClosed = errors.New("transform runner is closed")

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 10 * time.Second

type call struct {
	fn     func(L *lua.LState) error
	result chan error
}

// Runner owns a Lua state and serializes all script runs through a
// single goroutine. An LState is not goroutine-safe, so every operation
// is marshalled onto the goroutine that owns it.
type Runner struct {
	queue   chan *call
	done    chan struct{}
	closed  atomic.Bool
	once    sync.Once
	timeout time.Duration
}

// NewRunner creates a runner and starts its worker goroutine.
func NewRunner() *Runner {
	r := &Runner{
		queue:   make(chan *call, 16),
		done:    make(chan struct{}),
		timeout: DefaultTimeout,
	}
	go r.loop()
	return r
}

func (r *Runner) loop() {
	L := newState()
	defer L.Close()

	for {
		select {
		case <-r.done:
			r.drain()
			return
		case c := <-r.queue:
			c.result <- runCall(L, c.fn)
			close(c.result)
		}
	}
}

// newState builds a restricted Lua state.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}
	return L
}

func runCall(L *lua.LState, fn func(*lua.LState) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			switch v := rec.(type) {
			case error:
				err = v
			default:
				err = fmt.Errorf("lua panic: %v", v)
			}
		}
	}()
	return fn(L)
}

func (r *Runner) drain() {
	for {
		select {
		case c := <-r.queue:
			c.result <- ErrRunnerClosed
			close(c.result)
		default:
			return
		}
	}
}

// Filter loads the script at path and applies its filter function to
// input. The signature matches what the editor expects from an
// external transform.
func (r *Runner) Filter(path string, input []byte) ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrRunnerClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var out []byte
	c := &call{
		fn: func(L *lua.LState) error {
			L.SetContext(ctx)
			defer L.RemoveContext()

			// A fresh global for filter per run keeps one script's
			// definition from leaking into the next.
			L.SetGlobal("filter", lua.LNil)
			if err := L.DoFile(path); err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}

			fn := L.GetGlobal("filter")
			if fn.Type() != lua.LTFunction {
				return fmt.Errorf("%s does not define a filter function", path)
			}

			L.Push(fn)
			L.Push(lua.LString(input))
			if err := L.PCall(1, 1, nil); err != nil {
				return fmt.Errorf("running %s: %w", path, err)
			}
			ret := L.Get(-1)
			L.Pop(1)

			s, ok := ret.(lua.LString)
			if !ok {
				return fmt.Errorf("%s: filter returned %s, want string", path, ret.Type())
			}
			out = []byte(s)
			return nil
		},
		result: make(chan error, 1),
	}

	select {
	case r.queue <- c:
	case <-r.done:
		return nil, ErrRunnerClosed
	}

	select {
	case err := <-c.result:
		if err != nil {
			return nil, err
		}
		return out, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the worker goroutine. Queued runs fail with
// ErrRunnerClosed.
func (r *Runner) Close() {
	r.once.Do(func() {
		r.closed.Store(true)
		close(r.done)
	})
}
