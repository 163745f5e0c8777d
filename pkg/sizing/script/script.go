// Package script implements sizing handlers written in Lua.
//
// A script defines a global function size that receives the sizing input
// as a table and returns the placement as a table:
//
//	description = "pin to the top-left corner"
//
//	function size(input)
//	  return {
//	    width  = input.targetWidth,
//	    height = input.targetHeight,
//	    left   = input.paddingLeft,
//	    top    = input.paddingTop,
//	  }
//	end
//
// Input keys are paddingTop, paddingRight, paddingBottom, paddingLeft,
// containerWidth, containerHeight, targetWidth and targetHeight. Missing
// output fields read as 0, a missing scale as 1. The optional globals
// description (string) and ratio_based (boolean) fill the handler's
// [sizing.Info].
//
// Handlers never fail at call time: a Lua error is logged, kept for
// [Handler.Err], and the fallback handler answers instead.
package script

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	glua "github.com/yuin/gopher-lua"

	"github.com/matzehuels/boxfit/pkg/errors"
	"github.com/matzehuels/boxfit/pkg/sizing"
)

// EntryPoint is the global function every script must define.
const EntryPoint = "size"

// Handler is a sizing.Handler backed by a Lua state.
// Calls are serialized; a Lua state is not safe for concurrent use.
type Handler struct {
	info     sizing.Info
	fallback sizing.Handler
	logger   *log.Logger

	mu  sync.Mutex
	L   *glua.LState
	fn  *glua.LFunction
	err error
}

// Option configures a Handler.
type Option func(*Handler)

// WithFallback sets the handler used when the script fails. Defaults to
// sizing.Center.
func WithFallback(h sizing.Handler) Option {
	return func(s *Handler) {
		if h != nil {
			s.fallback = h
		}
	}
}

// WithLogger sets the logger for script errors. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Handler) { s.logger = l }
}

// Compile loads src and resolves its size function.
func Compile(name, src string, opts ...Option) (*Handler, error) {
	h := &Handler{
		info:     sizing.Info{Name: name},
		fallback: sizing.Center,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = log.Default()
	}

	L := glua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "load script %s", name)
	}

	fn, ok := L.GetGlobal(EntryPoint).(*glua.LFunction)
	if !ok {
		L.Close()
		return nil, errors.New(errors.ErrCodeInvalidScript, "script %s does not define function %s(input)", name, EntryPoint)
	}

	if desc, ok := L.GetGlobal("description").(glua.LString); ok {
		h.info.Description = string(desc)
	} else {
		h.info.Description = "lua script"
	}
	h.info.RatioBased = glua.LVAsBool(L.GetGlobal("ratio_based"))

	h.L = L
	h.fn = fn
	return h, nil
}

// Load compiles the script at path. The handler is named after the file,
// without its extension.
func Load(path string, opts ...Option) (*Handler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "read script %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Compile(name, string(data), opts...)
}

// Info returns the handler metadata for registration.
func (h *Handler) Info() sizing.Info { return h.info }

// Name returns the handler name.
func (h *Handler) Name() string { return h.info.Name }

// Err returns the error of the most recent call, nil if it succeeded.
func (h *Handler) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Close releases the Lua state. Later calls answer with the fallback.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.L != nil {
		h.L.Close()
		h.L = nil
	}
}

// Size runs the script's size function.
func (h *Handler) Size(in sizing.Input) sizing.Output {
	h.mu.Lock()
	out, err := h.call(in)
	h.err = err
	h.mu.Unlock()

	if err != nil {
		h.logger.Warn("sizing script failed, using fallback", "script", h.info.Name, "error", err)
		return h.fallback.Size(in)
	}
	return out
}

func (h *Handler) call(in sizing.Input) (sizing.Output, error) {
	if h.L == nil {
		return sizing.Output{}, errors.New(errors.ErrCodeInvalidScript, "script %s is closed", h.info.Name)
	}
	L := h.L

	if err := L.CallByParam(glua.P{
		Fn:      h.fn,
		NRet:    1,
		Protect: true,
	}, inputTable(L, in)); err != nil {
		return sizing.Output{}, errors.Wrap(errors.ErrCodeInvalidScript, err, "run script %s", h.info.Name)
	}

	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*glua.LTable)
	if !ok {
		return sizing.Output{}, errors.New(errors.ErrCodeInvalidScript,
			"script %s: %s must return a table, got %s", h.info.Name, EntryPoint, ret.Type())
	}
	return outputFrom(tbl), nil
}

func inputTable(L *glua.LState, in sizing.Input) *glua.LTable {
	t := L.NewTable()
	t.RawSetString("paddingTop", glua.LNumber(in.PaddingTop))
	t.RawSetString("paddingRight", glua.LNumber(in.PaddingRight))
	t.RawSetString("paddingBottom", glua.LNumber(in.PaddingBottom))
	t.RawSetString("paddingLeft", glua.LNumber(in.PaddingLeft))
	t.RawSetString("containerWidth", glua.LNumber(in.ContainerWidth))
	t.RawSetString("containerHeight", glua.LNumber(in.ContainerHeight))
	t.RawSetString("targetWidth", glua.LNumber(in.TargetWidth))
	t.RawSetString("targetHeight", glua.LNumber(in.TargetHeight))
	return t
}

func outputFrom(t *glua.LTable) sizing.Output {
	num := func(key string) float64 { return float64(glua.LVAsNumber(t.RawGetString(key))) }

	out := sizing.Output{
		Width:  num("width"),
		Height: num("height"),
		Left:   num("left"),
		Top:    num("top"),
		Scale:  1,
	}
	if v := t.RawGetString("scale"); v != glua.LNil {
		out.Scale = float64(glua.LVAsNumber(v))
	}
	return out
}
