// luaio.go - a Lua-scriptable Ports backend, for the test hooks §6 recommends

package backend

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// LuaPorts backs the I/O-port capability with a Lua script: OUT to a
// bound port calls the script's on_out(port, value, width) function,
// IN calls on_in(port, width) and expects a returned integer. Ports
// with no script binding fall through to a zeroed in-memory array,
// so a script only needs to implement the ports it cares about — e.g.
// the fail-port/trace-port pair §6 recommends for the test suite.
type LuaPorts struct {
	mu     sync.Mutex
	L      *lua.LState
	bound  map[uint16]bool
	fallback [1 << 16]byte
}

// NewLuaPorts creates a Ports backend and loads script into it. script
// is Lua source, not a path — callers read the file themselves.
func NewLuaPorts(script string) (*LuaPorts, error) {
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("luaio: loading script: %w", err)
	}
	p := &LuaPorts{L: L, bound: make(map[uint16]bool)}
	return p, nil
}

// Close releases the embedded Lua state.
func (p *LuaPorts) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.L.Close()
}

// Bind marks a port as script-handled; unbound ports use the fallback
// array and never touch Lua.
func (p *LuaPorts) Bind(port uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bound[port] = true
}

func (p *LuaPorts) callIn(port uint16, width int) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.bound[port] {
		return uint16(p.fallback[port])
	}
	fn := p.L.GetGlobal("on_in")
	if fn.Type() != lua.LTFunction {
		return 0
	}
	if err := p.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
		lua.LNumber(port), lua.LNumber(width)); err != nil {
		return 0
	}
	ret := p.L.Get(-1)
	p.L.Pop(1)
	if n, ok := ret.(lua.LNumber); ok {
		return uint16(n)
	}
	return 0
}

func (p *LuaPorts) callOut(port uint16, value uint16, width int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.bound[port] {
		p.fallback[port] = byte(value)
		return
	}
	fn := p.L.GetGlobal("on_out")
	if fn.Type() != lua.LTFunction {
		return
	}
	_ = p.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
		lua.LNumber(port), lua.LNumber(value), lua.LNumber(width))
}

func (p *LuaPorts) InByte(port uint16) byte    { return byte(p.callIn(port, 8)) }
func (p *LuaPorts) OutByte(port uint16, v byte) { p.callOut(port, uint16(v), 8) }
func (p *LuaPorts) InWord(port uint16) uint16   { return p.callIn(port, 16) }
func (p *LuaPorts) OutWord(port uint16, v uint16) { p.callOut(port, v, 16) }
