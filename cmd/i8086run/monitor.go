// monitor.go - an interactive single-step debugger over a raw terminal

package main

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/realmode/i8086/i8086"
)

// monitor reads raw keypresses from stdin and single-steps a CPU in
// response, printing the register file after each step. It mirrors the
// host's raw-mode/non-blocking-read shape but drives a CPU instead of
// a terminal MMIO device.
type monitor struct {
	cpu *i8086.CPU

	fd       int
	oldState *term.State

	keys    chan byte
	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once
}

func newMonitor(cpu *i8086.CPU) *monitor {
	return &monitor{
		cpu:    cpu,
		keys:   make(chan byte),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run puts stdin in raw mode, reads one keypress at a time, and drives
// the CPU until 'q' (or Ctrl-C) is pressed. Once the program halts,
// each further step key prints "halted".
func (m *monitor) Run() error {
	m.fd = int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(m.fd)
	if err != nil {
		return fmt.Errorf("monitor: failed to set raw mode: %w", err)
	}
	m.oldState = oldState
	defer m.restore()

	var g errgroup.Group
	g.Go(m.readKeys)
	g.Go(m.loop)

	fmt.Fprint(os.Stdout, "i8086 monitor: space=step, r=run, q=quit\r\n")
	return g.Wait()
}

func (m *monitor) restore() {
	m.stopped.Do(func() { close(m.stopCh) })
	if m.oldState != nil {
		_ = term.Restore(m.fd, m.oldState)
	}
}

func (m *monitor) readKeys() error {
	defer close(m.done)
	defer m.restore()
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			select {
			case m.keys <- buf[0]:
			case <-m.stopCh:
				return nil
			}
		}
		if err != nil {
			return nil
		}
		select {
		case <-m.stopCh:
			return nil
		default:
		}
	}
}

func (m *monitor) loop() error {
	defer m.restore()
	for {
		select {
		case <-m.stopCh:
			return nil
		case k := <-m.keys:
			switch k {
			case 'q', 'Q', 0x03: // Ctrl-C also quits
				m.restore()
				return nil
			case ' ':
				if err := m.step(); err != nil {
					return err
				}
			case 'r', 'R':
				for m.cpu.Running() {
					if err := m.step(); err != nil {
						return err
					}
				}
			}
		}
	}
}

func (m *monitor) step() error {
	if !m.cpu.Running() {
		fmt.Fprint(os.Stdout, "halted\r\n")
		return nil
	}
	if _, err := m.cpu.Step(); err != nil {
		if err == i8086.ErrHalted {
			fmt.Fprint(os.Stdout, "halted\r\n")
			return nil
		}
		return err
	}
	m.printRegs()
	return nil
}

func (m *monitor) printRegs() {
	r := m.cpu.Reg
	fmt.Fprintf(os.Stdout, "AX=%04X BX=%04X CX=%04X DX=%04X SI=%04X DI=%04X BP=%04X SP=%04X CS=%04X DS=%04X ES=%04X SS=%04X IP=%04X FLAGS=%04X\r\n",
		r.AX, r.BX, r.CX, r.DX, r.SI, r.DI, r.BP, r.SP,
		r.CS, r.DS, r.ES, r.SS, r.IP, r.Flags)
}
