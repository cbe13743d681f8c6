// main.go - CLI front-end loading a .COM-style image and running the i8086 core

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/realmode/i8086/backend"
	"github.com/realmode/i8086/i8086"
)

// comLoadOffset is the classic .COM entry offset: the image loads at
// CS:0x0100 with IP=0x0100 (loadImage also sets DS=ES=SS=CS).
const comLoadOffset = 0x0100

func main() {
	rootCmd := &cobra.Command{
		Use:   "i8086run",
		Short: "Load and run a flat 8086 binary image",
	}

	var traceFlag bool

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load a .COM-style image at CS:0x0100 and run it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, err := loadImage(args[0])
			if err != nil {
				return err
			}
			if traceFlag {
				return runTraced(cpu)
			}
			if err := cpu.Run(); err != nil {
				return errors.Wrap(err, "run")
			}
			return nil
		},
	}
	runCmd.Flags().BoolVarP(&traceFlag, "trace", "t", false, "print each instruction's IP before executing it")

	monitorCmd := &cobra.Command{
		Use:   "monitor [image]",
		Short: "Load an image and single-step it interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, err := loadImage(args[0])
			if err != nil {
				return err
			}
			return newMonitor(cpu).Run()
		},
	}

	rootCmd.AddCommand(runCmd, monitorCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadImage reads a flat binary and wires it to a fresh CPU, memory and
// I/O backend (§6 binary input format).
func loadImage(path string) (*i8086.CPU, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	mem := backend.NewLinear()
	io := backend.NewPorts()

	cpu := i8086.NewCPU(mem, io)
	cpu.Reg.DS = cpu.Reg.CS
	cpu.Reg.SS = cpu.Reg.CS
	cpu.Reg.ES = cpu.Reg.CS
	cpu.Reg.SP = 0xFFFE

	base := i8086.Physical(cpu.Reg.CS, comLoadOffset)
	mem.LoadAt(base, data)
	cpu.Jmp(cpu.Reg.CS, comLoadOffset)

	return cpu, nil
}

// runTraced runs to completion, printing CS:IP before every step.
func runTraced(cpu *i8086.CPU) error {
	for cpu.Running() {
		fmt.Printf("%04X:%04X\n", cpu.Reg.CS, cpu.Reg.IP)
		if _, err := cpu.Step(); err != nil {
			if err == i8086.ErrHalted {
				return nil
			}
			return errors.Wrap(err, "step")
		}
	}
	return nil
}
