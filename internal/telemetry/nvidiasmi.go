package telemetry

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// smiQuery is the nvidia-smi field list; memory values are reported in MiB.
const smiQuery = "--query-gpu=name,memory.total,memory.used,memory.free"

// NvidiaSMI probes an NVIDIA device through the nvidia-smi query interface.
type NvidiaSMI struct {
	// Bin overrides the nvidia-smi path; empty means PATH lookup.
	Bin string
	// Index selects the device.
	Index int

	run func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// NewNvidiaSMI returns a probe for the device at index.
func NewNvidiaSMI(index int) *NvidiaSMI {
	return &NvidiaSMI{Index: index, run: runCommand}
}

func runCommand(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).Output()
}

// ProbeGPU runs one query. A missing binary is reported as unavailable.
func (n *NvidiaSMI) ProbeGPU(ctx context.Context) (GPUReading, error) {
	bin := n.Bin
	if bin == "" {
		p, err := exec.LookPath("nvidia-smi")
		if err != nil {
			return GPUReading{}, ErrUnavailable("nvidia-smi not found in PATH")
		}
		bin = p
	}
	run := n.run
	if run == nil {
		run = runCommand
	}
	out, err := run(ctx, bin, smiQuery, "--format=csv,noheader,nounits", "-i", strconv.Itoa(n.Index))
	if err != nil {
		if ctx.Err() != nil {
			return GPUReading{}, ctx.Err()
		}
		return GPUReading{}, ErrUnavailable(fmt.Sprintf("nvidia-smi: %v", err))
	}
	return parseSMI(out)
}

// parseSMI reads the first non-empty CSV row: name, total, used, free.
func parseSMI(out []byte) (GPUReading, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return GPUReading{}, fmt.Errorf("nvidia-smi: expected 4 fields, got %d in %q", len(fields), line)
		}
		var mem [3]int
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return GPUReading{}, fmt.Errorf("nvidia-smi: field %d: %w", i+2, err)
			}
			mem[i] = v
		}
		return GPUReading{
			Name:    strings.TrimSpace(fields[0]),
			TotalMB: mem[0],
			UsedMB:  mem[1],
			FreeMB:  mem[2],
		}, nil
	}
	if err := sc.Err(); err != nil {
		return GPUReading{}, err
	}
	return GPUReading{}, ErrUnavailable("nvidia-smi returned no devices")
}
