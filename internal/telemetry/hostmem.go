package telemetry

import (
	"context"
	"fmt"
	"math"

	"github.com/prometheus/procfs"
)

// ProcMeminfo reads host memory from /proc/meminfo.
type ProcMeminfo struct {
	fs  procfs.FS
	err error
}

// NewProcMeminfo opens the proc filesystem at mountPoint ("" for /proc).
// An unusable mount point is not an error here; every probe reports it.
func NewProcMeminfo(mountPoint string) *ProcMeminfo {
	if mountPoint == "" {
		mountPoint = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(mountPoint)
	return &ProcMeminfo{fs: fs, err: err}
}

// ProbeHost returns total/available MB and the used percentage.
func (p *ProcMeminfo) ProbeHost(ctx context.Context) (HostMemory, error) {
	if p.err != nil {
		return HostMemory{}, ErrUnavailable(fmt.Sprintf("procfs: %v", p.err))
	}
	if err := ctx.Err(); err != nil {
		return HostMemory{}, err
	}
	mi, err := p.fs.Meminfo()
	if err != nil {
		return HostMemory{}, ErrUnavailable(fmt.Sprintf("meminfo: %v", err))
	}
	if mi.MemTotal == nil || *mi.MemTotal == 0 {
		return HostMemory{}, ErrUnavailable("meminfo: MemTotal missing")
	}
	totalKB := *mi.MemTotal
	var availKB uint64
	switch {
	case mi.MemAvailable != nil:
		availKB = *mi.MemAvailable
	default:
		// kernels before 3.14 have no MemAvailable
		for _, v := range []*uint64{mi.MemFree, mi.Buffers, mi.Cached} {
			if v != nil {
				availKB += *v
			}
		}
	}
	if availKB > totalKB {
		availKB = totalKB
	}
	used := float64(totalKB-availKB) / float64(totalKB) * 100
	return HostMemory{
		TotalMB:     int(totalKB / 1024),
		AvailableMB: int(availKB / 1024),
		Percent:     math.Round(used*10) / 10,
	}, nil
}
