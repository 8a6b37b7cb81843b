// Package system provides process resource setup for batch runs.
package system

import (
	"log"
	"runtime"
	"syscall"

	"github.com/shirou/gopsutil/v3/mem"
)

// perWorkerBytes is a conservative footprint estimate for one in-flight image:
// pixel grid, visited/footprint grids, heatmap, sorted percentile copy.
const perWorkerBytes = 512 << 20

// InitResourceLimits raises the open-file limit so a batch run writing many
// mask files per image does not hit the default soft cap.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("could not raise file limit: %v", err)
	}
}

// Workers returns the batch worker count. A positive requested value wins;
// otherwise the CPU count, capped by available memory so that concurrent
// large scans do not thrash.
func Workers(requested int) int {
	if requested > 0 {
		return requested
	}

	n := runtime.NumCPU()
	if vm, err := mem.VirtualMemory(); err == nil {
		byMem := int(vm.Available / perWorkerBytes)
		if byMem < n {
			n = byMem
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}
