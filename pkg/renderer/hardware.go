package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// HardwareConcurrency returns the number of logical CPUs, falling back to
// runtime.NumCPU when the platform query fails
func HardwareConcurrency() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
