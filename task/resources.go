package task

import (
	"fmt"
	"log"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"pdftoolkit/config"
)

// checkResources verifies that the host has enough free resources to start a
// new task. Probe failures are logged and skipped; only a confirmed shortage
// refuses the task.
func checkResources(cfg *config.Config) error {
	// CPU: interval 0 measures since the previous call, so this never blocks.
	p, err := cpu.Percent(0, false)
	if err != nil {
		log.Printf("Warning: could not get CPU usage: %v", err)
	} else if len(p) > 0 && p[0] > (100.0-cfg.ThrottleCPU) {
		return fmt.Errorf("not enough idle CPU. Current usage: %.2f%%, Idle threshold: %.2f%%", p[0], cfg.ThrottleCPU)
	}

	// Memory
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("Warning: could not get memory usage: %v", err)
	} else if vm.Available < uint64(cfg.ThrottleFreeMem) {
		return fmt.Errorf("not enough free memory. Available: %d, Required: %d", vm.Available, cfg.ThrottleFreeMem)
	}

	// Disk, checked where the outputs will land.
	d, err := disk.Usage(cfg.ResultFolder)
	if err != nil {
		log.Printf("Warning: could not get disk usage for %s: %v", cfg.ResultFolder, err)
	} else if d.Free < uint64(cfg.ThrottleFreeDisk) {
		return fmt.Errorf("not enough free disk space. Available: %d, Required: %d", d.Free, cfg.ThrottleFreeDisk)
	}
	return nil
}
