// Package ps reports host resource usage for the status endpoint.
package ps

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type CPU struct {
	Percent float64 `json:"percent"`
}

type Memory struct {
	Total       string  `json:"total"`
	Used        string  `json:"used"`
	UsedPercent float64 `json:"usedPercent"`

	SwapTotal       string  `json:"swapTotal"`
	SwapUsed        string  `json:"swapUsed"`
	SwapUsedPercent float64 `json:"swapUsedPercent"`
}

type Disk struct {
	Total       string  `json:"total"`
	Used        string  `json:"used"`
	UsedPercent float64 `json:"usedPercent"`
}

func CPUStatus() (CPU, error) {
	list, err := cpu.Percent(time.Millisecond*50, false)
	if err != nil {
		return CPU{}, err
	}

	return CPU{
		Percent: list[0],
	}, nil
}

func MemoryStatus() (Memory, error) {
	memory, err := mem.VirtualMemory()
	if err != nil {
		return Memory{}, err
	}
	swapMemory, err := mem.SwapMemory()
	if err != nil {
		return Memory{}, err
	}

	return Memory{
		Total:       humanize.IBytes(memory.Total),
		Used:        humanize.IBytes(memory.Used),
		UsedPercent: memory.UsedPercent,

		SwapTotal:       humanize.IBytes(swapMemory.Total),
		SwapUsed:        humanize.IBytes(swapMemory.Used),
		SwapUsedPercent: swapMemory.UsedPercent,
	}, nil
}

func DiskStatus(path string) (Disk, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return Disk{}, err
	}

	return Disk{
		Total:       humanize.IBytes(usage.Total),
		Used:        humanize.IBytes(usage.Used),
		UsedPercent: usage.UsedPercent,
	}, nil
}

// DirSize sums the regular files under path.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return size, nil
}
