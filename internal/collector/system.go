package collector

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nozo-moto/netaudit/pkg/types"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

type SystemCollector struct{}

func NewSystemCollector() *SystemCollector {
	return &SystemCollector{}
}

func (sc *SystemCollector) Host() (*types.HostInfo, error) {
	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	cpus, err := cpu.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU info: %w", err)
	}

	var processor string
	if len(cpus) > 0 {
		processor = strings.TrimSpace(cpus[0].ModelName)
	}

	release := info.KernelVersion
	if release == "" {
		release = info.PlatformVersion
	}

	return &types.HostInfo{
		OS:        osName(info.OS),
		Release:   release,
		Machine:   info.KernelArch,
		Processor: processor,
		Hostname:  info.Hostname,
	}, nil
}

// osName turns gopsutil's lowercase GOOS-style name into "Linux", "Darwin", ...
func osName(goos string) string {
	r, size := utf8.DecodeRuneInString(goos)
	if r == utf8.RuneError {
		return goos
	}
	return string(unicode.ToUpper(r)) + goos[size:]
}
