package collector

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nozo-moto/netaudit/pkg/types"
	"github.com/shirou/gopsutil/v3/process"
)

type ProcessCollector struct{}

func NewProcessCollector() *ProcessCollector {
	return &ProcessCollector{}
}

func (pc *ProcessCollector) PIDs() ([]int32, error) {
	pids, err := process.Pids()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	return pids, nil
}

func (pc *ProcessCollector) ProcessName(pid int32) (string, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return "", classify(err)
	}
	name, err := proc.Name()
	if err != nil {
		return "", classify(err)
	}
	return name, nil
}

// Process reads the identity and resource usage of one process. The name is
// required. A username that cannot be resolved falls back to the numeric uid,
// and usage figures the caller may not read are left at zero.
func (pc *ProcessCollector) Process(pid int32) (*types.ProcessSample, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, classify(err)
	}

	name, err := proc.Name()
	if err != nil {
		return nil, classify(err)
	}

	sample := &types.ProcessSample{PID: pid, Name: name}

	if sample.Username, err = proc.Username(); err != nil {
		uids, uidErr := proc.Uids()
		if sample.Username, err = userFallback(uids, uidErr, err); err != nil {
			return nil, err
		}
	}
	if sample.CPUPercent, err = proc.CPUPercent(); err != nil {
		if err := tolerate(err); err != nil {
			return nil, err
		}
	}
	if sample.MemPercent, err = proc.MemoryPercent(); err != nil {
		if err := tolerate(err); err != nil {
			return nil, err
		}
	}

	return sample, nil
}

func (pc *ProcessCollector) ProcessIO(pid int32) (uint64, uint64, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return 0, 0, classify(err)
	}
	counters, err := proc.IOCounters()
	if err != nil {
		return 0, 0, classify(err)
	}
	if counters == nil {
		return 0, 0, ErrUnsupported
	}
	return counters.ReadBytes, counters.WriteBytes, nil
}

// tolerate drops access-denied and unsupported errors on optional
// attributes. Anything else, a vanished process included, is returned.
func tolerate(err error) error {
	err = classify(err)
	if errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrUnsupported) {
		return nil
	}
	return err
}

// userFallback names the owner of a process whose username lookup failed
// with cause: the real uid when it is readable, "N/A" otherwise.
func userFallback(uids []int32, uidErr, cause error) (string, error) {
	if err := classify(cause); errors.Is(err, ErrNoSuchProcess) {
		return "", err
	}
	if uidErr == nil && len(uids) > 0 {
		return strconv.FormatInt(int64(uids[0]), 10), nil
	}
	if err := classify(uidErr); errors.Is(err, ErrNoSuchProcess) {
		return "", err
	}
	return "N/A", nil
}
