package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"

	"github.com/nozo-moto/netaudit/pkg/types"
	"github.com/shirou/gopsutil/v3/process"
)

// Lookup failures that callers are expected to tolerate per item.
var (
	ErrNoSuchProcess = errors.New("no such process")
	ErrAccessDenied  = errors.New("access denied")
	ErrUnsupported   = errors.New("unsupported on this platform")
)

// Inventory is the OS-facing source of everything a report shows.
type Inventory interface {
	Host() (*types.HostInfo, error)
	InterfaceCounters() (*types.InterfaceCounters, error)
	Connections() ([]types.Connection, error)
	ProcessName(pid int32) (string, error)
	PIDs() ([]int32, error)
	Process(pid int32) (*types.ProcessSample, error)
	ProcessIO(pid int32) (readBytes, writeBytes uint64, err error)
}

// Local reads the inventory of the machine it runs on.
type Local struct {
	*SystemCollector
	*NetworkCollector
	*ProcessCollector
}

var _ Inventory = (*Local)(nil)

func NewLocal() *Local {
	return &Local{
		SystemCollector:  NewSystemCollector(),
		NetworkCollector: NewNetworkCollector(),
		ProcessCollector: NewProcessCollector(),
	}
}

// SkipReason maps an expected lookup failure to its reason. ok is false for
// any other error.
func SkipReason(err error) (reason types.SkipReason, ok bool) {
	switch {
	case errors.Is(err, ErrNoSuchProcess):
		return types.SkipNoSuchProcess, true
	case errors.Is(err, ErrAccessDenied):
		return types.SkipAccessDenied, true
	case errors.Is(err, ErrUnsupported):
		return types.SkipUnsupported, true
	}
	return "", false
}

// classify wraps gopsutil and OS errors into the sentinels above, leaving
// anything unrecognised untouched.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, syscall.ESRCH),
		errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNoSuchProcess, err)
	case errors.Is(err, process.ErrorNotPermitted),
		errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	// gopsutil's ErrNotImplementedError lives in its internal/common package
	// and cannot be matched with errors.Is from here.
	case strings.Contains(err.Error(), "not implemented"):
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return err
}
