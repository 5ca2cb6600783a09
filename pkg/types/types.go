package types

import (
	"fmt"
	"time"
)

// Connection status values as reported by the OS connection table.
const (
	StatusEstablished = "ESTABLISHED"
	StatusListen      = "LISTEN"
)

type HostInfo struct {
	OS        string
	Release   string
	Machine   string
	Processor string
	Hostname  string
}

type Endpoint struct {
	IP   string
	Port uint32
}

func (e *Endpoint) String() string {
	if e == nil {
		return "N/A"
	}
	return fmt.Sprintf("%s:%d", e.IP, e.Port)
}

// Connection is a raw entry of the inet connection table. Local and Remote
// are nil when the OS reports no address for that side.
type Connection struct {
	PID    int32
	Local  *Endpoint
	Remote *Endpoint
	Status string
}

type ConnectionRecord struct {
	Process    string
	PID        int32
	LocalAddr  string
	RemoteAddr string
	Status     string
}

type ListeningEntry struct {
	Process string
	PID     int32
	Port    uint32
	Address string
}

type ProcessSample struct {
	PID        int32
	Name       string
	Username   string
	CPUPercent float64
	MemPercent float32
	ReadBytes  uint64
	WriteBytes uint64
}

// SkipReason explains why an item was left out of a section.
type SkipReason string

const (
	SkipNoSuchProcess SkipReason = "no such process"
	SkipAccessDenied  SkipReason = "access denied"
	SkipUnsupported   SkipReason = "unsupported"
)

type Skip struct {
	PID    int32
	Stage  string
	Reason SkipReason
}

type SystemSummary struct {
	Host     HostInfo
	ScanTime time.Time
}
