package types

// InterfaceCounters is the system-wide sum over all network interfaces.
type InterfaceCounters struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	Errin       uint64
	Errout      uint64
}

// ConnectionGroup holds the established connections of every process that
// shares one name, in the order they were seen.
type ConnectionGroup struct {
	Process     string
	Connections []ConnectionRecord
}

type ConnectionGroups struct {
	Groups []ConnectionGroup
	Total  int
	Skips  []Skip
}

type ListeningPorts struct {
	Entries []ListeningEntry
	Skips   []Skip
}

// ProcessUsage is a process whose cumulative I/O crossed the threshold.
type ProcessUsage struct {
	PID     int32
	Name    string
	ReadMB  float64
	WriteMB float64
}

func (u ProcessUsage) TotalMB() float64 {
	return u.ReadMB + u.WriteMB
}

type ProcessAnalysis struct {
	Suspicious []ProcessSample
	HighUsage  []ProcessUsage
	Skips      []Skip
}

// Report is the snapshot of one run. Sections that were never reached are nil.
type Report struct {
	ScanID      string
	Summary     *SystemSummary
	Interfaces  *InterfaceCounters
	Connections *ConnectionGroups
	Listening   *ListeningPorts
	Processes   *ProcessAnalysis
}
