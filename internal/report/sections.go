package report

import (
	"sort"

	"github.com/nozo-moto/netaudit/pkg/types"
)

const unknownProcess = "Unknown"

// Skip stages.
const (
	stageConnections = "connections"
	stageListening   = "listening"
	stageProcess     = "process"
	stageIO          = "io"
)

func (g *Generator) SystemSummary() (*types.SystemSummary, error) {
	host, err := g.inv.Host()
	if err != nil {
		return nil, err
	}
	return &types.SystemSummary{Host: *host, ScanTime: g.now()}, nil
}

func (g *Generator) InterfaceStatistics() (*types.InterfaceCounters, error) {
	return g.inv.InterfaceCounters()
}

// ActiveConnections groups established connections by owning process name.
// Groups are ordered by name; connections keep the order they were listed in.
func (g *Generator) ActiveConnections() (*types.ConnectionGroups, error) {
	conns, err := g.inv.Connections()
	if err != nil {
		return nil, err
	}

	result := &types.ConnectionGroups{}
	index := make(map[string]int)

	for _, conn := range conns {
		if conn.Status != types.StatusEstablished {
			continue
		}

		name, err := g.processName(conn.PID)
		if err != nil {
			skip, ok := g.skip(conn.PID, stageConnections, err)
			if !ok {
				return nil, err
			}
			result.Skips = append(result.Skips, skip)
			continue
		}

		record := types.ConnectionRecord{
			Process:    name,
			PID:        conn.PID,
			LocalAddr:  conn.Local.String(),
			RemoteAddr: conn.Remote.String(),
			Status:     conn.Status,
		}

		i, exists := index[name]
		if !exists {
			i = len(result.Groups)
			index[name] = i
			result.Groups = append(result.Groups, types.ConnectionGroup{Process: name})
		}
		result.Groups[i].Connections = append(result.Groups[i].Connections, record)
		result.Total++
	}

	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].Process < result.Groups[j].Process
	})

	return result, nil
}

// ListeningPorts returns listening sockets ordered by port.
func (g *Generator) ListeningPorts() (*types.ListeningPorts, error) {
	conns, err := g.inv.Connections()
	if err != nil {
		return nil, err
	}

	result := &types.ListeningPorts{}

	for _, conn := range conns {
		if conn.Status != types.StatusListen {
			continue
		}

		name, err := g.processName(conn.PID)
		if err != nil {
			skip, ok := g.skip(conn.PID, stageListening, err)
			if !ok {
				return nil, err
			}
			result.Skips = append(result.Skips, skip)
			continue
		}

		entry := types.ListeningEntry{Process: name, PID: conn.PID, Address: "N/A"}
		if conn.Local != nil {
			entry.Port = conn.Local.Port
			entry.Address = conn.Local.IP
		}
		result.Entries = append(result.Entries, entry)
	}

	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].Port < result.Entries[j].Port
	})

	return result, nil
}

// ProcessAnalysis flags processes by name and by cumulative I/O. A process
// whose counters cannot be read is still checked by name.
func (g *Generator) ProcessAnalysis() (*types.ProcessAnalysis, error) {
	pids, err := g.inv.PIDs()
	if err != nil {
		return nil, err
	}

	result := &types.ProcessAnalysis{}
	var heavy []types.ProcessUsage

	for _, pid := range pids {
		sample, err := g.inv.Process(pid)
		if err != nil {
			skip, ok := g.skip(pid, stageProcess, err)
			if !ok {
				return nil, err
			}
			result.Skips = append(result.Skips, skip)
			continue
		}

		if g.detector.IsSuspicious(sample.Name) {
			result.Suspicious = append(result.Suspicious, *sample)
		}

		read, write, err := g.inv.ProcessIO(pid)
		if err != nil {
			skip, ok := g.skip(pid, stageIO, err)
			if !ok {
				return nil, err
			}
			result.Skips = append(result.Skips, skip)
			continue
		}

		sample.ReadBytes, sample.WriteBytes = read, write
		if usage, ok := g.detector.ClassifyIO(*sample); ok {
			heavy = append(heavy, usage)
		}
	}

	result.HighUsage = g.detector.TopUsage(heavy)

	return result, nil
}

func (g *Generator) processName(pid int32) (string, error) {
	if pid == 0 {
		return unknownProcess, nil
	}
	return g.inv.ProcessName(pid)
}
