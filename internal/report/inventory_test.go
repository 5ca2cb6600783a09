package report

import (
	"github.com/nozo-moto/netaudit/internal/collector"
	"github.com/nozo-moto/netaudit/pkg/types"
)

// fakeInventory serves canned data. Lookups for pids it does not know fail
// with ErrNoSuchProcess.
type fakeInventory struct {
	host        *types.HostInfo
	hostErr     error
	counters    *types.InterfaceCounters
	countersErr error
	conns       []types.Connection
	connsErr    error
	names       map[int32]string
	nameErrs    map[int32]error
	pids        []int32
	pidsErr     error
	procs       map[int32]types.ProcessSample
	procErrs    map[int32]error
	io          map[int32][2]uint64
	ioErrs      map[int32]error
}

var _ collector.Inventory = (*fakeInventory)(nil)

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		host: &types.HostInfo{
			OS:        "Linux",
			Release:   "6.1.0",
			Machine:   "x86_64",
			Processor: "Test CPU",
			Hostname:  "box",
		},
		counters: &types.InterfaceCounters{},
		names:    make(map[int32]string),
		nameErrs: make(map[int32]error),
		procs:    make(map[int32]types.ProcessSample),
		procErrs: make(map[int32]error),
		io:       make(map[int32][2]uint64),
		ioErrs:   make(map[int32]error),
	}
}

func (f *fakeInventory) addProcess(pid int32, name string, read, write uint64) {
	f.pids = append(f.pids, pid)
	f.names[pid] = name
	f.procs[pid] = types.ProcessSample{PID: pid, Name: name, Username: "user"}
	f.io[pid] = [2]uint64{read, write}
}

func (f *fakeInventory) addConn(pid int32, status string, local, remote *types.Endpoint) {
	f.conns = append(f.conns, types.Connection{PID: pid, Local: local, Remote: remote, Status: status})
}

func (f *fakeInventory) Host() (*types.HostInfo, error) {
	return f.host, f.hostErr
}

func (f *fakeInventory) InterfaceCounters() (*types.InterfaceCounters, error) {
	return f.counters, f.countersErr
}

func (f *fakeInventory) Connections() ([]types.Connection, error) {
	return f.conns, f.connsErr
}

func (f *fakeInventory) ProcessName(pid int32) (string, error) {
	if err := f.nameErrs[pid]; err != nil {
		return "", err
	}
	name, ok := f.names[pid]
	if !ok {
		return "", collector.ErrNoSuchProcess
	}
	return name, nil
}

func (f *fakeInventory) PIDs() ([]int32, error) {
	return f.pids, f.pidsErr
}

func (f *fakeInventory) Process(pid int32) (*types.ProcessSample, error) {
	if err := f.procErrs[pid]; err != nil {
		return nil, err
	}
	sample, ok := f.procs[pid]
	if !ok {
		return nil, collector.ErrNoSuchProcess
	}
	return &sample, nil
}

func (f *fakeInventory) ProcessIO(pid int32) (uint64, uint64, error) {
	if err := f.ioErrs[pid]; err != nil {
		return 0, 0, err
	}
	counters, ok := f.io[pid]
	if !ok {
		return 0, 0, collector.ErrNoSuchProcess
	}
	return counters[0], counters[1], nil
}
