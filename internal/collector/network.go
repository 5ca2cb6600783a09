package collector

import (
	"errors"
	"fmt"

	"github.com/nozo-moto/netaudit/pkg/types"
	psnet "github.com/shirou/gopsutil/v3/net"
)

type NetworkCollector struct{}

func NewNetworkCollector() *NetworkCollector {
	return &NetworkCollector{}
}

// InterfaceCounters returns the counters summed over every interface.
func (nc *NetworkCollector) InterfaceCounters() (*types.InterfaceCounters, error) {
	counters, err := psnet.IOCounters(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get network counters: %w", err)
	}
	if len(counters) == 0 {
		return nil, errors.New("failed to get network counters: no interfaces reported")
	}

	c := counters[0]
	return &types.InterfaceCounters{
		BytesSent:   c.BytesSent,
		BytesRecv:   c.BytesRecv,
		PacketsSent: c.PacketsSent,
		PacketsRecv: c.PacketsRecv,
		Errin:       c.Errin,
		Errout:      c.Errout,
	}, nil
}

func (nc *NetworkCollector) Connections() ([]types.Connection, error) {
	conns, err := psnet.Connections("inet")
	if err != nil {
		return nil, fmt.Errorf("failed to get connections: %w", err)
	}

	result := make([]types.Connection, 0, len(conns))
	for _, conn := range conns {
		result = append(result, types.Connection{
			PID:    conn.Pid,
			Local:  endpoint(conn.Laddr),
			Remote: endpoint(conn.Raddr),
			Status: conn.Status,
		})
	}

	return result, nil
}

// endpoint returns nil for the zero address gopsutil reports for an unset side.
func endpoint(addr psnet.Addr) *types.Endpoint {
	if addr.IP == "" && addr.Port == 0 {
		return nil
	}
	return &types.Endpoint{IP: addr.IP, Port: addr.Port}
}
