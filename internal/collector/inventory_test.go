package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"syscall"
	"testing"

	"github.com/nozo-moto/netaudit/pkg/types"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not running", process.ErrorProcessNotRunning, ErrNoSuchProcess},
		{"esrch", syscall.ESRCH, ErrNoSuchProcess},
		{"proc entry gone", &fs.PathError{Op: "open", Path: "/proc/1/stat", Err: syscall.ENOENT}, ErrNoSuchProcess},
		{"not permitted", process.ErrorNotPermitted, ErrAccessDenied},
		{"eacces", &fs.PathError{Op: "open", Path: "/proc/1/io", Err: syscall.EACCES}, ErrAccessDenied},
		{"wrapped eperm", fmt.Errorf("read io: %w", syscall.EPERM), ErrAccessDenied},
		{"not implemented", errors.New("not implemented yet"), ErrUnsupported},
		{"wrapped not implemented", fmt.Errorf("io counters: %w", errors.New("not implemented yet")), ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.NoError(t, classify(nil))

	other := errors.New("parse error")
	assert.Equal(t, other, classify(other))
}

func TestSkipReason(t *testing.T) {
	reason, ok := SkipReason(fmt.Errorf("%w: gone", ErrNoSuchProcess))
	assert.True(t, ok)
	assert.Equal(t, types.SkipNoSuchProcess, reason)

	reason, ok = SkipReason(ErrAccessDenied)
	assert.True(t, ok)
	assert.Equal(t, types.SkipAccessDenied, reason)

	reason, ok = SkipReason(ErrUnsupported)
	assert.True(t, ok)
	assert.Equal(t, types.SkipUnsupported, reason)

	_, ok = SkipReason(errors.New("boom"))
	assert.False(t, ok)
}

func TestTolerate(t *testing.T) {
	assert.NoError(t, tolerate(process.ErrorNotPermitted))
	assert.NoError(t, tolerate(errors.New("not implemented yet")))
	assert.ErrorIs(t, tolerate(process.ErrorProcessNotRunning), ErrNoSuchProcess)

	other := errors.New("parse /proc/1/stat: bad field")
	assert.Equal(t, other, tolerate(other))
}

func TestUserFallback(t *testing.T) {
	unknown := errors.New("user: unknown userid 1234")

	name, err := userFallback([]int32{1234, 1234, 1234, 1234}, nil, unknown)
	require.NoError(t, err)
	assert.Equal(t, "1234", name)

	name, err = userFallback(nil, process.ErrorNotPermitted, process.ErrorNotPermitted)
	require.NoError(t, err)
	assert.Equal(t, "N/A", name)

	name, err = userFallback([]int32{}, nil, unknown)
	require.NoError(t, err)
	assert.Equal(t, "N/A", name)

	_, err = userFallback(nil, nil, process.ErrorProcessNotRunning)
	assert.ErrorIs(t, err, ErrNoSuchProcess)

	_, err = userFallback(nil, syscall.ESRCH, unknown)
	assert.ErrorIs(t, err, ErrNoSuchProcess)
}

func TestEndpoint(t *testing.T) {
	assert.Nil(t, endpoint(psnet.Addr{}))

	e := endpoint(psnet.Addr{IP: "127.0.0.1", Port: 8080})
	require.NotNil(t, e)
	assert.Equal(t, "127.0.0.1:8080", e.String())

	var missing *types.Endpoint
	assert.Equal(t, "N/A", missing.String())
}

func TestOSName(t *testing.T) {
	assert.Equal(t, "Linux", osName("linux"))
	assert.Equal(t, "Darwin", osName("darwin"))
	assert.Equal(t, "", osName(""))
}

func requireLinux(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("reads /proc")
	}
}

func TestLocalInventory(t *testing.T) {
	requireLinux(t)

	inv := NewLocal()
	self := int32(os.Getpid())

	host, err := inv.Host()
	require.NoError(t, err)
	assert.Equal(t, "Linux", host.OS)
	assert.NotEmpty(t, host.Release)

	_, err = inv.InterfaceCounters()
	require.NoError(t, err)

	_, err = inv.Connections()
	require.NoError(t, err)

	pids, err := inv.PIDs()
	require.NoError(t, err)
	assert.Contains(t, pids, self)

	name, err := inv.ProcessName(self)
	require.NoError(t, err)
	assert.NotEmpty(t, name)

	sample, err := inv.Process(self)
	require.NoError(t, err)
	assert.Equal(t, self, sample.PID)
	assert.Equal(t, name, sample.Name)
	assert.NotEmpty(t, sample.Username)

	_, _, err = inv.ProcessIO(self)
	if err != nil {
		_, ok := SkipReason(err)
		assert.True(t, ok, "unexpected io error: %v", err)
	}
}

func TestLocalInventoryMissingProcess(t *testing.T) {
	requireLinux(t)

	inv := NewLocal()
	const missing = int32(1 << 30)

	_, err := inv.ProcessName(missing)
	assert.ErrorIs(t, err, ErrNoSuchProcess)

	_, err = inv.Process(missing)
	assert.ErrorIs(t, err, ErrNoSuchProcess)

	_, _, err = inv.ProcessIO(missing)
	assert.ErrorIs(t, err, ErrNoSuchProcess)
}
