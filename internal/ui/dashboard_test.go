package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/nozo-moto/netaudit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() *types.Report {
	return &types.Report{
		ScanID: "scan-1",
		Summary: &types.SystemSummary{
			Host:     types.HostInfo{Hostname: "box"},
			ScanTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Listening: &types.ListeningPorts{
			Entries: []types.ListeningEntry{
				{Process: "sshd", PID: 12, Port: 22, Address: "0.0.0.0"},
				{Process: "[evil]", PID: 13, Port: 4444, Address: "::"},
			},
		},
		Processes: &types.ProcessAnalysis{
			Suspicious: []types.ProcessSample{
				{PID: 7, Name: "cryptominer", Username: "nobody"},
			},
			HighUsage: []types.ProcessUsage{
				{PID: 9, Name: "rsync", ReadMB: 50, WriteMB: 1},
				{PID: 7, Name: "cryptominer", ReadMB: 20},
			},
		},
	}
}

func TestDashboardListeningTable(t *testing.T) {
	d := NewDashboard(testReport(), "report text")

	require.Equal(t, 3, d.listeningTable.GetRowCount())
	assert.Equal(t, "22", d.listeningTable.GetCell(1, 0).Text)
	assert.Equal(t, "sshd", d.listeningTable.GetCell(1, 1).Text)
	assert.Equal(t, "[evil[]", d.listeningTable.GetCell(2, 1).Text)
}

func TestDashboardReportText(t *testing.T) {
	d := NewDashboard(testReport(), "[chrome] (PID: 1)\n")

	assert.True(t, strings.HasPrefix(d.reportView.GetText(false), "[chrome] (PID: 1)"))
	assert.Contains(t, d.statusBar.GetText(true), "box scanned 2024-03-01 12:00:00")
}

func TestDashboardWithoutSections(t *testing.T) {
	d := NewDashboard(&types.Report{}, "")

	assert.Equal(t, 1, d.listeningTable.GetRowCount())
	assert.Equal(t, 1, d.processDetailView.processList.GetRowCount())
}

func TestDashboardPageKeys(t *testing.T) {
	d := NewDashboard(testReport(), "")

	assert.Nil(t, d.handleKey(tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone)))
	page, _ := d.pages.GetFrontPage()
	assert.Equal(t, pageListening, page)

	assert.Nil(t, d.handleKey(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	page, _ = d.pages.GetFrontPage()
	assert.Equal(t, pageProcess, page)

	assert.Nil(t, d.handleKey(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)))
	page, _ = d.pages.GetFrontPage()
	assert.Equal(t, pageMain, page)

	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	assert.Equal(t, down, d.handleKey(down))
}

func TestMergeFindings(t *testing.T) {
	merged := mergeFindings(testReport().Processes)

	require.Len(t, merged, 2)
	assert.Equal(t, int32(7), merged[0].PID)
	assert.Equal(t, "name,io", merged[0].flags())
	assert.Equal(t, "nobody", merged[0].Username)
	assert.Equal(t, int32(9), merged[1].PID)
	assert.Equal(t, "io", merged[1].flags())
	assert.Equal(t, 51.0, totalMB(merged[1]))
}

func TestProcessViewOrderingAndFilter(t *testing.T) {
	d := NewDashboard(testReport(), "")
	pv := d.processDetailView

	require.Equal(t, 3, pv.processList.GetRowCount())
	assert.Equal(t, "7", pv.processList.GetCell(1, 0).Text)
	assert.Equal(t, "9", pv.processList.GetCell(2, 0).Text)
	assert.Equal(t, "51.00", pv.processList.GetCell(2, 4).Text)

	pv.filter = "RSYNC"
	pv.updateProcessList()
	require.Equal(t, 2, pv.processList.GetRowCount())
	assert.Equal(t, "rsync", pv.processList.GetCell(1, 1).Text)

	pv.filter = "7"
	pv.updateProcessList()
	require.Equal(t, 2, pv.processList.GetRowCount())
	assert.Equal(t, "cryptominer", pv.processList.GetCell(1, 1).Text)
}

func TestProcessViewStatsPanel(t *testing.T) {
	d := NewDashboard(testReport(), "")
	pv := d.processDetailView

	pv.selectedPID = 7
	pv.updateStatsPanel()
	text := pv.statsPanel.GetText(true)
	assert.Contains(t, text, "cryptominer (PID: 7)")
	assert.Contains(t, text, "suspicious keyword")
	assert.Contains(t, text, "Read:  20.00 MB")

	pv.selectedPID = 1000
	pv.updateStatsPanel()
	assert.Contains(t, pv.statsPanel.GetText(true), "No process selected")
}
