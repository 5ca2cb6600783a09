package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/nozo-moto/netaudit/internal/report"
	"github.com/nozo-moto/netaudit/pkg/types"
	"github.com/rivo/tview"
)

// flaggedProcess merges the name and I/O findings for one pid.
type flaggedProcess struct {
	PID        int32
	Name       string
	Username   string
	Suspicious bool
	Usage      *types.ProcessUsage
}

func (f flaggedProcess) flags() string {
	var flags []string
	if f.Suspicious {
		flags = append(flags, "name")
	}
	if f.Usage != nil {
		flags = append(flags, "io")
	}
	return strings.Join(flags, ",")
}

type ProcessView struct {
	app         *tview.Application
	pages       *tview.Pages
	grid        *tview.Grid
	processList *tview.Table
	statsPanel  *tview.TextView
	processes   []flaggedProcess
	selectedPID int32
	filter      string
	filtering   bool
}

func NewProcessView(app *tview.Application) *ProcessView {
	pv := &ProcessView{
		app:         app,
		pages:       tview.NewPages(),
		processList: tview.NewTable(),
		statsPanel:  tview.NewTextView(),
	}

	pv.setupUI()
	return pv
}

func (pv *ProcessView) setupUI() {
	pv.processList.SetBorders(false).SetTitle(" Flagged Processes (↑↓ select, / filter) ").SetBorder(true)
	pv.processList.SetSelectable(true, false)
	pv.processList.SetFixed(1, 0)
	pv.processList.SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorDarkBlue))

	pv.statsPanel.SetBorder(true).SetTitle(" Details ")
	pv.statsPanel.SetDynamicColors(true)

	pv.grid = tview.NewGrid().
		SetRows(0).
		SetColumns(0, 40).
		AddItem(pv.processList, 0, 0, 1, 1, 0, 0, true).
		AddItem(pv.statsPanel, 0, 1, 1, 1, 0, 0, false)

	pv.processList.SetSelectionChangedFunc(func(row, column int) {
		if row <= 0 {
			return
		}
		pid, err := strconv.ParseInt(pv.processList.GetCell(row, 0).Text, 10, 32)
		if err == nil {
			pv.selectedPID = int32(pid)
			pv.updateStatsPanel()
		}
	})

	pv.processList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == '/' {
			pv.showFilterDialog()
			return nil
		}
		return event
	})

	pv.pages.AddPage("process", pv.grid, true, true)
	pv.updateProcessList()
}

func (pv *ProcessView) showFilterDialog() {
	input := tview.NewInputField().
		SetLabel("Filter processes: ").
		SetFieldWidth(30).
		SetText(pv.filter)

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			pv.filter = input.GetText()
			pv.updateProcessList()
		}
		pv.filtering = false
		pv.pages.RemovePage("filter")
		pv.app.SetFocus(pv.processList)
	})

	form := tview.NewForm().
		AddFormItem(input)
	form.SetBorder(true).
		SetTitle(" Filter Processes ").
		SetTitleAlign(tview.AlignCenter)

	pv.filtering = true
	pv.pages.AddPage("filter", form, true, true)
	pv.app.SetFocus(input)
}

// Filtering reports whether the filter dialog currently owns the keyboard.
func (pv *ProcessView) Filtering() bool {
	return pv.filtering
}

// Update replaces the listed processes with the findings of analysis.
func (pv *ProcessView) Update(analysis *types.ProcessAnalysis) {
	pv.processes = mergeFindings(analysis)
	pv.updateProcessList()
	if pv.selectedPID > 0 {
		pv.updateStatsPanel()
	}
}

func mergeFindings(analysis *types.ProcessAnalysis) []flaggedProcess {
	byPID := make(map[int32]*flaggedProcess)
	var order []int32

	get := func(pid int32, name string) *flaggedProcess {
		if f, ok := byPID[pid]; ok {
			return f
		}
		f := &flaggedProcess{PID: pid, Name: name}
		byPID[pid] = f
		order = append(order, pid)
		return f
	}

	for _, s := range analysis.Suspicious {
		f := get(s.PID, s.Name)
		f.Suspicious = true
		f.Username = s.Username
	}
	for i := range analysis.HighUsage {
		u := analysis.HighUsage[i]
		get(u.PID, u.Name).Usage = &u
	}

	result := make([]flaggedProcess, 0, len(order))
	for _, pid := range order {
		result = append(result, *byPID[pid])
	}
	return result
}

func (pv *ProcessView) updateProcessList() {
	pv.processList.Clear()

	headers := []string{"PID", "Name", "User", "Flags", "I/O (MB)"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false)
		pv.processList.SetCell(0, col, cell)
	}

	filter := strings.ToLower(pv.filter)
	processes := make([]flaggedProcess, 0, len(pv.processes))
	for _, proc := range pv.processes {
		if filter == "" ||
			strconv.Itoa(int(proc.PID)) == filter ||
			strings.Contains(strings.ToLower(proc.Name), filter) {
			processes = append(processes, proc)
		}
	}

	// Name hits first, then by I/O.
	sort.SliceStable(processes, func(i, j int) bool {
		if processes[i].Suspicious != processes[j].Suspicious {
			return processes[i].Suspicious
		}
		return totalMB(processes[i]) > totalMB(processes[j])
	})

	for i, proc := range processes {
		row := i + 1
		pv.processList.SetCell(row, 0, tview.NewTableCell(strconv.Itoa(int(proc.PID))))
		pv.processList.SetCell(row, 1, tview.NewTableCell(cellText(proc.Name)))
		pv.processList.SetCell(row, 2, tview.NewTableCell(cellText(proc.Username)))
		pv.processList.SetCell(row, 3, tview.NewTableCell(proc.flags()))
		pv.processList.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%.2f", totalMB(proc))).SetAlign(tview.AlignRight))
	}

	if pv.processList.GetRowCount() > 1 {
		pv.processList.Select(1, 0)
	}
}

func (pv *ProcessView) updateStatsPanel() {
	var proc *flaggedProcess
	for i := range pv.processes {
		if pv.processes[i].PID == pv.selectedPID {
			proc = &pv.processes[i]
			break
		}
	}

	if proc == nil {
		pv.statsPanel.SetText("No process selected")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]Process:[white] %s (PID: %d)\n", cellText(proc.Name), proc.PID)
	if proc.Username != "" {
		fmt.Fprintf(&b, "[yellow]User:[white] %s\n", cellText(proc.Username))
	}
	if proc.Suspicious {
		b.WriteString("\n[red]Name matches a suspicious keyword[white]\n")
	}
	if proc.Usage != nil {
		fmt.Fprintf(&b, "\n[yellow]Cumulative I/O:[white]\n  Read:  %.2f MB\n  Write: %.2f MB\n",
			proc.Usage.ReadMB, proc.Usage.WriteMB)
	}

	pv.statsPanel.SetText(b.String())
}

func (pv *ProcessView) GetPages() *tview.Pages {
	return pv.pages
}

func totalMB(proc flaggedProcess) float64 {
	if proc.Usage == nil {
		return 0
	}
	return proc.Usage.TotalMB()
}

func cellText(s string) string {
	return tview.Escape(report.Sanitize(s))
}
