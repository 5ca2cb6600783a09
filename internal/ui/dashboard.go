package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/nozo-moto/netaudit/pkg/types"
	"github.com/rivo/tview"
)

const (
	pageMain      = "main"
	pageListening = "listening"
	pageProcess   = "process"
)

// Dashboard pages through one finished report. It never re-collects.
type Dashboard struct {
	app   *tview.Application
	pages *tview.Pages

	statusBar      *tview.TextView
	reportView     *tview.TextView
	listeningTable *tview.Table

	processDetailView *ProcessView

	report *types.Report
}

func NewDashboard(rep *types.Report, text string) *Dashboard {
	app := tview.NewApplication()
	d := &Dashboard{
		app:    app,
		pages:  tview.NewPages(),
		report: rep,
	}

	d.processDetailView = NewProcessView(app)
	d.setupUI(text)

	return d
}

func (d *Dashboard) Run() error {
	return d.app.Run()
}

func (d *Dashboard) setupUI(text string) {
	d.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	d.statusBar.SetText(d.statusText())

	// The report is plain text; bracketed process names must not be read
	// as color tags.
	d.reportView = tview.NewTextView().
		SetDynamicColors(false).
		SetScrollable(true).
		SetText(text)
	d.reportView.SetBorder(true).
		SetTitle(" Security Report ")

	d.listeningTable = tview.NewTable().
		SetFixed(1, 0).
		SetSelectable(true, false)
	d.listeningTable.SetBorder(true).
		SetTitle(" Listening Ports ")
	d.updateListeningTable()

	if d.report != nil && d.report.Processes != nil {
		d.processDetailView.Update(d.report.Processes)
	}

	mainFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(d.statusBar, 1, 0, false).
		AddItem(d.reportView, 0, 1, true)

	d.pages.AddPage(pageMain, mainFlex, true, true)
	d.pages.AddPage(pageListening, d.listeningTable, true, false)
	d.pages.AddPage(pageProcess, d.processDetailView.GetPages(), true, false)

	d.app.SetRoot(d.pages, true).
		SetInputCapture(d.handleKey)
}

func (d *Dashboard) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if d.processDetailView.Filtering() {
		return event
	}

	currentPage, _ := d.pages.GetFrontPage()

	switch event.Key() {
	case tcell.KeyEsc:
		if currentPage != pageMain {
			d.switchTo(pageMain)
			return nil
		}
		d.app.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if currentPage != pageMain {
				d.switchTo(pageMain)
				return nil
			}
			d.app.Stop()
			return nil
		case 'l':
			d.switchTo(pageListening)
			return nil
		case 'p':
			d.switchTo(pageProcess)
			return nil
		}
	}
	return event
}

func (d *Dashboard) switchTo(page string) {
	d.pages.SwitchToPage(page)
	switch page {
	case pageListening:
		d.app.SetFocus(d.listeningTable)
	case pageProcess:
		d.app.SetFocus(d.processDetailView.processList)
	default:
		d.app.SetFocus(d.reportView)
	}
}

func (d *Dashboard) statusText() string {
	help := "[yellow]l[white] listening  [yellow]p[white] processes  [yellow]q[white] quit"
	if d.report == nil || d.report.Summary == nil {
		return help
	}
	return fmt.Sprintf("[green]%s[white] scanned %s  |  %s",
		cellText(d.report.Summary.Host.Hostname),
		d.report.Summary.ScanTime.Format("2006-01-02 15:04:05"),
		help)
}

func (d *Dashboard) updateListeningTable() {
	d.listeningTable.Clear()

	headers := []string{"Port", "Process", "PID", "Address"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false)
		d.listeningTable.SetCell(0, col, cell)
	}

	if d.report == nil || d.report.Listening == nil {
		return
	}

	for i, e := range d.report.Listening.Entries {
		row := i + 1
		d.listeningTable.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", e.Port)).SetAlign(tview.AlignRight))
		d.listeningTable.SetCell(row, 1, tview.NewTableCell(cellText(e.Process)))
		d.listeningTable.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", e.PID)))
		d.listeningTable.SetCell(row, 3, tview.NewTableCell(cellText(e.Address)))
	}
}
