package report

import (
	"fmt"
	"io"
	"time"

	"github.com/nozo-moto/netaudit/internal/collector"
	"github.com/nozo-moto/netaudit/internal/security"
	"github.com/nozo-moto/netaudit/pkg/types"
	"github.com/sirupsen/logrus"
)

// DefaultConnectionsPerProcess is how many connections are listed per
// process group before the rest are summarised.
const DefaultConnectionsPerProcess = 5

// Generator runs the report sections in order against one inventory.
type Generator struct {
	inv      collector.Inventory
	detector *security.SecurityDetector
	log      logrus.FieldLogger
	now      func() time.Time
	scanID   string
	perGroup int
}

type Option func(*Generator)

func WithDetector(sd *security.SecurityDetector) Option {
	return func(g *Generator) {
		g.detector = sd
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithScanID stamps the returned Report. Log fields are up to the logger
// passed with WithLogger.
func WithScanID(id string) Option {
	return func(g *Generator) {
		g.scanID = id
	}
}

func WithConnectionsPerProcess(n int) Option {
	return func(g *Generator) {
		g.perGroup = n
	}
}

func New(inv collector.Inventory, opts ...Option) *Generator {
	discard := logrus.New()
	discard.Out = io.Discard

	g := &Generator{
		inv:      inv,
		detector: security.NewSecurityDetector(),
		log:      discard,
		now:      time.Now,
		perGroup: DefaultConnectionsPerProcess,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run writes the full report to w section by section. The first unexpected
// failure stops the run; sections already written stay written and the
// returned report holds whatever was collected up to that point.
func (g *Generator) Run(w io.Writer) (*types.Report, error) {
	p := NewPrinter(w)
	rep := &types.Report{ScanID: g.scanID}

	writeTitle(p)

	summary, err := g.SystemSummary()
	if err != nil {
		return rep, fmt.Errorf("system summary: %w", err)
	}
	rep.Summary = summary
	g.writeSystemSummary(p, summary)

	counters, err := g.InterfaceStatistics()
	if err != nil {
		return rep, fmt.Errorf("interface statistics: %w", err)
	}
	rep.Interfaces = counters
	g.writeInterfaceStatistics(p, counters)

	groups, err := g.ActiveConnections()
	if err != nil {
		return rep, fmt.Errorf("active connections: %w", err)
	}
	rep.Connections = groups
	g.writeActiveConnections(p, groups)

	listening, err := g.ListeningPorts()
	if err != nil {
		return rep, fmt.Errorf("listening ports: %w", err)
	}
	rep.Listening = listening
	g.writeListeningPorts(p, listening)

	analysis, err := g.ProcessAnalysis()
	if err != nil {
		return rep, fmt.Errorf("process analysis: %w", err)
	}
	rep.Processes = analysis
	g.writeProcessAnalysis(p, analysis)

	writeRecommendations(p)

	g.log.WithFields(logrus.Fields{
		"connections": groups.Total,
		"listening":   len(listening.Entries),
		"suspicious":  len(analysis.Suspicious),
		"skipped":     len(groups.Skips) + len(listening.Skips) + len(analysis.Skips),
	}).Debug("report complete")

	return rep, nil
}

// PrintFailure reports an aborted run the way the report itself would.
func PrintFailure(w io.Writer, err error) {
	p := NewPrinter(w)
	p.Println()
	p.Printf("❌ Error during monitoring: %v\n", err)
	p.Println("Try running again as administrator/root for full access.")
}

// skip turns an expected lookup failure into a recorded skip. ok is false
// when err is not one the report tolerates.
func (g *Generator) skip(pid int32, stage string, err error) (types.Skip, bool) {
	reason, ok := collector.SkipReason(err)
	if !ok {
		return types.Skip{}, false
	}

	g.log.WithFields(logrus.Fields{
		"pid":    pid,
		"stage":  stage,
		"reason": reason,
	}).Debug("skipping item")

	return types.Skip{PID: pid, Stage: stage, Reason: reason}, true
}
