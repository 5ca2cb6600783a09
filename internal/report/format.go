package report

import (
	"strconv"
	"strings"

	"github.com/nozo-moto/netaudit/internal/security"
	"github.com/nozo-moto/netaudit/pkg/types"
)

const bannerWidth = 60

var banner = strings.Repeat("=", bannerWidth)

var recommendations = []string{
	"Review any suspicious process names or unfamiliar programs",
	"Check listening ports - ensure you recognize all services",
	"Investigate any unexpected high network usage",
	"Review the programs configured to start automatically",
	"Run a full antivirus/malware scan with updated definitions",
	"Check the host firewall settings and rules",
}

// FormatMB renders a byte count in decimal megabytes with two decimals.
func FormatMB(bytes uint64) string {
	return strconv.FormatFloat(security.ToMB(bytes), 'f', 2, 64)
}

func formatPID(pid int32) string {
	if pid == 0 {
		return "N/A"
	}
	return strconv.FormatInt(int64(pid), 10)
}

func writeTitle(p Printer) {
	p.Println()
	p.Println("🔍 SYSTEM SECURITY MONITOR")
	p.Println()
}

func writeBanner(p Printer, title string) {
	p.Println(banner)
	p.Println(title)
	p.Println(banner)
}

func (g *Generator) writeSystemSummary(p Printer, s *types.SystemSummary) {
	writeBanner(p, "SYSTEM INFORMATION")
	p.Printf("System: %s %s\n", s.Host.OS, s.Host.Release)
	p.Printf("Machine: %s\n", s.Host.Machine)
	p.Printf("Processor: %s\n", s.Host.Processor)
	p.Printf("Scan Time: %s\n", s.ScanTime.Format("2006-01-02 15:04:05.000000"))
	p.Println()
}

func (g *Generator) writeInterfaceStatistics(p Printer, c *types.InterfaceCounters) {
	writeBanner(p, "NETWORK STATISTICS")
	p.Printf("Bytes Sent:     %s MB\n", FormatMB(c.BytesSent))
	p.Printf("Bytes Received: %s MB\n", FormatMB(c.BytesRecv))
	p.Printf("Packets Sent:   %d\n", c.PacketsSent)
	p.Printf("Packets Recv:   %d\n", c.PacketsRecv)
	p.Printf("Errors In:      %d\n", c.Errin)
	p.Printf("Errors Out:     %d\n", c.Errout)
	p.Println()
}

func (g *Generator) writeActiveConnections(p Printer, groups *types.ConnectionGroups) {
	writeBanner(p, "ACTIVE NETWORK CONNECTIONS")

	for _, group := range groups.Groups {
		p.Printf("\n[%s] (PID: %s)\n", group.Process, formatPID(group.Connections[0].PID))

		shown := group.Connections
		if len(shown) > g.perGroup {
			shown = shown[:g.perGroup]
		}
		for _, conn := range shown {
			p.Printf("  Local: %s -> Remote: %s\n", conn.LocalAddr, conn.RemoteAddr)
		}
		if rest := len(group.Connections) - len(shown); rest > 0 {
			p.Printf("  ... and %d more connections\n", rest)
		}
	}

	p.Printf("\nTotal active connections: %d\n", groups.Total)
	p.Println()
}

func (g *Generator) writeListeningPorts(p Printer, listening *types.ListeningPorts) {
	writeBanner(p, "LISTENING PORTS (Programs waiting for connections)")

	for _, e := range listening.Entries {
		p.Printf("Port %5d - %s (PID: %s) on %s\n", e.Port, e.Process, formatPID(e.PID), e.Address)
	}

	p.Printf("\nTotal listening ports: %d\n", len(listening.Entries))
	p.Println()
}

func (g *Generator) writeProcessAnalysis(p Printer, analysis *types.ProcessAnalysis) {
	writeBanner(p, "RUNNING PROCESSES ANALYSIS")

	if len(analysis.Suspicious) > 0 {
		p.Printf("\n⚠️  SUSPICIOUS PROCESS NAMES DETECTED:\n")
		for _, proc := range analysis.Suspicious {
			p.Printf("  - %s (PID: %d, User: %s)\n", proc.Name, proc.PID, proc.Username)
		}
	} else {
		p.Printf("\n✓ No obviously suspicious process names detected\n")
	}

	if len(analysis.HighUsage) > 0 {
		p.Printf("\n📊 HIGH NETWORK USAGE PROCESSES:\n")
		for _, u := range analysis.HighUsage {
			p.Printf("  - %s (PID: %d)\n", u.Name, u.PID)
			p.Printf("    Read: %.2f MB, Write: %.2f MB\n", u.ReadMB, u.WriteMB)
		}
	}

	p.Println()
}

func writeRecommendations(p Printer) {
	writeBanner(p, "RECOMMENDATIONS:")
	for i, r := range recommendations {
		p.Printf("%d. %s\n", i+1, r)
	}
	p.Printf("\n⚠️  NOTE: This tool requires administrator/root privileges for\n")
	p.Println("   complete process information. Run elevated for best results.")
	p.Println(banner)
}
