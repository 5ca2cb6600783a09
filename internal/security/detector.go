package security

import (
	"sort"
	"strings"

	"github.com/nozo-moto/netaudit/pkg/types"
)

const (
	// DefaultIOThreshold is the cumulative byte count a process must exceed
	// on reads or writes to be listed as a heavy network user.
	DefaultIOThreshold uint64 = 10_000_000
	// DefaultTopProcesses caps how many heavy users are reported.
	DefaultTopProcesses = 10

	bytesPerMB = 1_000_000
)

// DefaultKeywords are matched case-insensitively as substrings of process names.
var DefaultKeywords = []string{"miner", "crypto", "hack", "keylog", "trojan", "rat", "backdoor"}

// SecurityDetector applies the name and I/O heuristics to process samples.
type SecurityDetector struct {
	keywords     []string
	ioThreshold  uint64
	topProcesses int
}

type Option func(*SecurityDetector)

func WithIOThreshold(bytes uint64) Option {
	return func(sd *SecurityDetector) {
		sd.ioThreshold = bytes
	}
}

func WithTopProcesses(n int) Option {
	return func(sd *SecurityDetector) {
		sd.topProcesses = n
	}
}

func WithKeywords(keywords ...string) Option {
	return func(sd *SecurityDetector) {
		sd.keywords = keywords
	}
}

func NewSecurityDetector(opts ...Option) *SecurityDetector {
	sd := &SecurityDetector{
		keywords:     DefaultKeywords,
		ioThreshold:  DefaultIOThreshold,
		topProcesses: DefaultTopProcesses,
	}
	for _, opt := range opts {
		opt(sd)
	}

	lowered := make([]string, len(sd.keywords))
	for i, k := range sd.keywords {
		lowered[i] = strings.ToLower(k)
	}
	sd.keywords = lowered

	return sd
}

// MatchKeywords returns every keyword found in name, in keyword order.
func (sd *SecurityDetector) MatchKeywords(name string) []string {
	lower := strings.ToLower(name)
	var matched []string
	for _, k := range sd.keywords {
		if strings.Contains(lower, k) {
			matched = append(matched, k)
		}
	}
	return matched
}

func (sd *SecurityDetector) IsSuspicious(name string) bool {
	return len(sd.MatchKeywords(name)) > 0
}

// ClassifyIO reports whether either counter strictly exceeds the threshold.
func (sd *SecurityDetector) ClassifyIO(sample types.ProcessSample) (types.ProcessUsage, bool) {
	if sample.ReadBytes <= sd.ioThreshold && sample.WriteBytes <= sd.ioThreshold {
		return types.ProcessUsage{}, false
	}
	return types.ProcessUsage{
		PID:     sample.PID,
		Name:    sample.Name,
		ReadMB:  ToMB(sample.ReadBytes),
		WriteMB: ToMB(sample.WriteBytes),
	}, true
}

// TopUsage orders usage by read+write descending and keeps the heaviest
// users. Equal totals keep their input order.
func (sd *SecurityDetector) TopUsage(usage []types.ProcessUsage) []types.ProcessUsage {
	sorted := make([]types.ProcessUsage, len(usage))
	copy(sorted, usage)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalMB() > sorted[j].TotalMB()
	})

	if len(sorted) > sd.topProcesses {
		sorted = sorted[:sd.topProcesses]
	}
	return sorted
}

func ToMB(bytes uint64) float64 {
	return float64(bytes) / bytesPerMB
}
