package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"
	"github.com/nozo-moto/netaudit/internal/collector"
	"github.com/nozo-moto/netaudit/internal/config"
	"github.com/nozo-moto/netaudit/internal/log"
	"github.com/nozo-moto/netaudit/internal/report"
	"github.com/nozo-moto/netaudit/internal/security"
	"github.com/nozo-moto/netaudit/internal/ui"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var version = "dev"

const (
	exitOK      = 0
	exitAborted = 1
	exitUsage   = 2
)

var errNotTerminal = errors.New("--interactive requires stdout to be a terminal")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, collector.NewLocal()))
}

func run(args []string, stdout, stderr io.Writer, inv collector.Inventory) int {
	conf, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "netaudit:", err)
		return exitUsage
	}

	app := kingpin.New("netaudit", "One-shot security audit of local processes and network activity.")
	app.Version(version)
	app.HelpFlag.Short('h')
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)

	app.Flag("log-level", "Diagnostic log level (debug, info, warn, error).").
		Default(conf.LogLevel).StringVar(&conf.LogLevel)
	app.Flag("log-format", "Diagnostic log format.").
		Default(conf.LogFormat).EnumVar(&conf.LogFormat, "text", "json")
	app.Flag("strict", "Exit non-zero when the report is cut short by an error.").
		Default(strconv.FormatBool(conf.Strict)).BoolVar(&conf.Strict)
	interactive := app.Flag("interactive", "Browse the finished report in a terminal viewer.").
		Short('i').Bool()

	if _, err := app.Parse(args); err != nil {
		app.Errorf("%s, try --help", err)
		return exitUsage
	}

	if err := conf.Validate(); err != nil {
		app.Errorf("%s", err)
		return exitUsage
	}
	if err := log.Configure(stderr, conf.LogLevel, conf.LogFormat); err != nil {
		app.Errorf("%s", err)
		return exitUsage
	}
	if *interactive && !isTerminal(stdout) {
		app.Errorf("%s", errNotTerminal)
		return exitUsage
	}

	scanID := uuid.NewString()
	logger := log.Get().WithFields(logrus.Fields{
		"prefix":  "netaudit",
		"scan_id": scanID,
	})

	gen := report.New(inv,
		report.WithDetector(security.NewSecurityDetector(
			security.WithIOThreshold(conf.IOThreshold),
			security.WithTopProcesses(conf.TopProcesses),
		)),
		report.WithConnectionsPerProcess(conf.ConnectionsPerProcess),
		report.WithLogger(logger),
		report.WithScanID(scanID),
	)

	out := stdout
	var buf bytes.Buffer
	if *interactive {
		out = &buf
	}

	rep, runErr := gen.Run(out)
	if runErr != nil {
		logger.WithError(runErr).Error("report aborted")
		report.PrintFailure(out, runErr)
	}

	if *interactive {
		if err := ui.NewDashboard(rep, buf.String()).Run(); err != nil {
			logger.WithError(err).Error("viewer failed")
			// the report is still worth having
			io.Copy(stdout, &buf)
		}
	}

	if runErr != nil && conf.Strict {
		return exitAborted
	}
	return exitOK
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
