// Package applog wires up the process-wide diagnostic logger. The engine's
// Trace/Debug/Warning/Error events are mirrored here (as
// original_source/event.rs mirrors them through `tracing::*!` alongside the
// channel send) so a renderer-less caller — tests, `validate`, CI — still
// gets structured diagnostics even when nothing drains the event channel
// for display.
package applog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Version/Commit/BuildDate are stamped by the build (ldflags). Version and
// Commit are attached to every log entry, mirroring the teacher's logger
// fields; BuildDate is not attached.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// New returns a logger. Verbose or SELFIE_DEBUG=1 switches to a
// development logger (debug level, human-readable); otherwise entries are
// discarded unless at error level or above.
func New(verbose bool) *logrus.Entry {
	var log *logrus.Logger
	if verbose || os.Getenv("SELFIE_DEBUG") == "1" {
		log = newDevelopmentLogger()
	} else {
		log = newProductionLogger()
	}

	return log.WithFields(logrus.Fields{
		"version": Version,
		"commit":  Commit,
	})
}

func newDevelopmentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	log.SetOutput(os.Stderr)
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	return log
}

func newProductionLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.ErrorLevel)
	log.Formatter = &logrus.JSONFormatter{}
	return log
}
