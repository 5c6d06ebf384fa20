package driver

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// T traces the scan/parse/resolve/interpret pipeline.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// EnableTracing installs a log-backed tracer if none is set and switches it
// between debug and error level.
func EnableTracing(on bool) {
	if gtrace.SyntaxTracer == nil {
		gtrace.SyntaxTracer = gologadapter.New()
	}
	if on {
		T().SetTraceLevel(tracing.LevelDebug)
	} else {
		T().SetTraceLevel(tracing.LevelError)
	}
}

func tracef(format string, args ...interface{}) {
	if t := T(); t != nil {
		t.Debugf(format, args...)
	}
}
