package extractor

import "log"

// Logger receives the warn/error diagnostics spec §7 requires for every
// category of defect the extractor tolerates. The extractor never aborts a
// pass because of bad input; it logs and skips instead.
type Logger interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// stdLogger is the default Logger, wrapping the standard library's log
// package the way app/siem/collectors/manager.go and
// app/siem/notifications/manager.go do throughout the teacher repo.
type stdLogger struct{}

// NewStdLogger returns a Logger backed by log.Printf.
func NewStdLogger() Logger {
	return stdLogger{}
}

func (stdLogger) Warnf(format string, args ...interface{}) {
	log.Printf("WARN: "+format, args...)
}

func (stdLogger) Errorf(format string, args ...interface{}) {
	log.Printf("ERROR: "+format, args...)
}
