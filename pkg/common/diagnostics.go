package common

// Diagnostics is a leveled message sink. Implementations must never panic;
// conversion code reports every recoverable problem through it.
type Diagnostics interface {
	Debug(message string, args ...interface{})
	Info(message string, args ...interface{})
	Warn(message string, args ...interface{})
	Error(message string, args ...interface{})
}

// StdDiagnostics forwards to the package-level Log* functions.
var StdDiagnostics Diagnostics = stdDiagnostics{}

type stdDiagnostics struct{}

func (stdDiagnostics) Debug(message string, args ...interface{}) { LogDebug(message, args...) }
func (stdDiagnostics) Info(message string, args ...interface{})  { LogInfo(message, args...) }
func (stdDiagnostics) Warn(message string, args ...interface{})  { LogWarn(message, args...) }
func (stdDiagnostics) Error(message string, args ...interface{}) { LogError(message, args...) }
