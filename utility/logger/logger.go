package logger

import (
	"fmt"
	"os"
	"runtime"

	log "github.com/jeanphorn/log4go"
)

var defaultLogger = log.NewDefaultLogger(log.DEBUG)

// Info log information
func Info(arg0 interface{}, args ...interface{}) {
	defaultLogger.Log(log.INFO, getSource(), fmt.Sprintf(arg0.(string), args...))
}

// Debug log debug
func Debug(arg0 interface{}, args ...interface{}) {
	defaultLogger.Log(log.DEBUG, getSource(), fmt.Sprintf(arg0.(string), args...))
}

// Warning log warnings
func Warning(arg0 interface{}, args ...interface{}) {
	defaultLogger.Log(log.WARNING, getSource(), fmt.Sprintf(arg0.(string), args...))
}

// Error log errors
func Error(arg0 interface{}, args ...interface{}) {
	defaultLogger.Log(log.ERROR, getSource(), fmt.Sprintf(arg0.(string), args...))
}

// Fatal log fatal errors and exit
func Fatal(arg0 interface{}, args ...interface{}) {
	defaultLogger.Log(log.CRITICAL, getSource(), fmt.Sprintf(arg0.(string), args...))
	defaultLogger.Close()
	os.Exit(1)
}

func getSource() (source string) {
	if pc, _, line, ok := runtime.Caller(2); ok {
		source = fmt.Sprintf("%s:%d", runtime.FuncForPC(pc).Name(), line)
	}
	return
}
