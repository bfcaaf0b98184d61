package common

import (
	"context"
	"fmt"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-logger-go/file"
)

// AttachFileLogger attaches, if required, a log file
func AttachFileLogger(
	log logger.Logger,
	defaultLogsPath string,
	logFilePrefix string,
	saveLogFile bool,
	workingDir string) (FileLoggingHandler, error) {
	var err error
	var logFile FileLoggingHandler
	if saveLogFile {
		argsFileLogging := file.ArgsFileLogging{
			WorkingDir:      workingDir,
			DefaultLogsPath: defaultLogsPath,
			LogFilePrefix:   logFilePrefix,
		}
		logFile, err = file.NewFileLogging(argsFileLogging)
		if err != nil {
			return nil, fmt.Errorf("%w creating a log file", err)
		}
	}

	err = logger.SetDisplayByteSlice(logger.ToHex)
	log.LogIfError(err)

	return logFile, nil
}

// RunBounded calls the provided handler immediately and then once per interval, on the
// calling goroutine, until the wall-clock budget elapses, the context is cancelled, or
// the handler returns false. The stop condition is evaluated before each subsequent call,
// so no call happens once the budget has elapsed.
func RunBounded(ctx context.Context, budget time.Duration, interval time.Duration, handler func(ctx context.Context) bool) {
	start := time.Now()
	timer := time.NewTimer(interval)
	defer timer.Stop()

	if !handler(ctx) {
		return
	}

	for {
		select {
		case <-timer.C:
			if time.Since(start) >= budget {
				return
			}
			if !handler(ctx) {
				return
			}
			timer.Reset(interval)
		case <-ctx.Done():
			return
		}
	}
}
