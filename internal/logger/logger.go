package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gookit/color"
)

var (
	infoLogger  *log.Logger
	errorLogger *log.Logger
	stdLogger   *log.Logger

	infoFile  *os.File
	errorFile *os.File

	enabled  bool
	verbose  bool
	logMutex sync.Mutex

	infoStyle    = color.New(color.FgLightBlue, color.Bold)
	errorStyle   = color.New(color.FgLightRed, color.Bold)
	debugStyle   = color.New(color.FgGray)
	moduleStyle  = color.New(color.FgLightGreen, color.Bold)
	summaryStyle = color.New(color.FgLightYellow, color.Bold)
)

func init() {
	stdLogger = log.New(os.Stdout, "", log.LstdFlags)
	infoLogger = stdLogger
	errorLogger = stdLogger
}

// Setup switches on file logging. Without it the package logs to stdout only.
func Setup(logEnabled bool, logDir string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	enabled = logEnabled

	stdLogger = log.New(os.Stdout, "", log.LstdFlags)

	if !enabled {
		infoLogger = stdLogger
		errorLogger = stdLogger
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	if infoFile != nil {
		infoFile.Close()
	}
	if errorFile != nil {
		errorFile.Close()
	}

	var err error
	infoFile, err = os.OpenFile(filepath.Join(logDir, "info.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open info log: %w", err)
	}

	errorFile, err = os.OpenFile(filepath.Join(logDir, "error.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		infoFile.Close()
		return fmt.Errorf("open error log: %w", err)
	}

	infoLogger = log.New(infoFile, "", log.LstdFlags)
	errorLogger = log.New(errorFile, "", log.LstdFlags)

	return nil
}

// SetVerbose switches debug output on the console on or off.
func SetVerbose(v bool) {
	verbose = v
}

// Info logs general information.
func Info(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)

	stdLogger.Printf("%s", infoStyle.Sprintf("[INFO]")+" "+message)

	if enabled {
		logMutex.Lock()
		defer logMutex.Unlock()
		infoLogger.Printf("%s", message)
	}
}

// Error logs errors.
func Error(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)

	stdLogger.Printf("%s", errorStyle.Sprintf("[ERROR]")+" "+color.FgRed.Sprintf("%s", message))

	if enabled {
		logMutex.Lock()
		defer logMutex.Unlock()
		errorLogger.Printf("%s", message)
	}
}

// Debug logs to the console only, and only in verbose mode.
func Debug(format string, v ...interface{}) {
	if !verbose {
		return
	}
	message := fmt.Sprintf(format, v...)
	stdLogger.Printf("%s", debugStyle.Sprintf("[DEBUG]")+" "+debugStyle.Sprintf("%s", message))
}

// Module logs module loading events.
func Module(format string, v ...interface{}) {
	if !verbose {
		return
	}
	message := fmt.Sprintf(format, v...)

	stdLogger.Printf("%s", moduleStyle.Sprintf("[MODULE]")+" "+color.FgGreen.Sprintf("%s", message))

	if enabled {
		logMutex.Lock()
		defer logMutex.Unlock()
		infoLogger.Printf("[MODULE] %s", message)
	}
}

// Summary logs merge summaries (module and symbol counts).
func Summary(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)

	stdLogger.Printf("%s", summaryStyle.Sprintf("[SUMMARY]")+" "+message)

	if enabled {
		logMutex.Lock()
		defer logMutex.Unlock()
		infoLogger.Printf("[SUMMARY] %s", message)
	}
}

// Close flushes and closes the log files.
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if infoFile != nil {
		infoFile.Close()
		infoFile = nil
	}
	if errorFile != nil {
		errorFile.Close()
		errorFile = nil
	}
	enabled = false
	infoLogger = stdLogger
	errorLogger = stdLogger
}
