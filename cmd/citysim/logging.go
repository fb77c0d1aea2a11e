package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "citysim.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging configures log output based on the debug flag. If debug is
// false, logging is disabled entirely; otherwise logs go to a rotating
// file so a long-running simulation doesn't spam stdout next to the
// websocket status line. Returns the log file handle (or nil) that should
// be closed when the process exits.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create logs directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)

	if info, err := os.Stat(logPath); err == nil {
		if info.Size() > maxLogSize {
			timestamp := time.Now().Format("2006-01-02-15-04-05")
			rotatedName := filepath.Join(logDir, fmt.Sprintf("citysim-%s.log", timestamp))
			if err := os.Rename(logPath, rotatedName); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to rotate log file: %v\n", err)
			}
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Printf("=== citysim started ===")

	return logFile
}
