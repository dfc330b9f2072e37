package main

import (
	"log"
	"os"
	"strings"

	"leakfix/cmd"
	"leakfix/pkg/logging"
	"leakfix/pkg/version"

	"golang.org/x/term"
)

func main() {
	logger, err := logging.Setup(false, "leakfix", version.Get().Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := cmd.Execute(logger); err != nil {
		syncLogger()
		os.Exit(1)
	}

	syncLogger()
}

// syncLogger flushes the global logger. Sync on a console stderr fails with "invalid argument"
// on some platforms, so only regular files and terminals are synced and that error is dropped.
func syncLogger() {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logging.Logger.Sync(); syncErr != nil {
		if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
