// FILE: lixenwraith/alog/cmd/simple/main.go
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/alog"
	"github.com/lixenwraith/alog/formatter"
)

const logFile = "./simple_logs/simple.log"

func main() {
	fmt.Println("--- Simple Logger Example ---")

	// --- Initialize Logger ---
	logger, err := alog.NewBuilder().
		LevelString("debug").
		EnableConsole(true).
		ConsoleTarget("stderr").
		FilePath(logFile).
		Rotation(10, 5, 0, false).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger started.")

	// --- Logging ---
	logger.Trace("This trace message is filtered.")
	logger.Debug(formatter.Join("This is a debug message.", "user_id", 123))
	logger.Info("Application starting...")
	logger.Warning(formatter.Join("Potential issue detected.", "threshold", 0.95))
	logger.Error(formatter.Join("An error occurred!", "code", 500))
	logger.Critical("Something is badly wrong.")

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info(formatter.Join("Goroutine started", "id", id))
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			logger.Info(formatter.Join("Goroutine finished", "id", id))
		}(i)
	}

	wg.Wait()
	fmt.Println("Goroutines finished.")

	// Raise the threshold at runtime
	logger.SetLevel(alog.LevelWarning)
	logger.Info("Not written after SetLevel.")
	logger.Warning("Still written after SetLevel.")

	if err := logger.Flush(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Flush error: %v\n", err)
	}

	stats := logger.Stats()
	fmt.Printf("Submitted: %d, filtered: %d, processed: %d\n", stats.Submitted, stats.Filtered, stats.Processed)

	// --- Shutdown Logger ---
	fmt.Println("Shutting down logger...")
	if err := logger.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log file '%s'.\n", logFile)
}
