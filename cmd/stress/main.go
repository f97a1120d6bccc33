// FILE: lixenwraith/alog/cmd/stress/main.go
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/alog"
	"github.com/lixenwraith/alog/formatter"
)

const (
	numProducers     = 16
	logsPerProducer  = 10000
	pauseOneInN      = 6 // Roughly one submission in six is followed by a 1ms pause
	flushTimeout     = 10 * time.Second
	progressInterval = 10 * time.Millisecond
)

const configFile = "stress.toml"

// Example TOML content for the stress test
var tomlContent = `
# Example stress.toml
[alog]
  level = -8 # Trace, admit everything
  format = "txt"
  enable_console = false
  file_path = "./logs/stress.log"
  batch_size = 256
  queue_capacity = 0 # Unbounded
  heartbeat_interval_ms = 0
  shutdown_summary = true
`

var levelNames = []string{"trace", "debug", "info", "warning", "error", "critical"}

// producer submits logsPerProducer messages at random levels
func producer(logger *alog.Logger, id int, start <-chan struct{}, wg *sync.WaitGroup, completed *atomic.Int64) {
	defer wg.Done()
	<-start

	r := rand.New(rand.NewSource(int64(id)))
	for i := 1; i <= logsPerProducer; i++ {
		n := r.Intn(len(levelNames))
		msg := formatter.Join("Thread", id, levelNames[n], "message", i)

		switch n {
		case 0:
			logger.Trace(msg)
		case 1:
			logger.Debug(msg)
		case 2:
			logger.Info(msg)
		case 3:
			logger.Warning(msg)
		case 4:
			logger.Error(msg)
		case 5:
			logger.Critical(msg)
		}

		if r.Intn(pauseOneInN) == 0 {
			time.Sleep(time.Millisecond)
		}
	}

	completed.Add(1)
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	// --- Setup Config ---
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write example config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created example config file: %s\n", configFile)
	}

	// CLI arguments override the file, e.g. --alog.enable_console=true
	cfg, err := alog.NewConfigFromFile(configFile, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// --- Initialize Logger ---
	logger := alog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	if cfg.FilePath != "" {
		fmt.Printf("Logger started. Logs will be written to: %s\n", cfg.FilePath)
	}

	fmt.Printf("Starting logging performance test with %d producers, each generating %d log messages\n",
		numProducers, logsPerProducer)
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Producers and Signal Handling ---
	var wg sync.WaitGroup
	completed := atomic.Int64{}
	start := make(chan struct{})

	for i := 0; i < numProducers; i++ {
		wg.Add(1)
		go producer(logger, i, start, &wg, &completed)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	// --- Run Test ---
	startTime := time.Now()
	close(start)

	expectedTotal := float64(numProducers * logsPerProducer)
	ticker := time.NewTicker(progressInterval)
	var last alog.Stats

progressLoop:
	for {
		select {
		case <-ticker.C:
			stats := logger.Stats()
			if stats != last {
				fmt.Printf("\rProgress: %.1f%% | Logs processed: %d | Pending: %d | Producers completed: %d/%d          ",
					float64(stats.Processed)/expectedTotal*100.0, stats.Processed, stats.Pending,
					completed.Load(), numProducers)
				last = stats
			}
		case <-done:
			break progressLoop
		case <-sigChan:
			fmt.Println("\n[Signal Received] Shutting down without waiting for producers...")
			break progressLoop
		}
	}
	ticker.Stop()

	fmt.Println("\nProducers finished, waiting for log processing to finish...")
	if err := logger.Flush(flushTimeout); err != nil {
		stats := logger.Stats()
		fmt.Printf("Flush did not complete: %v. Moving on with %d/%d logs processed.\n",
			err, stats.Processed, stats.Submitted)
	}

	// --- Shutdown Logger ---
	if err := logger.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	}
	duration := time.Since(startTime)

	// --- Results ---
	stats := logger.Stats()
	fmt.Println()
	fmt.Println("Logging Performance Test Results")
	fmt.Println("-------------------------------")
	fmt.Printf("Total messages logged: %d\n", stats.Submitted)
	fmt.Printf("Total logs processed: %d\n", stats.Processed)
	fmt.Printf("Logs filtered by level: %d\n", stats.Filtered)
	fmt.Printf("Logs dropped: %d\n", stats.Dropped)
	fmt.Printf("Total time: %.3f seconds\n", duration.Seconds())
	if duration.Seconds() > 0 {
		fmt.Printf("Logs per second: %.1f\n", float64(stats.Submitted)/duration.Seconds())
	}
	fmt.Printf("Average processing time: %.6f ms\n", stats.AvgProcessingTimeMs)
}
