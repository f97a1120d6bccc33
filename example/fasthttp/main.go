// FILE: lixenwraith/alog/example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/alog"
	"github.com/lixenwraith/alog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	// Create and configure logger
	logger := alog.NewLogger()
	err := logger.ApplyOverride(
		"file_path=./logs/fasthttp.log",
		"level=0",
		"format=txt",
		"queue_capacity=100000",
		"overflow_policy=drop_oldest",
	)
	if err != nil {
		panic(err)
	}
	if err := logger.Start(); err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(alog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Critical("server stopped: " + err.Error())
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) int64 {
	// Specific fasthttp message patterns first
	if strings.Contains(msg, "connection cannot be served") {
		return alog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return alog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
