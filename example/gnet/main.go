// FILE: lixenwraith/alog/example/gnet/main.go
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/alog"
	"github.com/lixenwraith/alog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	cfg := alog.DefaultConfig()
	cfg.Level = alog.LevelDebug
	cfg.Format = "json"
	cfg.FilePath = "./logs/gnet.log"

	// The compat builder creates and starts the logger
	builder := compat.NewBuilder().WithConfig(cfg)
	gnetAdapter, err := builder.BuildGnet(
		compat.WithFatalHandler(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
			os.Exit(1)
		}),
	)
	if err != nil {
		panic(err)
	}

	logger, err := builder.GetLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		logger.Error("gnet server stopped: " + err.Error())
	}
}
