// cmd/main.go
//
// Entry point for the stream offer transcoder. Responsibilities:
//   - Parse command-line flags (config path, input override).
//   - Initialise a temporary logger so config loading has a logger.
//   - Load and validate configuration from YAML.
//   - Construct the App and run it once, cancelling on SIGINT/SIGTERM.
package main

import (
	stdctx "context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/eyexzy/serde-practice/internal/logger"
	"github.com/eyexzy/serde-practice/pkg/app"
	"github.com/eyexzy/serde-practice/pkg/factory"
)

func main() {
	// ---- 1. Parse flags ------------------------------------------------------

	configPath := flag.String("c", factory.DefaultConfigPath, "path to config file (YAML), empty for defaults")
	inputPath := flag.String("i", "", "input file, overrides input.path")
	flag.Parse()

	// ---- 2. Temporary logger initialisation ---------------------------------
	//
	// NewApp() calls InitLog again with the level from the config.
	_ = logger.InitLog("info", false)

	logger.MainLog.Infof("transcoder starting, configPath=%s", *configPath)

	// ---- 3. Load configuration ----------------------------------------------

	config, readError := factory.ReadConfig(*configPath)
	if readError != nil {
		logger.MainLog.Errorf("failed to read config: %v", readError)
		os.Exit(1)
	}
	if *inputPath != "" {
		config.Input.Path = *inputPath
	}

	// ---- 4. Build App --------------------------------------------------------

	serdeApp, appError := app.NewApp(config, os.Stdout)
	if appError != nil {
		logger.MainLog.Errorf("failed to create app: %v", appError)
		os.Exit(1)
	}

	// ---- 5. Run once ---------------------------------------------------------

	rootContext, stop := signal.NotifyContext(stdctx.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if runError := serdeApp.Run(rootContext); runError != nil {
		logger.MainLog.Errorf("run failed: %v", runError)
		stop()
		os.Exit(1)
	}
}
