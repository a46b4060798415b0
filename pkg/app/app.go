// Package app wires together the transcoding components:
//   - configuration
//   - logging
//   - codec registry and transcoder
//   - storage backend
//   - pipeline
//
// cmd/main.go creates an App from the loaded Config and calls Run without
// knowing internal details. The App owns file I/O and printing.
package app

import (
	stdctx "context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/eyexzy/serde-practice/internal/logger"
	"github.com/eyexzy/serde-practice/internal/model"
	"github.com/eyexzy/serde-practice/internal/pipeline"
	"github.com/eyexzy/serde-practice/internal/storage"
	"github.com/eyexzy/serde-practice/internal/transcoder"
	"github.com/eyexzy/serde-practice/pkg/factory"
)

// App runs the configured pipeline once.
type App interface {
	// Run reads the input file, transcodes it and prints every rendition.
	Run(ctx stdctx.Context) error

	// Store exposes the documents persisted by Run.
	Store() storage.Store
}

type appImpl struct {
	config *factory.Config
	out    io.Writer

	storageStore storage.Store
	pipeline     pipeline.Pipeline
}

// NewApp constructs a new App from a validated configuration. Output is
// written to out, or os.Stdout when out is nil.
func NewApp(config *factory.Config, out io.Writer) (App, error) {
	if config == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if out == nil {
		out = os.Stdout
	}

	// InitLog is safe to call again after main's temporary initialisation.
	if initError := logger.InitLog(config.Logging.Level, config.Logging.ReportCaller); initError != nil {
		logger.MainLog.Warnf("InitLog failed with level=%s, using fallback: %v",
			config.Logging.Level, initError)
	}

	logger.MainLog.Infof(
		"Starting transcoder version=%s description=%q",
		config.Info.Version, config.Info.Description,
	)

	storageStore, storageError := storage.NewStoreFromConfig(config.Storage)
	if storageError != nil {
		return nil, errors.Wrap(storageError, "failed to create storage backend")
	}

	options, optionsError := pipelineOptions(config)
	if optionsError != nil {
		return nil, optionsError
	}

	var transcoderOptions []transcoder.Option
	if config.Output.Pretty {
		transcoderOptions = append(transcoderOptions, transcoder.WithJSONIndent("  "))
	}
	transcoderInstance := transcoder.New(model.NewCodecRegistry(), transcoderOptions...)

	pipelineInstance, pipelineError := pipeline.New(transcoderInstance, storageStore, options)
	if pipelineError != nil {
		return nil, errors.Wrap(pipelineError, "failed to create pipeline")
	}

	return &appImpl{
		config:       config,
		out:          out,
		storageStore: storageStore,
		pipeline:     pipelineInstance,
	}, nil
}

func pipelineOptions(config *factory.Config) (pipeline.Options, error) {
	inputFormat, err := transcoder.ParseFormat(config.Input.Format)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(err, "input.format")
	}

	outputFormats := make([]transcoder.Format, 0, len(config.Output.Formats))
	for _, name := range config.Output.Formats {
		format, err := transcoder.ParseFormat(name)
		if err != nil {
			return pipeline.Options{}, errors.Wrap(err, "output.formats")
		}
		outputFormats = append(outputFormats, format)
	}

	return pipeline.Options{
		InputFormat:   inputFormat,
		OutputFormats: outputFormats,
		Event: model.Event{
			Name: config.Event.Name,
			Date: config.Event.Date,
		},
		DumpDecoded: config.Debug.DumpDecoded,
	}, nil
}

// Run implements App.Run.
func (app *appImpl) Run(ctx stdctx.Context) error {
	input, readError := os.ReadFile(app.config.Input.Path)
	if readError != nil {
		return errors.Wrapf(readError, "read input %s", app.config.Input.Path)
	}
	logger.MainLog.Infof("read %d byte(s) from %s", len(input), app.config.Input.Path)

	report, runError := app.pipeline.Run(ctx, input)
	if runError != nil {
		return runError
	}

	if printError := app.print(report); printError != nil {
		return errors.Wrap(printError, "write output")
	}

	logger.MainLog.Infof("run completed, %d format(s) rendered", len(report.Outputs))
	return nil
}

func (app *appImpl) Store() storage.Store {
	return app.storageStore
}

func (app *appImpl) print(report *pipeline.Report) error {
	if _, err := fmt.Fprintf(app.out, "Decoded request:\n%s\n", pipeline.Dump(report.Request)); err != nil {
		return err
	}
	for _, output := range report.Outputs {
		if _, err := fmt.Fprintf(app.out, "==== %s ====\n%s\n", output.Format, trimNewline(output.Body)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(app.out, "==== event ====\n%s\ndecoded: %+v\n", trimNewline(report.EventWire), report.EventDecoded)
	return err
}

func trimNewline(body []byte) []byte {
	if n := len(body); n > 0 && body[n-1] == '\n' {
		return body[:n-1]
	}
	return body
}
