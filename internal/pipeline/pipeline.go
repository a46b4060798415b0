// Package pipeline runs one record through the transcoder: decode the input
// Request, re-encode it in every requested format, persist the outputs, and
// push the configured Event through the date codec and back.
package pipeline

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/eyexzy/serde-practice/internal/logger"
	"github.com/eyexzy/serde-practice/internal/model"
	"github.com/eyexzy/serde-practice/internal/schema"
	"github.com/eyexzy/serde-practice/internal/storage"
	"github.com/eyexzy/serde-practice/internal/transcoder"
)

const (
	KindRequest = "request"
	KindEvent   = "event"
)

// Pipeline processes a single input payload.
type Pipeline interface {
	Run(ctx context.Context, input []byte) (*Report, error)
}

// Options selects formats and the Event used for the codec round trip.
type Options struct {
	InputFormat   transcoder.Format
	OutputFormats []transcoder.Format
	Event         model.Event

	// DumpDecoded logs a spew dump of the decoded Request at debug level.
	DumpDecoded bool
}

// Output is one encoded rendition.
type Output struct {
	Format transcoder.Format
	Body   []byte
}

// Report is the result of a successful Run.
type Report struct {
	Request model.Request
	Outputs []Output

	// EventWire is the JSON encoding of the configured Event.
	EventWire    []byte
	EventDecoded model.Event
	// EventOutputs holds the Event in every output format.
	EventOutputs []Output
}

type pipelineImpl struct {
	transcoder *transcoder.Transcoder
	store      storage.Store
	options    Options
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// New creates a Pipeline. A nil store skips persistence.
func New(transcoderInstance *transcoder.Transcoder, store storage.Store, options Options) (Pipeline, error) {
	if transcoderInstance == nil {
		return nil, fmt.Errorf("transcoder must not be nil")
	}
	if options.InputFormat == "" {
		options.InputFormat = transcoder.FormatJSON
	}
	if len(options.OutputFormats) == 0 {
		options.OutputFormats = transcoder.Formats()
	}
	return &pipelineImpl{
		transcoder: transcoderInstance,
		store:      store,
		options:    options,
	}, nil
}

// Dump renders a value the way DumpDecoded logs it.
func Dump(value any) string {
	return dumper.Sdump(value)
}

// Run implements Pipeline.Run.
func (pipelineInstance *pipelineImpl) Run(ctx context.Context, input []byte) (*Report, error) {
	var request model.Request
	if err := pipelineInstance.transcoder.Decode(pipelineInstance.options.InputFormat, input, &request); err != nil {
		logger.PipelineLog.Errorf("decode %s input failed: %v", pipelineInstance.options.InputFormat, err)
		return nil, errors.Wrap(err, "decode request")
	}
	logger.PipelineLog.Infof(
		"decoded request: user=%s gifts=%d shard=%s",
		request.Stream.UserID, len(request.Gifts), request.Stream.ShardURL.String(),
	)
	if pipelineInstance.options.DumpDecoded {
		logger.PipelineLog.Debugf("decoded request:\n%s", Dump(request))
	}

	report := &Report{Request: request}

	outputs, err := pipelineInstance.encodeAll(ctx, KindRequest, request)
	if err != nil {
		return nil, err
	}
	report.Outputs = outputs

	if err := pipelineInstance.runEvent(ctx, report); err != nil {
		return nil, err
	}

	logger.PipelineLog.Infof("rendered %d request and %d event document(s)",
		len(report.Outputs), len(report.EventOutputs))
	return report, nil
}

func (pipelineInstance *pipelineImpl) encodeAll(
	ctx context.Context,
	kind string,
	value schema.Described,
) ([]Output, error) {
	outputs := make([]Output, 0, len(pipelineInstance.options.OutputFormats))
	for _, format := range pipelineInstance.options.OutputFormats {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		body, err := pipelineInstance.transcoder.Encode(format, value)
		if err != nil {
			logger.PipelineLog.Errorf("encode %s as %s failed: %v", kind, format, err)
			return nil, errors.Wrapf(err, "encode %s as %s", kind, format)
		}
		if err := pipelineInstance.save(ctx, kind, format, body); err != nil {
			return nil, err
		}
		outputs = append(outputs, Output{Format: format, Body: body})
	}
	return outputs, nil
}

// runEvent encodes the configured Event, decodes the JSON form back and
// requires it to equal the original.
func (pipelineInstance *pipelineImpl) runEvent(ctx context.Context, report *Report) error {
	event := pipelineInstance.options.Event

	wire, err := pipelineInstance.transcoder.Encode(transcoder.FormatJSON, event)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}
	var decoded model.Event
	if err := pipelineInstance.transcoder.Decode(transcoder.FormatJSON, wire, &decoded); err != nil {
		return errors.Wrap(err, "decode event")
	}
	if decoded != event {
		return fmt.Errorf("event round trip mismatch: got %+v, want %+v", decoded, event)
	}
	logger.PipelineLog.Debugf("event wire: %s", wire)

	report.EventWire = wire
	report.EventDecoded = decoded

	outputs, err := pipelineInstance.encodeAll(ctx, KindEvent, event)
	if err != nil {
		return err
	}
	report.EventOutputs = outputs
	return nil
}

func (pipelineInstance *pipelineImpl) save(ctx context.Context, kind string, format transcoder.Format, body []byte) error {
	if pipelineInstance.store == nil {
		return nil
	}
	err := pipelineInstance.store.Save(ctx, storage.Document{
		Kind:   kind,
		Format: string(format),
		Body:   body,
	})
	if err != nil {
		logger.PipelineLog.Errorf("failed to save %s.%s: %v", kind, format, err)
		return errors.Wrapf(err, "save %s.%s", kind, format)
	}
	return nil
}
