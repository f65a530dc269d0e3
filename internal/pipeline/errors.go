package pipeline

import (
	"context"
	"errors"
	"fmt"

	"datapoint-forecast/internal/dataset"
	"datapoint-forecast/internal/location"
	"datapoint-forecast/internal/providers/datapoint"
	"datapoint-forecast/internal/table"
)

// Stage names a pipeline step
type Stage string

const (
	StageResolve        Stage = "resolve"
	StageFetch          Stage = "fetch"
	StageWriteRaw       Stage = "write_raw"
	StageRename         Stage = "rename"
	StageDrop           Stage = "drop"
	StageRemap          Stage = "remap"
	StageWriteProcessed Stage = "write_processed"
)

// Kind classifies the error that stopped a stage
type Kind string

const (
	KindTransport       Kind = "transport"
	KindParse           Kind = "parse"
	KindNotFound        Kind = "not_found"
	KindUnknownCategory Kind = "unknown_category"
	KindColumnNotFound  Kind = "column_not_found"
	KindPersistence     Kind = "persistence"
	KindInvalidInput    Kind = "invalid_input"
	KindCanceled        Kind = "canceled"
	KindUnknown         Kind = "unknown"
)

var ErrNoLocations = errors.New("no location ids to fetch")

// StageError is returned when a stage fails. The run stops at that stage.
type StageError struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Kind: classify(err), Err: err}
}

// classify maps an error to its kind by walking the wrap chain. A client
// timeout wrapped in a TransportError stays a transport failure.
func classify(err error) Kind {
	var (
		transportErr *datapoint.TransportError
		parseErr     *datapoint.ParseError
		unknownErr   *table.UnknownCategoryError
		columnErr    *table.ColumnNotFoundError
		persistErr   *dataset.PersistenceError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &parseErr):
		return KindParse
	case errors.Is(err, location.ErrNotFound):
		return KindNotFound
	case errors.As(err, &unknownErr):
		return KindUnknownCategory
	case errors.As(err, &columnErr):
		return KindColumnNotFound
	case errors.As(err, &persistErr):
		return KindPersistence
	case errors.Is(err, ErrNoLocations), errors.Is(err, location.ErrEmptyName):
		return KindInvalidInput
	case errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}
