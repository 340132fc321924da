package expreplay

import "errors"

// ExpReplayError implements errors unique to an experience replay
// buffer.
type ExpReplayError struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *ExpReplayError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExpReplayError) Unwrap() error {
	return e.Err
}

var errEmptyCache error = errors.New("cache empty")

var errMissingField = errors.New("transition missing field")

var errFieldSize = errors.New("illegal field size")

var errInvalidConfig = errors.New("invalid configuration")

var errInvalidPriority = errors.New("invalid priority")

// underlying returns the error wrapped by an ExpReplayError, or err
// itself if it is not an ExpReplayError
func underlying(err error) error {
	var replayErr *ExpReplayError
	if errors.As(err, &replayErr) {
		return replayErr.Err
	}
	return err
}

// IsEmptyBuffer returns whether or not an error reports that a
// replay buffer is empty.
func IsEmptyBuffer(err error) bool {
	return errors.Is(underlying(err), errEmptyCache)
}

// IsMissingField returns whether or not an error reports that a
// transition did not contain one of the buffer's fields.
func IsMissingField(err error) bool {
	return errors.Is(underlying(err), errMissingField)
}

// IsFieldSize returns whether or not an error reports that a
// transition had the wrong number of values for one of its fields.
func IsFieldSize(err error) bool {
	return errors.Is(underlying(err), errFieldSize)
}

// IsInvalidConfig returns whether or not an error reports that a
// buffer could not be constructed from its Config.
func IsInvalidConfig(err error) bool {
	return errors.Is(underlying(err), errInvalidConfig)
}

// IsInvalidPriority returns whether or not an error reports that a
// priority update was rejected.
func IsInvalidPriority(err error) bool {
	return errors.Is(underlying(err), errInvalidPriority)
}
