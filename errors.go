package hemit

import "errors"

var (
	// ErrInvalidConfig indicates a Config that cannot be rendered.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrWritePrimary indicates the response could not be written to the primary sink.
	ErrWritePrimary = errors.New("write primary sink")
	// ErrWriteDiagnostic indicates the diagnostic could not be written to the error sink.
	ErrWriteDiagnostic = errors.New("write diagnostic sink")
	// ErrSinkRequired indicates a nil stdout or stderr sink.
	ErrSinkRequired = errors.New("sink is required")
	// ErrMalformedResponse indicates captured output is not a framed HTTP response.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrVerification indicates a parsed response differs from the expectation.
	ErrVerification = errors.New("response verification failed")
	// ErrBodySchemaInvalid indicates the response body does not satisfy the schema.
	ErrBodySchemaInvalid = errors.New("body does not match schema")
	// ErrMissingRunDir indicates the fixture working directory does not exist.
	ErrMissingRunDir = errors.New("run dir missing")
	// ErrFixtureFailed indicates the fixture exited with a non-zero code.
	ErrFixtureFailed = errors.New("fixture run failed")
)
