package input

import "errors"

// Errors returned while capturing or binding input.
var (
	// ErrFailedToParseForm indicates the request body could not be parsed as
	// url-encoded or multipart form data.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToStoreUpload indicates an uploaded file could not be handed
	// to the upload store.
	ErrFailedToStoreUpload = errors.New("failed to store uploaded file")

	// ErrFailedToBind indicates captured parameters could not be decoded into
	// the target value.
	ErrFailedToBind = errors.New("failed to bind parameters")
)
