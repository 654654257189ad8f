package errs

import "errors"

var (
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrEmptyUpload        = errors.New("empty upload")
	ErrReportNotFound     = errors.New("report not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownBackend     = errors.New("unknown transcription backend")
	ErrToolMissing        = errors.New("required binary not found")
)
