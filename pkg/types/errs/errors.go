package errs

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrUnknownFormat    = errors.New("unknown image format")
	ErrEmptyFile        = errors.New("file is empty")
	ErrFileTooLarge     = errors.New("file is too large")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrDeleteInProgress = errors.New("delete already in progress")
	ErrNotActive        = errors.New("gallery is not active")
	ErrNothingStaged    = errors.New("nothing staged")
)
