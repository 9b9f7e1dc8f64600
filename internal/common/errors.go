package common

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
	ErrValidation   = errors.New("validation failed")
)

// Pipeline errors
var (
	ErrUnsupportedFileType        = errors.New("unsupported file type")
	ErrFileTooLarge               = errors.New("file too large")
	ErrOcrExtractionFailed        = errors.New("ocr extraction failed")
	ErrServiceUnavailable         = errors.New("service unavailable")
	ErrParseFailure               = errors.New("parse failure")
	ErrRegistryVerificationFailed = errors.New("registry verification failed")
)

// Error codes used in AppError.Code.
const (
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeOcrFailed           = "OCR_EXTRACTION_FAILED"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	CodeParseFailure        = "PARSE_FAILURE"
	CodeRegistryFailed      = "REGISTRY_VERIFICATION_FAILED"
	CodeConfig              = "CONFIG_ERROR"
	CodeDatabase            = "DATABASE_ERROR"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// FileTypeError carries the rejected type.
type FileTypeError struct {
	FileName string
	Type     string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("%s: %q (file %s)", ErrUnsupportedFileType, e.Type, e.FileName)
}

func (e *FileTypeError) Unwrap() error { return ErrUnsupportedFileType }

// FileSizeError carries the rejected size and the limit it exceeded.
type FileSizeError struct {
	FileName string
	Size     int64
	Limit    int64
}

func (e *FileSizeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds %d (file %s)", ErrFileTooLarge, e.Size, e.Limit, e.FileName)
}

func (e *FileSizeError) Unwrap() error { return ErrFileTooLarge }

func NewUnsupportedFileTypeError(fileName, fileType string) error {
	return &FileTypeError{FileName: fileName, Type: fileType}
}

func NewFileTooLargeError(fileName string, size, limit int64) error {
	return &FileSizeError{FileName: fileName, Size: size, Limit: limit}
}

// NewOcrError wraps a collaborator failure so errors.Is(err, ErrOcrExtractionFailed) holds.
func NewOcrError(fileName string, cause error) error {
	return NewAppError(CodeOcrFailed, fileName, errors.Join(ErrOcrExtractionFailed, cause))
}

func NewServiceUnavailableError(service string, cause error) error {
	return NewAppError(CodeServiceUnavailable, service, errors.Join(ErrServiceUnavailable, cause))
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// gRPC error helpers
func InvalidArgumentError(message string) error {
	return status.Error(codes.InvalidArgument, message)
}

func NotFoundError(message string) error {
	return status.Error(codes.NotFound, message)
}

func InternalError(message string) error {
	return status.Error(codes.Internal, message)
}

func InternalErrorf(format string, args ...interface{}) error {
	return InternalError(fmt.Sprintf(format, args...))
}

// ToStatus maps application errors onto gRPC status codes.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFoundError(err.Error())
	case errors.Is(err, ErrUnsupportedFileType), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		return InvalidArgumentError(err.Error())
	case errors.Is(err, ErrFileTooLarge):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, ErrServiceUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, ErrOcrExtractionFailed), errors.Is(err, ErrParseFailure):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return InternalError(err.Error())
}
