package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeUnknown      ErrorCode = "COMMON_000"
	ErrCodeInternal     ErrorCode = "COMMON_001"
	ErrCodeInvalidInput ErrorCode = "COMMON_002"
	ErrCodeTimeout      ErrorCode = "COMMON_003"
	ErrCodeInterrupted  ErrorCode = "COMMON_004"
)

// Resolution error codes.
const (
	ErrCodeNameNotFound   ErrorCode = "RES_001"
	ErrCodeAmbiguousMatch ErrorCode = "RES_002"
	ErrCodeServiceError   ErrorCode = "RES_003"
	ErrCodeResolveTimeout ErrorCode = "RES_004"
)

// Input/output error codes.
const (
	ErrCodeInputUnreadable  ErrorCode = "IO_001"
	ErrCodeOutputUnwritable ErrorCode = "IO_002"
)

// Configuration error codes.
const (
	ErrCodeConfigUnreadable ErrorCode = "CFG_001"
	ErrCodeConfigInvalid    ErrorCode = "CFG_002"
)

// Rendering error codes.
const (
	ErrCodeRenderFailed      ErrorCode = "IMG_001"
	ErrCodeRenderUnavailable ErrorCode = "IMG_002"
)
