package domain

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Error is a classified domain error. Payload fields are set only by
// the constructors for kinds that carry them; everything else about an
// error (code, severity, policy) is derived from its Kind.
type Error struct {
	Kind Kind

	Model     string
	Item      string
	Required  uint64
	Available uint64

	Cause error
}

// New wraps a payload-free kind.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func (e *Error) Error() string {
	return e.Kind.Code() + ": " + e.Message()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Message renders the human-readable message for the error, with
// payload interpolation.
func (e *Error) Message() string {
	switch e.Kind {
	case KindNetworkUnavailable:
		return "No internet connection available"
	case KindNetworkTimeout:
		return "The request timed out"
	case KindServerUnreachable:
		return "The server could not be reached"
	case KindDownloadInterrupted:
		return fmt.Sprintf("Download of %q was interrupted", e.Model)
	case KindRateLimited:
		return "Too many requests, please wait before retrying"
	case KindModelNotFound:
		return fmt.Sprintf("Model %q was not found on this device", e.Model)
	case KindModelLoadFailed:
		return fmt.Sprintf("Model %q failed to load", e.Model)
	case KindModelCorrupted:
		return fmt.Sprintf("Model %q appears to be corrupted", e.Model)
	case KindModelIncompatible:
		return fmt.Sprintf("Model %q is not compatible with this device", e.Model)
	case KindModelVerificationFailed:
		return fmt.Sprintf("Model %q failed integrity verification", e.Model)
	case KindNoModelLoaded:
		return "No model is currently loaded"
	case KindContextCreationFailed:
		return "Failed to create an inference context"
	case KindInferenceFailed:
		return "Text generation failed"
	case KindTokenizationFailed:
		return "Input could not be tokenized"
	case KindInsufficientStorage:
		return fmt.Sprintf("Not enough storage: %s required, %s available",
			humanize.IBytes(e.Required), humanize.IBytes(e.Available))
	case KindStorageWriteFailed:
		return fmt.Sprintf("Failed to save %q", e.Item)
	case KindStorageReadFailed:
		return fmt.Sprintf("Failed to read %q", e.Item)
	case KindDataCorrupted:
		return fmt.Sprintf("Stored data for %q is corrupted", e.Item)
	case KindOutOfMemory:
		return "The device ran out of memory"
	case KindMemoryPressure:
		return "The device is running low on memory"
	case KindAllocationFailed:
		return "A memory allocation failed"
	case KindKVCacheExhausted:
		return "The model's context cache is full"
	case KindGPUUnavailable:
		return "GPU acceleration is not available"
	case KindGPUMemoryExhausted:
		return "The GPU ran out of memory"
	case KindGPUKernelFailed:
		return "A GPU computation failed"
	case KindThermalThrottled:
		return "Performance is reduced because the device is hot"
	case KindConversationNotFound:
		return fmt.Sprintf("Conversation %q was not found", e.Item)
	case KindMessageSendFailed:
		return "The message could not be sent"
	case KindStreamingInterrupted:
		return "The response was interrupted"
	case KindContextWindowExceeded:
		return "The conversation is too long for the model's context window"
	case KindEmptyResponse:
		return "The model returned an empty response"
	case KindExportFailed:
		return fmt.Sprintf("Failed to export %q", e.Item)
	case KindImportFailed:
		return fmt.Sprintf("Failed to import %q", e.Item)
	case KindUnsupportedFormat:
		return fmt.Sprintf("The format of %q is not supported", e.Item)
	case KindPermissionDenied:
		return fmt.Sprintf("Permission denied for %q", e.Item)
	case KindBackgroundTaskExpired:
		return "A background task ran out of time"
	case KindInvalidInput:
		return fmt.Sprintf("Invalid input: %s", e.Item)
	case KindOperationCancelled:
		return "The operation was cancelled"
	case KindUnexpected:
		if e.Cause != nil {
			return fmt.Sprintf("An unexpected error occurred: %v", e.Cause)
		}
		return "An unexpected error occurred"
	default:
		return "An unclassified error occurred"
	}
}

// FromErr returns err as a classified *Error. An already-classified
// error (anywhere in the unwrap chain) is returned as-is; anything
// else is wrapped into KindUnexpected.
func FromErr(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Kind: KindUnexpected, Cause: err}
}

// Classification is the full derived policy tuple for an error.
type Classification struct {
	Code      string
	Message   string
	Severity  Severity
	Category  Category
	Retryable bool
	Actions   []RecoveryAction
}

// Classify derives the policy tuple for a classified error. It is
// total: a nil error or unknown kind yields the fail-closed row.
func Classify(e *Error) Classification {
	if e == nil {
		e = New(KindUnknown)
	}
	info := e.Kind.info()

	actions := make([]RecoveryAction, len(info.actions))
	copy(actions, info.actions)
	for i := range actions {
		if actions[i].Type == ActionRedownloadModel {
			actions[i].Model = e.Model
		}
	}

	return Classification{
		Code:      info.code,
		Message:   e.Message(),
		Severity:  info.severity,
		Category:  info.category,
		Retryable: info.retryable,
		Actions:   actions,
	}
}
