package domain

// Constructors for kinds that carry a payload. Payload-free kinds go
// through New directly.

func NewNetworkUnavailable() *Error { return New(KindNetworkUnavailable) }
func NewNetworkTimeout() *Error { return New(KindNetworkTimeout) }
func NewServerUnreachable() *Error { return New(KindServerUnreachable) }
func NewRateLimited() *Error { return New(KindRateLimited) }

func NewDownloadInterrupted(model string) *Error {
	return &Error{Kind: KindDownloadInterrupted, Model: model}
}

func NewModelNotFound(model string) *Error {
	return &Error{Kind: KindModelNotFound, Model: model}
}

func NewModelLoadFailed(model string, cause error) *Error {
	return &Error{Kind: KindModelLoadFailed, Model: model, Cause: cause}
}

func NewModelCorrupted(model string) *Error {
	return &Error{Kind: KindModelCorrupted, Model: model}
}

func NewModelIncompatible(model string) *Error {
	return &Error{Kind: KindModelIncompatible, Model: model}
}

func NewModelVerificationFailed(model string) *Error {
	return &Error{Kind: KindModelVerificationFailed, Model: model}
}

func NewNoModelLoaded() *Error { return New(KindNoModelLoaded) }

func NewContextCreationFailed(cause error) *Error {
	return &Error{Kind: KindContextCreationFailed, Cause: cause}
}

func NewInferenceFailed(cause error) *Error {
	return &Error{Kind: KindInferenceFailed, Cause: cause}
}

func NewTokenizationFailed(cause error) *Error {
	return &Error{Kind: KindTokenizationFailed, Cause: cause}
}

func NewInsufficientStorage(required, available uint64) *Error {
	return &Error{Kind: KindInsufficientStorage, Required: required, Available: available}
}

func NewStorageWriteFailed(item string, cause error) *Error {
	return &Error{Kind: KindStorageWriteFailed, Item: item, Cause: cause}
}

func NewStorageReadFailed(item string, cause error) *Error {
	return &Error{Kind: KindStorageReadFailed, Item: item, Cause: cause}
}

func NewDataCorrupted(item string) *Error {
	return &Error{Kind: KindDataCorrupted, Item: item}
}

func NewOutOfMemory() *Error { return New(KindOutOfMemory) }
func NewMemoryPressure() *Error { return New(KindMemoryPressure) }

func NewAllocationFailed(cause error) *Error {
	return &Error{Kind: KindAllocationFailed, Cause: cause}
}

func NewKVCacheExhausted() *Error { return New(KindKVCacheExhausted) }
func NewGPUUnavailable() *Error { return New(KindGPUUnavailable) }
func NewGPUMemoryExhausted() *Error { return New(KindGPUMemoryExhausted) }

func NewGPUKernelFailed(cause error) *Error {
	return &Error{Kind: KindGPUKernelFailed, Cause: cause}
}

func NewThermalThrottled() *Error { return New(KindThermalThrottled) }

func NewConversationNotFound(item string) *Error {
	return &Error{Kind: KindConversationNotFound, Item: item}
}

func NewMessageSendFailed(cause error) *Error {
	return &Error{Kind: KindMessageSendFailed, Cause: cause}
}

func NewStreamingInterrupted() *Error { return New(KindStreamingInterrupted) }
func NewContextWindowExceeded() *Error { return New(KindContextWindowExceeded) }
func NewEmptyResponse() *Error { return New(KindEmptyResponse) }
func NewBackgroundTaskExpired() *Error { return New(KindBackgroundTaskExpired) }
func NewOperationCancelled() *Error { return New(KindOperationCancelled) }

func NewExportFailed(item string, cause error) *Error {
	return &Error{Kind: KindExportFailed, Item: item, Cause: cause}
}

func NewImportFailed(item string, cause error) *Error {
	return &Error{Kind: KindImportFailed, Item: item, Cause: cause}
}

func NewUnsupportedFormat(item string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Item: item}
}

func NewPermissionDenied(item string) *Error {
	return &Error{Kind: KindPermissionDenied, Item: item}
}

func NewInvalidInput(item string) *Error {
	return &Error{Kind: KindInvalidInput, Item: item}
}

func NewUnexpected(cause error) *Error {
	return &Error{Kind: KindUnexpected, Cause: cause}
}
