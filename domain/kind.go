// Package domain defines the closed error taxonomy for the triage
// subsystem: error kinds, stable codes, severities, categories,
// recovery actions, and the classification that derives policy from
// them.
package domain

import "time"

// Kind enumerates every error the subsystem can classify. The set is
// closed: anything unrecognized is wrapped into KindUnexpected.
type Kind int

const (
	KindUnknown Kind = iota

	// network
	KindNetworkUnavailable
	KindNetworkTimeout
	KindServerUnreachable
	KindDownloadInterrupted
	KindRateLimited

	// model
	KindModelNotFound
	KindModelLoadFailed
	KindModelCorrupted
	KindModelIncompatible
	KindModelVerificationFailed
	KindNoModelLoaded
	KindContextCreationFailed
	KindInferenceFailed
	KindTokenizationFailed

	// storage
	KindInsufficientStorage
	KindStorageWriteFailed
	KindStorageReadFailed
	KindDataCorrupted

	// memory
	KindOutOfMemory
	KindMemoryPressure
	KindAllocationFailed
	KindKVCacheExhausted

	// gpu
	KindGPUUnavailable
	KindGPUMemoryExhausted
	KindGPUKernelFailed
	KindThermalThrottled

	// chat
	KindConversationNotFound
	KindMessageSendFailed
	KindStreamingInterrupted
	KindContextWindowExceeded
	KindEmptyResponse

	// export
	KindExportFailed
	KindImportFailed
	KindUnsupportedFormat

	// system
	KindPermissionDenied
	KindBackgroundTaskExpired
	KindInvalidInput
	KindOperationCancelled
	KindUnexpected

	kindEnd // sentinel, keep last
)

// kindInfo is the per-kind policy row. The table is frozen: codes are
// persisted identity used for retry bucketing and statistics, so an
// existing row must never change meaning.
type kindInfo struct {
	code      string
	severity  Severity
	category  Category
	retryable bool
	actions   []RecoveryAction
}

var kindTable = map[Kind]kindInfo{
	KindNetworkUnavailable: {
		code: "NET_001", severity: SeverityMedium, category: CategoryNetwork, retryable: true,
		actions: acts(ActionRetry, ActionCheckNetwork, ActionDismiss),
	},
	KindNetworkTimeout: {
		code: "NET_002", severity: SeverityMedium, category: CategoryNetwork, retryable: true,
		actions: []RecoveryAction{
			{Type: ActionRetry},
			{Type: ActionRetryWithDelay, Delay: 5 * time.Second},
			{Type: ActionCheckNetwork},
			{Type: ActionDismiss},
		},
	},
	KindServerUnreachable: {
		code: "NET_003", severity: SeverityMedium, category: CategoryNetwork, retryable: true,
		actions: acts(ActionRetry, ActionCheckNetwork, ActionDismiss),
	},
	KindDownloadInterrupted: {
		code: "NET_004", severity: SeverityMedium, category: CategoryNetwork, retryable: true,
		actions: acts(ActionRetry, ActionRedownloadModel, ActionDismiss),
	},
	KindRateLimited: {
		code: "NET_005", severity: SeverityMedium, category: CategoryNetwork, retryable: true,
		actions: []RecoveryAction{
			{Type: ActionRetryWithDelay, Delay: 30 * time.Second},
			{Type: ActionDismiss},
		},
	},

	KindModelNotFound: {
		code: "MDL_001", severity: SeverityHigh, category: CategoryModel,
		actions: acts(ActionRedownloadModel, ActionDismiss),
	},
	KindModelLoadFailed: {
		code: "MDL_002", severity: SeverityHigh, category: CategoryModel, retryable: true,
		actions: acts(ActionRetry, ActionFreeMemory, ActionRedownloadModel, ActionDismiss),
	},
	KindModelCorrupted: {
		code: "MDL_003", severity: SeverityHigh, category: CategoryModel,
		actions: acts(ActionRedownloadModel, ActionClearCache, ActionDismiss),
	},
	KindModelIncompatible: {
		code: "MDL_004", severity: SeverityHigh, category: CategoryModel,
		actions: acts(ActionSwitchFallbackModel, ActionDismiss),
	},
	KindModelVerificationFailed: {
		code: "MDL_005", severity: SeverityHigh, category: CategoryModel,
		actions: acts(ActionRedownloadModel, ActionDismiss),
	},
	KindNoModelLoaded: {
		code: "MDL_006", severity: SeverityMedium, category: CategoryModel,
		actions: acts(ActionOpenSettings, ActionDismiss),
	},
	KindContextCreationFailed: {
		code: "MDL_007", severity: SeverityHigh, category: CategoryModel, retryable: true,
		actions: acts(ActionRetry, ActionFreeMemory, ActionDismiss),
	},
	KindInferenceFailed: {
		code: "MDL_008", severity: SeverityMedium, category: CategoryModel, retryable: true,
		actions: acts(ActionRetry, ActionSwitchFallbackModel, ActionDismiss),
	},
	KindTokenizationFailed: {
		code: "MDL_009", severity: SeverityMedium, category: CategoryModel, retryable: true,
		actions: acts(ActionRetry, ActionDismiss),
	},

	KindInsufficientStorage: {
		code: "STO_001", severity: SeverityHigh, category: CategoryStorage,
		actions: acts(ActionCheckStorage, ActionClearCache, ActionDismiss),
	},
	KindStorageWriteFailed: {
		code: "STO_002", severity: SeverityMedium, category: CategoryStorage, retryable: true,
		actions: acts(ActionRetry, ActionCheckStorage, ActionDismiss),
	},
	KindStorageReadFailed: {
		code: "STO_003", severity: SeverityMedium, category: CategoryStorage, retryable: true,
		actions: acts(ActionRetry, ActionDismiss),
	},
	KindDataCorrupted: {
		code: "STO_004", severity: SeverityCritical, category: CategoryStorage,
		actions: acts(ActionClearCache, ActionContactSupport, ActionDismiss),
	},

	KindOutOfMemory: {
		code: "MEM_001", severity: SeverityCritical, category: CategoryMemory,
		actions: acts(ActionFreeMemory, ActionRestartApp, ActionDismiss),
	},
	KindMemoryPressure: {
		code: "MEM_002", severity: SeverityLow, category: CategoryMemory,
		actions: acts(ActionFreeMemory, ActionDismiss),
	},
	KindAllocationFailed: {
		code: "MEM_003", severity: SeverityHigh, category: CategoryMemory, retryable: true,
		actions: acts(ActionFreeMemory, ActionRetry, ActionDismiss),
	},
	KindKVCacheExhausted: {
		code: "MEM_004", severity: SeverityMedium, category: CategoryMemory, retryable: true,
		actions: acts(ActionRetry, ActionFreeMemory, ActionDismiss),
	},

	KindGPUUnavailable: {
		code: "GPU_001", severity: SeverityMedium, category: CategoryGPU,
		actions: acts(ActionSwitchFallbackModel, ActionOpenSettings, ActionDismiss),
	},
	KindGPUMemoryExhausted: {
		code: "GPU_002", severity: SeverityHigh, category: CategoryGPU, retryable: true,
		actions: acts(ActionFreeMemory, ActionRetry, ActionSwitchFallbackModel, ActionDismiss),
	},
	KindGPUKernelFailed: {
		code: "GPU_003", severity: SeverityHigh, category: CategoryGPU,
		actions: acts(ActionRestartApp, ActionContactSupport, ActionDismiss),
	},
	KindThermalThrottled: {
		code: "GPU_004", severity: SeverityLow, category: CategoryGPU,
		actions: acts(ActionDismiss),
	},

	KindConversationNotFound: {
		code: "CHT_001", severity: SeverityMedium, category: CategoryChat,
		actions: acts(ActionDismiss),
	},
	KindMessageSendFailed: {
		code: "CHT_002", severity: SeverityMedium, category: CategoryChat, retryable: true,
		actions: acts(ActionRetry, ActionDismiss),
	},
	KindStreamingInterrupted: {
		code: "CHT_003", severity: SeverityMedium, category: CategoryChat, retryable: true,
		actions: acts(ActionRetry, ActionDismiss),
	},
	KindContextWindowExceeded: {
		code: "CHT_004", severity: SeverityMedium, category: CategoryChat,
		actions: acts(ActionDismiss),
	},
	KindEmptyResponse: {
		code: "CHT_005", severity: SeverityLow, category: CategoryChat,
		actions: acts(ActionRetry, ActionDismiss),
	},

	KindExportFailed: {
		code: "EXP_001", severity: SeverityMedium, category: CategoryExport, retryable: true,
		actions: acts(ActionRetry, ActionDismiss),
	},
	KindImportFailed: {
		code: "EXP_002", severity: SeverityMedium, category: CategoryExport, retryable: true,
		actions: acts(ActionRetry, ActionDismiss),
	},
	KindUnsupportedFormat: {
		code: "EXP_003", severity: SeverityLow, category: CategoryExport,
		actions: acts(ActionDismiss),
	},

	KindPermissionDenied: {
		code: "SYS_001", severity: SeverityHigh, category: CategorySystem,
		actions: acts(ActionOpenSettings, ActionDismiss),
	},
	KindBackgroundTaskExpired: {
		code: "SYS_002", severity: SeverityLow, category: CategorySystem,
		actions: acts(ActionDismiss),
	},
	KindInvalidInput: {
		code: "SYS_003", severity: SeverityLow, category: CategorySystem,
		actions: acts(ActionDismiss),
	},
	KindOperationCancelled: {
		code: "SYS_004", severity: SeverityLow, category: CategorySystem,
		actions: acts(ActionDismiss),
	},
	KindUnexpected: {
		code: "SYS_005", severity: SeverityCritical, category: CategorySystem,
		actions: acts(ActionRestartApp, ActionContactSupport, ActionDismiss),
	},
}

// failClosed is the policy for any kind missing from the table:
// surface it, never retry it, never silently swallow it.
var failClosed = kindInfo{
	code: "UNK_000", severity: SeverityHigh, category: CategorySystem,
	actions: acts(ActionDismiss),
}

func acts(types ...ActionType) []RecoveryAction {
	out := make([]RecoveryAction, len(types))
	for i, t := range types {
		out[i] = RecoveryAction{Type: t}
	}
	return out
}

// Kinds lists every classified kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, int(kindEnd)-1)
	for k := KindNetworkUnavailable; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) info() kindInfo {
	if info, ok := kindTable[k]; ok {
		return info
	}
	return failClosed
}

// Code returns the stable machine code for the kind, e.g. "NET_002".
func (k Kind) Code() string { return k.info().code }

// Severity returns the kind's severity.
func (k Kind) Severity() Severity { return k.info().severity }

// Category returns the kind's category.
func (k Kind) Category() Category { return k.info().category }

// Retryable reports whether medium-severity auto-retry applies.
func (k Kind) Retryable() bool { return k.info().retryable }
