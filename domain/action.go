package domain

import "time"

// ActionType identifies a recovery action the user or policy can take.
type ActionType string

const (
	ActionRetry               ActionType = "retry"
	ActionRetryWithDelay      ActionType = "retry_with_delay"
	ActionRedownloadModel     ActionType = "redownload_model"
	ActionClearCache          ActionType = "clear_cache"
	ActionFreeMemory          ActionType = "free_memory"
	ActionRestartApp          ActionType = "restart_app"
	ActionCheckNetwork        ActionType = "check_network"
	ActionCheckStorage        ActionType = "check_storage"
	ActionContactSupport      ActionType = "contact_support"
	ActionDismiss             ActionType = "dismiss"
	ActionOpenSettings        ActionType = "open_settings"
	ActionSwitchFallbackModel ActionType = "switch_fallback_model"
)

// RecoveryAction is an immutable recommendation attached to a classified
// error. Delay is set only for retry_with_delay; Model only for
// redownload_model.
type RecoveryAction struct {
	Type  ActionType
	Delay time.Duration
	Model string
}

// Title returns the short user-facing label for the action.
func (a RecoveryAction) Title() string {
	switch a.Type {
	case ActionRetry:
		return "Retry"
	case ActionRetryWithDelay:
		return "Retry Later"
	case ActionRedownloadModel:
		return "Redownload Model"
	case ActionClearCache:
		return "Clear Cache"
	case ActionFreeMemory:
		return "Free Memory"
	case ActionRestartApp:
		return "Restart App"
	case ActionCheckNetwork:
		return "Check Connection"
	case ActionCheckStorage:
		return "Manage Storage"
	case ActionContactSupport:
		return "Contact Support"
	case ActionDismiss:
		return "Dismiss"
	case ActionOpenSettings:
		return "Open Settings"
	case ActionSwitchFallbackModel:
		return "Use Fallback Model"
	default:
		return "Dismiss"
	}
}

// Description returns the longer user-facing explanation for the action.
func (a RecoveryAction) Description() string {
	switch a.Type {
	case ActionRetry:
		return "Try the operation again now"
	case ActionRetryWithDelay:
		return "Try the operation again after a short wait"
	case ActionRedownloadModel:
		return "Download a fresh copy of the model"
	case ActionClearCache:
		return "Remove cached data to reclaim space"
	case ActionFreeMemory:
		return "Release memory held by inactive components"
	case ActionRestartApp:
		return "Restart the application to recover"
	case ActionCheckNetwork:
		return "Verify your internet connection and try again"
	case ActionCheckStorage:
		return "Review device storage and remove unused items"
	case ActionContactSupport:
		return "Send diagnostics to support"
	case ActionDismiss:
		return "Dismiss this error"
	case ActionOpenSettings:
		return "Open the app settings"
	case ActionSwitchFallbackModel:
		return "Switch to a smaller fallback model"
	default:
		return "Dismiss this error"
	}
}
