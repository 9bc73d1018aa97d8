package notify

import "log/slog"

// RequestType names a recovery request crossing the boundary.
type RequestType string

const (
	RequestRedownload          RequestType = "redownload"
	RequestClearCache          RequestType = "clear_cache"
	RequestFreeMemory          RequestType = "free_memory"
	RequestRestart             RequestType = "restart"
	RequestNavigateToStorage   RequestType = "navigate_to_storage"
	RequestContactSupport      RequestType = "contact_support"
	RequestSwitchFallbackModel RequestType = "switch_fallback_model"
	RequestOpenSettings        RequestType = "open_settings"
)

// Request is a single broadcast event with at most one payload field.
type Request struct {
	Type    RequestType
	Payload string
}

// Requests is a channel-backed Notifier. Hosts consume C; publishing
// never blocks — when the consumer falls behind, requests are dropped
// with a warning rather than stalling the coordinator.
type Requests struct {
	ch chan Request
}

// NewRequests creates a request stream with the given buffer size.
func NewRequests(buffer int) *Requests {
	if buffer <= 0 {
		buffer = 16
	}
	return &Requests{ch: make(chan Request, buffer)}
}

// C is the stream of recovery requests.
func (r *Requests) C() <-chan Request { return r.ch }

func (r *Requests) publish(req Request) {
	select {
	case r.ch <- req:
	default:
		slog.Warn("recovery request dropped, consumer too slow", "type", req.Type)
	}
}

func (r *Requests) RequestRedownload(model string) {
	r.publish(Request{Type: RequestRedownload, Payload: model})
}

func (r *Requests) RequestClearCache() {
	r.publish(Request{Type: RequestClearCache})
}

func (r *Requests) RequestFreeMemory() {
	r.publish(Request{Type: RequestFreeMemory})
}

func (r *Requests) RequestRestart() {
	r.publish(Request{Type: RequestRestart})
}

func (r *Requests) RequestNavigateToStorage() {
	r.publish(Request{Type: RequestNavigateToStorage})
}

func (r *Requests) RequestContactSupport(diagnostic string) {
	r.publish(Request{Type: RequestContactSupport, Payload: diagnostic})
}

func (r *Requests) RequestSwitchFallbackModel() {
	r.publish(Request{Type: RequestSwitchFallbackModel})
}

func (r *Requests) RequestOpenSettings() {
	r.publish(Request{Type: RequestOpenSettings})
}
