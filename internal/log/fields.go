package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldIndex      = "index"
	FieldTitle      = "title"
	FieldAmount     = "amount"
	FieldDate       = "date"
	FieldKey        = "key"
	FieldBackend    = "backend"
	FieldSnapshot   = "snapshot_file"
	FieldTier       = "tier"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentTracker  = "tracker"
	ComponentStore    = "kvstore"
	ComponentSnapshot = "snapshot"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpRemove   = "remove"
	OpPersist  = "persist"
	OpLoad     = "load"
	OpSave     = "save"
	OpList     = "list"
	OpDelete   = "delete"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
