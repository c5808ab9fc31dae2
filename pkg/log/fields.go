package log

// Shared field names so log lines stay greppable across packages.
const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Signaling
	FieldRoomID   = "room_id"
	FieldConnID   = "connection_id"
	FieldUserID   = "user_id"
	FieldUserName = "user_name"
	FieldMsgType  = "msg_type"

	// Service
	FieldService = "service"
)
