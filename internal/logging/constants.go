package logging

// Standardized field names for structured logging.
const (
	FieldProfileID     = "profile_id"
	FieldTransactionID = "transaction_id"
	FieldReminderID    = "reminder_id"
	FieldCategory      = "category"
	FieldType          = "type"
	FieldOperation     = "operation"
	FieldStrategy      = "strategy"
	FieldKeyword       = "keyword"
	FieldBackend       = "backend"
	FieldKey           = "key"
	FieldReason        = "reason"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldBytes         = "bytes"
	FieldFile          = "file_path"
	FieldMode          = "mode"
)
