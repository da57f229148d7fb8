package logging

// Field names shared by every component so log output stays greppable.
const (
	FieldSource   = "source"
	FieldURL      = "url"
	FieldStatus   = "status_code"
	FieldCount    = "count"
	FieldDropped  = "dropped"
	FieldLoadID   = "load_id"
	FieldView     = "view"
	FieldMonth    = "month"
	FieldRange    = "range"
	FieldDuration = "duration_ms"
	FieldFile     = "file_path"
	FieldReason   = "reason"
	FieldAddr     = "addr"
)
