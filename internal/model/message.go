package model

type Notification struct {
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
	LevelInfo     = "INFO"
)

const (
	CodeExported           = "EXPORTED"
	CodePreconditionNotMet = "PRECONDITION_NOT_MET"
	CodeMissingProfile     = "MISSING_PROFILE"
	CodeRenderFailure      = "RENDER_FAILURE"
	CodeExportFailure      = "EXPORT_FAILURE"
	CodeSaveFailure        = "SAVE_FAILURE"
	CodeUsageLogFailure    = "USAGE_LOG_FAILURE"
)
