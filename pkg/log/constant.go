package log

// Config values accepted by ZapConfig.Mode and ZapConfig.Encoding.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"

	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Level names as written in config. Anything else falls back to debug.
const (
	LevelDebug  = "debug"
	LevelInfo   = "info"
	LevelWarn   = "warn"
	LevelError  = "error"
	LevelDPanic = "dpanic"
	LevelPanic  = "panic"
	LevelFatal  = "fatal"
)

// Field keys passed to WithFields, so log search can rely on one spelling.
const (
	FieldSocketID = "socket_id"
	FieldUserID   = "user_id"
	FieldChannel  = "channel"
)
