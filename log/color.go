package log

// ANSI color codes used for the default color tags.
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorWhite   = "\033[37m"
)

// DefaultClearTag is written after a colorized line to restore the terminal.
const DefaultClearTag = colorReset

// A table holds one string per defined level, indexed by [Level].
type table [levelCount]string

func (t *table) get(l Level) string {
	if !l.valid() {
		return ""
	}

	return t[l]
}

func (t *table) set(l Level, s string) {
	if l.valid() {
		t[l] = s
	}
}

func defaultHeaders() table {
	return table{
		LevelNone:  "[NONE] ",
		LevelError: "[ERROR] ",
		LevelWarn:  "[WARN] ",
		LevelInfo:  "[INFO] ",
		LevelDebug: "[DEBUG] ",
		LevelTrace: "[TRACE] ",
	}
}

func defaultColorTags() table {
	return table{
		LevelNone:  colorWhite,
		LevelError: colorRed,
		LevelWarn:  colorYellow,
		LevelInfo:  colorBlue,
		LevelDebug: colorMagenta,
		LevelTrace: colorWhite,
	}
}
