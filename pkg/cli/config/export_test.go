package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewFontForTest creates a Font config for testing purposes
func NewFontForTest(path string) *Font {
	return &Font{path: path}
}
