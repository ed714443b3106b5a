package diagnostic

import "fmt"

// ConfigurationError reports registry misuse: duplicate discriminators,
// registration against an unknown root, malformed entries. It is a
// programmer error, unrelated to the values being validated.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

func Configurationf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}
