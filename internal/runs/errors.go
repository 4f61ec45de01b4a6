package runs

import "errors"

// ErrInvalidEncoding is returned when the selected log file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("log file is not valid UTF-8")
