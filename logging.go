package rescue

import (
	"os"

	"github.com/rs/zerolog"
)

// logger emits the library's few diagnostics: the finally-overwrite
// warning, uncaught-exception reports, and debug events during
// propagation. Defaults to structured output on stderr.
var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// SetLogger replaces the logger used for library diagnostics. Call it
// before running any regions; the logger is not synchronized.
func SetLogger(l zerolog.Logger) {
	logger = l
}
