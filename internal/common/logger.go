package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	arbormodels "github.com/ternarybob/arbor/models"
)

// InitLogger builds the arbor logger described by config.
func InitLogger(config *Config) arbor.ILogger {
	logger := arbor.NewLogger()

	hasStdoutOutput := false
	for _, output := range config.Logging.Output {
		if output == "stdout" || output == "console" {
			hasStdoutOutput = true
		}
	}

	if config.Logging.HasFileOutput {
		if err := os.MkdirAll(filepath.Dir(config.Logging.File), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to create logs directory: %v\n", err)
		} else {
			logger = logger.WithFileWriter(arbormodels.WriterConfiguration{
				Type:       arbormodels.LogWriterTypeFile,
				FileName:   config.Logging.File,
				TimeFormat: "15:04:05",
				MaxSize:    10 * 1024 * 1024, // 10 MB
				MaxBackups: 3,
				OutputType: arbormodels.OutputFormatLogfmt,
			})
		}
	}

	if hasStdoutOutput {
		logger = logger.WithConsoleWriter(arbormodels.WriterConfiguration{
			Type:       arbormodels.LogWriterTypeConsole,
			TimeFormat: "15:04:05",
			OutputType: arbormodels.OutputFormatLogfmt,
		})
	}

	return logger.WithLevelFromString(config.Logging.Level)
}
