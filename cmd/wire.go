package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bmaertens/upkeep/internal/adapters/config"
	"github.com/bmaertens/upkeep/internal/adapters/runner"
	"github.com/bmaertens/upkeep/internal/logging"
	"github.com/bmaertens/upkeep/internal/ports"
)

type app struct {
	cfg        config.Config
	logger     zerolog.Logger
	httpClient *http.Client
	runner     ports.CommandRunner

	closeLog func() error
}

// wireApp builds the per-invocation dependencies once flags are parsed.
// Callers must defer app.shutdown with the run's final error.
func wireApp(opts *globalOptions) (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		err = fmt.Errorf("load configuration: %w", err)
		recordStartupFailure(opts.logFile, err)
		return nil, err
	}

	logFile := opts.logFile
	if logFile == "" {
		logFile = cfg.LogFile
	}

	logger, closeLog, err := logging.New(logging.Options{Quiet: opts.quiet, FilePath: logFile})
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		httpClient: http.DefaultClient,
		runner:     runner.NewCmdRunner(),
		closeLog:   closeLog,
	}, nil
}

// shutdown records the final exit status in the log file and releases it.
func (a *app) shutdown(runErr error) {
	code := 0
	if runErr != nil {
		code = 1
		a.logger.Error().Msg(runErr.Error())
	}
	a.logger.Debug().Msgf("exit status %d", code)
	_ = a.closeLog()
}

// recordStartupFailure gets the failure and the final exit status into the
// log file even when wiring aborts before the regular logger exists. The
// console line is cobra's; only the file record is written here.
func recordStartupFailure(logFile string, failure error) {
	if logFile == "" {
		fallback, err := config.DefaultLogFile()
		if err != nil {
			return
		}
		logFile = fallback
	}

	logger, closeLog, err := logging.New(logging.Options{FilePath: logFile, ConsoleOut: io.Discard})
	if err != nil {
		return
	}
	logger.Error().Msg(failure.Error())
	logger.Debug().Msg("exit status 1")
	_ = closeLog()
}
