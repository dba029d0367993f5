package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "extfix"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	dryRunFlagName      = "dry-run"
	silentFlagName      = "silent"
	onlyDiffFlagName    = "only-diff"
	showHiddenFlagName  = "show-hidden"
	maxDepthFlagName    = "max-depth"
	colorFlagName       = "color"
	parallelFlagName    = "parallel"
	interactiveFlagName = "interactive"
	excludeFlagName     = "exclude"
	verboseFlagName     = "verbose"

	scanParallelConfigKey    = "scan.parallel"
	scanMaxDepthConfigKey    = "scan.max_depth"
	scanShowHiddenKey        = "scan.show_hidden"
	scanColorConfigKey       = "scan.color"
	scanDryRunConfigKey      = "scan.dry_run"
	scanSilentConfigKey      = "scan.silent"
	scanOnlyDiffConfigKey    = "scan.only_diff"
	scanInteractiveConfigKey = "scan.interactive"
	excludeConfigKey         = "paths.exclude"

	defaultMaxDepth   = -1 // unlimited
	defaultParallel   = 1
	defaultShowHidden = false
	defaultColor      = false

	envPrefix = "EXTFIX"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".extfix.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(scanParallelConfigKey, defaultParallel)
	viper.SetDefault(scanMaxDepthConfigKey, defaultMaxDepth)
	viper.SetDefault(scanShowHiddenKey, defaultShowHidden)
	viper.SetDefault(scanColorConfigKey, defaultColor)
	viper.SetDefault(scanDryRunConfigKey, false)
	viper.SetDefault(scanSilentConfigKey, false)
	viper.SetDefault(scanOnlyDiffConfigKey, false)
	viper.SetDefault(scanInteractiveConfigKey, false)
	viper.SetDefault(excludeConfigKey, []string{})

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug. Console
// output never goes through slog: the report is the product, the log file
// is for diagnostics.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
