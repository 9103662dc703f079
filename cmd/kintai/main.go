package main

import (
	"fmt"
	"os"

	"github.com/hyaku122/kintai-final/internal/config"
	"github.com/hyaku122/kintai-final/internal/store"
	"github.com/hyaku122/kintai-final/internal/timesheet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "kintai",
		Short:         "Attendance and payroll for the Japanese calendar",
		Long:          "Record clock-in/out per day, resolve Japanese national holidays and compute daily and monthly pay",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				logger = newLogger("", "info")
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger = newLogger(cfg.Log.File, cfg.Log.GetLevel())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search config.yaml)")

	rootCmd.AddCommand(dayCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(companyHolidayCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initializeManager(cfg *config.Config) (*timesheet.Manager, error) {
	policy, err := cfg.Payroll.Policy()
	if err != nil {
		return nil, fmt.Errorf("invalid payroll config: %w", err)
	}

	st := store.New(cfg.Storage.RecordsFile, logger)
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return timesheet.NewManager(st, policy, logger), nil
}

// newLogger writes JSON to a rotated file when path is set, otherwise to
// stderr so command output stays clean on stdout.
func newLogger(path, level string) *zap.Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.Lock(os.Stderr)
	if path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     90,
		})
	}
	return zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, lvl))
}
