package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"video-transcriber/infrastructure/config"
	"video-transcriber/infrastructure/logging"
)

var (
	cfgFile   string
	logLevel  string
	cfg       *config.Config
	cfgErr    error
	appLogger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "video-transcriber",
	Short: "Transcribe the audio track of video files",
	Long: `video-transcriber extracts the audio track of a video with ffmpeg and runs
Whisper speech recognition over it:

  - Extract the first audio stream to a 16 kHz mono WAV file
  - Transcribe it with the local whisper CLI or the OpenAI API
  - Print the transcript (plain text, segments, or JSON)

Example:
  video-transcriber transcribe --video lecture.mp4 --model small`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context,
// so a running pipeline stops its subprocess and removes its scratch files
// before the process exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config or info)")
}

func initConfig() {
	// .env is optional; it usually only carries OPENAI_API_KEY
	_ = godotenv.Load()

	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}

	cfg, cfgErr = config.Load(path)
	if cfgErr != nil && cfgFile == "" && errors.Is(cfgErr, fs.ErrNotExist) {
		// No config file at the default location: run on defaults
		cfg, cfgErr = config.Default(), nil
	}
}

func initLogger() error {
	level, format := logLevel, ""
	if cfg != nil {
		if level == "" {
			level = cfg.Logging.Level
		}
		format = cfg.Logging.Format
	}

	var err error
	appLogger, err = logging.New(logging.Options{Level: level, Format: format})
	return err
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// GetLogger returns the process logger
func GetLogger() *logrus.Logger {
	if appLogger == nil {
		return logging.Discard()
	}
	return appLogger
}
