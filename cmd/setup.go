package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"video-transcriber/domain/media"
	"video-transcriber/domain/transcription"
	"video-transcriber/infrastructure/config"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through choosing the speech engine, the Whisper model
tier, the intermediate audio format and the work directory.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}
	return RunSetupWithPrompter(DefaultPrompter, path, cmd.OutOrStdout())
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, output OutputWriter) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(output, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(output, "Welcome to video-transcriber setup!")
	fmt.Fprintln(output)

	cfg := config.Default()

	if err := promptTranscription(prompter, cfg); err != nil {
		return err
	}

	if err := promptAudio(prompter, cfg); err != nil {
		return err
	}

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Configuration saved to %s\n", configPath)
	if cfg.Transcription.Engine == config.EngineOpenAI {
		fmt.Fprintln(output, "Set OPENAI_API_KEY in your environment or a .env file before transcribing.")
	}
	return nil
}

func promptTranscription(prompter Prompter, cfg *config.Config) error {
	engine, err := prompter.Select("Which speech engine should be used?", config.Engines, cfg.Transcription.Engine)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Transcription.Engine = engine

	if engine == config.EngineOpenAI {
		baseURL, err := prompter.Input("OpenAI-compatible base URL (empty for api.openai.com)?", "")
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		cfg.OpenAI.BaseURL = baseURL
		return nil
	}

	tiers := transcription.Tiers()
	names := make([]string, 0, len(tiers))
	for _, info := range tiers {
		names = append(names, string(info.Tier))
	}
	model, err := prompter.Select("Which Whisper model tier?", names, cfg.Transcription.Model)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Transcription.Model = model

	language, err := prompter.Input("Spoken language code (empty to auto-detect)?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Transcription.Language = language

	device, err := prompter.Select("Which device should whisper run on?", []string{"auto", "cpu", "cuda"}, "auto")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if device != "auto" {
		cfg.Transcription.Device = device
	}
	return nil
}

func promptAudio(prompter Prompter, cfg *config.Config) error {
	rate, err := prompter.Input("Sample rate for the extracted audio (Hz)?", strconv.Itoa(media.DefaultSampleRate))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if rate == "" {
		rate = strconv.Itoa(media.DefaultSampleRate)
	}
	n, err := strconv.Atoi(rate)
	if err != nil {
		return fmt.Errorf("sample rate must be a number: %q", rate)
	}
	cfg.Audio.SampleRate = n

	codec, err := prompter.Select("Audio codec for the intermediate file?", media.SupportedCodecs, media.DefaultCodec)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Audio.Codec = codec
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	dir, err := prompter.Input("Where should intermediate audio files go?", cfg.Paths.WorkDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if dir == "" {
		return fmt.Errorf("work directory is required")
	}
	cfg.Paths.WorkDirectory = dir
	return nil
}
