package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"video-transcriber/domain/transcription"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the recognized Whisper model tiers",
	Long: `List the model tiers accepted by --model and the transcription.model config key.
Larger tiers are more accurate but need more memory and run slower.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := string(transcription.DefaultModelTier)
		if c, err := GetConfig(); err == nil {
			current = c.Transcription.Model
		}
		return RunModels(current, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

// RunModels prints the tier table, marking the configured tier
func RunModels(current string, output OutputWriter) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"", "Tier", "Parameters", "VRAM", "Speed", "English-only variant"})

	for _, info := range transcription.Tiers() {
		mark := ""
		if string(info.Tier) == current || string(info.Tier)+".en" == current {
			mark = "*"
		}
		english := "-"
		if info.EnglishOnly {
			english = string(info.Tier) + ".en"
		}
		tw.AppendRow(table.Row{mark, info.Tier, info.Parameters, info.RequiredVRAM, info.RelativeSpeed, english})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(output, tw.Render())
	return err
}
