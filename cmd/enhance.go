package cmd

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"facture/internal/enhance"
	"facture/internal/logger"
	"facture/internal/quality"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [image-file] [output-file]",
	Short: "Run the enhancement chain on one image",
	Long: `Apply the OCR enhancement chain (grayscale, contrast boost,
binarization, deskew, denoise) to a single image and save the result.

Useful for inspecting what the enhanced arbitration variant looks like
without running OCR.`,
	Example: `  facture enhance scan.jpg scan_enhanced.png`,
	Args:    cobra.ExactArgs(2),
	RunE:    runEnhance,
}

func init() {
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("enhance")

	inputPath := args[0]
	outputPath := args[1]

	img, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	report := quality.Assess(img)
	log.Info().
		Float64("brightness", report.Brightness).
		Bool("acceptable", report.IsAcceptable).
		Msg("Quality assessed")
	if !report.IsAcceptable {
		return fmt.Errorf("quality check failed: %s (brightness %.1f)", report.Message, report.Brightness)
	}

	enhanced := enhance.Enhance(img)
	if err := imaging.Save(enhanced, outputPath); err != nil {
		return fmt.Errorf("failed to save enhanced image: %w", err)
	}

	fmt.Printf("Enhanced image saved to %s\n", outputPath)
	return nil
}
