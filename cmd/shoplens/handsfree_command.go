package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shoplens/internal/imaging"
	"shoplens/internal/session"
	"shoplens/internal/studio"
)

func newHandsfreeCommand(ctx *commandContext) *cobra.Command {
	var (
		outDir      string
		projectID   string
		assetID     string
		aspectRatio string
		cameraAngle string
		shotScale   string
		lens        string
		directive   string
		showPrompt  bool
	)

	cmd := &cobra.Command{
		Use:   "handsfree [image]",
		Short: "Generate one shot from a full camera directive",
		Long: `Compose a complete camera setup (angle, framing, lens look, aspect
ratio) plus an optional free-form directive, and render the product
with that exact setup in a single pass.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := imaging.HandsFreeOptions{
				AspectRatio: aspectRatio,
				CameraAngle: cameraAngle,
				ShotScale:   shotScale,
				Lens:        lens,
				Directive:   directive,
			}

			return ctx.withWorkspace(cmd.Context(), func(w *studio.Workspace) error {
				if err := generationSetup(cmd.Context(), w, args, projectID, assetID); err != nil {
					return err
				}
				asset, prompt, err := w.GenerateHandsFree(cmd.Context(), opts)
				if err != nil {
					return err
				}
				paths, err := writeAssets(outDir, []session.Asset{asset})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Handsfree render written to %s\n", paths[0])
				if showPrompt {
					fmt.Fprintf(out, "\nDirective used:\n%s\n", indent(prompt, "  "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory for the generated image")
	cmd.Flags().StringVar(&projectID, "project", "", "Resume a saved project instead of loading an image")
	cmd.Flags().StringVar(&assetID, "asset", "", "Generate from this session asset instead of the latest one")
	cmd.Flags().StringVar(&aspectRatio, "aspect", "original",
		fmt.Sprintf("Aspect ratio (%s)", strings.Join(imaging.AspectRatios, ", ")))
	cmd.Flags().StringVar(&cameraAngle, "angle", "eye_level",
		fmt.Sprintf("Camera angle (%s)", strings.Join(imaging.CameraAngleIDs(), ", ")))
	cmd.Flags().StringVar(&shotScale, "scale", "full",
		fmt.Sprintf("Shot framing (%s)", strings.Join(imaging.ShotScaleIDs(), ", ")))
	cmd.Flags().StringVar(&lens, "lens", "50mm",
		fmt.Sprintf("Lens look (%s)", strings.Join(imaging.LensIDs(), ", ")))
	cmd.Flags().StringVar(&directive, "directive", "", "Free-form instruction that overrides the structured options")
	cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "Print the full directive sent to the model")
	return cmd
}
