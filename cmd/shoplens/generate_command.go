package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shoplens/internal/session"
	"shoplens/internal/studio"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate product photography",
	}

	generateCmd.AddCommand(newGenerateStudioCommand(ctx))
	generateCmd.AddCommand(newGenerateShotsCommand(ctx))
	generateCmd.AddCommand(newGenerateRealLifeCommand(ctx))

	return generateCmd
}

// generationSetup loads the source for a generation run: either a
// fresh image file or a saved project resumed by id. A non-empty
// assetID pins that asset as the generation source.
func generationSetup(cmdCtx context.Context, w *studio.Workspace, args []string, projectID, assetID string) error {
	if projectID != "" {
		if err := w.ResumeByID(cmdCtx, projectID); err != nil {
			return err
		}
	} else {
		if len(args) != 1 {
			return fmt.Errorf("provide a product image or --project to resume a saved project")
		}
		data, mime, err := readImageFile(args[0])
		if err != nil {
			return err
		}
		w.LoadOriginal(data, mime, "")
	}
	if assetID != "" {
		return w.SelectAsset(assetID)
	}
	return nil
}

func newGenerateStudioCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var projectID string
	var assetID string

	cmd := &cobra.Command{
		Use:   "studio [image]",
		Short: "Render the product on a clean studio background",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(w *studio.Workspace) error {
				if err := generationSetup(cmd.Context(), w, args, projectID, assetID); err != nil {
					return err
				}
				asset, err := w.GenerateStudio(cmd.Context())
				if err != nil {
					return err
				}
				paths, err := writeAssets(outDir, []session.Asset{asset})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Studio render written to %s\n", paths[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory for generated images")
	cmd.Flags().StringVar(&projectID, "project", "", "Resume a saved project instead of loading an image")
	cmd.Flags().StringVar(&assetID, "asset", "", "Generate from this session asset instead of the latest one")
	return cmd
}

func newGenerateShotsCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var projectID string
	var assetID string

	cmd := &cobra.Command{
		Use:   "shots [image]",
		Short: "Generate three camera angles of the product",
		Long: `Generate three additional camera angles. The staging adapts to the
product's natural stance (hanging items get display stands, apparel is
worn or flat-laid) and to the selected source: angle runs started from
a lifestyle render keep its scene instead of the studio backdrop.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(w *studio.Workspace) error {
				if err := generationSetup(cmd.Context(), w, args, projectID, assetID); err != nil {
					return err
				}
				assets, err := w.GenerateAngles(cmd.Context())
				if err != nil {
					return err
				}
				paths, err := writeAssets(outDir, assets)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for i, path := range paths {
					fmt.Fprintf(out, "%s: %s\n", truncateLabel(assets[i].Label, 40), path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory for generated images")
	cmd.Flags().StringVar(&projectID, "project", "", "Resume a saved project instead of loading an image")
	cmd.Flags().StringVar(&assetID, "asset", "", "Generate from this session asset instead of the latest one")
	return cmd
}

func newGenerateRealLifeCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var projectID string
	var assetID string

	cmd := &cobra.Command{
		Use:   "reallife [image]",
		Short: "Place the product in three lifestyle scenes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(w *studio.Workspace) error {
				if err := generationSetup(cmd.Context(), w, args, projectID, assetID); err != nil {
					return err
				}
				assets, err := w.GenerateRealLife(cmd.Context())
				if err != nil {
					return err
				}
				paths, err := writeAssets(outDir, assets)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for i, path := range paths {
					fmt.Fprintf(out, "%s: %s\n", truncateLabel(assets[i].Label, 40), path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory for generated images")
	cmd.Flags().StringVar(&projectID, "project", "", "Resume a saved project instead of loading an image")
	cmd.Flags().StringVar(&assetID, "asset", "", "Generate from this session asset instead of the latest one")
	return cmd
}
