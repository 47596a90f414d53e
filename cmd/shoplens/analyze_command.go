package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shoplens/internal/seo"
	"shoplens/internal/studio"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var textFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "analyze [image]",
		Short: "Generate SEO listing content for a product",
		Long: `Analyze a product photo (or a written description with --text) and
generate marketplace-optimized listing content: title, tags,
description, and pricing guidance backed by live competitor research.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.TrimSpace(textFlag)
			if len(args) == 0 && description == "" {
				return fmt.Errorf("provide a product image or --text description")
			}

			return ctx.withWorkspace(cmd.Context(), func(w *studio.Workspace) error {
				var result *seo.Result
				var err error
				if len(args) == 1 {
					data, mime, readErr := readImageFile(args[0])
					if readErr != nil {
						return readErr
					}
					w.LoadOriginal(data, mime, "")
					result, err = w.Analyze(cmd.Context())
				} else {
					result, err = w.AnalyzeText(cmd.Context(), description)
				}
				if err != nil {
					return err
				}

				if jsonFlag {
					return printJSON(cmd.OutOrStdout(), result)
				}
				printSEOResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&textFlag, "text", "", "Analyze a written product description instead of an image")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the raw result as JSON")
	return cmd
}
