package cmd

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "OpenAPI document commands",
}

var openapiValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the OpenAPI document",
	Long:  `Load and validate api/openapi.yml against the OpenAPI 3 specification`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
		doc, err := loader.LoadFromFile(openapiPath)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", openapiPath, err)
		}

		if err := doc.Validate(ctx); err != nil {
			return fmt.Errorf("document is not valid: %w", err)
		}

		fmt.Printf("%s is valid (%d paths)\n", openapiPath, doc.Paths.Len())
		return nil
	},
}

var openapiPath string

func init() {
	openapiValidateCmd.Flags().StringVar(&openapiPath, "file", "api/openapi.yml", "Path to the OpenAPI document")

	openapiCmd.AddCommand(openapiValidateCmd)
	rootCmd.AddCommand(openapiCmd)
}
