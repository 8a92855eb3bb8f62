package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shadegraph/pkg/document"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a document and print warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return fmt.Errorf("load document: %w", err)
			}

			warnings := document.Validate(doc)
			if len(warnings) == 0 {
				printSuccess("%s is valid", args[0])
				return nil
			}
			for _, w := range warnings {
				printWarning("%s", w)
			}
			printInfo("%d warnings", len(warnings))
			return nil
		},
	}
}
