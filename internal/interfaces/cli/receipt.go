package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/orion-pdv/internal/application/sales"
	"github.com/jhoicas/orion-pdv/internal/bootstrap"
)

// NewReceiptCommand imprime el cupom de una venta o lo exporta a PDF.
func NewReceiptCommand(rootOpts *RootOptions) *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "receipt <sale-id>",
		Short: "Reimprime el cupom não fiscal de una venta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withContainer(cmd, func(c *bootstrap.Container) error {
				format := sales.ReceiptText
				if pdfPath != "" {
					format = sales.ReceiptPDF
				}
				data, _, err := c.Receipts.Render(cmd.Context(), args[0], format)
				if err != nil {
					return err
				}
				if pdfPath != "" {
					return writeFile(cmd, pdfPath, data)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "exportar el cupom en PDF a esta ruta")
	return cmd
}
