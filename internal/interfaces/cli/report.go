package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/orion-pdv/internal/application/report"
	"github.com/jhoicas/orion-pdv/internal/bootstrap"
	"github.com/jhoicas/orion-pdv/pkg/money"
)

// NewReportCommand crea el grupo de comandos de reportes.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reportes de ventas e inventario",
	}
	cmd.AddCommand(newSalesReportCommand(rootOpts))
	cmd.AddCommand(newStockReportCommand(rootOpts))
	return cmd
}

func newSalesReportCommand(rootOpts *RootOptions) *cobra.Command {
	var from, to, xlsxPath string
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Ventas por período, forma de pago y más vendidos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromT, toT, err := report.ParsePeriod(from, to, time.Local)
			if err != nil {
				return err
			}
			return rootOpts.withContainer(cmd, func(c *bootstrap.Container) error {
				ctx := cmd.Context()
				if xlsxPath != "" {
					data, err := c.Reports.ExportSalesXLSX(ctx, fromT, toT)
					if err != nil {
						return err
					}
					return writeFile(cmd, xlsxPath, data)
				}
				r, err := c.Reports.SalesReport(ctx, fromT, toT)
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), r)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Vendas: %d  Itens: %d  Total: %s  Descontos: %s  Ticket médio: %s\n",
					r.SaleCount, r.ItemsSold, money.BRL(r.TotalValue), money.BRL(r.TotalDiscount), money.BRL(r.AverageTicket))
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "\nPAGAMENTO\tVENDAS\tVALOR")
				for _, p := range r.ByPaymentMethod {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Label, p.Count, money.BRL(p.Value))
				}
				fmt.Fprintln(tw, "\n#\tPRODUTO\tQTD\tVALOR")
				for _, b := range r.BestSellers {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", b.Rank, b.ProductName, b.Quantity, money.BRL(b.Value))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "desde YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "hasta YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "escribir planilla Excel en esta ruta")
	return cmd
}

func newStockReportCommand(rootOpts *RootOptions) *cobra.Command {
	var xlsxPath string
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Valor del inventario, stock bajo y agotados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withContainer(cmd, func(c *bootstrap.Container) error {
				ctx := cmd.Context()
				if xlsxPath != "" {
					data, err := c.Reports.ExportStockXLSX(ctx)
					if err != nil {
						return err
					}
					return writeFile(cmd, xlsxPath, data)
				}
				r, err := c.Reports.StockReport(ctx)
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), r)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Produtos: %d  Unidades: %d  Valor em estoque: %s  Estoque baixo: %d  Esgotados: %d\n",
					r.ProductCount, r.TotalUnits, money.BRL(r.StockValue), len(r.LowStock), len(r.OutOfStock))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "escribir planilla Excel en esta ruta")
	return cmd
}

func writeFile(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Arquivo gerado: %s (%d bytes)\n", path, len(data))
	return nil
}
