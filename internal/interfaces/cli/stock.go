package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/bootstrap"
)

// NewStockCommand crea el grupo de comandos de stock.
func NewStockCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Ajustes y consulta de stock",
	}
	cmd.AddCommand(newStockAdjustCommand(rootOpts))
	cmd.AddCommand(newStockLowCommand(rootOpts))
	return cmd
}

func newStockAdjustCommand(rootOpts *RootOptions) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "adjust <product-id> <delta>",
		Short: "Ajuste manual: delta positivo = entrada, negativo = salida",
		Long: `Ajuste manual de stock. Para deltas negativos separe los argumentos con --:

  posctl stock adjust -- 7891000100103 -2`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("delta inválido %q", args[1])
			}
			return rootOpts.withContainer(cmd, func(c *bootstrap.Container) error {
				mv, err := c.Ledger.RegisterAdjustmentFromRequest(cmd.Context(), rootOpts.Cashier, dto.StockAdjustmentRequest{
					ProductID: args[0],
					Delta:     delta,
					Note:      note,
				})
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), mv)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d (%s %d)\n",
					mv.ProductName, mv.StockBefore, mv.StockAfter, mv.Kind, mv.Quantity)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "observación del ajuste")
	return cmd
}

func newStockLowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "low",
		Short: "Productos en o bajo el stock mínimo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withContainer(cmd, func(c *bootstrap.Container) error {
				list, err := c.Replenishment.GenerateReplenishmentList(cmd.Context())
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), list)
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nenhum produto com estoque baixo.")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "#\tCÓDIGO\tPRODUTO\tESTOQUE\tMÍNIMO\tSUGERIDO")
				for _, s := range list {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
						s.Priority, s.ProductID, s.ProductName, s.CurrentStock, s.StockMinimum, s.SuggestedOrderQty)
				}
				return tw.Flush()
			})
		},
	}
}
