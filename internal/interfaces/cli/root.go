// Package cli implementa posctl, la herramienta de administración de la terminal.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jhoicas/orion-pdv/internal/bootstrap"
)

// Opener abre el contenedor de dependencias; cada comando lo cierra al terminar.
type Opener func(ctx context.Context) (*bootstrap.Container, error)

// RootOptions flags globales.
type RootOptions struct {
	Format  string // text | json
	Cashier string
	open    Opener
}

// ValidFormats formatos de salida admitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz de posctl.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "posctl",
		Short: "Administración del PDV: catálogo, stock, reportes y cupons",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("formato inválido %q: use %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Cashier, "cashier", "posctl", "operador registrado en los movimientos")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewStockCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewReceiptCommand(opts))

	return cmd
}

// withContainer abre el contenedor, ejecuta fn y lo cierra.
func (o *RootOptions) withContainer(cmd *cobra.Command, fn func(c *bootstrap.Container) error) error {
	c, err := o.open(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return fn(c)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
