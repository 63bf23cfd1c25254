package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/bootstrap"
)

// SeedFile formato del archivo de carga inicial.
type SeedFile struct {
	Settings *SeedSettings `yaml:"settings"`
	Clients  []SeedClient          `yaml:"clients"`
	Products []SeedProduct         `yaml:"products"`
}

// SeedSettings datos de la tienda; reemplazan los actuales.
type SeedSettings struct {
	CompanyName   string `yaml:"company_name"`
	Slogan        string `yaml:"slogan"`
	TaxID         string `yaml:"tax_id"`
	Phone         string `yaml:"phone"`
	Email         string `yaml:"email"`
	Address       string `yaml:"address"`
	City          string `yaml:"city"`
	ReceiptFooter string `yaml:"receipt_footer"`
}

// SeedClient cliente a crear.
type SeedClient struct {
	Name     string `yaml:"name"`
	Document string `yaml:"document"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	Address  string `yaml:"address"`
	City     string `yaml:"city"`
}

// SeedProduct producto a crear; stock entra como estoque inicial.
type SeedProduct struct {
	ScanCode     string `yaml:"scan_code"`
	Name         string `yaml:"name"`
	Group        string `yaml:"group"`
	Brand        string `yaml:"brand"`
	UnitPrice    string `yaml:"unit_price"`
	Stock        int    `yaml:"stock"`
	StockMinimum int    `yaml:"stock_minimum"`
	PhotoRef     string `yaml:"photo_ref"`
}

// SeedResult resumen de la carga.
type SeedResult struct {
	ProductsCreated int      `json:"products_created"`
	ProductsSkipped []string `json:"products_skipped"`
	ClientsCreated  int      `json:"clients_created"`
	SettingsUpdated bool     `json:"settings_updated"`
}

// NewSeedCommand crea el comando seed.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		file   string
		latin1 bool
	)
	cmd := &cobra.Command{
		Use:   "seed --file catalog.yaml",
		Short: "Carga productos, clientes y datos de la tienda desde YAML",
		Long: `Carga un catálogo inicial. Los productos cuyo código de barras ya existe se ignoran,
así que el comando puede repetirse sin duplicar. Use --latin1 para archivos exportados en ISO-8859-1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := readSeedFile(file, latin1)
			if err != nil {
				return err
			}
			return rootOpts.withContainer(cmd, func(c *bootstrap.Container) error {
				res, err := runSeed(cmd, rootOpts, c, seed)
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d produto(s) criado(s), %d ignorado(s), %d cliente(s) criado(s)\n",
					res.ProductsCreated, len(res.ProductsSkipped), res.ClientsCreated)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "archivo YAML")
	cmd.Flags().BoolVar(&latin1, "latin1", false, "el archivo está en ISO-8859-1")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readSeedFile(path string, latin1 bool) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: leer %s: %w", path, err)
	}
	if latin1 {
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("seed: decodificar ISO-8859-1: %w", err)
		}
		data = decoded
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("seed: YAML inválido: %w", err)
	}
	return &seed, nil
}

func runSeed(cmd *cobra.Command, opts *RootOptions, c *bootstrap.Container, seed *SeedFile) (*SeedResult, error) {
	ctx := cmd.Context()
	res := &SeedResult{ProductsSkipped: []string{}}

	if seed.Settings != nil {
		st := seed.Settings
		if _, err := c.Settings.Update(ctx, dto.StoreSettingsDTO{
			CompanyName: st.CompanyName, Slogan: st.Slogan, TaxID: st.TaxID, Phone: st.Phone,
			Email: st.Email, Address: st.Address, City: st.City, ReceiptFooter: st.ReceiptFooter,
		}); err != nil {
			return nil, fmt.Errorf("seed: configuración: %w", err)
		}
		res.SettingsUpdated = true
	}

	for _, cl := range seed.Clients {
		if _, err := c.ClientUC.Create(ctx, dto.CreateClientRequest{
			Name: cl.Name, Document: cl.Document, Phone: cl.Phone,
			Email: cl.Email, Address: cl.Address, City: cl.City,
		}); err != nil {
			return nil, fmt.Errorf("seed: cliente %q: %w", cl.Name, err)
		}
		res.ClientsCreated++
	}

	for i, p := range seed.Products {
		if code := strings.TrimSpace(p.ScanCode); code != "" {
			existing, err := c.Catalog.FindByScanCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				res.ProductsSkipped = append(res.ProductsSkipped, code)
				continue
			}
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(p.UnitPrice), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("seed: producto #%d %q: precio inválido %q", i+1, p.Name, p.UnitPrice)
		}
		if _, err := c.Catalog.Create(ctx, opts.Cashier, dto.CreateProductRequest{
			ScanCode:     p.ScanCode,
			Name:         p.Name,
			Group:        p.Group,
			Brand:        p.Brand,
			UnitPrice:    price,
			InitialStock: p.Stock,
			StockMinimum: p.StockMinimum,
			PhotoRef:     p.PhotoRef,
		}); err != nil {
			return nil, fmt.Errorf("seed: producto #%d %q: %w", i+1, p.Name, err)
		}
		res.ProductsCreated++
	}
	return res, nil
}
