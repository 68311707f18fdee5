package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"example.com/exam-crud/internal/client"
	domproduct "example.com/exam-crud/internal/domain/product"
)

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"productos"},
		Short:   "Manage products through the API",
	}
	cmd.AddCommand(
		a.productsListCmd(),
		a.productsGetCmd(),
		a.productsCreateCmd(),
		a.productsUpdateCmd(),
		a.productsDeleteCmd(),
		a.productsSummaryCmd(),
		a.productsExportCmd(),
		a.productsImportCmd(),
	)
	return cmd
}

func productFilterFlags(cmd *cobra.Command, opts *client.ListOptions) {
	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "search in id, codigo and nombre")
	cmd.Flags().StringVar(&opts.Size, "talla", "", "only this size (S, M, L, XL, XXL)")
	cmd.Flags().StringVar(&opts.Order, "orden", "", "id_asc, id_desc, precio_asc or precio_desc")
}

func productDraftFlags(cmd *cobra.Command, d *domproduct.Draft) {
	cmd.Flags().StringVar(&d.Code, "codigo", "", "9 character code")
	cmd.Flags().StringVar(&d.Name, "nombre", "", "product name")
	cmd.Flags().StringVar(&d.Size, "talla", "", "S, M, L, XL or XXL")
	cmd.Flags().StringVar(&d.Price, "precio", "", "price greater than 0")
	cmd.Flags().StringVar(&d.CreatorEmail, "email", "", "creator e-mail")
}

func (a *app) productsListCmd() *cobra.Command {
	var opts client.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.client().ListProducts(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), products)
		},
	}
	productFilterFlags(cmd, &opts)
	return cmd
}

func (a *app) productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			p, err := a.client().GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), []*domproduct.Product{p})
		},
	}
}

func (a *app) productsCreateCmd() *cobra.Command {
	var d domproduct.Draft
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client().CreateProduct(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto creado con id=%d\n", p.ID)
			return nil
		},
	}
	productDraftFlags(cmd, &d)
	return cmd
}

func (a *app) productsUpdateCmd() *cobra.Command {
	var d domproduct.Draft
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if _, err := a.client().UpdateProduct(cmd.Context(), id, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto id=%d actualizado\n", id)
			return nil
		},
	}
	productDraftFlags(cmd, &d)
	return cmd
}

func (a *app) productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			msg, err := a.client().DeleteProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func (a *app) productsSummaryCmd() *cobra.Command {
	var opts client.ListOptions
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count products and add up their prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.client().ProductSummary(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Productos: %d\nTotal: %s €\n", sum.Count, sum.Total.StringFixed(2))
			return nil
		},
	}
	productFilterFlags(cmd, &opts)
	return cmd
}

func (a *app) productsExportCmd() *cobra.Command {
	var (
		opts client.ListOptions
		path string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the products as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" || path == "-" {
				return a.client().ExportProducts(cmd.Context(), opts, cmd.OutOrStdout())
			}
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(err, "create export file")
			}
			if err := a.client().ExportProducts(cmd.Context(), opts, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, "write export file")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exportado a %s\n", path)
			return nil
		},
	}
	productFilterFlags(cmd, &opts)
	cmd.Flags().StringVarP(&path, "out", "o", "", "output file (default stdout)")
	return cmd
}

// importRow reads both exported files, where precio is a number, and hand
// written ones, where it is often a string.
type importRow struct {
	Code         string          `json:"codigo"`
	Name         string          `json:"nombre"`
	Size         string          `json:"talla"`
	Price        json.RawMessage `json:"precio"`
	CreatorEmail string          `json:"email_creador"`
}

func (r importRow) draft() domproduct.Draft {
	price := strings.TrimSpace(string(r.Price))
	if price == "null" {
		price = ""
	}
	return domproduct.Draft{
		Code:         r.Code,
		Name:         r.Name,
		Size:         r.Size,
		Price:        strings.Trim(price, `"`),
		CreatorEmail: r.CreatorEmail,
	}
}

func readImportFile(r io.Reader) ([]domproduct.Draft, error) {
	var rows []importRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrap(err, "el fichero no es un array JSON de productos")
	}
	drafts := make([]domproduct.Draft, 0, len(rows))
	for _, row := range rows {
		drafts = append(drafts, row.draft())
	}
	return drafts, nil
}

func (a *app) productsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Create every product of a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open import file")
			}
			defer f.Close()

			drafts, err := readImportFile(f)
			if err != nil {
				return err
			}
			res, err := a.client().ImportProducts(cmd.Context(), drafts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Insertados: %d, con errores: %d\n", res.Inserted, len(res.Failed))
			for _, fail := range res.Failed {
				fmt.Fprintf(out, "  %s: %s\n", fail.Code, fail.Message)
			}
			return nil
		},
	}
}
