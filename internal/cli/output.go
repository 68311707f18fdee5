package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	domproduct "example.com/exam-crud/internal/domain/product"
	domuser "example.com/exam-crud/internal/domain/user"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func printProducts(out io.Writer, products []*domproduct.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(out, "No hay productos registrados")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tCODIGO\tNOMBRE\tTALLA\tPRECIO\tEMAIL")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f €\t%s\n", p.ID, p.Code, p.Name, p.Size, p.Price, p.CreatorEmail)
	}
	return tw.Flush()
}

func printUsers(out io.Writer, users []*domuser.User) error {
	if len(users) == 0 {
		_, err := fmt.Fprintln(out, "No hay usuarios registrados")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNOMBRE\tCORREO\tMOVIL\tEDAD\tIDIOMA")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", u.ID, u.Name, u.Email, u.Mobile, u.Age, u.Language)
	}
	return tw.Flush()
}

func parseIDArg(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("el id '%s' no es válido", raw)
	}
	return id, nil
}
