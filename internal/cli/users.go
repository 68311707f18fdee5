package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"example.com/exam-crud/internal/client"
	domuser "example.com/exam-crud/internal/domain/user"
)

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"usuarios"},
		Short:   "Manage users through the API",
	}
	cmd.AddCommand(
		a.usersListCmd(),
		a.usersGetCmd(),
		a.usersCreateCmd(),
		a.usersUpdateCmd(),
		a.usersDeleteCmd(),
	)
	return cmd
}

func userDraftFlags(cmd *cobra.Command, d *domuser.Draft) {
	cmd.Flags().StringVar(&d.Name, "nombre", "", "full name")
	cmd.Flags().StringVar(&d.Email, "correo", "", "e-mail, unique")
	cmd.Flags().StringVar(&d.Mobile, "movil", "", "9 digit mobile number")
	cmd.Flags().StringVar(&d.Age, "edad", "", "age between 1 and 120")
	cmd.Flags().StringVar(&d.Language, "idioma", "", "preferred language")
}

func (a *app) usersListCmd() *cobra.Command {
	var opts client.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.client().ListUsers(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), users)
		},
	}
	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "search in id, nombre and correo")
	cmd.Flags().StringVar(&opts.Order, "orden", "", "id_desc, id_asc, nombre_asc or nombre_desc")
	return cmd
}

func (a *app) usersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			u, err := a.client().GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), []*domuser.User{u})
		},
	}
}

func (a *app) usersCreateCmd() *cobra.Command {
	var d domuser.Draft
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.client().CreateUser(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario creado con id=%d\n", u.ID)
			return nil
		},
	}
	userDraftFlags(cmd, &d)
	return cmd
}

func (a *app) usersUpdateCmd() *cobra.Command {
	var d domuser.Draft
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if _, err := a.client().UpdateUser(cmd.Context(), id, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usuario id=%d actualizado\n", id)
			return nil
		},
	}
	userDraftFlags(cmd, &d)
	return cmd
}

func (a *app) usersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			msg, err := a.client().DeleteUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
