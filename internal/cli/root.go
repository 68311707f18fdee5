// Package cli wires the examcrud commands.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"example.com/exam-crud/internal/client"
	"example.com/exam-crud/internal/config"
	"example.com/exam-crud/internal/infra/logging"
)

// app is the state shared by every command once the root has loaded the
// configuration.
type app struct {
	configPath string
	apiURL     string

	cfg config.Config
	log *logrus.Logger
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	a.cfg = cfg
	a.log = logging.New(cfg.LogLevel, cfg.LogFormat)
	a.log.SetOutput(cmd.ErrOrStderr())
	return nil
}

func (a *app) client() *client.Client {
	return client.New(a.cfg.APIURL, a.cfg.ClientTimeout)
}

func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "examcrud",
		Short:             "Products and users CRUD server, client and katas",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL for client commands (overrides api_url)")

	root.AddCommand(
		a.serveCmd(),
		a.migrateCmd(),
		a.productsCmd(),
		a.usersCmd(),
		kataCmd(),
	)
	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}
