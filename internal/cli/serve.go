package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"example.com/exam-crud/internal/infra/mail"
	"example.com/exam-crud/internal/infra/persistence"
	apihttp "example.com/exam-crud/internal/interface/http"
	"example.com/exam-crud/internal/interface/web"
	productuc "example.com/exam-crud/internal/usecase/product"
	useruc "example.com/exam-crud/internal/usecase/user"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the HTML tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid config")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stores, err := persistence.Open(ctx, a.cfg, a.log)
			if err != nil {
				return err
			}
			defer func() {
				if err := stores.Close(); err != nil {
					a.log.WithError(err).Warn("close storage")
				}
			}()

			var notifier productuc.Notifier
			if a.cfg.SMTPAddr != "" {
				notifier = mail.NewSMTPNotifier(a.cfg.SMTPAddr, a.cfg.SMTPFrom)
			}
			productSvc := productuc.NewService(stores.Products, notifier, a.log)
			userSvc := useruc.NewService(stores.Users)

			api := apihttp.NewAPI(apihttp.Dependencies{
				ProductService: productSvc,
				UserService:    userSvc,
				Ping:           stores.Ping,
				Pages:          web.NewHandler(productSvc, userSvc, a.log),
				Logger:         a.log,
			})
			srv := &http.Server{
				Addr:              a.cfg.Addr(),
				Handler:           api.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return runServer(ctx, srv, a.log)
		},
	}
}

// runServer serves until ctx is done and then drains open requests.
func runServer(ctx context.Context, srv *http.Server, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "listen")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.Info("Server stopped")
	return nil
}
