package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	dom "example.com/exam-crud/internal/domain/product"
	"example.com/exam-crud/internal/domain/validation"
)

// Notifier is told about every product that was created.
type Notifier interface {
	ProductCreated(ctx context.Context, p *dom.Product) error
}

type noopNotifier struct{}

func (noopNotifier) ProductCreated(context.Context, *dom.Product) error { return nil }

type Service struct {
	repo     dom.Repository
	notifier Notifier
	log      logrus.FieldLogger
}

func NewService(repo dom.Repository, notifier Notifier, log logrus.FieldLogger) *Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{repo: repo, notifier: notifier, log: log}
}

func (s *Service) Create(ctx context.Context, d dom.Draft) (*dom.Product, error) {
	p, err := d.Build()
	if err != nil {
		return nil, err
	}

	if err := s.ensureCodeFree(ctx, p.Code, 0); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.ProductCreated(ctx, created); err != nil {
		s.log.WithError(err).WithField("product_id", created.ID).Warn("product creator notification failed")
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, d dom.Draft) (*dom.Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	p, err := d.Build()
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.ensureCodeFree(ctx, p.Code, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, p)
}

// Delete removes the product and returns what was removed.
func (s *Service) Delete(ctx context.Context, id int64) (*dom.Product, error) {
	existed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existed, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*dom.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter dom.ListFilter) ([]*dom.Product, error) {
	return s.repo.List(ctx, filter)
}

type Summary struct {
	Count int
	Total decimal.Decimal
}

func (s *Service) Summary(ctx context.Context, filter dom.ListFilter) (Summary, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Count: len(products), Total: dom.Total(products)}, nil
}

type ImportFailure struct {
	Code    string
	Message string
}

type ImportResult struct {
	Inserted int
	Failed   []ImportFailure
}

// Import creates every draft it can. Rows that fail are skipped, not fatal.
func (s *Service) Import(ctx context.Context, drafts []dom.Draft) (ImportResult, error) {
	var res ImportResult
	for _, d := range drafts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, err := s.Create(ctx, d); err != nil {
			code := d.Normalize().Code
			s.log.WithError(err).WithField("codigo", code).Info("import row skipped")
			res.Failed = append(res.Failed, ImportFailure{Code: code, Message: Describe(err, code)})
			continue
		}
		res.Inserted++
	}
	return res, nil
}

// Describe renders a create/update error the way the endpoint reports it.
func Describe(err error, code string) string {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return strings.Join(verr.Messages, "; ")
	case errors.Is(err, dom.ErrCodeTaken):
		return fmt.Sprintf("Ya existe un producto con el código '%s'", code)
	default:
		return err.Error()
	}
}

func (s *Service) ensureCodeFree(ctx context.Context, code string, selfID int64) error {
	other, err := s.repo.GetByCode(ctx, code)
	switch {
	case errors.Is(err, dom.ErrProductNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != selfID:
		return dom.ErrCodeTaken
	}
	return nil
}
