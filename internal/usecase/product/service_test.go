package product

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	domproduct "example.com/exam-crud/internal/domain/product"
	"example.com/exam-crud/internal/domain/validation"
)

type mockProductRepository struct {
	products  map[int64]*domproduct.Product
	nextID    int64
	createErr error
	listErr   error
	deletedID int64
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*domproduct.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	p.ID = m.nextID
	m.nextID++
	cloned := *p
	m.products[p.ID] = &cloned
	return p, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if _, ok := m.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	m.products[p.ID] = &cloned
	return p, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(m.products, id)
	m.deletedID = id
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	if p, ok := m.products[id]; ok {
		cloned := *p
		return &cloned, nil
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) GetByCode(ctx context.Context, code string) (*domproduct.Product, error) {
	for _, p := range m.products {
		if p.Code == code {
			cloned := *p
			return &cloned, nil
		}
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*domproduct.Product
	for _, p := range m.products {
		if !filter.Match(p) {
			continue
		}
		cloned := *p
		result = append(result, &cloned)
	}
	domproduct.Sort(result, filter.Order)
	return result, nil
}

type recordingNotifier struct {
	notified []int64
	err      error
}

func (n *recordingNotifier) ProductCreated(ctx context.Context, p *domproduct.Product) error {
	n.notified = append(n.notified, p.ID)
	return n.err
}

func draft(code string, price string) domproduct.Draft {
	return domproduct.Draft{
		Code:         code,
		Name:         "Sudadera",
		Size:         "l",
		Price:        price,
		CreatorEmail: "creador@example.com",
	}
}

func newTestService(repo *mockProductRepository, n Notifier) (*Service, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return NewService(repo, n, logger), hook
}

func TestService_Create_StoresNormalizedProduct(t *testing.T) {
	repo := newMockProductRepository()
	notifier := &recordingNotifier{}
	svc, _ := newTestService(repo, notifier)

	p, err := svc.Create(context.Background(), draft("SUD000001", "35.5"))
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)
	require.Equal(t, domproduct.SizeL, p.Size)
	require.Equal(t, []int64{1}, notifier.notified)
}

func TestService_Create_ValidationError(t *testing.T) {
	svc, _ := newTestService(newMockProductRepository(), nil)

	_, err := svc.Create(context.Background(), draft("SUD00001", "0"))

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Messages, 2)
}

func TestService_Create_DuplicateCode(t *testing.T) {
	repo := newMockProductRepository()
	svc, _ := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), draft("SUD000001", "10"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), draft("SUD000001", "12"))
	require.ErrorIs(t, err, domproduct.ErrCodeTaken)
}

func TestService_Create_NotifierFailureIsLogged(t *testing.T) {
	repo := newMockProductRepository()
	svc, hook := newTestService(repo, &recordingNotifier{err: errors.New("smtp down")})

	p, err := svc.Create(context.Background(), draft("SUD000001", "10"))
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestService_Update(t *testing.T) {
	repo := newMockProductRepository()
	svc, _ := newTestService(repo, nil)
	ctx := context.Background()

	first, _ := svc.Create(ctx, draft("SUD000001", "10"))
	_, _ = svc.Create(ctx, draft("SUD000002", "20"))

	t.Run("keeps its own code", func(t *testing.T) {
		updated, err := svc.Update(ctx, first.ID, draft("SUD000001", "11"))
		require.NoError(t, err)
		require.Equal(t, 11.0, updated.Price)
	})

	t.Run("code owned by another product", func(t *testing.T) {
		_, err := svc.Update(ctx, first.ID, draft("SUD000002", "11"))
		require.ErrorIs(t, err, domproduct.ErrCodeTaken)
	})

	t.Run("missing product wins over bad payload", func(t *testing.T) {
		_, err := svc.Update(ctx, 99, domproduct.Draft{})
		require.ErrorIs(t, err, domproduct.ErrProductNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	repo := newMockProductRepository()
	svc, _ := newTestService(repo, nil)
	ctx := context.Background()

	p, _ := svc.Create(ctx, draft("SUD000001", "10"))

	deleted, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Sudadera", deleted.Name)
	require.Equal(t, p.ID, repo.deletedID)

	_, err = svc.Delete(ctx, p.ID)
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestService_Summary(t *testing.T) {
	repo := newMockProductRepository()
	svc, _ := newTestService(repo, nil)
	ctx := context.Background()

	_, _ = svc.Create(ctx, draft("SUD000001", "0.10"))
	_, _ = svc.Create(ctx, draft("SUD000002", "0.20"))

	sum, err := svc.Summary(ctx, domproduct.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, sum.Count)
	require.Equal(t, "0.30", sum.Total.StringFixed(2))

	repo.listErr = errors.New("db gone")
	_, err = svc.Summary(ctx, domproduct.ListFilter{})
	require.Error(t, err)
}

func TestService_Import_SkipsBadRows(t *testing.T) {
	repo := newMockProductRepository()
	svc, _ := newTestService(repo, nil)

	res, err := svc.Import(context.Background(), []domproduct.Draft{
		draft("IMP000001", "5"),
		draft("IMP000001", "6"),
		draft("IMP0002", "7"),
		draft("IMP000003", "8"),
	})

	require.NoError(t, err)
	require.Equal(t, 2, res.Inserted)
	require.Len(t, res.Failed, 2)
	require.Equal(t, "Ya existe un producto con el código 'IMP000001'", res.Failed[0].Message)
	require.Equal(t, "El campo 'codigo' debe tener exactamente 9 caracteres", res.Failed[1].Message)
}
