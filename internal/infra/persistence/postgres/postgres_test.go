package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicate(t *testing.T) {
	dup := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "productos_codigo_key"}

	require.True(t, isDuplicate(dup))
	require.True(t, isDuplicate(fmt.Errorf("insert: %w", dup)))
	require.False(t, isDuplicate(&pgconn.PgError{Code: "42P01"}))
	require.False(t, isDuplicate(errors.New("boom")))
}
