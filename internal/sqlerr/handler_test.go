package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pr-poehali-dev/internal-employee-app/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewUnauthorizedError("Invalid credentials")

	got := HandleError(fmt.Errorf("login: %w", original))
	assert.Same(t, original, got)
}

func TestHandleErrorNoRows(t *testing.T) {
	got := HandleError(fmt.Errorf("%sproducts: update product 7: %w", TablePrefix, pgx.ErrNoRows))
	require.NotNil(t, got)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "Product not found", got.Message)
	assert.Equal(t, "PRODUCT_NOT_FOUND", got.Code)

	got = HandleError(fmt.Errorf("%sorders: %w", TablePrefix, pgx.ErrNoRows))
	assert.Equal(t, "Order not found", got.Message)

	got = HandleError(pgx.ErrNoRows)
	assert.Equal(t, "Resource not found", got.Message)
}

func TestHandleErrorForeignKeyIsGenericServerError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `insert or update on table "order_items" violates foreign key constraint`,
		TableName:      "order_items",
		ColumnName:     "product_id",
		ConstraintName: "order_items_product_id_fkey",
	}

	got := HandleError(fmt.Errorf("insert order item: %w", pgErr))
	require.NotNil(t, got)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, errs.InternalServerErrorMessage, got.Message)
	assert.Equal(t, "ORDER_ITEM_NOT_FOUND", got.Code)
	assert.Equal(t, ForeignKeyViolation, ErrCode(pgErr))
	assert.Equal(t, "The referenced Product does not exist", Describe(pgErr))
}

func TestHandleErrorUnknown(t *testing.T) {
	got := HandleError(errors.New("connection reset by peer"))
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", got.Code)
	assert.Nil(t, HandleError(nil))
}

func TestMapCodeAndSeverity(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("99999"))
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "username", extractColumnForUniqueViolation("users_username_key"))
	assert.Equal(t, "name", extractColumnForUniqueViolation("unique_products_name"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestDescribeUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_username_key"}
	assert.Equal(t, "A User with this Username already exists", Describe(pgErr))
	assert.Equal(t, "", Describe(errors.New("plain")))
}
