package testhelper

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	postgres "github.com/tunelog/tunelog-backend/internal/adapter/postgres"
)

// NewMockQuerier returns a pgxmock-backed Querier for unit tests that do not
// need a real database.
func NewMockQuerier(t *testing.T) (postgres.Querier, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("testhelper: create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, mock
}

// ExpectationsWereMet fails the test if any declared expectation was not hit.
func ExpectationsWereMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet mock expectations: %v", err)
	}
}
