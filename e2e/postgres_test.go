package e2e_test

import (
	"context"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	testDSNOnce sync.Once
	testDSN     string
	testDSNErr  error
)

// getSharedPostgresDatabase returns the DSN of a PostgreSQL container shared
// by every test in the package. The container is terminated by Ryuk when the
// test binary exits.
func getSharedPostgresDatabase(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres e2e test in short mode")
	}

	testDSNOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			testDSNErr = err
			return
		}

		testDSN, testDSNErr = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if testDSNErr != nil {
			_ = testcontainers.TerminateContainer(pgContainer)
		}
	})

	if testDSNErr != nil {
		t.Fatalf("failed to start postgres container: %v", testDSNErr)
	}

	return testDSN
}
