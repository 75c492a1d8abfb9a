package postgres_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/storage"
	"github.com/papercomputeco/neno/pkg/storage/postgres"
	testutils "github.com/papercomputeco/neno/pkg/utils/test"
)

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("NENO_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("NENO_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

var _ = Describe("Driver", func() {
	testutils.DescribeDriver(func() storage.Driver {
		ctx := context.Background()
		d, err := postgres.NewDriver(ctx, connStr())
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Replace(ctx, nil)).To(Succeed())
		return d
	})

	It("fails for an unreachable server", func() {
		_, err := postgres.NewDriver(context.Background(), "postgres://neno@127.0.0.1:1/neno?sslmode=disable&connect_timeout=1")
		Expect(err).To(HaveOccurred())
	})
})
