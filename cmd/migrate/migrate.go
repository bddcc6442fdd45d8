package migrate

import (
	"fmt"
	"net/url"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/dutch-auction/internal/config"
	"github.com/golang-migrate/migrate/v4"
)

const (
	auctionMigrationSource = "modules/auction/database/postgresql/migrations"
	auctionMigrationTable  = "auction_schema_migrations"
)

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

// parseDatabaseURL falls back to auction.postgres.url from the configuration when --database is not set.
func parseDatabaseURL(raw string) (*url.URL, error) {
	raw = utils.Default(raw, config.Load().Auction.Postgres.URL)
	if raw == "" {
		return nil, errors.New("--database is required")
	}
	databaseURL, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[databaseURL.Scheme]; !ok {
		return nil, errors.Errorf("unsupported database driver: %s", databaseURL.Scheme)
	}
	return databaseURL, nil
}

func newMigrate(module string, databaseURL *url.URL, sourcePath string, migrationTable string) (*migrate.Migrate, error) {
	newDatabaseURL := cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {migrationTable}})
	m, err := migrate.New("file://"+sourcePath, newDatabaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{
		prefix: fmt.Sprintf("[%s] ", module),
	}
	return m, nil
}
