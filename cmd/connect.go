package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	go_ora "github.com/sijms/go-ora/v2"
	"go.uber.org/zap"

	"schema-validator/internal/dialect"
	"schema-validator/internal/schema"
)

var ErrUnsupportedDriver = errors.New("unsupported driver")

// driver key in config -> database/sql driver name
var sqlDrivers = map[string]string{
	"mysql":     "mysql",
	"postgres":  "postgres",
	"pgx":       "pgx",
	"sqlserver": "sqlserver",
	"mssql":     "sqlserver",
	"oracle":    "oracle",
	"db2":       "go_ibm_db",
}

var defaultPorts = map[string]int{
	"mysql":     3306,
	"postgres":  5432,
	"pgx":       5432,
	"sqlserver": 1433,
	"mssql":     1433,
	"oracle":    1521,
	"db2":       50000,
}

func supportedDriver(driver string) bool {
	_, ok := sqlDrivers[driver]
	return ok
}

func (p DBProfile) port() int {
	if p.Port > 0 {
		return p.Port
	}
	return defaultPorts[p.Driver]
}

// DataSourceName builds the driver-specific connection string, unless the
// profile carries a raw dsn.
func DataSourceName(p DBProfile) (string, error) {
	if p.DSN != "" {
		return p.DSN, nil
	}
	addr := net.JoinHostPort(p.Host, strconv.Itoa(p.port()))

	switch p.Driver {
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.User = p.Username
		cfg.Passwd = p.Password
		cfg.Net = "tcp"
		cfg.Addr = addr
		cfg.DBName = p.Database
		cfg.ParseTime = true
		return cfg.FormatDSN(), nil
	case "postgres", "pgx":
		sslmode := p.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(p.Username, p.Password),
			Host:     addr,
			Path:     "/" + p.Database,
			RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
		}
		return u.String(), nil
	case "sqlserver", "mssql":
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(p.Username, p.Password),
			Host:     addr,
			RawQuery: url.Values{"database": {p.Database}}.Encode(),
		}
		return u.String(), nil
	case "oracle":
		return go_ora.BuildUrl(p.Host, p.port(), p.Database, p.Username, p.Password, nil), nil
	case "db2":
		return fmt.Sprintf("HOSTNAME=%s;DATABASE=%s;PORT=%d;UID=%s;PWD=%s;PROTOCOL=TCPIP",
			p.Host, p.Database, p.port(), p.Username, p.Password), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, p.Driver)
}

// openProfile opens and pings the profile's database.
func openProfile(ctx context.Context, p DBProfile, timeout time.Duration) (*sql.DB, error) {
	driverName := sqlDrivers[p.Driver]
	if !slices.Contains(sql.Drivers(), driverName) {
		if p.Driver == "db2" {
			return nil, fmt.Errorf("profile %s: db2 support requires building with -tags db2", p.Name)
		}
		return nil, fmt.Errorf("profile %s: %w: %q is not registered", p.Name, ErrUnsupportedDriver, driverName)
	}

	dsn, err := DataSourceName(p)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("profile %s: failed to open db: %w", p.Name, err)
	}

	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("profile %s: failed to connect to db: %w", p.Name, err)
	}
	return db, nil
}

// openCatalog connects a profile and wraps it in an extractor.
func openCatalog(ctx context.Context, p DBProfile, timeout time.Duration, log *zap.SugaredLogger) (*schema.Extractor, *sql.DB, error) {
	db, err := openProfile(ctx, p, timeout)
	if err != nil {
		return nil, nil, err
	}
	d := dialect.GetDialect(p.Driver)
	ext := schema.NewExtractor(db, d, schema.Options{
		Label:        p.Name,
		Schema:       p.Schema(),
		Queries:      p.Queries,
		QueryTimeout: timeout,
		Logger:       log,
	})
	log.Infof("Connected to %s via %s (schema %s)", p.Name, d.Name(), ext.Schema())
	return ext, db, nil
}
