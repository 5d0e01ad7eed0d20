package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/sync/singleflight"

	"github.com/folio/folio-go/internal/config"
)

var (
	ErrConfiguration     = errors.New("database configuration is missing: set DB_HOST, DB_USER, DB_NAME")
	ErrEnvironmentPolicy = errors.New("database not reachable in production: provide DB_HOST/DB_USER/DB_PASSWORD/DB_NAME and avoid localhost")
)

// maxOpenConns bounds concurrent connections. database/sql queues callers
// beyond the limit without bound.
const maxOpenConns = 5

// provisionTimeout bounds one shared provisioning attempt.
const provisionTimeout = 30 * time.Second

// Pool hands out the shared connection pool.
type Pool interface {
	Acquire(ctx context.Context) (*sql.DB, error)
}

// Provisioner lazily creates the target database and opens the pool on
// first Acquire. Concurrent first callers share one attempt; a failed
// attempt is not remembered.
type Provisioner struct {
	cfg        config.DatabaseConfig
	production bool

	createDatabase func(ctx context.Context, cfg *mysql.Config, name string) error
	openPool       func(cfg *mysql.Config) (*sql.DB, error)

	group singleflight.Group
	mu    sync.Mutex
	db    *sql.DB
}

// NewProvisioner creates a Provisioner for the given settings. No
// connection is made until Acquire.
func NewProvisioner(cfg config.DatabaseConfig, production bool) *Provisioner {
	return &Provisioner{
		cfg:            cfg,
		production:     production,
		createDatabase: createDatabase,
		openPool:       openPool,
	}
}

// Acquire returns the shared pool, provisioning it on first use. The
// shared attempt is detached from any one caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (p *Provisioner) Acquire(ctx context.Context) (*sql.DB, error) {
	if db := p.current(); db != nil {
		return db, nil
	}

	ch := p.group.DoChan("pool", func() (any, error) {
		if db := p.current(); db != nil {
			return db, nil
		}

		attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), provisionTimeout)
		defer cancel()

		db, err := p.provision(attemptCtx)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.db = db
		p.mu.Unlock()
		return db, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*sql.DB), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close closes the pool if it was opened.
func (p *Provisioner) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

func (p *Provisioner) current() *sql.DB {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db
}

func (p *Provisioner) provision(ctx context.Context) (*sql.DB, error) {
	if p.production && (!hasConfig(p.cfg) || isLoopbackHost(p.cfg.Host)) {
		return nil, ErrEnvironmentPolicy
	}
	if !hasConfig(p.cfg) {
		return nil, ErrConfiguration
	}

	mc := mysqlConfig(p.cfg)
	if err := p.createDatabase(ctx, mc, p.cfg.Name); err != nil {
		return nil, fmt.Errorf("creating database %q: %w", p.cfg.Name, err)
	}

	db, err := p.openPool(mc)
	if err != nil {
		return nil, fmt.Errorf("opening pool: %w", err)
	}

	slog.Info("database pool ready", "host", p.cfg.Host, "database", p.cfg.Name, "max_open_conns", maxOpenConns)
	return db, nil
}

func hasConfig(cfg config.DatabaseConfig) bool {
	return cfg.Host != "" && cfg.User != "" && cfg.Name != ""
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func mysqlConfig(cfg config.DatabaseConfig) *mysql.Config {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Collation = "utf8mb4_unicode_ci"
	return mc
}

// createDatabase connects without a default schema and creates name.
func createDatabase(ctx context.Context, cfg *mysql.Config, name string) error {
	base := cfg.Clone()
	base.DBName = ""

	db, err := sql.Open("mysql", base.FormatDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+quoteIdent(name)+" CHARACTER SET utf8mb4")
	return err
}

func openPool(cfg *mysql.Config) (*sql.DB, error) {
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// staticPool serves an already-open *sql.DB.
type staticPool struct {
	db *sql.DB
}

// StaticPool wraps an open database as a Pool.
func StaticPool(db *sql.DB) Pool {
	return staticPool{db: db}
}

func (s staticPool) Acquire(context.Context) (*sql.DB, error) {
	return s.db, nil
}
