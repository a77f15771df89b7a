package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/storage"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// params is a connection string as key/value settings, password included. URLs are normalized to the
// key=value form lib/pq accepts, so both inputs end up as the same DSN.
type params map[string]string

func parseParams(connStr string) (params, error) {
	s := strings.TrimSpace(connStr)
	if s == "" {
		return nil, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if storage.IsPostgresURL(s) {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if u.Host == "" && u.User == nil && strings.Trim(u.Path, "/") == "" {
			return nil, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		if s, err = pq.ParseURL(s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
	}

	p := params{}
	for _, field := range strings.Fields(s) {
		k, v, ok := strings.Cut(field, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: malformed setting %q", ErrInvalidConnectionString, field)
		}
		p[strings.ToLower(k)] = v
	}
	return p, nil
}

func (p params) has(key string) bool {
	_, ok := p[key]
	return ok
}

// String renders the settings in a stable order.
func (p params) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for i, k := range keys {
		keys[i] = k + "=" + p[k]
	}
	return strings.Join(keys, " ")
}

// dsn returns the settings with search_path pinned to the application schema unless one is set.
func (p params) dsn() string {
	if !p.has("search_path") {
		p["search_path"] = constants.AppName
	}
	return p.String()
}

// ValidateConnString checks that connStr parses as a PostgreSQL URI or DSN and carries no password.
func ValidateConnString(connStr string) error {
	p, err := parseParams(connStr)
	if err != nil {
		return err
	}
	if p.has("password") {
		return ErrEmbeddedCredentials
	}
	if _, err := pq.NewConnector(p.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	return nil
}
