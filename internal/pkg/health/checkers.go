package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/busbee/busbee-auth/internal/pkg/database"
	"github.com/busbee/busbee-auth/internal/pkg/nats"
	"github.com/labstack/echo/v4"
)

// Checker reports the health of a single dependency
type Checker interface {
	Name() string
	CheckHealth(ctx context.Context) error
}

// PostgresChecker checks PostgreSQL connection health
type PostgresChecker struct {
	client *database.PostgresClient
}

// NewPostgresChecker creates a new PostgreSQL health checker
func NewPostgresChecker(client *database.PostgresClient) *PostgresChecker {
	return &PostgresChecker{client: client}
}

func (p *PostgresChecker) Name() string { return "postgres" }

// CheckHealth checks if PostgreSQL is reachable
func (p *PostgresChecker) CheckHealth(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.GetDB().PingContext(ctx)
}

// RedisChecker checks Redis connection health
type RedisChecker struct {
	client *database.RedisClient
}

// NewRedisChecker creates a new Redis health checker
func NewRedisChecker(client *database.RedisClient) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) Name() string { return "redis" }

// CheckHealth checks if Redis is reachable
func (r *RedisChecker) CheckHealth(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.GetClient().Ping(ctx).Err()
}

// NATSChecker checks NATS connection health
type NATSChecker struct {
	client *nats.Client
}

// NewNATSChecker creates a new NATS health checker
func NewNATSChecker(client *nats.Client) *NATSChecker {
	return &NATSChecker{client: client}
}

func (n *NATSChecker) Name() string { return "nats" }

// CheckHealth checks if the NATS connection is alive
func (n *NATSChecker) CheckHealth(ctx context.Context) error {
	if n.client == nil {
		return nil
	}
	conn := n.client.GetConn()
	if conn == nil || !conn.IsConnected() {
		return fmt.Errorf("nats not connected")
	}
	return nil
}

// NewReadyHandler creates a readiness handler that pings every checker
func NewReadyHandler(serviceName string, checkers ...Checker) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checkers))
		for _, checker := range checkers {
			if err := checker.CheckHealth(ctx); err != nil {
				deps[checker.Name()] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				deps[checker.Name()] = "ok"
			}
		}

		return c.JSON(status, map[string]interface{}{
			"service":      serviceName,
			"status":       http.StatusText(status),
			"dependencies": deps,
			"timestamp":    time.Now(),
		})
	}
}
