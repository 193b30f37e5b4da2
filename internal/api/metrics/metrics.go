// Package metrics defines the custom Prometheus metrics of the account
// service. It is the single source of truth for metric names, labels and
// help strings.
//
// Build one Metrics value at startup with New and hand it to the handlers.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/99minutos/account-service/internal/core/domain"
)

const namespace = "accounts"

// Metrics groups the service counters.
type Metrics struct {
	// SignupsTotal counts signup attempts.
	// Label:
	//   - result: see Result
	SignupsTotal *prometheus.CounterVec

	// LoginsTotal counts login attempts.
	// Label:
	//   - result: see Result
	LoginsTotal *prometheus.CounterVec

	// LogoutsTotal counts tokens revoked through logout.
	LogoutsTotal prometheus.Counter

	// AccountMutationsTotal counts account writes.
	// Labels:
	//   - operation: "create", "update" or "delete"
	//   - result: see Result
	AccountMutationsTotal *prometheus.CounterVec

	// RoleChangesTotal counts super-admin role updates.
	// Label:
	//   - result: see Result
	RoleChangesTotal *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SignupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Total number of signup attempts, by result.",
		}, []string{"result"}),
		LoginsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts, by result.",
		}, []string{"result"}),
		LogoutsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Total number of tokens revoked by logout.",
		}),
		AccountMutationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_mutations_total",
			Help:      "Total number of account writes, by operation and result.",
		}, []string{"operation", "result"}),
		RoleChangesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "role_changes_total",
			Help:      "Total number of user role updates, by result.",
		}, []string{"result"}),
	}
}

// Result turns an operation outcome into a bounded label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrAccountConflict), errors.Is(err, domain.ErrEmailTaken):
		return "conflict"
	default:
		return "error"
	}
}
