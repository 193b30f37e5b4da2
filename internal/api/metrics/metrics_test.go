package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/99minutos/account-service/internal/core/domain"
)

func TestResult(t *testing.T) {
	cases := map[error]string{
		nil:                          "success",
		domain.ErrInvalidCredentials: "unauthenticated",
		domain.ErrForbidden:          "forbidden",
		domain.ErrAccountNotFound:    "not_found",
		domain.ErrEmailTaken:         "conflict",
		domain.ErrUsernameTaken:      "conflict",
		errors.New("boom"):           "error",
		fmt.Errorf("%w: name", domain.ErrInvalidInput): "invalid_input",
	}
	for err, want := range cases {
		if got := Result(err); got != want {
			t.Fatalf("Result(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestNewRegistersCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.LoginsTotal.WithLabelValues("success").Inc()
	m.AccountMutationsTotal.WithLabelValues("create", "success").Add(2)

	if got := testutil.ToFloat64(m.LoginsTotal.WithLabelValues("success")); got != 1 {
		t.Fatalf("expected 1 login, got %v", got)
	}
	if got := testutil.ToFloat64(m.AccountMutationsTotal.WithLabelValues("create", "success")); got != 2 {
		t.Fatalf("expected 2 creates, got %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	// Vectors without children are not exported; the plain logout counter is.
	if len(families) != 3 {
		t.Fatalf("expected 3 metric families, got %d", len(families))
	}
}
