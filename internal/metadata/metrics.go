package metadata

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_registry_operations_total",
			Help: "Number of registry operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	bulkRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metadata_registry_bulk_records_applied_total",
		Help: "Number of records inserted by bulk registrations",
	})

	eventPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metadata_registry_event_publish_failures_total",
		Help: "Number of change events that could not be published",
	})
)

const (
	operationRegister     = "register"
	operationRevise       = "revise"
	operationGet          = "get"
	operationSetTokenURI  = "set_token_uri"
	operationGetTokenURI  = "get_token_uri"
	operationBulkRegister = "bulk_register"
	operationList         = "list"
)

// resultLabel maps an operation error to a low-cardinality metric label
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotOwner):
		return "not_owner"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "already_exists"
	case domain.IsValidationError(err):
		return "invalid"
	default:
		return "error"
	}
}

func observe(operation string, err error) {
	operationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}
