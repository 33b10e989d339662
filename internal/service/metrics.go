package service

import (
	"errors"

	"selection-mapper-be/internal/mapper"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(selectionDecodes, unresolvedKeys)
}

var selectionDecodes = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "selection_mapper",
	Subsystem: "note_tags",
	Name:      "decodes_total",
	Help:      "Submitted tag selections by decode result",
}, []string{"result"})

var unresolvedKeys = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "selection_mapper",
	Subsystem: "note_tags",
	Name:      "unresolved_keys_total",
	Help:      "Submitted tag keys that matched no selectable tag",
})

func observeDecode(err error) {
	var trErr *mapper.TransformationError
	var typeErr *mapper.UnexpectedTypeError

	switch {
	case err == nil:
		selectionDecodes.WithLabelValues("ok").Inc()
	case errors.As(err, &trErr):
		selectionDecodes.WithLabelValues("unresolved").Inc()
		unresolvedKeys.Add(float64(len(trErr.Keys)))
	case errors.As(err, &typeErr):
		selectionDecodes.WithLabelValues("invalid").Inc()
	default:
		selectionDecodes.WithLabelValues("error").Inc()
	}
}
