package vidgraph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Traffic counters, registered on the default Prometheus registry.
// Hosts expose them with promhttp.
var (
	// FramesFiltered counts whole frames dispatched to each filter.
	FramesFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidgraph",
		Name:      "frames_filtered_total",
		Help:      "Frames dispatched to each filter.",
	}, []string{"filter"})

	// SlicesFiltered counts slices dispatched to each filter.
	SlicesFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidgraph",
		Name:      "slices_filtered_total",
		Help:      "Slices dispatched to each filter.",
	}, []string{"filter"})

	// SlicesDropped counts slices a filter consumed without forwarding
	// because they fell outside its output window.
	SlicesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidgraph",
		Name:      "slices_dropped_total",
		Help:      "Slices dropped for not intersecting a filter's output window.",
	}, []string{"filter"})

	// ConfigureErrors counts failed configuration attempts per filter.
	ConfigureErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidgraph",
		Name:      "configure_errors_total",
		Help:      "Configuration attempts rejected by each filter.",
	}, []string{"filter"})
)
