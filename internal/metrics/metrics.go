package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "photo_gallery"

	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

var (
	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "image_host",
		Name:      "uploads_total",
		Help:      "Upload adapter requests by result.",
	}, []string{"result"})

	RemoteDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "image_host",
		Name:      "deletes_total",
		Help:      "Delete adapter requests by result.",
	}, []string{"result"})

	RecordChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "records",
		Name:      "changes_total",
		Help:      "Change events delivered to the realtime hub by type.",
	}, []string{"type"})

	StreamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "records",
		Name:      "stream_subscribers",
		Help:      "Open realtime record stream connections.",
	})
)
