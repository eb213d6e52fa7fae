package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymlink_messages_sent_total",
		Help: "Messages accepted by the chat service.",
	}, []string{"kind"}) // private or group

	MessagesRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gymlink_messages_read_total",
		Help: "Messages flipped to read by receipt updates.",
	})

	PinToggles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gymlink_pin_toggles_total",
		Help: "Pin/unpin operations applied.",
	})

	GroupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gymlink_groups_created_total",
		Help: "Group conversations created.",
	})

	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gymlink_websocket_clients",
		Help: "Currently connected websocket clients.",
	})

	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gymlink_store_errors_total",
		Help: "Document store operations that failed.",
	})
)
