package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramUpdatesReceivedTotal,
		telegramCommandsReceivedTotal,
		telegramPhotoLookupFailuresTotal,
		backendCallFailuresTotal,
	)
}

var (
	telegramUpdatesReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_updates_received_total",
			Help: "Total number of updates received from the Telegram API.",
		},
	)

	telegramCommandsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming commands from users.",
		},
		[]string{"command"},
	)

	telegramPhotoLookupFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_photo_lookup_failures_total",
			Help: "Total number of failed profile photo resolutions.",
		},
	)

	backendCallFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_call_failures_total",
			Help: "Failed outbound calls from the bot to the web API, per operation.",
		},
		[]string{"op"},
	)
)

func IncTelegramUpdate() {
	telegramUpdatesReceivedTotal.Inc()
}

func IncTelegramCommand(command string) {
	telegramCommandsReceivedTotal.WithLabelValues(norm(command)).Inc()
}

func IncPhotoLookupFailure() {
	telegramPhotoLookupFailuresTotal.Inc()
}

func IncBackendCallFailure(op string) {
	backendCallFailuresTotal.WithLabelValues(norm(op)).Inc()
}
