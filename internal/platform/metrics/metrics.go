package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shelter_http_requests_total",
		Help: "Requests HTTP atendidos, por método y status.",
	}, []string{"method", "status"})

	AdoptionsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_adoptions_approved_total",
		Help: "Solicitudes de adopción aprobadas.",
	})

	InterviewsScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_interviews_scheduled_total",
		Help: "Entrevistas agendadas por el scheduler.",
	})

	ShelterCascades = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelter_delete_cascades_total",
		Help: "Cascadas de borrado de shelter ejecutadas.",
	})
)

// Handler expone /metrics en formato prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
