package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(gatherer prometheus.Gatherer) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(gatherer),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/dashboard/report",
			Method:  http.MethodGet,
			Handler: GetReport(service),
		},
		{
			Path:    "/v1/dashboard/refresh",
			Method:  http.MethodPost,
			Handler: RefreshDashboard(service),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: GetSales(service),
		},
		{
			Path:    "/v1/filters",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
	}
}

func CronJobs(scheduler RefreshScheduler) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/refresh/run",
			Method:  http.MethodPost,
			Handler: RunRefreshSync(scheduler),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(scheduler),
		},
	}
}
