package handler

import (
	"net/http"
	"strings"

	"github.com/laroza/pos-api/internal/api/handler/router"
	"github.com/laroza/pos-api/internal/usecases/auditing"
	"github.com/laroza/pos-api/internal/usecases/authenticating"
	"github.com/laroza/pos-api/internal/usecases/cataloging"
	"github.com/laroza/pos-api/internal/usecases/ordering"
	"github.com/laroza/pos-api/internal/usecases/reporting"
	"github.com/laroza/pos-api/internal/usecases/returning"
	"github.com/laroza/pos-api/internal/usecases/selling"
	"github.com/laroza/pos-api/pkg/middleware"
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

// Uploads serve as imagens gravadas em urlPrefix
func Uploads(urlPrefix string, files http.Handler) []router.Route {
	if files == nil {
		return nil
	}
	return []router.Route{
		{
			Path:    strings.TrimSuffix(urlPrefix, "/") + "/*filepath",
			Method:  http.MethodGet,
			Handler: files,
		},
	}
}

func Employees(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/api/employees",
			Method:  http.MethodGet,
			Handler: ListEmployees(service),
		},
		{
			Path:        "/api/employees",
			Method:      http.MethodPost,
			Handler:     CreateEmployee(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
		{
			Path:    "/api/session",
			Method:  http.MethodPost,
			Handler: StartSession(service),
		},
		{
			Path:    "/api/session",
			Method:  http.MethodGet,
			Handler: GetSession(),
		},
	}
}

func Products(service cataloging.Cataloger, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:    "/api/products",
			Method:  http.MethodGet,
			Handler: ListProducts(service),
		},
		{
			Path:    "/api/products/:id",
			Method:  http.MethodGet,
			Handler: GetProduct(service),
		},
		{
			Path:    "/api/products",
			Method:  http.MethodPost,
			Handler: CreateProduct(service, maxUploadBytes),
		},
		{
			Path:    "/api/products/:id",
			Method:  http.MethodPut,
			Handler: UpdateProduct(service, maxUploadBytes),
		},
		{
			Path:        "/api/products/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
	}
}

func Sales(service selling.Seller) []router.Route {
	return []router.Route{
		{
			Path:    "/api/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service),
		},
		{
			Path:    "/api/sales/:id",
			Method:  http.MethodGet,
			Handler: GetSale(service),
		},
		{
			Path:    "/api/sales",
			Method:  http.MethodPost,
			Handler: CreateSale(service),
		},
	}
}

func Orders(service ordering.Orderer) []router.Route {
	return []router.Route{
		{
			Path:    "/api/orders",
			Method:  http.MethodGet,
			Handler: ListOrders(service),
		},
		{
			Path:    "/api/orders/:id",
			Method:  http.MethodGet,
			Handler: GetOrder(service),
		},
		{
			Path:    "/api/orders",
			Method:  http.MethodPost,
			Handler: CreateOrder(service),
		},
		{
			Path:    "/api/orders/:id/status",
			Method:  http.MethodPatch,
			Handler: UpdateOrderStatus(service),
		},
		{
			Path:    "/api/orders/:id/status",
			Method:  http.MethodPut,
			Handler: UpdateOrderStatus(service),
		},
	}
}

func Returns(service returning.Returner) []router.Route {
	return []router.Route{
		{
			Path:    "/api/returns",
			Method:  http.MethodGet,
			Handler: ListReturns(service),
		},
		{
			Path:    "/api/returns/:id",
			Method:  http.MethodGet,
			Handler: GetReturn(service),
		},
		{
			Path:    "/api/returns",
			Method:  http.MethodPost,
			Handler: CreateReturn(service),
		},
		{
			Path:        "/api/returns/:id/approve",
			Method:      http.MethodPatch,
			Handler:     ApproveReturn(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
	}
}

func Activities(service auditing.Auditor) []router.Route {
	return []router.Route{
		{
			Path:    "/api/activities",
			Method:  http.MethodGet,
			Handler: ListActivities(service),
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/api/dashboard/stats",
			Method:  http.MethodGet,
			Handler: DashboardStats(service),
		},
		{
			Path:    "/api/reports/:context",
			Method:  http.MethodGet,
			Handler: ReportsByContext(service),
		},
		{
			Path:    "/api/reports/:context/:period/:date",
			Method:  http.MethodGet,
			Handler: SalesReport(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/api/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
		{
			Path:        "/api/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ManagerOnly()},
		},
	}
}
