package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authCtrl "cropadvisor/pkg/auth/controller"
	"cropadvisor/pkg/middleware"
	recCtrl "cropadvisor/pkg/recommendation/controller"
)

func New(
	e *echo.Echo,
	rec recCtrl.RecommendationController,
	auth authCtrl.AuthController,
	healthCtrl interface{ Health(echo.Context) error },
	metrics http.Handler, // nil disables /metrics
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	// outside the client group: devlogin sets the cookie itself
	e.GET("/devlogin", auth.DevLogin)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	api := e.Group("", middleware.ClientID())
	api.GET("/whoami", auth.WhoAmI)

	v1 := api.Group("/api/v1")
	v1.GET("/crops", rec.Crops)
	v1.GET("/crops/:key", rec.Crop)

	r := v1.Group("/recommendations")
	r.POST("", rec.Analyze)
	r.GET("/sample", rec.Sample)
	r.GET("/last", rec.Last)
	r.DELETE("/last", rec.Reset)
	r.GET("/last/export", rec.Export)
	return e
}
