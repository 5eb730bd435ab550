package web

import (
	"phishdetect/features/web/handlers/health"
	"phishdetect/features/web/handlers/predictions"
	"phishdetect/features/web/handlers/problem"

	"github.com/labstack/echo/v4"
)

func (app *Application) ConfigureRoutes() error {
	e := app.Echo

	app.MapHome()
	if err := predictions.MapPredictionRoutes(e, app.services.PredictionService); err != nil {
		return err
	}

	problem.MapRoutes(e)
	health.MapHealth(e, *app.config)

	return nil
}

func (app *Application) MapHome() {
	e := app.Echo

	e.GET("/", func(c echo.Context) error {
		return c.String(200, "Welcome to PHISHDETECT Service")
	})
}
