package controller

import "github.com/labstack/echo/v4"

type RecommendationController interface {
	Analyze(c echo.Context) error
	Last(c echo.Context) error
	Export(c echo.Context) error
	Reset(c echo.Context) error
	Sample(c echo.Context) error
	Crops(c echo.Context) error
	Crop(c echo.Context) error
}
