package controller

import "github.com/labstack/echo/v4"

// AuthController manages the anonymous client identity the result cache is keyed by.
type AuthController interface {
	DevLogin(c echo.Context) error
	WhoAmI(c echo.Context) error
}
