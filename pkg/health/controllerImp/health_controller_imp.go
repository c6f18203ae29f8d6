package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cropadvisor/pkg/catalog"
)

var appStart = time.Now()

type HealthCtrl struct {
	db  *gorm.DB
	cat *catalog.Catalog
}

func NewHealthCtrl(db *gorm.DB, cat *catalog.Catalog) *HealthCtrl {
	return &HealthCtrl{db: db, cat: cat}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health reports the cache database and the crop catalog. The cache is
// advisory, so only a missing catalog makes the service unavailable.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	if h.db == nil {
		db = check{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = check{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = check{Err: "ping: " + err.Error()}
	}

	cat := check{OK: h.cat != nil && h.cat.Len() > 0}
	crops := 0
	if cat.OK {
		crops = h.cat.Len()
	} else {
		cat.Err = "catalog is empty"
	}

	status := http.StatusOK
	if !cat.OK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": cat.OK, "degraded": !db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": echo.Map{
			"database": db,
			"catalog":  cat,
		},
		"crops": crops,
		"time":  time.Now().Format(time.RFC3339),
	})
}
