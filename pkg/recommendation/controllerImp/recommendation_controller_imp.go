package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cropadvisor/entities"
	"cropadvisor/pkg/middleware"
	"cropadvisor/pkg/recommendation/controller"
	"cropadvisor/pkg/recommendation/service"
	"cropadvisor/pkg/report"
)

type recCtrl struct {
	s   service.RecommendationService
	log *zap.Logger
}

func New(s service.RecommendationService, log *zap.Logger) controller.RecommendationController {
	return &recCtrl{s: s, log: log}
}

type resultResp struct {
	Primary         entities.ScoredCrop   `json:"primary"`
	Alternatives    []entities.ScoredCrop `json:"alternatives"`
	Recommendations []entities.ScoredCrop `json:"recommendations"`
	Advice          entities.Advice       `json:"advice"`
	Params          entities.ParameterSet `json:"params"`
	Timestamp       string                `json:"timestamp"`
}

func toResp(rec *entities.SavedRecommendation) resultResp {
	alts := rec.Alternatives(service.MaxAlternatives)
	if alts == nil {
		alts = []entities.ScoredCrop{}
	}
	return resultResp{
		Primary:         rec.Primary(),
		Alternatives:    alts,
		Recommendations: rec.Recommendations,
		Advice:          rec.Advice,
		Params:          rec.Params,
		Timestamp:       rec.SavedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// Analyze ranks the posted reading. Missing fields count as zero.
// ?format=html returns the rendered results fragment instead of JSON.
func (h *recCtrl) Analyze(c echo.Context) error {
	var in entities.ParameterSet
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	rec, err := h.s.Analyze(c.Request().Context(), middleware.Client(c), in)
	var fe entities.FieldErrors
	switch {
	case errors.As(err, &fe):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": fe})
	case errors.Is(err, service.ErrNoSuitableCrops):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case err != nil:
		h.log.Error("analyze", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if c.QueryParam("format") == "html" {
		var buf bytes.Buffer
		if err := report.RenderHTML(&buf, rec, service.MaxAlternatives); err != nil {
			h.log.Error("render results", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.HTMLBlob(http.StatusCreated, buf.Bytes())
	}
	return c.JSON(http.StatusCreated, toResp(rec))
}

func (h *recCtrl) last(c echo.Context) (*entities.SavedRecommendation, error) {
	rec, err := h.s.Last(c.Request().Context(), middleware.Client(c))
	if errors.Is(err, service.ErrNoRecent) {
		return nil, c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	if err != nil {
		h.log.Error("load last recommendation", zap.Error(err))
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return rec, nil
}

func (h *recCtrl) Last(c echo.Context) error {
	rec, err := h.last(c)
	if rec == nil {
		return err
	}
	return c.JSON(http.StatusOK, toResp(rec))
}

func (h *recCtrl) Export(c echo.Context) error {
	rec, err := h.last(c)
	if rec == nil {
		return err
	}
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, rec); err != nil {
		h.log.Error("export xlsx", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	name := fmt.Sprintf("crop-recommendation-%s.xlsx", rec.SavedAt.UTC().Format("20060102-1504"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *recCtrl) Reset(c echo.Context) error {
	if err := h.s.Reset(c.Request().Context(), middleware.Client(c)); err != nil {
		h.log.Error("reset", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *recCtrl) Sample(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.Sample())
}

func (h *recCtrl) Crops(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.Crops())
}

func (h *recCtrl) Crop(c echo.Context) error {
	crop, err := h.s.Crop(c.Param("key"))
	if errors.Is(err, service.ErrUnknownCrop) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, crop)
}
