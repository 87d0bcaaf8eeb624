package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/report"
	"github.com/i474232898/climate-likelihood/internal/store"
)

var validate = validator.New()

const (
	defaultDays  = 2
	defaultYears = 2

	noAnalysisMessage = "no processed data available; run the POST endpoint first"
)

// AnalysisService is the part of climate.Service the HTTP layer depends on.
type AnalysisService interface {
	Analyze(ctx context.Context, req climate.Request) (climate.Analysis, error)
	GetAnalysis(id string) (climate.Analysis, error)
	GetLatest() (climate.Analysis, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service AnalysisService) {
	analyze := func(c *fiber.Ctx) error {
		var body likelihoodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}
		req, err := body.toRequest()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		a, err := service.Analyze(c.UserContext(), req)
		if err != nil {
			return err
		}
		return c.JSON(report.Full(a, body.IncludeRaw))
	}

	app.Post("/", analyze)

	// Latest-analysis downloads.
	app.Get("/full_json/download", func(c *fiber.Ctx) error {
		a, err := latest(service)
		if err != nil {
			return err
		}
		return sendJSONAttachment(c, "full_json.json", report.Full(a, true))
	})
	app.Get("/yearly_data/download", func(c *fiber.Ctx) error {
		a, err := latest(service)
		if err != nil {
			return err
		}
		return sendJSONAttachment(c, "yearly_data.json", report.Yearly(a, true))
	})

	v1 := app.Group("/api/v1")
	v1.Post("/likelihood", analyze)

	v1.Get("/analyses/:id", func(c *fiber.Ctx) error {
		a, err := service.GetAnalysis(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(report.Full(a, c.QueryBool("include_raw", false)))
	})

	v1.Get("/analyses/:id/yearly", func(c *fiber.Ctx) error {
		a, err := service.GetAnalysis(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(report.Yearly(a, c.QueryBool("include_raw", false)))
	})

	v1.Get("/analyses/:id/chart", func(c *fiber.Ctx) error {
		a, err := service.GetAnalysis(c.Params("id"))
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return report.RenderChart(c.Response().BodyWriter(), a)
	})

	v1.Get("/analyses/:id/download", func(c *fiber.Ctx) error {
		a, err := service.GetAnalysis(c.Params("id"))
		if err != nil {
			return err
		}

		switch strings.ToLower(c.Query("format", "json")) {
		case "json":
			return sendJSONAttachment(c, fmt.Sprintf("analysis-%s.json", a.ID), report.Full(a, true))
		case "csv":
			c.Attachment(fmt.Sprintf("analysis-%s.csv", a.ID))
			c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
			return report.WriteCSV(c.Response().BodyWriter(), a.Result.Combined)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "format must be json or csv")
		}
	})
}

// likelihoodRequest is the body accepted by the analysis endpoints.
type likelihoodRequest struct {
	TargetDate string   `json:"target_date" validate:"required,datetime=2006/01/02"`
	Lat        *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon        *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	Days       *int     `json:"days" validate:"omitempty,gte=0,lte=15"`
	Years      *int     `json:"years" validate:"omitempty,gte=1,lte=40"`
	IncludeRaw bool     `json:"include_raw"`
}

func (r likelihoodRequest) toRequest() (climate.Request, error) {
	if err := validate.Struct(r); err != nil {
		return climate.Request{}, err
	}

	target, err := climate.ParseDate(r.TargetDate)
	if err != nil {
		return climate.Request{}, err
	}

	req := climate.Request{
		Point:      climate.Point{Lat: *r.Lat, Lon: *r.Lon},
		TargetDate: target,
		DayRadius:  defaultDays,
		YearCount:  defaultYears,
	}
	if r.Days != nil {
		req.DayRadius = *r.Days
	}
	if r.Years != nil {
		req.YearCount = *r.Years
	}
	return req, nil
}

func latest(service AnalysisService) (climate.Analysis, error) {
	a, err := service.GetLatest()
	if errors.Is(err, store.ErrNotFound) {
		return climate.Analysis{}, fiber.NewError(fiber.StatusBadRequest, noAnalysisMessage)
	}
	return a, err
}

func sendJSONAttachment(c *fiber.Ctx, filename string, v any) error {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(b)
}
