package httpapi

import (
	"bytes"
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/school-board/internal/display"
	"github.com/i474232898/school-board/internal/rotation"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return display.IsRegion(display.Region(fl.Field().String()))
	})
	return v
}

// Board is the part of the board service the routes drive.
type Board interface {
	Refresh(ctx context.Context)
	Rotation() rotation.Status
}

// Options tunes the served page.
type Options struct {
	PollInterval   time.Duration
	RefreshTimeout time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, page *display.Page, board Board, opts Options) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = 30 * time.Second
	}

	app.Get("/", func(c *fiber.Ctx) error {
		snap := page.Snapshot()
		view := pageView{
			Regions:      make(map[display.Region]display.RegionState, len(snap.Regions)),
			PollInterval: int(opts.PollInterval / time.Millisecond),
		}
		for _, r := range snap.Regions {
			view.Regions[r.ID] = r
		}

		var buf bytes.Buffer
		if err := pageTmpl.Execute(&buf, view); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render board page")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/regions", func(c *fiber.Ctx) error {
		return c.JSON(page.Snapshot())
	})

	v1.Get("/regions/:region", func(c *fiber.Ctx) error {
		q := regionQuery{Region: c.Params("region")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unknown region: "+q.Region)
		}

		state, err := page.Region(display.Region(q.Region))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read region")
		}
		return c.JSON(state)
	})

	v1.Get("/rotation", func(c *fiber.Ctx) error {
		return c.JSON(board.Rotation())
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), opts.RefreshTimeout)
		defer cancel()

		board.Refresh(ctx)
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// regionQuery holds the path parameter naming a display region.
type regionQuery struct {
	Region string `validate:"required,region"`
}
