package httpapi

import (
	"bytes"
	"embed"
	"errors"
	"html/template"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/NateStaxx/FetchDeck/internal/panel"
	"github.com/NateStaxx/FetchDeck/internal/store"
)

// OutcomeHeader tells the page whether a fragment is a view or an error.
const OutcomeHeader = "X-Panel-Outcome"

//go:embed templates/index.html
var templateFS embed.FS

var (
	validate  = validator.New()
	indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *panel.Service, statuses panel.StatusStore) {
	app.Get("/", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		err := indexTmpl.Execute(&buf, struct {
			Panels  []panel.Meta
			Loading template.HTML
		}{
			Panels:  service.Panels(),
			Loading: panel.LoadingHTML,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	app.Get("/panels", func(c *fiber.Ctx) error {
		return c.JSON(service.Panels())
	})

	app.Get("/panels/:name", func(c *fiber.Ctx) error {
		meta, err := lookupPanel(c, service)
		if err != nil {
			return err
		}

		out, err := service.Render(c.UserContext(), meta.Name, inputFrom(c, meta))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to run panel")
		}

		// Error fragments are still 200 so the page swaps them in.
		c.Set(OutcomeHeader, outcomeLabel(out))
		c.Type("html", "utf-8")
		return c.SendString(string(out.Fragment))
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"panels": statuses.Latest(),
		})
	})

	app.Get("/status/:name", func(c *fiber.Ctx) error {
		meta, err := lookupPanel(c, service)
		if err != nil {
			return err
		}

		history, err := statuses.History(meta.Name)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no status recorded for panel")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read status")
		}
		return c.JSON(fiber.Map{
			"panel":   meta.Name,
			"history": history,
		})
	})
}

// panelParams holds the path parameter identifying a panel.
type panelParams struct {
	Name string `validate:"required,alphanum,max=32"`
}

func lookupPanel(c *fiber.Ctx, service *panel.Service) (panel.Meta, error) {
	params := panelParams{Name: c.Params("name")}
	if err := validate.Struct(params); err != nil {
		return panel.Meta{}, fiber.NewError(fiber.StatusBadRequest, "invalid panel name")
	}

	for _, m := range service.Panels() {
		if m.Name == params.Name {
			return m, nil
		}
	}
	return panel.Meta{}, fiber.NewError(fiber.StatusNotFound, "unknown panel")
}

// inputFrom copies only the fields the panel declares from the query string.
func inputFrom(c *fiber.Ctx, meta panel.Meta) panel.Input {
	in := make(panel.Input, len(meta.Fields))
	for _, f := range meta.Fields {
		in[f.Name] = c.Query(f.Name)
	}
	return in
}

func outcomeLabel(out panel.Outcome) string {
	if out.OK() {
		return "ok"
	}
	return "error"
}
