package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	pkg "github.com/miniblog-app/miniblog/pkg/internal"
	"github.com/miniblog-app/miniblog/pkg/internal/http/api"
	"github.com/miniblog-app/miniblog/pkg/internal/http/exts"
	"github.com/miniblog-app/miniblog/pkg/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "MiniBlog",
		AppName:               "MiniBlog v" + pkg.AppVersion,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if errors.Is(err, gorm.ErrRecordNotFound) {
				code = fiber.StatusNotFound
			}
			var cause *fiber.Error
			if errors.As(err, &cause) {
				code = cause.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when processing request...")
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	exts.InitSession()
	app.Use(exts.LoadAccount)
	app.Use(injectCategories)

	api.MapAPIs(app)

	return &App{app}
}

// injectCategories computes the navigation category list once per
// request; every rendered view picks it up from the locals.
func injectCategories(c *fiber.Ctx) error {
	categories, err := services.ListCategory()
	if err != nil {
		log.Warn().Err(err).Msg("An error occurred when listing categories for navigation...")
	} else {
		c.Locals("nav_categories", categories)
	}

	return c.Next()
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
