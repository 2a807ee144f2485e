package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/miniblog-app/miniblog/pkg/internal/http/exts"
	"github.com/miniblog-app/miniblog/pkg/internal/services"
)

func listPosts(c *fiber.Ctx) error {
	items, err := services.ListPost()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return renderView(c, fiber.Map{
		"posts": items,
	})
}

func getPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "no such post")
	}

	item, err := services.GetPost(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return renderView(c, fiber.Map{
		"post": item,
	})
}

// newPostForm only carries the shared context; the selectable
// categories already ride along with every view.
func newPostForm(c *fiber.Ctx) error {
	return renderView(c, nil)
}

func createPost(c *fiber.Ctx) error {
	user, err := services.GetAccountWithID(c.Locals("account_id").(uint))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var data struct {
		Title      string `json:"titulo" form:"titulo" validate:"required,max=200"`
		Content    string `json:"contenido" form:"contenido" validate:"required"`
		Categories []uint `json:"categorias" form:"categorias"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		exts.PushFlash(c, "danger", err.Error())
		return c.Redirect("/crear_post", fiber.StatusSeeOther)
	}

	if _, err := services.NewPost(user, data.Title, data.Content, data.Categories); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	exts.PushFlash(c, "success", "Post created.")
	return c.Redirect("/", fiber.StatusSeeOther)
}
