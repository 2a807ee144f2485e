package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/miniblog-app/miniblog/pkg/internal/http/exts"
	"github.com/miniblog-app/miniblog/pkg/internal/services"
)

func listCategories(c *fiber.Ctx) error {
	items, err := services.ListCategory()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return renderView(c, fiber.Map{
		"categories": items,
	})
}

func newCategoryForm(c *fiber.Ctx) error {
	return renderView(c, nil)
}

func createCategory(c *fiber.Ctx) error {
	var data struct {
		Name string `json:"nombre" form:"nombre" validate:"required,max=50"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		exts.PushFlash(c, "danger", err.Error())
		return c.Redirect("/nueva_categoria", fiber.StatusSeeOther)
	}

	if _, err := services.NewCategory(data.Name); err != nil {
		if errors.Is(err, services.ErrDuplicateCategory) {
			exts.PushFlash(c, "danger", "That category already exists.")
			return c.Redirect("/nueva_categoria", fiber.StatusSeeOther)
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	exts.PushFlash(c, "success", "Category created.")
	return c.Redirect("/categorias", fiber.StatusSeeOther)
}

func deleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("categoryId")
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "no such category")
	}

	category, err := services.GetCategoryWithID(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeleteCategory(category); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("unable to delete category: %v", err))
	}

	return c.Redirect("/categorias", fiber.StatusSeeOther)
}
