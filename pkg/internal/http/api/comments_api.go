package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/miniblog-app/miniblog/pkg/internal/http/exts"
	"github.com/miniblog-app/miniblog/pkg/internal/services"
)

func listComments(c *fiber.Ctx) error {
	items, err := services.ListComment()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return renderView(c, fiber.Map{
		"comments": items,
	})
}

// createPostComment serves POST /post/:postId. The post lookup runs
// first so a missing post stays a 404 even for anonymous visitors.
func createPostComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "no such post")
	}

	post, err := services.GetPost(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	uid, ok := c.Locals("account_id").(uint)
	if !ok {
		exts.PushFlash(c, "warning", "You need to sign in to comment.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	user, err := services.GetAccountWithID(uid)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var data struct {
		Content string `json:"texto_comentario" form:"texto_comentario" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		exts.PushFlash(c, "danger", err.Error())
		return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusSeeOther)
	}

	if _, err := services.NewComment(user, post.ID, data.Content); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	exts.PushFlash(c, "success", "Comment added.")
	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusSeeOther)
}

// newCommentForm lists the posts the standalone form can target.
func newCommentForm(c *fiber.Ctx) error {
	items, err := services.ListPost()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return renderView(c, fiber.Map{
		"posts": items,
	})
}

// createComment serves the standalone form. Missing fields re-render
// the form with a local error instead of failing the request.
func createComment(c *fiber.Ctx) error {
	user, err := services.GetAccountWithID(c.Locals("account_id").(uint))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var data struct {
		Content string `json:"texto" form:"texto"`
		PostID  uint   `json:"post_id" form:"post_id"`
	}

	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if len(data.Content) == 0 || data.PostID == 0 {
		items, err := services.ListPost()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return renderView(c, fiber.Map{
			"posts": items,
			"error": "Some data is missing to create the comment.",
		})
	}

	if _, err := services.NewComment(user, data.PostID, data.Content); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	exts.PushFlash(c, "success", "Comment created.")
	return c.Redirect(fmt.Sprintf("/post/%d", data.PostID), fiber.StatusSeeOther)
}
