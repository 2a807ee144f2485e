package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/miniblog-app/miniblog/pkg/internal/http/exts"
)

func MapAPIs(app *fiber.App) {
	app.Get("/", listPosts)

	app.Get("/crear_post", exts.RequireSession, newPostForm)
	app.Post("/crear_post", exts.RequireSession, createPost)

	// The post view checks the session itself: a missing post must 404
	// before any sign-in redirect.
	app.Get("/post/:postId", getPost)
	app.Post("/post/:postId", createPostComment)

	app.Get("/usuarios", listAccounts)
	app.Get("/comentarios", listComments)
	app.Get("/categorias", listCategories)

	app.Get("/nuevo_comentario", exts.RequireSession, newCommentForm)
	app.Post("/nuevo_comentario", exts.RequireSession, createComment)

	app.Get("/nueva_categoria", exts.RequireSession, newCategoryForm)
	app.Post("/nueva_categoria", exts.RequireSession, createCategory)
	app.Post("/eliminar_categoria/:categoryId", deleteCategory)

	app.Get("/registro", registerForm)
	app.Post("/registro", register)
	app.Get("/login", loginForm)
	app.Post("/login", login)
	app.Get("/logout", logout)
}

// renderView hands the template layer its plain data, plus the shared
// context every page gets: the navigation categories, the signed-in
// identity and the pending flash messages.
func renderView(c *fiber.Ctx, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	data["categories"] = c.Locals("nav_categories")
	data["flashes"] = exts.PopFlashes(c)
	if id, ok := c.Locals("account_id").(uint); ok {
		data["session"] = fiber.Map{
			"account_id":   id,
			"account_name": c.Locals("account_name"),
		}
	}

	return c.JSON(data)
}
