package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/miniblog-app/miniblog/pkg/internal/http/exts"
	"github.com/miniblog-app/miniblog/pkg/internal/services"
)

func listAccounts(c *fiber.Ctx) error {
	accounts, err := services.ListAccount()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return renderView(c, fiber.Map{
		"users": accounts,
	})
}

func registerForm(c *fiber.Ctx) error {
	return renderView(c, nil)
}

func register(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"nombre_usuario" form:"nombre_usuario" validate:"required,max=50"`
		Email    string `json:"correo_electronico" form:"correo_electronico" validate:"required,email,max=120"`
		Password string `json:"contrasena" form:"contrasena" validate:"required"`
		Confirm  string `json:"confirmar_contrasena" form:"confirmar_contrasena" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		exts.PushFlash(c, "danger", err.Error())
		return c.Redirect("/registro", fiber.StatusSeeOther)
	}

	if data.Password != data.Confirm {
		exts.PushFlash(c, "danger", "The passwords do not match.")
		return c.Redirect("/registro", fiber.StatusSeeOther)
	}

	if _, err := services.NewAccount(data.Name, data.Email, data.Password); err != nil {
		if errors.Is(err, services.ErrDuplicateIdentity) {
			exts.PushFlash(c, "danger", "The username or email is already registered.")
			return c.Redirect("/registro", fiber.StatusSeeOther)
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Registration never signs the account in by itself.
	exts.PushFlash(c, "success", "Registration completed. You can now sign in.")
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func loginForm(c *fiber.Ctx) error {
	return renderView(c, nil)
}

func login(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"nombre_usuario" form:"nombre_usuario" validate:"required"`
		Password string `json:"contrasena" form:"contrasena" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		exts.PushFlash(c, "danger", err.Error())
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	account, err := services.AuthAccount(data.Name, data.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			exts.PushFlash(c, "danger", "Invalid username or password.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// The session middleware persists this once the request winds down.
	sess := exts.GetSession(c)
	sess.Set("account_id", account.ID)
	sess.Set("account_name", account.Name)

	exts.PushFlash(c, "success", fmt.Sprintf("Welcome back, %s!", account.Name))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// logout clears the whole session. Calling it signed out is harmless.
func logout(c *fiber.Ctx) error {
	if sess := exts.GetSession(c); sess != nil {
		if err := sess.Destroy(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	exts.PushFlash(c, "info", "You have been signed out.")
	return c.Redirect("/", fiber.StatusSeeOther)
}
