package exts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var Session *session.Store

func InitSession() {
	cookie := viper.GetString("security.cookie_name")
	if len(cookie) == 0 {
		cookie = "miniblog_session"
	}

	Session = session.New(session.Config{
		Storage:        NewCacheStorage(),
		Expiration:     viper.GetDuration("security.session_ttl"),
		KeyLookup:      "cookie:" + cookie,
		CookieHTTPOnly: true,
	})
}

// LoadAccount resolves the request's session once, parks it in the
// locals together with the signed-in identity, and persists it after
// the handler chain finishes. Session.Save releases the object back to
// fiber's pool, so it must run exactly once per request and nothing may
// touch the session afterwards: handlers and helpers only mutate the
// session through GetSession and leave saving to this middleware.
func LoadAccount(c *fiber.Ctx) error {
	sess, err := Session.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Locals("session", sess)
	if id, ok := sess.Get("account_id").(uint); ok {
		c.Locals("account_id", id)
		if name, ok := sess.Get("account_name").(string); ok {
			c.Locals("account_name", name)
		}
	}

	err = c.Next()

	// An untouched fresh session stays cookie-less; anything carrying
	// state gets written back, and a session emptied by the handler
	// (sign-out without a follow-up flash) is dropped entirely.
	if len(sess.Keys()) > 0 {
		if saveErr := sess.Save(); saveErr != nil {
			log.Warn().Err(saveErr).Msg("An error occurred when saving session...")
		}
	} else if !sess.Fresh() {
		if destroyErr := sess.Destroy(); destroyErr != nil {
			log.Warn().Err(destroyErr).Msg("An error occurred when destroying session...")
		}
	}

	return err
}

func GetSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals("session").(*session.Session)
	return sess
}

// RequireSession guards mutating routes. The original request is
// dropped, not replayed after signing in.
func RequireSession(c *fiber.Ctx) error {
	if _, ok := c.Locals("account_id").(uint); !ok {
		PushFlash(c, "warning", "You need to sign in to access this page.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	return c.Next()
}
