package exts

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

// Flash is the transient per-request notification the next rendered
// view shows once. Levels follow the usual success / info / warning /
// danger classes.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// PushFlash only mutates the session; LoadAccount persists it when the
// request winds down.
func PushFlash(c *fiber.Ctx, level, message string) {
	sess := GetSession(c)
	if sess == nil {
		return
	}

	flashes := append(peekFlashes(c), Flash{Level: level, Message: message})
	raw, _ := jsoniter.Marshal(flashes)
	sess.Set("flashes", string(raw))
}

func PopFlashes(c *fiber.Ctx) []Flash {
	sess := GetSession(c)
	if sess == nil {
		return nil
	}

	flashes := peekFlashes(c)
	if len(flashes) > 0 {
		sess.Delete("flashes")
	}

	return flashes
}

func peekFlashes(c *fiber.Ctx) []Flash {
	sess := GetSession(c)
	if sess == nil {
		return nil
	}

	var flashes []Flash
	if raw, ok := sess.Get("flashes").(string); ok {
		_ = jsoniter.Unmarshal([]byte(raw), &flashes)
	}
	return flashes
}
