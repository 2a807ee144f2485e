package http

import (
	"fmt"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/miniblog-app/miniblog/pkg/internal/cache"
	"github.com/miniblog-app/miniblog/pkg/internal/database"
	"github.com/miniblog-app/miniblog/pkg/internal/models"
	"github.com/miniblog-app/miniblog/pkg/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) *App {
	t.Helper()

	require.NoError(t, cache.NewStore())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))
	database.C = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return NewServer()
}

// browser keeps the session cookie across requests the way a real
// client would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(t *testing.T, srv *App) *browser {
	return &browser{t: t, app: srv.app, cookies: map[string]string{}}
}

func (b *browser) do(method, target string, form url.Values) *gohttp.Response {
	b.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for name, value := range b.cookies {
		req.AddCookie(&gohttp.Cookie{Name: name, Value: value})
	}

	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)

	for _, cookie := range resp.Cookies() {
		if cookie.MaxAge < 0 || (!cookie.Expires.IsZero() && cookie.Expires.Before(time.Now())) {
			delete(b.cookies, cookie.Name)
		} else {
			b.cookies[cookie.Name] = cookie.Value
		}
	}
	return resp
}

func TestBlogFlow(t *testing.T) {
	srv := setupServer(t)
	b := newBrowser(t, srv)

	// Register, then sign in.
	resp := b.do(fiber.MethodPost, "/registro", url.Values{
		"nombre_usuario":       {"ana"},
		"correo_electronico":   {"ana@x.com"},
		"contrasena":           {"pw123"},
		"confirmar_contrasena": {"pw123"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = b.do(fiber.MethodPost, "/login", url.Values{
		"nombre_usuario": {"ana"},
		"contrasena":     {"pw123"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// Create a post without categories.
	resp = b.do(fiber.MethodPost, "/crear_post", url.Values{
		"titulo":    {"Hello"},
		"contenido": {"World"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var post models.Post
	require.NoError(t, database.C.Preload("Account").First(&post).Error)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "ana", post.Account.Name)
	assert.Empty(t, post.Categories)

	// It shows up on the home listing.
	resp = b.do(fiber.MethodGet, "/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Hello")

	// Comment through the post view.
	resp = b.do(fiber.MethodPost, fmt.Sprintf("/post/%d", post.ID), url.Values{
		"texto_comentario": {"Nice post!"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/post/%d", post.ID), resp.Header.Get("Location"))

	var comments int64
	require.NoError(t, database.C.Model(&models.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, 1, comments)

	// Sign out; the guarded route now redirects and mutates nothing.
	resp = b.do(fiber.MethodGet, "/logout", nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = b.do(fiber.MethodPost, "/crear_post", url.Values{
		"titulo":    {"Nope"},
		"contenido": {"never lands"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	var posts int64
	require.NoError(t, database.C.Model(&models.Post{}).Count(&posts).Error)
	assert.EqualValues(t, 1, posts)
}

func TestPostViewNotFound(t *testing.T) {
	srv := setupServer(t)
	b := newBrowser(t, srv)

	resp := b.do(fiber.MethodGet, "/post/42", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The 404 wins over the sign-in redirect on the comment branch.
	resp = b.do(fiber.MethodPost, "/post/42", url.Values{"texto_comentario": {"hi"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteCategoryRoute(t *testing.T) {
	srv := setupServer(t)
	b := newBrowser(t, srv)

	category, err := services.NewCategory("golang")
	require.NoError(t, err)

	// No session guard on this route.
	resp := b.do(fiber.MethodPost, fmt.Sprintf("/eliminar_categoria/%d", category.ID), nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/categorias", resp.Header.Get("Location"))

	resp = b.do(fiber.MethodPost, "/eliminar_categoria/9999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	srv := setupServer(t)
	b := newBrowser(t, srv)

	resp := b.do(fiber.MethodPost, "/registro", url.Values{
		"nombre_usuario":       {"ana"},
		"correo_electronico":   {"ana@x.com"},
		"contrasena":           {"pw123"},
		"confirmar_contrasena": {"different"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/registro", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, database.C.Model(&models.Account{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func signIn(t *testing.T, b *browser, name string) {
	t.Helper()

	resp := b.do(fiber.MethodPost, "/registro", url.Values{
		"nombre_usuario":       {name},
		"correo_electronico":   {name + "@example.com"},
		"contrasena":           {"pw123"},
		"confirmar_contrasena": {"pw123"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = b.do(fiber.MethodPost, "/login", url.Values{
		"nombre_usuario": {name},
		"contrasena":     {"pw123"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

// Signing in both binds the identity and queues a welcome flash in the
// same request; the next page must see the two together and show the
// flash exactly once.
func TestLoginEstablishesSession(t *testing.T) {
	srv := setupServer(t)
	b := newBrowser(t, srv)
	signIn(t, b, "ana")

	resp := b.do(fiber.MethodGet, "/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), `"account_name":"ana"`)
	assert.Contains(t, string(page), "Welcome back, ana!")

	resp = b.do(fiber.MethodGet, "/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), `"account_name":"ana"`)
	assert.NotContains(t, string(page), "Welcome back, ana!")
}

func TestStandaloneCommentForm(t *testing.T) {
	srv := setupServer(t)

	// Anonymous visitors bounce to the sign-in form.
	anon := newBrowser(t, srv)
	resp := anon.do(fiber.MethodGet, "/nuevo_comentario", nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	b := newBrowser(t, srv)
	signIn(t, b, "ana")

	user, err := services.AuthAccount("ana", "pw123")
	require.NoError(t, err)
	post, err := services.NewPost(user, "Hello", "World", nil)
	require.NoError(t, err)

	// The form lists the selectable posts.
	resp = b.do(fiber.MethodGet, "/nuevo_comentario", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Hello")

	// A missing field re-renders the form with a local error instead
	// of redirecting or failing hard.
	resp = b.do(fiber.MethodPost, "/nuevo_comentario", url.Values{
		"post_id": {fmt.Sprintf("%d", post.ID)},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Some data is missing")
	assert.Contains(t, string(page), "Hello")

	var count int64
	require.NoError(t, database.C.Model(&models.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// The complete form lands the comment and returns to the post.
	resp = b.do(fiber.MethodPost, "/nuevo_comentario", url.Values{
		"texto":   {"Nice post!"},
		"post_id": {fmt.Sprintf("%d", post.ID)},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/post/%d", post.ID), resp.Header.Get("Location"))

	require.NoError(t, database.C.Model(&models.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
