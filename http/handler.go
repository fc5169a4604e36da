package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docview"
	"github.com/labstack/echo/v4"
)

// DarkModeCookie stores the theme preference.
const DarkModeCookie = "dark_mode"

func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index", s.view(c))
}

func (s *Server) handleTree(c echo.Context) error {
	matches, err := s.search.Tree(c.Request().Context(), s.root)
	if err != nil {
		return s.fail(c, http.StatusInternalServerError, "Could not list documents.", err)
	}
	v := s.view(c)
	v.Results = matches.Paths()
	return c.Render(http.StatusOK, "tree", v)
}

func (s *Server) handleSearchRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleSearch(c echo.Context) error {
	term := c.FormValue("search")
	matches, err := s.search.Search(c.Request().Context(), s.root, term)
	if err != nil {
		return s.fail(c, http.StatusInternalServerError, "Could not search documents.", err)
	}
	v := s.view(c)
	v.Term = term
	v.Results = matches.Paths()
	return c.Render(http.StatusOK, "search", v)
}

func (s *Server) handlePage(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return c.Redirect(http.StatusFound, "/")
	}

	opts := docview.RenderOptions{Theme: docview.ThemeLight}
	if darkMode(c) {
		opts.Theme = docview.ThemeDark
	}

	doc, err := docview.RenderInRoot(c.Request().Context(), s.renderer, s.root, name, opts)
	if err != nil {
		switch docview.ErrorCode(err) {
		case docview.EINVALID, docview.EOUTSIDE:
			return c.Redirect(http.StatusFound, "/")
		case docview.ENOTFOUND:
			return s.fail(c, http.StatusNotFound, "Document not found.", err)
		}
		s.notices.Add(docview.NoticeError, fmt.Sprintf("Could not render %s.", name))
		return s.fail(c, http.StatusInternalServerError, "Could not render the document.", err)
	}
	for _, w := range doc.Warnings {
		s.notices.Add(docview.NoticeWarning, w)
	}

	v := s.view(c)
	v.Document = name
	if head, ok := doc.Fragment(docview.FragmentHead); ok {
		v.Head = template.HTML(head)
	}
	if body, ok := doc.Fragment(docview.FragmentBody); ok {
		v.Body = template.HTML(body)
	}

	var buf bytes.Buffer
	if err := c.Echo().Renderer.Render(&buf, "page", v, c); err != nil {
		return err
	}
	tag := etag(buf.Bytes())
	c.Response().Header().Set("ETag", tag)
	if c.Request().Header.Get("If-None-Match") == tag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleOptions(c echo.Context) error {
	dark := c.FormValue("dark_mode") == "true"
	c.SetCookie(&http.Cookie{
		Name:     DarkModeCookie,
		Value:    strconv.FormatBool(dark),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/")
}

// fail renders the generic failure page. The underlying error is logged,
// never shown.
func (s *Server) fail(c echo.Context, code int, msg string, err error) error {
	s.logger.Error("request error",
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"uri", c.Request().RequestURI,
		"code", docview.ErrorCode(err),
		"err", err,
	)
	v := s.view(c)
	v.Message = msg
	return c.Render(code, "failure", v)
}

func (s *Server) view(c echo.Context) view {
	return view{
		Name:     s.name,
		HomePage: s.homePage,
		DarkMode: darkMode(c),
		Notices:  s.notices.List(),
	}
}

func darkMode(c echo.Context) bool {
	cookie, err := c.Cookie(DarkModeCookie)
	if err != nil {
		return false
	}
	return cookie.Value == "true"
}

// etag returns a strong validator for a response body.
func etag(body []byte) string {
	return fmt.Sprintf("%q", strconv.FormatUint(xxhash.Sum64(body), 16))
}
