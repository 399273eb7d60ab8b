package handler

import (
	"net/http"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"cryptohub/internal/app/auth"
	"cryptohub/internal/app/location"
	"cryptohub/internal/app/navbar"
	"cryptohub/internal/app/theme"
	"cryptohub/internal/pkg/auth/jwt"
	"cryptohub/internal/pkg/resp"
)

// HandlePage serves the page shell for any path: the navbar rendered for the request path and
// the script that takes it over through the live session.
func HandlePage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := auth.Resolve(r.Context(), deps.Sessions, jwt.GetPayloadFromContext(r))
		router := location.NewRouter(r.URL.Path, nil)

		nb := navbar.New(navbar.Deps{
			Auth:   provider,
			Theme:  theme.NewProvider(theme.FromRequest(r)),
			Router: router,
		}, deps.navbarOptions(r.Context()))

		resp.RespondHTML(w, r, http.StatusOK, pageDocument(deps.Config.BrandName, router.CurrentPath(), nb.View()))
	}
}

func pageDocument(title, path string, v navbar.View) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			g.Attr("data-theme", string(v.Theme)),
			html.Head(
				html.Meta(g.Attr("charset", "utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Text(title)),
			),
			html.Body(
				navbar.Render(v),
				html.Main(
					html.ID("page"),
					html.Data("path", path),
				),
				html.Script(
					html.Src("/static/navbar.js"),
					html.Data("endpoint", "/ws/navbar"),
					g.Attr("defer"),
				),
			),
		),
	)
}
