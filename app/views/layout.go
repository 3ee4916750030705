// Package views renders the HTML pages of the site.
package views

import (
	"fmt"
	"net/http"
	"sort"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// DefaultSiteTitle is shown in the navbar and page titles when none is configured.
const DefaultSiteTitle = "Isabela Rocha"

// Page carries what every page needs besides its own content.
type Page struct {
	SiteTitle string
	Title     string
	Social    any
}

func (p Page) siteTitle() string {
	if p.SiteTitle == "" {
		return DefaultSiteTitle
	}
	return p.SiteTitle
}

func (p Page) documentTitle() string {
	if p.Title == "" {
		return p.siteTitle()
	}
	return fmt.Sprintf("%s | %s", p.Title, p.siteTitle())
}

var navLinks = []struct{ href, label string }{
	{"/", "Início"},
	{"/services", "Serviços"},
	{"/resume", "Currículo"},
	{"/blog", "Blog"},
	{"/shop", "Loja"},
	{"/cart", "Carrinho"},
}

func NavbarComponent(p Page) g.Node {
	links := make([]g.Node, 0, len(navLinks))
	for _, l := range navLinks {
		links = append(links, Li(A(Href(l.href), g.Text(l.label))))
	}

	return Nav(Class("nav"),
		Div(Class("brand"), A(Href("/"), g.Text(p.siteTitle()))),
		Button(ID("menuToggle"), Class("menu-toggle"), Type("button"),
			g.Attr("aria-expanded", "false"), g.Attr("aria-controls", "menu"),
			g.Text("Menu"),
		),
		Ul(ID("menu"), Class("menu"), g.Group(links)),
	)
}

// SocialLinks renders a map of network name to URL. Anything else renders nothing.
func SocialLinks(social any) g.Node {
	links, ok := social.(map[string]any)
	if !ok || len(links) == 0 {
		return nil
	}

	names := make([]string, 0, len(links))
	for name := range links {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]g.Node, 0, len(names))
	for _, name := range names {
		url, ok := links[name].(string)
		if !ok || url == "" {
			continue
		}
		items = append(items, Li(A(Href(url), Target("_blank"), Rel("noopener"), g.Text(name))))
	}
	return Ul(Class("social"), g.Group(items))
}

func FooterComponent(p Page) g.Node {
	return Footer(Class("footer"),
		SocialLinks(p.Social),
		P(Small(g.Textf("© %s", p.siteTitle()))),
		P(Small(A(Href("/api/rss.xml"), g.Text("RSS")))),
	)
}

func Layout(p Page, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("pt-br"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("stylesheet"), Href("/static/css/style.css")),
				Link(Rel("alternate"), Type("application/rss+xml"), Href("/api/rss.xml"), Title("RSS")),
				TitleEl(g.Text(p.documentTitle())),
			),
			Body(
				Header(NavbarComponent(p)),
				Main(Class("container"),
					g.Group(children),
				),
				FooterComponent(p),
				Script(Src("/static/js/main.js"), Defer()),
			),
		),
	)
}

// Render writes node as an HTML response with the given status.
func Render(w http.ResponseWriter, status int, node g.Node) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return node.Render(w)
}
