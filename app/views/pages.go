package views

import (
	"fmt"
	"strconv"

	"atelier/app/models"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func postCard(post *models.Post) g.Node {
	return Article(Class("card post"),
		H3(A(Href("/blog/"+post.Slug), g.Text(post.Title))),
		g.If(!post.IsUndated(), P(Class("date"), Small(g.Text(post.PublishedOn())))),
		P(g.Text(post.Summary)),
		tagList(post.Tags),
	)
}

func tagList(tags []string) g.Node {
	if len(tags) == 0 {
		return nil
	}
	items := make([]g.Node, 0, len(tags))
	for _, tag := range tags {
		items = append(items, Li(Class("tag"), g.Text(tag)))
	}
	return Ul(Class("tags"), g.Group(items))
}

func postList(posts []*models.Post) g.Node {
	if len(posts) == 0 {
		return P(g.Text("Nenhum artigo publicado ainda."))
	}
	cards := make([]g.Node, 0, len(posts))
	for _, post := range posts {
		cards = append(cards, postCard(post))
	}
	return Div(Class("posts"), g.Group(cards))
}

func HomePage(p Page, posts []*models.Post) g.Node {
	return Layout(p,
		Section(Class("hero"),
			H1(g.Text(p.siteTitle())),
			P(g.Text("Aulas particulares de Física e Matemática, preparação para o ENEM e marketing educacional.")),
			A(Class("btn"), Href("/services"), g.Text("Conheça os serviços")),
		),
		Section(
			H2(g.Text("Últimos artigos")),
			postList(posts),
			P(A(Href("/blog"), g.Text("Ver todos os artigos"))),
		),
	)
}

func ServicesPage(p Page) g.Node {
	p.Title = "Serviços"
	return Layout(p,
		H1(g.Text("Serviços")),
		Div(Class("services"),
			Article(Class("card"),
				H3(g.Text("Aulas particulares")),
				P(g.Text("Física e Matemática para ensino médio, vestibulares e ENEM, on-line ou presencial.")),
			),
			Article(Class("card"),
				H3(g.Text("Marketing educacional")),
				P(g.Text("Planejamento de conteúdo e redes sociais para escolas e professores.")),
			),
			Article(Class("card"),
				H3(g.Text("Trabalhos acadêmicos")),
				P(g.Text("Orientação na organização, revisão e formatação de trabalhos.")),
			),
		),
		P(A(Class("btn"), Href("/shop"), g.Text("Ver pacotes na loja"))),
	)
}

func ResumePage(p Page) g.Node {
	p.Title = "Currículo"
	return Layout(p,
		H1(g.Text("Currículo")),
		Section(
			H2(g.Text("Experiência")),
			Ul(
				Li(g.Text("Professora de Física e Matemática no ensino médio e cursinhos preparatórios.")),
				Li(g.Text("Produção de conteúdo educacional para redes sociais.")),
			),
		),
		Section(
			H2(g.Text("Formação")),
			Ul(
				Li(g.Text("Licenciatura em Física.")),
			),
		),
	)
}

func BlogPage(p Page, posts []*models.Post) g.Node {
	p.Title = "Blog"
	return Layout(p,
		H1(g.Text("Blog")),
		postList(posts),
	)
}

func PostPage(p Page, post *models.Post) g.Node {
	p.Title = post.Title
	return Layout(p,
		Article(Class("post"),
			H1(g.Text(post.Title)),
			g.If(!post.IsUndated(), P(Class("date"), Small(g.Text(post.PublishedOn())))),
			tagList(post.Tags),
			Div(Class("content"), g.Raw(string(post.HTML))),
		),
		P(A(Href("/blog"), g.Text("← Voltar ao blog"))),
	)
}

// ShopPage lists products. Each entry is expected to be an object with id,
// title, description and price; other shapes are skipped.
func ShopPage(p Page, products any) g.Node {
	p.Title = "Loja"

	list, _ := products.([]any)
	cards := make([]g.Node, 0, len(list))
	for _, v := range list {
		product, ok := v.(map[string]any)
		if !ok {
			continue
		}
		cards = append(cards, productCard(product))
	}

	return Layout(p,
		H1(g.Text("Loja")),
		g.If(len(cards) == 0, P(g.Text("Nenhum produto disponível no momento."))),
		Div(ID("productList"), Class("products"), g.Group(cards)),
		P(A(Class("btn"), Href("/cart"), g.Text("Ir para o carrinho"))),
	)
}

func productCard(product map[string]any) g.Node {
	id := scalarString(product["id"])
	title := scalarString(product["title"])
	price := priceValue(product["price"])

	return Article(Class("card"),
		g.Attr("data-id", id),
		g.Attr("data-title", title),
		g.Attr("data-price", strconv.FormatFloat(price, 'f', -1, 64)),
		H3(g.Text(title)),
		g.If(scalarString(product["description"]) != "", P(g.Text(scalarString(product["description"])))),
		P(Class("price"), Strong(g.Textf("R$ %.2f", price))),
		Button(Class("btn add-to-cart"), Type("button"), g.Text("Adicionar ao carrinho")),
	)
}

func CartPage(p Page) g.Node {
	p.Title = "Carrinho"
	return Layout(p,
		H1(g.Text("Carrinho")),
		Div(ID("cartContainer")),
		P(
			Button(ID("clearCart"), Class("btn outline"), Type("button"), g.Text("Esvaziar carrinho")),
			A(Class("btn"), Href("/checkout"), g.Text("Finalizar pedido")),
		),
	)
}

func CheckoutPage(p Page) g.Node {
	p.Title = "Checkout"
	return Layout(p,
		H1(g.Text("Checkout")),
		Section(
			H2(g.Text("Resumo")),
			Div(ID("checkoutSummary")),
			P(Strong(g.Text("Total: R$ "), Span(ID("checkoutTotal"), g.Text("0,00")))),
		),
		FormEl(ID("checkoutForm"),
			Label(For("name"), g.Text("Nome")),
			Input(ID("name"), Name("name"), Type("text"), Required()),
			Label(For("email"), g.Text("E-mail")),
			Input(ID("email"), Name("email"), Type("email"), Required()),
			Label(For("phone"), g.Text("Telefone")),
			Input(ID("phone"), Name("phone"), Type("tel")),
			Button(Class("btn"), Type("submit"), g.Text("Enviar pedido")),
		),
		P(ID("checkoutMsg"), g.Attr("role", "status")),
	)
}

func NotFoundPage(p Page) g.Node {
	p.Title = "Página não encontrada"
	return Layout(p,
		H1(g.Text("Página não encontrada")),
		P(A(Href("/"), g.Text("Voltar ao início"))),
	)
}

func scalarString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func priceValue(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
