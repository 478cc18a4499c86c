package about

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	sessioncontext "codeslabs/frontend/shared/context"
	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
)

type card struct {
	Title string
	Body  string
}

type value struct {
	Name string
	Text string
}

var (
	intro = "Somos una empresa líder en desarrollo de proyectos tecnológicos apoyados con inteligencia artificial, " +
		"especializada en impulsar negocios de cualquier tipo hacia la transformación digital. Combinamos la " +
		"innovación tecnológica más avanzada con estrategias de negocio inteligentes para crear soluciones " +
		"que revolucionan industrias y generan valor real para nuestros clientes."

	pillars = []card{
		{Title: "Misión", Body: "Desarrollar soluciones tecnológicas innovadoras potenciadas por inteligencia artificial que " +
			"transformen la manera en que las empresas operan, optimizan procesos y toman decisiones, " +
			"proporcionando herramientas que impulsen su crecimiento y competitividad en el mercado global."},
		{Title: "Visión", Body: "Ser la empresa de referencia mundial en desarrollo de proyectos con IA, reconocida por nuestra " +
			"capacidad de crear tecnologías disruptivas que redefinan industrias completas y establezcan " +
			"nuevos estándares de innovación y excelencia tecnológica."},
	}

	values = []value{
		{Name: "Innovación", Text: "Constante búsqueda de soluciones revolucionarias"},
		{Name: "Excelencia", Text: "Máxima calidad en cada proyecto"},
		{Name: "Colaboración", Text: "Trabajo en equipo y sinergia"},
		{Name: "Impacto", Text: "Resultados que transforman negocios"},
	}

	extras = []card{
		{Title: "Nuestro Enfoque", Body: "Utilizamos las últimas tecnologías de inteligencia artificial, machine learning y deep learning " +
			"para crear soluciones personalizadas que se adapten perfectamente a las necesidades específicas " +
			"de cada cliente, sin importar su industria o tamaño."},
		{Title: "¿Por Qué Elegirnos?", Body: "Nuestro equipo multidisciplinario combina experiencia técnica avanzada con profundo conocimiento " +
			"de negocio, garantizando soluciones que no solo son tecnológicamente superiores, sino también " +
			"estratégicamente alineadas con los objetivos empresariales."},
	}
)

// AboutPageQueryHandler renders the static company page.
func AboutPageQueryHandler(w http.ResponseWriter, r *http.Request) {
	page := html.Page{
		Title: "Quiénes Somos",
		Nav:   nav.BuildTopNavData(r.URL.Path, sessioncontext.IsAdmin(r.Context())),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.Layout(page, AboutPage()).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render about page", http.StatusInternalServerError)
		return
	}
}

func AboutPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="about"><header class="section-header"><div><h1>Quiénes Somos</h1>`)
		b.WriteString(`<p class="lead">Conoce más sobre CodesLabs y nuestra visión tecnológica</p></div>`)
		b.WriteString(`<a class="btn btn-ghost" href="/">Volver al Dashboard</a></header>`)
		fmt.Fprintf(&b, `<article class="card card-wide"><h2>CodesLabs</h2><p>%s</p></article><div class="grid grid-3">`, html.Esc(intro))
		for _, c := range pillars {
			fmt.Fprintf(&b, `<article class="card"><h2>%s</h2><p>%s</p></article>`, html.Esc(c.Title), html.Esc(c.Body))
		}
		b.WriteString(`<article class="card"><h2>Valores</h2><ul class="values">`)
		for _, v := range values {
			fmt.Fprintf(&b, `<li><strong>%s:</strong> %s</li>`, html.Esc(v.Name), html.Esc(v.Text))
		}
		b.WriteString(`</ul></article></div><div class="grid grid-2">`)
		for _, c := range extras {
			fmt.Fprintf(&b, `<article class="card"><h2>%s</h2><p>%s</p></article>`, html.Esc(c.Title), html.Esc(c.Body))
		}
		b.WriteString(`</div></section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
