package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"signup-web/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// Raw HTML in descriptions is escaped since WithUnsafe is not set
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Renderer turns a document snapshot into the sign-up page
type Renderer struct {
	tmpl      *template.Template
	hideDelay time.Duration
}

type pageData struct {
	State
	CSRFField      template.HTML
	NoParticipants string
	Refresh        template.HTMLAttr
}

// NewRenderer parses the embedded page template. hideDelay sets how soon a
// page showing a message reloads itself.
func NewRenderer(hideDelay time.Duration) (*Renderer, error) {
	tmpl, err := template.New("index.html").
		Funcs(template.FuncMap{"markdown": renderMarkdown}).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	if hideDelay <= 0 {
		hideDelay = view.DefaultHideDelay
	}
	return &Renderer{tmpl: tmpl, hideDelay: hideDelay}, nil
}

// Render writes the page for state. Nothing is written if the template fails.
func (r *Renderer) Render(w io.Writer, state State, csrfField template.HTML) error {
	data := pageData{
		State:          state,
		CSRFField:      csrfField,
		NoParticipants: view.NoParticipantsText,
	}
	if state.Message.Visible {
		seconds := int((r.hideDelay + time.Second).Round(time.Second) / time.Second)
		data.Refresh = template.HTMLAttr(fmt.Sprintf(`content="%d;url=/view"`, seconds))
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
