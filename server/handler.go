package server

import (
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/briefing"
	"github.com/gaurav-prasanna/newscast/core/prompt"
	"github.com/gaurav-prasanna/newscast/core/render"
	"github.com/labstack/echo/v4"
)

type option struct {
	Value    string
	Selected bool
}

type download struct {
	Label string
	Name  string
	Href  template.URL
}

type resultView struct {
	Date      string
	Summary   template.HTML
	AudioSrc  template.URL
	Downloads []download
	Sources   []core.Source
}

type page struct {
	Topics  []option
	Regions []option
	Warning string
	Error   string
	Result  *resultView
}

type handler struct {
	runner Runner
	logger *log.Logger
}

func (h *handler) index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", newPage(prompt.Defaults()))
}

func (h *handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) generate(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	sel := core.FilterSelection{Regions: params["region"]}
	for _, t := range params["topic"] {
		sel.Topics = append(sel.Topics, core.Topic(t))
	}
	p := newPage(sel)

	res, err := h.runner.Run(c.Request().Context(), sel)
	var verr *briefing.ValidationError
	switch {
	case errors.As(err, &verr):
		p.Warning = "Please choose before generating: " + verr.Error() + "."
		return c.Render(http.StatusUnprocessableEntity, "index.html", p)
	case errors.Is(err, briefing.ErrEmptyGeneration):
		p.Error = "No text output from model."
		return c.Render(http.StatusBadGateway, "index.html", p)
	case err != nil:
		h.logger.Error("briefing failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not generate the briefing").SetInternal(err)
	}

	p.Result = newResultView(res)
	return c.Render(http.StatusOK, "index.html", p)
}

func newPage(sel core.FilterSelection) page {
	var p page
	for _, t := range prompt.Topics() {
		p.Topics = append(p.Topics, option{Value: string(t), Selected: slices.Contains(sel.Topics, t)})
	}
	for _, r := range prompt.Regions() {
		p.Regions = append(p.Regions, option{Value: r, Selected: slices.Contains(sel.Regions, r)})
	}
	return p
}

func newResultView(res *briefing.Result) *resultView {
	v := &resultView{
		Date:    res.Date.Format("2006-01-02"),
		Sources: res.Sources,
	}
	if body, err := render.SummaryHTML(res.Summary.Raw); err == nil {
		v.Summary = body
	} else {
		v.Summary = template.HTML(template.HTMLEscapeString(res.Summary.Clean))
	}
	if a, ok := res.Artifact(render.NewPDFRenderer().Extension()); ok {
		v.Downloads = append(v.Downloads, download{Label: "Download News PDF", Name: a.Name, Href: dataURI(a)})
	}
	if a, ok := res.Artifact(briefing.AudioExtension); ok {
		v.AudioSrc = dataURI(a)
		v.Downloads = append(v.Downloads, download{Label: "Download News Audio", Name: a.Name, Href: v.AudioSrc})
	}
	return v
}

// dataURI embeds the artifact bytes so the page carries its own downloads.
func dataURI(a briefing.Artifact) template.URL {
	return template.URL("data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data))
}
