// Package report renders a ranked recommendation for people: an HTML results
// fragment for the web form and an XLSX workbook for download.
package report

import (
	"fmt"
	"html/template"
	"io"

	"cropadvisor/entities"
)

var resultsTmpl = template.Must(template.New("results").Parse(`<section class="results" data-testid="results">
  <div class="primary">
    <h3 data-testid="text-primary-crop">{{.Primary.Name}}</h3>
    <span class="badge">Best Match</span>
    <span data-testid="text-confidence">{{.Primary.Confidence}}</span>
    <div data-testid="text-score">{{.Primary.Score}}</div>
    <div data-testid="text-yield">{{.Primary.Yield}}</div>
    <div data-testid="text-season">{{.Primary.Season}}</div>
    <h4>Why {{.Primary.Name}} is Recommended:</h4>
    <p data-testid="text-reasoning">{{.Primary.Reasoning}}</p>
    <div class="tags">{{range $i, $t := .Primary.Tags}}
      <span class="badge" data-testid="tag-primary-{{$i}}">{{$t}}</span>{{end}}
    </div>
  </div>
{{- if .Alternatives}}
  <div class="alternatives">{{range $i, $a := .Alternatives}}
    <div data-testid="card-alternative-{{$i}}">
      <h4 data-testid="text-alt-crop-{{$i}}">{{$a.Name}}</h4>
      <span data-testid="text-alt-score-{{$i}}">{{$a.Score}}</span>
      <p data-testid="text-alt-reasoning-{{$i}}">{{$a.Reasoning}}</p>
      <span class="badge">{{$a.Season}}</span>
      <span class="badge">{{$a.Yield}}</span>
    </div>{{end}}
  </div>
{{- end}}
  <div class="advice">
    <h5>Soil Management</h5>
    <p data-testid="text-soil-advice">{{.Advice.SoilAdvice}}</p>
    <h5>Fertilizer Tips</h5>
    <p data-testid="text-fertilizer-advice">{{.Advice.FertilizerAdvice}}</p>
  </div>
</section>
`))

type resultsView struct {
	Primary      entities.ScoredCrop
	Alternatives []entities.ScoredCrop
	Advice       entities.Advice
}

// RenderHTML writes the results fragment: the primary crop, up to
// maxAlternatives runners-up, and the soil and fertilizer advice.
func RenderHTML(w io.Writer, rec *entities.SavedRecommendation, maxAlternatives int) error {
	if len(rec.Recommendations) == 0 {
		return fmt.Errorf("report: nothing to render")
	}
	return resultsTmpl.Execute(w, resultsView{
		Primary:      rec.Primary(),
		Alternatives: rec.Alternatives(maxAlternatives),
		Advice:       rec.Advice,
	})
}
