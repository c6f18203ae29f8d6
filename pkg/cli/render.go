package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cropadvisor/entities"
	"cropadvisor/pkg/scoring"
)

var (
	leaf  = lipgloss.Color("#16A34A") // green
	soil  = lipgloss.Color("#A16207") // brown
	fg    = lipgloss.Color("#E7E5E4")
	dim   = lipgloss.Color("#78716C")
	faint = lipgloss.Color("#44403C")
	warn  = lipgloss.Color("#F59E0B")
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(leaf).
			Padding(1, 3)

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(leaf)
	cropStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(soil)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	warnStyle     = lipgloss.NewStyle().Foreground(warn)
	tagStyle      = lipgloss.NewStyle().Foreground(leaf)
	separatorLine = lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("─", 60))
)

func renderRecommendation(p entities.ParameterSet, recs []entities.ScoredCrop, advice entities.Advice) string {
	var b strings.Builder
	primary := recs[0]

	card := headerStyle.Render("Recommended crop") + "\n\n" +
		cropStyle.Render(primary.Name) + "\n" +
		dimStyle.Render(primary.Confidence+"  ·  "+primary.Score) + "\n" +
		dimStyle.Render(primary.Yield+"  ·  "+primary.Season)
	b.WriteString(boxStyle.Render(card))
	b.WriteString("\n\n")

	if primary.Fallback {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  No crop scored above %.0f%% suitability; showing a hardy default.", scoring.MinSuitability)))
		b.WriteString("\n\n")
	}

	b.WriteString("  " + primary.Reasoning + "\n")
	if len(primary.Tags) > 0 {
		tags := make([]string, len(primary.Tags))
		for i, t := range primary.Tags {
			tags[i] = tagStyle.Render("#" + strings.ReplaceAll(t, " ", ""))
		}
		b.WriteString("  " + strings.Join(tags, " ") + "\n")
	}

	if alts := alternatives(recs); len(alts) > 0 {
		b.WriteString("\n  " + sectionStyle.Render("Alternatives") + "\n")
		b.WriteString("  " + separatorLine + "\n")
		for i, a := range alts {
			fmt.Fprintf(&b, "  %d. %-16s %7s  %s\n", i+2, a.Name, a.Score, dimStyle.Render(fmt.Sprintf("%.0f%% suitable", a.Suitability)))
		}
	}

	b.WriteString("\n  " + sectionStyle.Render("Soil") + "\n")
	b.WriteString("  " + advice.SoilAdvice + "\n")
	b.WriteString("\n  " + sectionStyle.Render("Fertilizer") + "\n")
	b.WriteString("  " + advice.FertilizerAdvice + "\n")

	b.WriteString("\n  " + separatorLine + "\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("rainfall %gmm · humidity %g%% · temperature %g°C · N %gmg/kg · P %gmg/kg",
		p.Rainfall, p.Humidity, p.Temperature, p.Nitrogen, p.Phosphorus)) + "\n")
	return b.String()
}

func renderCatalog(crops []entities.CropProfile) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %d crops", len(crops))) + "\n")
	b.WriteString("  " + separatorLine + "\n")
	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render(fmt.Sprintf("%-16s %-14s %-12s %-9s %s", "Crop", "Rainfall", "Temp", "Humidity", "Season")))
	for _, c := range crops {
		r := c.Requirements
		fmt.Fprintf(&b, "  %-16s %-14s %-12s %-9s %s\n",
			c.Name,
			fmt.Sprintf("%g-%g mm", r.MinRainfall, r.MaxRainfall),
			fmt.Sprintf("%g-%g °C", r.MinTemp, r.MaxTemp),
			fmt.Sprintf("≥%g%%", r.MinHumidity),
			dimStyle.Render(c.Season),
		)
	}
	return b.String()
}
