package service

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/scoring"
	"thinking_styles_backend/internal/util"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	chartWidth     = 800
	chartRowHeight = 44
	chartHeader    = 150
	chartPadding   = 40
	chartLabelW    = 240
)

// RenderService 把报告渲染成 HTML 或 PNG
type RenderService struct {
	markdown goldmark.Markdown
	font     *truetype.Font
}

func NewRenderService() (*RenderService, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &RenderService{
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
		font:     f,
	}, nil
}

// Render 返回渲染结果及 Content-Type
func (s *RenderService) Render(report *model.Report, format string) ([]byte, string, error) {
	switch format {
	case util.FormatHTML:
		data, err := s.HTML(report)
		return data, util.MimeHTML, err
	case util.FormatPNG:
		data, err := s.PNG(report)
		return data, util.MimePNG, err
	}
	return nil, "", util.ErrUnsupportedFormat
}

func (s *RenderService) HTML(report *model.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := s.markdown.Convert([]byte(reportMarkdown(report)), &body); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Thinking Styles Report</title>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

func reportMarkdown(report *model.Report) string {
	profile := report.OverallProfile.Data()
	mapping := report.EducationMapping.Data()
	insights := report.Insights.Data()

	var b strings.Builder
	b.WriteString("# Thinking Styles Report\n\n")
	fmt.Fprintf(&b, "Generated on %s\n\n", report.GeneratedAt.Format(util.DateFormat))

	b.WriteString("## Profile\n\n")
	fmt.Fprintf(&b, "- **Primary style:** %s\n", StyleTitle(profile.PrimaryStyle))
	fmt.Fprintf(&b, "- **Secondary style:** %s\n\n", StyleTitle(profile.SecondaryStyle))
	writeList(&b, "Strengths", profile.Strengths)
	writeList(&b, "Areas to develop", profile.Weaknesses)
	writeList(&b, "Recommendations", profile.Recommendations)

	if scores := report.Scores.Data(); len(scores) > 0 {
		b.WriteString("## Category Scores\n\n| Category | Mean |\n| --- | --- |\n")
		for _, cs := range scores {
			fmt.Fprintf(&b, "| %s | %.1f |\n", StyleTitle(string(cs.Category)), cs.Mean)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Education Pathways\n\n")
	writeList(&b, "Senior High School tracks", mapping.SHSTracks)
	writeList(&b, "Tertiary programmes", mapping.TertiaryPrograms)
	writeList(&b, "Career suggestions", mapping.CareerSuggestions)
	writeList(&b, "Learning recommendations", mapping.LearningRecommendations)

	b.WriteString("## Insights\n\n")
	writeList(&b, "Learning preferences", insights.LearningPreferences)
	if insights.DecisionMakingStyle != "" {
		fmt.Fprintf(&b, "**Decision-making:** %s\n\n", insights.DecisionMakingStyle)
	}
	if insights.CommunicationStyle != "" {
		fmt.Fprintf(&b, "**Communication:** %s\n\n", insights.CommunicationStyle)
	}
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// StyleTitle reflective_observation -> Reflective Observation
func StyleTitle(style string) string {
	if style == "" {
		return "-"
	}
	words := strings.Split(style, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// PNG 各类别均值的横向柱状图
func (s *RenderService) PNG(report *model.Report) ([]byte, error) {
	scores := report.Scores.Data()
	profile := report.OverallProfile.Data()
	height := chartHeader + chartRowHeight*len(scores) + chartPadding

	dc := gg.NewContext(chartWidth, height)
	dc.SetColor(color.White)
	dc.Clear()

	// truetype face 非并发安全，每次渲染单独创建
	title := truetype.NewFace(s.font, &truetype.Options{Size: 26, Hinting: font.HintingFull})
	defer title.Close()
	body := truetype.NewFace(s.font, &truetype.Options{Size: 15, Hinting: font.HintingFull})
	defer body.Close()

	dc.SetColor(color.RGBA{R: 0x1f, G: 0x2d, B: 0x3d, A: 0xff})
	dc.SetFontFace(title)
	dc.DrawString("Thinking Styles Report", chartPadding, 56)

	dc.SetFontFace(body)
	dc.DrawString(fmt.Sprintf("Primary: %s    Secondary: %s",
		StyleTitle(profile.PrimaryStyle), StyleTitle(profile.SecondaryStyle)), chartPadding, 92)
	dc.DrawString("Generated "+report.GeneratedAt.Format(util.DateFormat), chartPadding, 118)

	barMax := float64(chartWidth - chartLabelW - 2*chartPadding - 40)
	for i, cs := range scores {
		y := float64(chartHeader + i*chartRowHeight)

		dc.SetColor(color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
		dc.DrawStringAnchored(StyleTitle(string(cs.Category)), chartPadding, y+14, 0, 0.5)

		dc.SetColor(color.RGBA{R: 0xe8, G: 0xec, B: 0xf1, A: 0xff})
		dc.DrawRectangle(chartPadding+chartLabelW, y, barMax, 28)
		dc.Fill()

		dc.SetColor(barColor(cs.Mean))
		dc.DrawRectangle(chartPadding+chartLabelW, y, barMax*cs.Mean/scoring.MaxScore, 28)
		dc.Fill()

		dc.SetColor(color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", cs.Mean), chartPadding+chartLabelW+barMax+8, y+14, 0, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func barColor(mean float64) color.Color {
	switch {
	case mean > scoring.StrengthThreshold:
		return color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff}
	case mean < scoring.WeaknessThreshold:
		return color.RGBA{R: 0xd9, G: 0x53, B: 0x4f, A: 0xff}
	}
	return color.RGBA{R: 0xf0, G: 0xad, B: 0x4e, A: 0xff}
}
