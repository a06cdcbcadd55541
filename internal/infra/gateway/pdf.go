package gateway

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub/client"
	"github.com/agencyhub/agencyhub/internal/domain"
)

type rgb struct{ r, g, b int }

func parseHex(s string) (rgb, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, true
}

// palette is the resolved color set of one document.
type palette struct {
	primary   rgb
	secondary rgb
	text      rgb
	muted     rgb
	light     rgb
}

var defaultPalettes = map[domain.PDFTemplate]palette{
	domain.TemplateModernMinimal:         {primary: rgb{37, 99, 235}, secondary: rgb{14, 165, 233}, text: rgb{17, 24, 39}, muted: rgb{107, 114, 128}, light: rgb{243, 244, 246}},
	domain.TemplateBoldImpact:            {primary: rgb{220, 38, 38}, secondary: rgb{17, 24, 39}, text: rgb{17, 24, 39}, muted: rgb{75, 85, 99}, light: rgb{254, 242, 242}},
	domain.TemplateCorporateProfessional: {primary: rgb{30, 58, 138}, secondary: rgb{100, 116, 139}, text: rgb{30, 41, 59}, muted: rgb{100, 116, 139}, light: rgb{241, 245, 249}},
	domain.TemplateCreativeGeometric:     {primary: rgb{124, 58, 237}, secondary: rgb{236, 72, 153}, text: rgb{31, 41, 55}, muted: rgb{107, 114, 128}, light: rgb{245, 243, 255}},
}

func resolvePalette(t domain.PDFTemplate, colors []string) palette {
	p, ok := defaultPalettes[t]
	if !ok {
		p = defaultPalettes[domain.TemplateModernMinimal]
	}
	var parsed []rgb
	for _, c := range colors {
		if v, ok := parseHex(c); ok {
			parsed = append(parsed, v)
		}
	}
	if len(parsed) > 0 {
		p.primary = parsed[0]
	}
	if len(parsed) > 1 {
		p.secondary = parsed[1]
	}
	return p
}

type assetFetcher interface {
	Fetch(ctx context.Context, url string) (client.Asset, error)
}

// PDFRenderer lays out one-pagers and proposals with fpdf. Logos come
// through assets; without one they are skipped.
type PDFRenderer struct {
	assets assetFetcher
}

func NewPDFRenderer(assets assetFetcher) *PDFRenderer {
	return &PDFRenderer{
		assets: assets,
	}
}

type page struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	pal     palette
	width   float64
	height  float64
	margin  float64
	logo    string
	logoImg fpdf.ImageOptions
}

func (p *page) fill(c rgb)  { p.pdf.SetFillColor(c.r, c.g, c.b) }
func (p *page) color(c rgb) { p.pdf.SetTextColor(c.r, c.g, c.b) }
func (p *page) draw(c rgb)  { p.pdf.SetDrawColor(c.r, c.g, c.b) }

func (p *page) text(w, h float64, s string, align string) {
	p.pdf.MultiCell(w, h, p.tr(s), "", align, false)
}

func (p *page) contentWidth() float64 {
	return p.width - 2*p.margin
}

func (r *PDFRenderer) Render(ctx context.Context, doc domain.PDFDocument) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "PDF.Gateway.Render")
	defer span.End()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetTitle(doc.ClientName, true)
	pdf.SetCreator("agencyhub", true)

	w, h := pdf.GetPageSize()
	p := &page{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		pal:    resolvePalette(doc.Template, doc.Palette),
		width:  w,
		height: h,
		margin: 18,
	}

	if doc.LogoURL != "" {
		if err := r.loadLogo(ctx, p, doc.LogoURL); err != nil {
			slog.WarnContext(ctx, "skipping logo",
				slog.String("module", "pdf"),
				slog.String("url", doc.LogoURL),
				slog.String("error", err.Error()),
			)
		}
	}

	pdf.AddPage()
	switch doc.Kind {
	case domain.DocumentOnePager:
		switch doc.Template {
		case domain.TemplateBoldImpact:
			renderBoldImpact(p, doc.ClientName, *doc.OnePager)
		case domain.TemplateCorporateProfessional:
			renderCorporate(p, doc.ClientName, *doc.OnePager)
		case domain.TemplateCreativeGeometric:
			renderGeometric(p, doc.ClientName, *doc.OnePager)
		default:
			renderModernMinimal(p, doc.ClientName, *doc.OnePager)
		}
	case domain.DocumentProposal:
		renderProposal(p, doc.ClientName, *doc.Proposal)
	default:
		return nil, fmt.Errorf("unknown document kind %q", doc.Kind)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to write pdf")
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) loadLogo(ctx context.Context, p *page, url string) error {
	if r.assets == nil {
		return fmt.Errorf("no asset fetcher configured")
	}
	asset, err := r.assets.Fetch(ctx, url)
	if err != nil {
		return err
	}

	var imageType string
	switch strings.ToLower(asset.ContentType) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	case "image/gif":
		imageType = "GIF"
	default:
		return fmt.Errorf("unsupported logo type %q", asset.ContentType)
	}

	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	p.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(asset.Body))
	if p.pdf.Err() {
		err := p.pdf.Error()
		p.pdf.ClearError()
		return err
	}
	p.logo = "logo"
	p.logoImg = opts
	return nil
}

// placeLogo draws the logo with height h at x,y; width follows the aspect ratio.
func (p *page) placeLogo(x, y, h float64) {
	if p.logo == "" {
		return
	}
	p.pdf.ImageOptions(p.logo, x, y, 0, h, false, p.logoImg, 0, "")
}

func (p *page) benefits(items []string, bullet rgb, size float64) {
	for _, b := range items {
		if strings.TrimSpace(b) == "" {
			continue
		}
		y := p.pdf.GetY()
		p.fill(bullet)
		p.pdf.Circle(p.margin+2, y+3.2, 1.3, "F")
		p.pdf.SetX(p.margin + 7)
		p.pdf.SetFont("Helvetica", "", size)
		p.color(p.pal.text)
		p.text(p.contentWidth()-7, 6.5, b, "L")
		p.pdf.Ln(1.5)
	}
}

// stats draws up to three stat boxes side by side. Nothing is drawn for an
// empty list.
func (p *page) stats(stats []domain.Stat, box rgb, value rgb, label rgb) {
	var visible []domain.Stat
	for _, s := range stats {
		if s.Value != "" || s.Label != "" {
			visible = append(visible, s)
		}
	}
	if len(visible) == 0 {
		return
	}
	if len(visible) > 3 {
		visible = visible[:3]
	}

	gap := 4.0
	w := (p.contentWidth() - gap*float64(len(visible)-1)) / float64(len(visible))
	y := p.pdf.GetY()
	for i, s := range visible {
		x := p.margin + float64(i)*(w+gap)
		p.fill(box)
		p.pdf.Rect(x, y, w, 24, "F")
		p.pdf.SetXY(x, y+4)
		p.pdf.SetFont("Helvetica", "B", 18)
		p.color(value)
		p.pdf.CellFormat(w, 9, p.tr(s.Value), "", 2, "C", false, 0, "")
		p.pdf.SetX(x)
		p.pdf.SetFont("Helvetica", "", 9)
		p.color(label)
		p.pdf.CellFormat(w, 6, p.tr(s.Label), "", 0, "C", false, 0, "")
	}
	p.pdf.SetXY(p.margin, y+30)
}

func (p *page) contact(info domain.ContactInfo, c rgb, align string) {
	var parts []string
	for _, v := range []string{info.Email, info.Phone, info.Website} {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return
	}
	p.pdf.SetFont("Helvetica", "", 9)
	p.color(c)
	p.pdf.CellFormat(p.contentWidth(), 6, p.tr(strings.Join(parts, "  |  ")), "", 1, align, false, 0, "")
}

func renderModernMinimal(p *page, clientName string, op domain.OnePager) {
	pdf := p.pdf
	p.placeLogo(p.margin, p.margin, 12)

	pdf.SetXY(p.margin, p.margin+18)
	p.fill(p.pal.primary)
	pdf.Rect(p.margin, pdf.GetY(), 24, 1.2, "F")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 26)
	p.color(p.pal.text)
	p.text(p.contentWidth(), 11, op.Headline, "L")
	if op.Subheadline != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 13)
		p.color(p.pal.muted)
		p.text(p.contentWidth(), 6.5, op.Subheadline, "L")
	}
	pdf.Ln(10)

	p.benefits(op.KeyBenefits, p.pal.primary, 11)
	pdf.Ln(6)
	p.stats(op.Stats, p.pal.light, p.pal.primary, p.pal.muted)

	if op.CallToAction != "" {
		y := pdf.GetY()
		p.draw(p.pal.primary)
		pdf.SetLineWidth(0.6)
		pdf.Rect(p.margin, y, p.contentWidth(), 16, "D")
		pdf.SetXY(p.margin, y+4)
		pdf.SetFont("Helvetica", "B", 13)
		p.color(p.pal.primary)
		pdf.CellFormat(p.contentWidth(), 8, p.tr(op.CallToAction), "", 1, "C", false, 0, "")
		pdf.SetY(y + 22)
	}

	pdf.SetY(p.height - p.margin - 12)
	pdf.SetFont("Helvetica", "B", 10)
	p.color(p.pal.text)
	pdf.CellFormat(p.contentWidth(), 6, p.tr(clientName), "", 1, "L", false, 0, "")
	p.contact(op.ContactInfo, p.pal.muted, "L")
}

func renderBoldImpact(p *page, clientName string, op domain.OnePager) {
	pdf := p.pdf
	p.fill(p.pal.primary)
	pdf.Rect(0, 0, p.width, 80, "F")
	p.placeLogo(p.margin, 10, 12)

	pdf.SetXY(p.margin, 28)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(255, 255, 255)
	p.text(p.contentWidth(), 12, strings.ToUpper(op.Headline), "L")
	if op.Subheadline != "" {
		pdf.SetFont("Helvetica", "", 13)
		p.text(p.contentWidth(), 6.5, op.Subheadline, "L")
	}

	pdf.SetY(92)
	p.benefits(op.KeyBenefits, p.pal.primary, 13)
	pdf.Ln(6)
	p.stats(op.Stats, p.pal.secondary, rgb{255, 255, 255}, rgb{229, 231, 235})

	if op.CallToAction != "" {
		y := pdf.GetY()
		p.fill(p.pal.secondary)
		pdf.Rect(0, y, p.width, 20, "F")
		pdf.SetXY(p.margin, y+5)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(p.contentWidth(), 10, p.tr(strings.ToUpper(op.CallToAction)), "", 1, "C", false, 0, "")
	}

	pdf.SetY(p.height - p.margin - 12)
	pdf.SetFont("Helvetica", "B", 11)
	p.color(p.pal.primary)
	pdf.CellFormat(p.contentWidth(), 6, p.tr(clientName), "", 1, "C", false, 0, "")
	p.contact(op.ContactInfo, p.pal.muted, "C")
}

func renderCorporate(p *page, clientName string, op domain.OnePager) {
	pdf := p.pdf
	p.fill(p.pal.primary)
	pdf.Rect(0, 0, p.width, 22, "F")
	p.placeLogo(p.margin, 5, 12)
	pdf.SetXY(p.margin, 7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(p.contentWidth(), 8, p.tr(clientName), "", 1, "R", false, 0, "")

	pdf.SetY(34)
	pdf.SetFont("Times", "B", 24)
	p.color(p.pal.primary)
	p.text(p.contentWidth(), 10, op.Headline, "L")
	if op.Subheadline != "" {
		pdf.SetFont("Times", "I", 13)
		p.color(p.pal.muted)
		p.text(p.contentWidth(), 6.5, op.Subheadline, "L")
	}
	pdf.Ln(4)
	p.draw(p.pal.secondary)
	pdf.SetLineWidth(0.3)
	pdf.Line(p.margin, pdf.GetY(), p.width-p.margin, pdf.GetY())
	pdf.Ln(6)

	heading := func(s string) {
		pdf.SetFont("Helvetica", "B", 11)
		p.color(p.pal.primary)
		pdf.CellFormat(p.contentWidth(), 7, p.tr(strings.ToUpper(s)), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	if len(op.KeyBenefits) > 0 {
		heading("Key benefits")
		p.benefits(op.KeyBenefits, p.pal.secondary, 11)
		pdf.Ln(4)
	}
	if len(op.Stats) > 0 {
		heading("By the numbers")
		p.stats(op.Stats, p.pal.light, p.pal.primary, p.pal.muted)
	}
	if op.CallToAction != "" {
		heading("Next step")
		pdf.SetFont("Helvetica", "", 12)
		p.color(p.pal.text)
		p.text(p.contentWidth(), 6.5, op.CallToAction, "L")
	}

	p.fill(p.pal.light)
	pdf.Rect(0, p.height-20, p.width, 20, "F")
	pdf.SetY(p.height - 14)
	p.contact(op.ContactInfo, p.pal.primary, "C")
}

func renderGeometric(p *page, clientName string, op domain.OnePager) {
	pdf := p.pdf
	p.fill(p.pal.light)
	pdf.Circle(p.width-10, 10, 55, "F")
	p.fill(p.pal.secondary)
	pdf.Polygon([]fpdf.PointType{
		{X: p.width - 60, Y: 0},
		{X: p.width, Y: 0},
		{X: p.width, Y: 45},
	}, "F")
	p.fill(p.pal.primary)
	pdf.Circle(12, p.height-12, 30, "F")
	pdf.Polygon([]fpdf.PointType{
		{X: p.width - 40, Y: p.height},
		{X: p.width, Y: p.height - 30},
		{X: p.width, Y: p.height},
	}, "F")

	p.placeLogo(p.margin, p.margin, 14)

	pdf.SetXY(p.margin, 48)
	pdf.SetFont("Helvetica", "B", 28)
	p.color(p.pal.primary)
	p.text(p.contentWidth()*0.8, 11, op.Headline, "L")
	if op.Subheadline != "" {
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "I", 13)
		p.color(p.pal.secondary)
		p.text(p.contentWidth()*0.8, 6.5, op.Subheadline, "L")
	}
	pdf.Ln(10)

	p.benefits(op.KeyBenefits, p.pal.secondary, 11)
	pdf.Ln(6)
	p.stats(op.Stats, p.pal.primary, rgb{255, 255, 255}, rgb{237, 233, 254})

	if op.CallToAction != "" {
		y := pdf.GetY()
		p.fill(p.pal.secondary)
		pdf.Rect(p.margin, y, p.contentWidth()*0.7, 14, "F")
		pdf.SetXY(p.margin+6, y+3)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(p.contentWidth()*0.7-12, 8, p.tr(op.CallToAction), "", 1, "L", false, 0, "")
		pdf.SetY(y + 20)
	}

	pdf.SetXY(p.margin+30, p.height-p.margin-12)
	pdf.SetFont("Helvetica", "B", 10)
	p.color(p.pal.text)
	pdf.CellFormat(p.contentWidth()-30, 6, p.tr(clientName), "", 1, "R", false, 0, "")
	p.contact(op.ContactInfo, p.pal.muted, "R")
}

func renderProposal(p *page, clientName string, prop domain.Proposal) {
	pdf := p.pdf
	p.fill(p.pal.primary)
	pdf.Rect(0, 0, p.width, 36, "F")
	p.placeLogo(p.margin, 10, 14)
	pdf.SetXY(p.margin, 12)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(p.contentWidth(), 9, p.tr("Proposal for "+clientName), "", 1, "R", false, 0, "")
	if !prop.GeneratedAt.IsZero() {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(p.contentWidth(), 6, prop.GeneratedAt.Format("January 2, 2006"), "", 1, "R", false, 0, "")
	}
	pdf.SetY(46)

	section := func(title string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		p.color(p.pal.primary)
		pdf.CellFormat(p.contentWidth(), 8, p.tr(title), "", 1, "L", false, 0, "")
		p.draw(p.pal.primary)
		pdf.SetLineWidth(0.4)
		pdf.Line(p.margin, pdf.GetY(), p.margin+30, pdf.GetY())
		pdf.Ln(3)
	}

	if prop.ExecutiveSummary != "" {
		section("Executive summary")
		pdf.SetFont("Helvetica", "", 11)
		p.color(p.pal.text)
		p.text(p.contentWidth(), 6, prop.ExecutiveSummary, "J")
	}
	if len(prop.Scope) > 0 {
		section("Scope")
		p.benefits(prop.Scope, p.pal.secondary, 11)
	}
	if len(prop.Timeline) > 0 {
		section("Timeline")
		for _, m := range prop.Timeline {
			pdf.SetFont("Helvetica", "B", 11)
			p.color(p.pal.text)
			line := m.Phase
			if m.Duration != "" {
				line += " (" + m.Duration + ")"
			}
			pdf.CellFormat(p.contentWidth(), 6, p.tr(line), "", 1, "L", false, 0, "")
			if m.Description != "" {
				pdf.SetFont("Helvetica", "", 10)
				p.color(p.pal.muted)
				p.text(p.contentWidth(), 5.5, m.Description, "L")
			}
			pdf.Ln(2)
		}
	}
	if len(prop.Pricing.Items) > 0 || prop.Pricing.Total != "" {
		section("Investment")
		pdf.SetFont("Helvetica", "", 11)
		for i, item := range prop.Pricing.Items {
			if i%2 == 0 {
				p.fill(p.pal.light)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			p.color(p.pal.text)
			pdf.CellFormat(p.contentWidth()*0.7, 8, p.tr(item.Item), "", 0, "L", true, 0, "")
			pdf.CellFormat(p.contentWidth()*0.3, 8, p.tr(item.Cost), "", 1, "R", true, 0, "")
		}
		if prop.Pricing.Total != "" {
			pdf.SetFont("Helvetica", "B", 12)
			p.color(p.pal.primary)
			pdf.CellFormat(p.contentWidth()*0.7, 9, "Total", "T", 0, "L", false, 0, "")
			pdf.CellFormat(p.contentWidth()*0.3, 9, p.tr(prop.Pricing.Total), "T", 1, "R", false, 0, "")
		}
	}
	if len(prop.Deliverables) > 0 {
		section("Deliverables")
		p.benefits(prop.Deliverables, p.pal.secondary, 11)
	}
	if prop.ScheduledMeetingAt != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		p.color(p.pal.muted)
		pdf.CellFormat(p.contentWidth(), 6, "Review meeting: "+prop.ScheduledMeetingAt.Format("January 2, 2006 15:04 MST"), "", 1, "L", false, 0, "")
	}
}
