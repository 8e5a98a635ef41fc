package report

import (
	"fmt"
	"math"
	"net"
	"path/filepath"
	"time"

	"NetGlance/internal/engine/topk"
	"NetGlance/internal/render"

	"github.com/google/gopacket/layers"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Layout ratios and panel sizes, in page units. The page itself comes from
// configuration.
const (
	lineSpaceFactor       = 0.25
	histogramPadFactorY   = 1.0
	histogramWidthDivisor = 2.5

	packetHistogramHeight  = 100.0
	addressHistogramHeight = 125.0
	portHistogramHeight    = 100.0

	// bars drawn inside a top-N panel, beyond which entries only appear in
	// the ranked text lines
	panelBarCount = 5
)

// renderPass owns the layout state for exactly one render: the running
// vertical cursor and the padded content bounds. It reads the aggregated
// report state and draws through the surface; it does not outlive the call.
type renderPass struct {
	report  *Report
	surface render.Surface
	bounds  render.Bounds

	// endOfContent is the cursor: the Y offset where the next panel begins.
	// It only ever grows.
	endOfContent float64
}

// Render performs the single layout pass, writing the page artifact into
// outdir under the configured filename. Failure to create the artifact is
// the only error; it aborts before any layout happens.
func (r *Report) Render(outdir string) error {
	path := filepath.Join(outdir, r.cfg.Filename)
	surface, err := render.NewPNGSurface(path, r.cfg.PageWidth, r.cfg.PageHeight)
	if err != nil {
		return err
	}
	r.renderTo(surface)
	return surface.Close()
}

// renderTo runs the layout pass against any surface and returns the final
// cursor position. Layout itself cannot fail.
func (r *Report) renderTo(surface render.Surface) float64 {
	padSize := r.cfg.PageWidth * r.cfg.MarginFactor
	surface.Translate(padSize, padSize)

	pass := &renderPass{
		report:  r,
		surface: surface,
		bounds: render.Bounds{
			Width:  r.cfg.PageWidth - padSize*2,
			Height: r.cfg.PageHeight - padSize*2,
		},
	}

	pass.renderHeader()
	pass.renderTimeHistogram()
	if r.cfg.Diagnostics {
		pass.renderDiagnostics()
	}
	pass.renderAddressPanels()
	pass.renderPortPanels()
	return pass.endOfContent
}

// renderText draws text with its baseline one text-height below the cursor
// and returns the measured extents. The cursor itself is not moved.
func (p *renderPass) renderText(text string, fontSize, xOffset float64) render.Extents {
	ext := p.surface.MeasureText(text, fontSize)
	p.surface.DrawText(text, xOffset, p.endOfContent+ext.Height, fontSize, drawing.ColorBlack)
	return ext
}

// renderTextLine draws one full-width line and advances the cursor by its
// height plus the given line space.
func (p *renderPass) renderTextLine(text string, fontSize, lineSpace float64) {
	ext := p.renderText(text, fontSize, 0)
	p.endOfContent += ext.Height + lineSpace
}

func (p *renderPass) renderHeader() {
	r := p.report
	titleLineSpace := r.cfg.HeaderFontSize * lineSpaceFactor

	p.renderTextLine(TitleVersion, r.cfg.HeaderFontSize, titleLineSpace)
	p.renderTextLine(fmt.Sprintf("Input: %s", r.SourceIdentifier), r.cfg.HeaderFontSize, titleLineSpace)
	p.renderTextLine(fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")),
		r.cfg.HeaderFontSize, titleLineSpace)
	p.endOfContent += titleLineSpace * 4

	p.renderTextLine(fmt.Sprintf("Date range: %s -- %s",
		r.earliest.Format("2006-01-02 15:04:05"), r.latest.Format("2006-01-02 15:04:05")),
		r.cfg.HeaderFontSize, titleLineSpace)
	p.renderTextLine(fmt.Sprintf("Packets analyzed: %s (%sB)",
		CommaNumber(r.packetCount), PrettyByteTotal(r.byteCount)),
		r.cfg.HeaderFontSize, titleLineSpace)

	var transportTotal uint64
	for _, count := range r.transportCounts {
		transportTotal += count
	}
	pct := func(et layers.EthernetType) float64 {
		if transportTotal == 0 {
			return 0
		}
		return float64(r.transportCounts[et]) / float64(transportTotal) * 100.0
	}
	other := 0.0
	if transportTotal > 0 {
		claimed := r.transportCounts[layers.EthernetTypeIPv4] +
			r.transportCounts[layers.EthernetTypeIPv6] +
			r.transportCounts[layers.EthernetTypeARP]
		other = (1.0 - float64(claimed)/float64(transportTotal)) * 100.0
	}
	p.renderTextLine(fmt.Sprintf("Transports: IPv4 %.2f%% IPv6 %.2f%% ARP %.2f%% Other %.2f%%",
		pct(layers.EthernetTypeIPv4), pct(layers.EthernetTypeIPv6), pct(layers.EthernetTypeARP), other),
		r.cfg.HeaderFontSize, titleLineSpace)

	p.endOfContent += titleLineSpace * 4
}

func (p *renderPass) renderTimeHistogram() {
	bounds := render.Bounds{
		X: 0, Y: p.endOfContent,
		Width: p.bounds.Width, Height: packetHistogramHeight,
	}
	p.report.packetHist.Render(p.surface, bounds, p.report.colors, "TCP Packets Received")
	p.endOfContent += bounds.Height * histogramPadFactorY
}

// renderDiagnostics draws the supplementary panels: the temporal series at
// its finest and coarsest maintained spans, bracketing whatever span the
// main chart picked.
func (p *renderPass) renderDiagnostics() {
	hist := p.report.packetHist
	for _, panel := range []struct {
		title string
		scale int
	}{
		{"Packet Timeline (fine)", 0},
		{"Packet Timeline (coarse)", hist.NumScales() - 1},
	} {
		bounds := render.Bounds{
			X: 0, Y: p.endOfContent,
			Width: p.bounds.Width, Height: packetHistogramHeight,
		}
		hist.RenderScale(p.surface, bounds, p.report.colors, panel.title, panel.scale)
		p.endOfContent += bounds.Height * histogramPadFactorY
	}
}

// percentOf is the truncated integer percentage shown on ranked text lines,
// defined as zero when the total is zero.
func percentOf(weight, total uint64) int {
	if total == 0 {
		return 0
	}
	return int(float64(weight) / float64(total) * 100.0)
}

func (p *renderPass) renderAddressPanels() {
	r := p.report
	width := p.bounds.Width / histogramWidthDivisor
	totalDatagrams := r.srcTree.IngestCount()

	leftBounds := render.Bounds{
		X: 0, Y: p.endOfContent,
		Width: width, Height: addressHistogramHeight,
	}
	p.renderAddressPanel(r.srcTree, leftBounds, "Source")

	rightBounds := render.Bounds{
		X: p.bounds.Width - width, Y: p.endOfContent,
		Width: width, Height: addressHistogramHeight,
	}
	p.renderAddressPanel(r.dstTree, rightBounds, "Destination")

	p.endOfContent += math.Max(leftBounds.Height, rightBounds.Height)

	for rank := 0; rank < r.cfg.TopListRows; rank++ {
		var leftExt, rightExt render.Extents

		leftHas := r.srcTree.Size() > rank && r.srcTree.At(rank).Weight > 0
		rightHas := r.dstTree.Size() > rank && r.dstTree.At(rank).Weight > 0

		if leftHas {
			entry := r.srcTree.At(rank)
			line := fmt.Sprintf("%d) %s - %sB (%d%%)", rank+1, net.IP(entry.Addr).String(),
				PrettyByteTotal(entry.Weight), percentOf(entry.Weight, totalDatagrams))
			leftExt = p.renderText(line, r.cfg.TopListFontSize, leftBounds.X)
		}
		if rightHas {
			entry := r.dstTree.At(rank)
			line := fmt.Sprintf("%d) %s - %sB (%d%%)", rank+1, net.IP(entry.Addr).String(),
				PrettyByteTotal(entry.Weight), percentOf(entry.Weight, totalDatagrams))
			rightExt = p.renderText(line, r.cfg.TopListFontSize, rightBounds.X)
		}

		if leftHas || rightHas {
			p.endOfContent += math.Max(leftExt.Height, rightExt.Height) * 1.5
		}
	}

	// The chart advance above already charged a full pad; the text lines
	// consumed part of it, so only the fractional remainder applies here.
	p.endOfContent += math.Max(leftBounds.Height, rightBounds.Height) * (histogramPadFactorY - 1.0)
}

func (p *renderPass) renderPortPanels() {
	r := p.report
	width := p.bounds.Width / histogramWidthDivisor
	totalBytes := r.srcPorts.IngestCount()

	leftBounds := render.Bounds{
		X: 0, Y: p.endOfContent,
		Width: width, Height: portHistogramHeight,
	}
	p.renderPortPanel(r.srcPorts, leftBounds, "Source")

	rightBounds := render.Bounds{
		X: p.bounds.Width - width, Y: p.endOfContent,
		Width: width, Height: portHistogramHeight,
	}
	p.renderPortPanel(r.dstPorts, rightBounds, "Destination")

	p.endOfContent += math.Max(leftBounds.Height, rightBounds.Height)

	for rank := 0; rank < r.cfg.TopListRows; rank++ {
		var leftExt, rightExt render.Extents

		leftHas := r.srcPorts.Size() > rank && r.srcPorts.At(rank).Weight > 0
		rightHas := r.dstPorts.Size() > rank && r.dstPorts.At(rank).Weight > 0

		if leftHas {
			entry := r.srcPorts.At(rank)
			line := fmt.Sprintf("%d) %d - %sB (%d%%)", rank+1, entry.Port,
				PrettyByteTotal(entry.Weight), percentOf(entry.Weight, totalBytes))
			leftExt = p.renderText(line, r.cfg.TopListFontSize, leftBounds.X)
		}
		if rightHas {
			entry := r.dstPorts.At(rank)
			line := fmt.Sprintf("%d) %d - %sB (%d%%)", rank+1, entry.Port,
				PrettyByteTotal(entry.Weight), percentOf(entry.Weight, totalBytes))
			rightExt = p.renderText(line, r.cfg.TopListFontSize, rightBounds.X)
		}

		if leftHas || rightHas {
			p.endOfContent += math.Max(leftExt.Height, rightExt.Height) * 1.5
		}
	}

	p.endOfContent += math.Max(leftBounds.Height, rightBounds.Height) * (histogramPadFactorY - 1.0)
}

// renderAddressPanel draws one top-N address panel: title, then horizontal
// bars scaled to the heaviest entry.
func (p *renderPass) renderAddressPanel(tree *topk.AddressTopN, bounds render.Bounds, side string) {
	title := fmt.Sprintf("No %s Addresses", side)
	if tree.Size() > 0 {
		title = fmt.Sprintf("Top %s Addresses", side)
	}
	barArea := p.renderPanelTitle(title, bounds)

	bars := tree.Size()
	if bars > panelBarCount {
		bars = panelBarCount
	}
	if bars == 0 {
		return
	}
	top := tree.At(0).Weight
	barHeight := barArea.Height / float64(panelBarCount)
	for i := 0; i < bars; i++ {
		entry := tree.At(i)
		w := barArea.Width * float64(entry.Weight) / float64(top)
		p.surface.FillRect(barArea.X, barArea.Y+float64(i)*barHeight, w, barHeight*0.8,
			p.report.colors.Default)
	}
}

// renderPortPanel draws one top-N port panel with bars colored per port.
func (p *renderPass) renderPortPanel(ports *topk.PortTopN, bounds render.Bounds, side string) {
	title := fmt.Sprintf("No %s Ports", side)
	if ports.Size() > 0 {
		title = fmt.Sprintf("Top %s Ports", side)
	}
	barArea := p.renderPanelTitle(title, bounds)

	bars := ports.Size()
	if bars > panelBarCount {
		bars = panelBarCount
	}
	if bars == 0 {
		return
	}
	top := ports.At(0).Weight
	barHeight := barArea.Height / float64(panelBarCount)
	for i := 0; i < bars; i++ {
		entry := ports.At(i)
		w := barArea.Width * float64(entry.Weight) / float64(top)
		p.surface.FillRect(barArea.X, barArea.Y+float64(i)*barHeight, w, barHeight*0.8,
			p.report.colors.ForPort(entry.Port))
	}
}

// renderPanelTitle centers the panel title on its top edge and returns the
// remaining bar area.
func (p *renderPass) renderPanelTitle(title string, bounds render.Bounds) render.Bounds {
	ext := p.surface.MeasureText(title, p.report.cfg.TopListFontSize)
	p.surface.DrawText(title, bounds.X+(bounds.Width-ext.Width)/2, bounds.Y+ext.Height,
		p.report.cfg.TopListFontSize, drawing.ColorBlack)
	return render.Bounds{
		X:      bounds.X,
		Y:      bounds.Y + ext.Height*2,
		Width:  bounds.Width,
		Height: bounds.Height - ext.Height*2,
	}
}
