// Package report implements the one-page capture summary: a streaming
// statistics aggregator fed once per packet, and a deterministic layout pass
// that places header statistics, a packet-rate chart, and paired top-N
// address/port panels onto a fixed-size page.
package report

import (
	"time"

	"NetGlance/internal/config"
	"NetGlance/internal/engine/timehist"
	"NetGlance/internal/engine/topk"
	"NetGlance/internal/model"
	"NetGlance/internal/render"

	"github.com/google/gopacket/layers"
)

// TitleVersion is the first line of the rendered report.
const TitleVersion = "NetGlance 0.1.0"

// PortAliases folds configured port numbers together for charting purposes
// (e.g. 8080 onto 80). Lookup is identity unless an override exists.
type PortAliases map[uint16]uint16

// Alias returns the configured alias for port, or port itself.
func (a PortAliases) Alias(port uint16) uint16 {
	if alias, ok := a[port]; ok {
		return alias
	}
	return port
}

// Report owns the whole-capture running state. Ingest is called once per
// observed packet, in arrival order; Render is called exactly once after
// ingestion completes. Neither is safe for concurrent use.
type Report struct {
	cfg config.ReportConfig

	// SourceIdentifier names the capture input on the report header.
	SourceIdentifier string

	packetCount     uint64
	byteCount       uint64
	earliest        time.Time
	latest          time.Time
	transportCounts map[layers.EthernetType]uint64

	packetHist *timehist.Histogram
	srcTree    *topk.AddressTopN
	dstTree    *topk.AddressTopN
	srcPorts   *topk.PortTopN
	dstPorts   *topk.PortTopN

	aliases PortAliases
	colors  render.PortColors
}

// New creates an empty report for the given configuration.
func New(cfg config.ReportConfig) *Report {
	return &Report{
		cfg:             cfg,
		transportCounts: make(map[layers.EthernetType]uint64),
		packetHist:      timehist.New(),
		srcTree:         topk.NewAddressTopN(cfg.TopKCapacity),
		dstTree:         topk.NewAddressTopN(cfg.TopKCapacity),
		srcPorts:        topk.NewPortTopN(cfg.TopKCapacity),
		dstPorts:        topk.NewPortTopN(cfg.TopKCapacity),
		aliases:         PortAliases(cfg.PortAliases),
		colors:          render.DefaultPortColors(),
	}
}

// Ingest folds one packet into the summary state. Records that are not IP
// stop after transport counting; records that are not TCP over IP stop after
// address aggregation. No record ever causes an error.
func (r *Report) Ingest(rec *model.PacketRecord) {
	if r.earliest.IsZero() {
		r.earliest = rec.Timestamp
	}
	if rec.Timestamp.After(r.latest) {
		r.latest = rec.Timestamp
	}

	r.packetCount++
	r.byteCount += uint64(rec.CapLen)
	r.transportCounts[rec.EtherType]++

	var addrLen int
	switch rec.IPVersion {
	case 4:
		addrLen = 4
	case 6:
		addrLen = 16
	default:
		return
	}
	weight := uint64(rec.PayloadLen)
	r.srcTree.Add(rec.SrcAddr, addrLen, weight)
	r.dstTree.Add(rec.DstAddr, addrLen, weight)

	if !rec.IsTCP {
		return
	}
	r.packetHist.Insert(rec.Timestamp, r.aliases.Alias(rec.SrcPort))
	r.srcPorts.Increment(rec.SrcPort, weight)
	r.dstPorts.Increment(rec.DstPort, weight)
}

// PacketCount returns the number of ingested packets.
func (r *Report) PacketCount() uint64 { return r.packetCount }

// ByteCount returns the sum of captured lengths of ingested packets.
func (r *Report) ByteCount() uint64 { return r.byteCount }

// Earliest returns the timestamp of the first ingested packet.
func (r *Report) Earliest() time.Time { return r.earliest }

// Latest returns the chronologically latest ingested timestamp.
func (r *Report) Latest() time.Time { return r.latest }

// TransportCount returns the number of packets seen with the given ether
// type.
func (r *Report) TransportCount(et layers.EthernetType) uint64 {
	return r.transportCounts[et]
}

// SourcePorts exposes the source-port ranking, for inspection after
// ingestion.
func (r *Report) SourcePorts() *topk.PortTopN { return r.srcPorts }

// DestPorts exposes the destination-port ranking.
func (r *Report) DestPorts() *topk.PortTopN { return r.dstPorts }

// SourceAddresses exposes the source-address ranking.
func (r *Report) SourceAddresses() *topk.AddressTopN { return r.srcTree }

// DestAddresses exposes the destination-address ranking.
func (r *Report) DestAddresses() *topk.AddressTopN { return r.dstTree }
