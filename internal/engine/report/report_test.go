package report

import (
	"net"
	"testing"
	"time"

	"NetGlance/internal/config"
	"NetGlance/internal/model"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() *Report {
	return New(config.Default().Report)
}

func tcp4Record(ts time.Time, src, dst net.IP, sport, dport uint16, payload, caplen int) *model.PacketRecord {
	return &model.PacketRecord{
		Timestamp:  ts,
		CapLen:     caplen,
		EtherType:  layers.EthernetTypeIPv4,
		IPVersion:  4,
		SrcAddr:    src.To4(),
		DstAddr:    dst.To4(),
		PayloadLen: payload,
		IsTCP:      true,
		SrcPort:    sport,
		DstPort:    dport,
	}
}

func TestIngestCountsAndTotals(t *testing.T) {
	r := testReport()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	caplens := []int{60, 1514, 80}
	for i, cl := range caplens {
		r.Ingest(tcp4Record(ts.Add(time.Duration(i)*time.Second),
			net.IPv4(10, 0, 0, 1), net.IPv4(192, 168, 1, 1), 40000, 80, 100, cl))
	}

	assert.Equal(t, uint64(3), r.PacketCount())
	assert.Equal(t, uint64(60+1514+80), r.ByteCount())
	assert.Equal(t, uint64(3), r.TransportCount(layers.EthernetTypeIPv4))
}

func TestIngestEarliestFromFirstPacketOnly(t *testing.T) {
	r := testReport()
	first := time.Date(2026, 3, 1, 12, 0, 10, 0, time.UTC)
	r.Ingest(tcp4Record(first, net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), 1, 2, 10, 60))
	// an out-of-order earlier packet must not rewrite earliest
	r.Ingest(tcp4Record(first.Add(-5*time.Second), net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), 1, 2, 10, 60))

	assert.Equal(t, first, r.Earliest())
}

// A packet that is later by seconds but has a smaller sub-second field is
// chronologically later and must update the latest timestamp. (A naive
// field-by-field AND comparison would miss it.)
func TestIngestLatestUpdatesOnLaterSecondSmallerMicrosecond(t *testing.T) {
	r := testReport()
	t1 := time.Date(2026, 3, 1, 12, 0, 10, 500_000_000, time.UTC)
	t2 := time.Date(2026, 3, 1, 12, 0, 11, 100_000_000, time.UTC)

	r.Ingest(tcp4Record(t1, net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), 1, 2, 10, 60))
	r.Ingest(tcp4Record(t2, net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), 1, 2, 10, 60))

	assert.Equal(t, t2, r.Latest())
}

// The case where both interpretations agree: later in seconds and in
// sub-seconds.
func TestIngestLatestUpdatesOnStrictlyLaterTimestamp(t *testing.T) {
	r := testReport()
	t1 := time.Date(2026, 3, 1, 12, 0, 10, 100_000_000, time.UTC)
	t2 := time.Date(2026, 3, 1, 12, 0, 11, 500_000_000, time.UTC)

	r.Ingest(tcp4Record(t1, net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), 1, 2, 10, 60))
	r.Ingest(tcp4Record(t2, net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), 1, 2, 10, 60))
	// out-of-order packet must not regress latest
	r.Ingest(tcp4Record(t1, net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), 1, 2, 10, 60))

	assert.Equal(t, t2, r.Latest())
}

func TestIngestNonIPStopsAfterTransportCount(t *testing.T) {
	r := testReport()
	r.Ingest(&model.PacketRecord{
		Timestamp: time.Now(),
		CapLen:    42,
		EtherType: layers.EthernetTypeARP,
	})

	assert.Equal(t, uint64(1), r.PacketCount())
	assert.Equal(t, uint64(1), r.TransportCount(layers.EthernetTypeARP))
	assert.Equal(t, 0, r.SourceAddresses().Size())
	assert.Equal(t, 0, r.SourcePorts().Size())
}

func TestIngestNonTCPStopsAfterAddresses(t *testing.T) {
	r := testReport()
	rec := tcp4Record(time.Now(), net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2), 0, 0, 200, 240)
	rec.IsTCP = false
	r.Ingest(rec)

	assert.Equal(t, 1, r.SourceAddresses().Size())
	assert.Equal(t, 1, r.DestAddresses().Size())
	assert.Equal(t, 0, r.SourcePorts().Size())
	assert.Equal(t, 0, r.DestPorts().Size())
}

func TestIngestIPv6Addresses(t *testing.T) {
	r := testReport()
	src := net.ParseIP("2001:db8::1")
	dst := net.ParseIP("2001:db8::2")
	r.Ingest(&model.PacketRecord{
		Timestamp:  time.Now(),
		CapLen:     94,
		EtherType:  layers.EthernetTypeIPv6,
		IPVersion:  6,
		SrcAddr:    src.To16(),
		DstAddr:    dst.To16(),
		PayloadLen: 40,
		IsTCP:      true,
		SrcPort:    443,
		DstPort:    50000,
	})

	require.Equal(t, 1, r.SourceAddresses().Size())
	assert.Equal(t, []byte(src.To16()), r.SourceAddresses().At(0).Addr)
	assert.Equal(t, uint64(40), r.SourceAddresses().At(0).Weight)
}

func TestPortAliasLazyLookup(t *testing.T) {
	aliases := PortAliases{8080: 80}
	assert.Equal(t, uint16(80), aliases.Alias(8080))
	assert.Equal(t, uint16(22), aliases.Alias(22))

	var none PortAliases
	assert.Equal(t, uint16(8080), none.Alias(8080))
}

// All four rankings stay within the configured capacity no matter how many
// distinct addresses and ports the capture contains.
func TestAggregateMemoryBounded(t *testing.T) {
	cfg := config.Default().Report
	cfg.TopKCapacity = 8
	r := New(cfg)

	ts := time.Now()
	for i := 0; i < 5000; i++ {
		src := net.IPv4(10, byte(i>>16), byte(i>>8), byte(i))
		dst := net.IPv4(172, 16, byte(i>>8), byte(i))
		r.Ingest(tcp4Record(ts.Add(time.Duration(i)*time.Millisecond),
			src, dst, uint16(i%60000), uint16((i+7)%60000), 100, 160))
	}

	assert.Equal(t, uint64(5000), r.PacketCount())
	assert.LessOrEqual(t, r.SourceAddresses().Size(), 8)
	assert.LessOrEqual(t, r.DestAddresses().Size(), 8)
	assert.LessOrEqual(t, r.SourcePorts().Size(), 8)
	assert.LessOrEqual(t, r.DestPorts().Size(), 8)
}

// Three IPv4 TCP packets (source ports 80, 80, 443; payloads 100, 200, 300)
// from two distinct sources: the canonical end-to-end aggregation scenario.
func TestEndToEndAggregationScenario(t *testing.T) {
	r := testReport()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	srcA := net.IPv4(10, 0, 0, 1)
	srcB := net.IPv4(10, 0, 0, 2)
	dst := net.IPv4(192, 168, 1, 1)

	caplens := []int{154, 254, 354}
	r.Ingest(tcp4Record(ts, srcA, dst, 80, 40001, 100, caplens[0]))
	r.Ingest(tcp4Record(ts.Add(time.Second), srcA, dst, 80, 40001, 200, caplens[1]))
	r.Ingest(tcp4Record(ts.Add(2*time.Second), srcB, dst, 443, 40002, 300, caplens[2]))

	assert.Equal(t, uint64(3), r.PacketCount())
	assert.Equal(t, uint64(154+254+354), r.ByteCount())

	// both source ports carry 300 bytes; the tie breaks toward the smaller
	// port number
	sp := r.SourcePorts()
	require.Equal(t, 2, sp.Size())
	assert.Equal(t, uint16(80), sp.At(0).Port)
	assert.Equal(t, uint64(300), sp.At(0).Weight)
	assert.Equal(t, uint16(443), sp.At(1).Port)
	assert.Equal(t, uint64(300), sp.At(1).Weight)

	// address panels: sources split 300/300, destination holds all 600
	src := r.SourceAddresses()
	require.Equal(t, 2, src.Size())
	assert.Equal(t, uint64(600), src.IngestCount())
	assert.Equal(t, uint64(300), src.At(0).Weight)
	assert.Equal(t, 33, percentOf(src.At(0).Weight, src.IngestCount()))

	dstTree := r.DestAddresses()
	require.Equal(t, 1, dstTree.Size())
	assert.Equal(t, uint64(600), dstTree.At(0).Weight)
	assert.Equal(t, 100, percentOf(dstTree.At(0).Weight, dstTree.IngestCount()))
}
