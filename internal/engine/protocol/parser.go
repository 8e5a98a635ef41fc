package protocol

import (
	"NetGlance/internal/model"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Classify uses gopacket to decode a packet and extract the fields the report
// aggregates over. It never fails: packets that are not IP, or not TCP, come
// back with the deeper fields left at their zero values so the caller can stop
// aggregating at the right depth.
func Classify(packet gopacket.Packet) *model.PacketRecord {
	rec := &model.PacketRecord{
		Timestamp: time.Now(), // overwritten by capture metadata when present
		CapLen:    len(packet.Data()),
	}

	if meta := packet.Metadata(); meta != nil {
		if !meta.Timestamp.IsZero() {
			rec.Timestamp = meta.Timestamp
		}
		if meta.CaptureLength > 0 {
			rec.CapLen = meta.CaptureLength
		}
	}

	if l := packet.Layer(layers.LayerTypeEthernet); l != nil {
		rec.EtherType = l.(*layers.Ethernet).EthernetType
	}

	if l := packet.Layer(layers.LayerTypeIPv4); l != nil {
		ip := l.(*layers.IPv4)
		rec.IPVersion = 4
		rec.SrcAddr = ip.SrcIP.To4()
		rec.DstAddr = ip.DstIP.To4()
		rec.PayloadLen = int(ip.Length) - int(ip.IHL)*4
	} else if l := packet.Layer(layers.LayerTypeIPv6); l != nil {
		ip := l.(*layers.IPv6)
		rec.IPVersion = 6
		rec.SrcAddr = ip.SrcIP.To16()
		rec.DstAddr = ip.DstIP.To16()
		// the IPv6 length field already excludes the fixed header
		rec.PayloadLen = int(ip.Length)
	} else {
		return rec
	}

	if rec.PayloadLen < 0 {
		rec.PayloadLen = 0
	}

	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		rec.IsTCP = true
		rec.SrcPort = uint16(tcp.SrcPort)
		rec.DstPort = uint16(tcp.DstPort)
	}

	return rec
}
