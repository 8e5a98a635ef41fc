package model

import (
	"time"

	"github.com/google/gopacket/layers"
)

// PacketRecord holds the classification of a single observed packet, as far
// down the stack as decoding got. Non-IP packets carry only the link-layer
// fields; non-TCP packets carry no ports.
type PacketRecord struct {
	Timestamp time.Time
	CapLen    int // bytes captured off the wire
	EtherType layers.EthernetType

	IPVersion  uint8  // 4, 6, or 0 for non-IP
	SrcAddr    []byte // raw address bytes, 4 or 16 depending on IPVersion
	DstAddr    []byte
	PayloadLen int // IP payload length, excluding the IP header

	IsTCP   bool
	SrcPort uint16
	DstPort uint16
}
