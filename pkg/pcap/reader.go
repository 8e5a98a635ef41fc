package pcap

import (
	"NetGlance/internal/engine/protocol"
	"NetGlance/internal/model"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// Reader reads packets from a pcap file.
type Reader struct {
	handle *pcap.Handle
}

// NewReader creates a new pcap reader for the given file path.
func NewReader(filePath string) (*Reader, error) {
	handle, err := pcap.OpenOffline(filePath)
	if err != nil {
		return nil, err
	}
	return &Reader{handle: handle}, nil
}

// Close closes the pcap handle.
func (r *Reader) Close() {
	r.handle.Close()
}

// ReadPackets classifies every packet in the file and sends the records to
// out, closing it when the file is exhausted. Classification never drops a
// packet; undecodable layers simply leave the deeper record fields empty.
func (r *Reader) ReadPackets(out chan<- *model.PacketRecord) {
	defer close(out)
	packetSource := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	for packet := range packetSource.Packets() {
		out <- protocol.Classify(packet)
	}
}
