package main

import (
	"flag"

	"log"
	"math/rand"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Generates a synthetic capture that exercises every report panel: mostly
// TCP over IPv4 biased toward ports 80/443, with some IPv6 and ARP mixed in.
func main() {
	outputFile := flag.String("o", "test.pcap", "Output pcap file path")
	packetCount := flag.Int("c", 1000, "Number of packets to generate")
	flag.Parse()

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	pcapWriter := pcapgo.NewWriter(f)
	if err := pcapWriter.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		log.Fatalf("Failed to write pcap header: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	base := time.Now().Add(-time.Duration(*packetCount) * time.Millisecond)

	log.Printf("Generating %d packets into %s...", *packetCount, *outputFile)

	for i := 0; i < *packetCount; i++ {
		ts := base.Add(time.Duration(i) * time.Millisecond)

		ethLayer := &layers.Ethernet{
			SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
			DstMAC:       net.HardwareAddr{0x00, 0x66, 0x77, 0x88, 0x99, 0xAA},
			EthernetType: layers.EthernetTypeIPv4,
		}

		var toSerialize []gopacket.SerializableLayer

		switch {
		case i%25 == 24:
			// occasional ARP to populate the transport breakdown
			ethLayer.EthernetType = layers.EthernetTypeARP
			arp := &layers.ARP{
				AddrType:          layers.LinkTypeEthernet,
				Protocol:          layers.EthernetTypeIPv4,
				HwAddressSize:     6,
				ProtAddressSize:   4,
				Operation:         layers.ARPRequest,
				SourceHwAddress:   ethLayer.SrcMAC,
				SourceProtAddress: []byte{10, 0, 0, 1},
				DstHwAddress:      make([]byte, 6),
				DstProtAddress:    []byte{10, 0, 0, 2},
			}
			toSerialize = []gopacket.SerializableLayer{ethLayer, arp}
		default:
			srcIP := net.IP{10, 0, byte(rng.Intn(4)), byte(rng.Intn(250) + 1)}
			dstIP := net.IP{192, 168, 1, byte(rng.Intn(250) + 1)}
			dstPort := layers.TCPPort(80)
			if rng.Intn(3) == 0 {
				dstPort = 443
			}
			srcPort := layers.TCPPort(rng.Intn(65535-1024) + 1024)

			ipLayer := &layers.IPv4{
				SrcIP:    srcIP,
				DstIP:    dstIP,
				Version:  4,
				TTL:      64,
				Protocol: layers.IPProtocolTCP,
			}
			tcpLayer := &layers.TCP{
				SrcPort: srcPort,
				DstPort: dstPort,
				Seq:     rng.Uint32(),
				Window:  14600,
			}
			tcpLayer.SetNetworkLayerForChecksum(ipLayer)

			payload := make([]byte, rng.Intn(1400)+50)
			rng.Read(payload)
			toSerialize = []gopacket.SerializableLayer{ethLayer, ipLayer, tcpLayer, gopacket.Payload(payload)}
		}

		buf := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{
			ComputeChecksums: true,
			FixLengths:       true,
		}
		if err := gopacket.SerializeLayers(buf, opts, toSerialize...); err != nil {
			log.Fatalf("Failed to serialize layers: %v", err)
		}

		ci := gopacket.CaptureInfo{
			Timestamp:     ts,
			CaptureLength: len(buf.Bytes()),
			Length:        len(buf.Bytes()),
		}
		if err := pcapWriter.WritePacket(ci, buf.Bytes()); err != nil {
			log.Fatalf("Failed to write packet: %v", err)
		}
	}

	log.Printf("Successfully generated %d packets into %s.", *packetCount, *outputFile)
}
