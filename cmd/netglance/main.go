package main

import (
	"fmt"
	"os"

	"NetGlance/internal/config"
	"NetGlance/internal/engine/report"
	"NetGlance/internal/logging"
	"NetGlance/internal/model"
	"NetGlance/pkg/pcap"

	"github.com/google/uuid"
	goflags "github.com/jessevdk/go-flags"
)

type options struct {
	Config      string `short:"c" long:"config" description:"Path to YAML config file"`
	OutDir      string `short:"o" long:"out" default:"." description:"Directory the report is written into"`
	Diagnostics bool   `long:"diagnostics" description:"Render supplementary diagnostic panels"`

	Args struct {
		Pcap string `positional-arg-name:"capture.pcap" description:"Capture file to summarize"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "netglance: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	parser := goflags.NewParser(&opts, goflags.Default)
	parser.Name = "netglance"
	parser.LongDescription = "Render a one-page visual summary of a packet capture."
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}

	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.LoadConfig(opts.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.Diagnostics {
		cfg.Report.Diagnostics = true
	}

	logger := logging.NewLogger(cfg.Log.Level)
	runID := uuid.NewString()
	logger.Info().Str("run_id", runID).Str("input", opts.Args.Pcap).Msg("starting capture summary")

	rep := report.New(cfg.Report)
	rep.SourceIdentifier = opts.Args.Pcap

	reader, err := pcap.NewReader(opts.Args.Pcap)
	if err != nil {
		return fmt.Errorf("failed to open pcap file: %w", err)
	}
	defer reader.Close()

	records := make(chan *model.PacketRecord, 1024)
	go reader.ReadPackets(records)
	for rec := range records {
		rep.Ingest(rec)
	}

	if err := rep.Render(opts.OutDir); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	logger.Info().
		Str("run_id", runID).
		Uint64("packets", rep.PacketCount()).
		Uint64("bytes", rep.ByteCount()).
		Str("output", opts.OutDir+"/"+cfg.Report.Filename).
		Msg("report written")
	return nil
}
