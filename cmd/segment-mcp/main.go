package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/segment-tools-mcp/internal/config"
	"github.com/ironsheep/segment-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "segment-mcp - MCP server for segment-pattern detection")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: segment-mcp [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment variables:")
	fmt.Fprintf(out, "  %s=path    Configuration file (YAML)\n", config.EnvConfig)
	fmt.Fprintf(out, "  %s=debug   Log level (panic..trace)\n", config.EnvLogLevel)
	fmt.Fprintf(out, "  %s=path      Write a window dump on every canvas detection\n", config.EnvDump)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(out, "Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	showVersion := flag.Bool("version", false, "Print version information")
	flag.BoolVar(showVersion, "v", false, "Print version information (shorthand)")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("segment-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(cfg.Level())

	log.WithFields(log.Fields{
		"version":   Version,
		"built":     BuildTime,
		"commit":    GitCommit,
		"threshold": cfg.Detection.Threshold,
		"ink_mode":  cfg.Detection.InkMode,
	}).Debug("segment MCP server starting")

	srv, err := server.New(cfg, log.StandardLogger())
	if err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
