package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/config"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("shape-analyzer %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("shape-analyzer - MCP server that classifies object shapes in images")
			fmt.Println()
			fmt.Println("Usage: shape-analyzer [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  SHAPE_MCP_LOG_LEVEL=debug      Enable debug logging")
			fmt.Println("  SHAPE_MCP_MIN_AREA=300         Default minimum object area (pixels)")
			fmt.Println("  SHAPE_MCP_WORKERS=N            Classification workers (default: CPU count)")
			fmt.Println("  SHAPE_MCP_HISTORY_DB=path      Run history database (default:")
			fmt.Println("                                 ~/.shape-analyzer/history.db, 'off' disables)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()
	if cfg.Debug() {
		log.Printf("Shape Analyzer v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("min_area=%v workers=%d history=%q", cfg.MinArea, cfg.Workers, cfg.HistoryDB)
	}

	server.Version = Version
	if err := run(context.Background(), cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// run serves MCP requests from in until EOF or ctx ends. The history
// database is closed before run returns.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	srv := server.New(cfg)
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Failed to close history: %v", err)
		}
	}()
	return srv.Serve(ctx, in, out)
}
