package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/marker-tools-mcp/internal/config"
	"github.com/ironsheep/marker-tools-mcp/internal/imaging"
	"github.com/ironsheep/marker-tools-mcp/internal/server"
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
			fmt.Printf("marker-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "locate":
			os.Exit(runLocate(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("MARKER_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		imaging.EnableDebugLogging()
		log.Printf("Marker MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	settings, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	srv := server.NewWithSettings(settings, Version)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("marker-tools-mcp - MCP server for locating colored marker dots in images")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  marker-mcp [options]                 Run the MCP server on stdin/stdout")
	fmt.Println("  marker-mcp locate [flags] <image>    Print marker centres for one image")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  MARKER_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println("  MARKER_MCP_CONFIG=<file>      JSON settings used as the server defaults")
	fmt.Println()
	fmt.Println("Run 'marker-mcp locate -h' for the locate flags.")
	fmt.Println("The server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
