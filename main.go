// Package main provides a command-line tool that exports wired clients from a
// Meraki network and prepares a migration CSV for import into Nile segments.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/austinhawthorne/migrate-meraki2nile/pkg/filters"
	"github.com/austinhawthorne/migrate-meraki2nile/pkg/logger"
	"github.com/austinhawthorne/migrate-meraki2nile/pkg/meraki"
	"github.com/austinhawthorne/migrate-meraki2nile/pkg/output"
	"github.com/austinhawthorne/migrate-meraki2nile/pkg/segments"

	"github.com/joho/godotenv"
)

// Config holds all configuration options from environment variables and
// command-line flags.
type Config struct {
	APIKey    string // Meraki Dashboard API key
	OrgID     string // Meraki organization ID
	NetworkID string // Meraki network ID to export
	Output    string // Output CSV file path
	Timespan  int    // Lookback window in seconds
	BaseURL   string // Meraki API base URL
	LogFile   string // Path to log file
	LogLevel  string // Log level: DEBUG, INFO, WARNING, ERROR
	Verbose   bool   // Enable verbose diagnostics
}

// Version information injected at build time via ldflags.
// Build with: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=<git-sha> -X main.BuildTime=<timestamp>"
const (
	RepositoryURL = "https://github.com/austinhawthorne/migrate-meraki2nile"
)

var (
	Version   = "dev"     // Version set at build time
	Commit    = "unknown" // Git commit SHA set at build time
	BuildTime = "unknown" // Build timestamp set at build time
)

func main() {
	_ = godotenv.Load()

	apiKeyFlag := flag.String("api-key", "", "Meraki Dashboard API key")
	orgFlag := flag.String("org-id", "", "Meraki organization ID")
	networkFlag := flag.String("network-id", "", "Meraki network ID")
	outputFlag := flag.String("output", "migration_clients.csv", "Output CSV file")
	timespanFlag := flag.Int("timespan", 86400, "History window in seconds")
	baseURLFlag := flag.String("base-url", "", "Meraki API base URL")
	logFileFlag := flag.String("log-file", "", "Log file path")
	logLevelFlag := flag.String("log-level", "", "Log level: DEBUG, INFO, WARNING, ERROR")
	verboseFlag := flag.Bool("verbose", false, "Show retrieval progress")
	versionFlag := flag.Bool("version", false, "Show version and exit")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.Usage = func() {
		printUsage(os.Stdout)
	}
	flag.Parse()

	cfg := Config{
		APIKey:    strings.TrimSpace(firstNonEmpty(*apiKeyFlag, os.Getenv("MERAKI_API_KEY"))),
		OrgID:     strings.TrimSpace(firstNonEmpty(*orgFlag, os.Getenv("MERAKI_ORG_ID"))),
		NetworkID: strings.TrimSpace(firstNonEmpty(*networkFlag, os.Getenv("MERAKI_NETWORK_ID"))),
		Output:    strings.TrimSpace(*outputFlag),
		Timespan:  *timespanFlag,
		BaseURL:   strings.TrimSpace(firstNonEmpty(*baseURLFlag, os.Getenv("MERAKI_BASE_URL"), meraki.DefaultBaseURL)),
		LogFile:   strings.TrimSpace(firstNonEmpty(*logFileFlag, os.Getenv("LOG_FILE"))),
		LogLevel:  strings.TrimSpace(firstNonEmpty(*logLevelFlag, os.Getenv("LOG_LEVEL"), "INFO")),
		Verbose:   *verboseFlag,
	}

	if *helpFlag {
		printUsage(os.Stdout)
		return
	}

	if *versionFlag {
		printVersion(os.Stdout)
		return
	}

	log := logger.New(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))

	if cfg.APIKey == "" {
		exitWithError(log, "--api-key (or MERAKI_API_KEY) is required")
	}
	if cfg.OrgID == "" {
		exitWithError(log, "--org-id (or MERAKI_ORG_ID) is required")
	}
	if cfg.NetworkID == "" {
		exitWithError(log, "--network-id (or MERAKI_NETWORK_ID) is required")
	}
	if cfg.Output == "" {
		cfg.Output = "migration_clients.csv"
	}

	client := meraki.NewClient(cfg.APIKey, cfg.BaseURL, 0)
	ctx := context.Background()

	// Verify the network belongs to the organization before doing any work.
	networks, err := client.GetOrganizationNetworks(ctx, cfg.OrgID)
	if err != nil {
		exitWithError(log, err.Error())
	}
	if !networkInOrganization(cfg.NetworkID, networks) {
		exitWithError(log, fmt.Sprintf("Error: Network %s not found in organization %s", cfg.NetworkID, cfg.OrgID))
	}

	fmt.Println("Fetching all clients...")
	var onPage func(int)
	if cfg.Verbose {
		onPage = func(count int) {
			log.Infof("Fetched page of %d clients", count)
		}
	}
	allClients, err := client.GetNetworkClients(ctx, cfg.NetworkID, cfg.Timespan, onPage)
	if err != nil {
		exitWithError(log, err.Error())
	}
	fmt.Printf("Total clients retrieved: %d\n", len(allClients))

	wired := filters.Wired(allClients)
	vlans := filters.DistinctVLANs(wired)
	if cfg.Verbose {
		log.Infof("Wired clients: %d, distinct VLANs: %d", len(wired), len(vlans))
		for _, c := range wired {
			log.Debugf("Wired client mac=%s switchport=%s ip=%s lastSeen=%s", c.MAC, c.Switchport, c.IP, c.LastSeen)
		}
	}

	fmt.Println("Discovered VLANs:")
	vlanToSegment, err := segments.Collect(vlans, segments.ConsolePrompter(os.Stdin, os.Stdout))
	if err != nil {
		exitWithError(log, err.Error())
	}

	fmt.Println("Writing migration CSV...")
	f, err := os.Create(cfg.Output)
	if err != nil {
		exitWithError(log, err.Error())
	}
	rows, err := output.WriteMigrationCSV(f, wired, vlanToSegment)
	if err != nil {
		_ = f.Close()
		exitWithError(log, err.Error())
	}
	if err := f.Close(); err != nil {
		exitWithError(log, err.Error())
	}
	if cfg.Verbose {
		log.Infof("Wrote %d migration rows", rows)
	}
	fmt.Printf("Done - migration CSV exported to %s\n", cfg.Output)
}

// firstNonEmpty returns the first non-empty string from the provided values.
// Returns empty string if all values are empty or contain only whitespace.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// exitWithError logs an error message and exits the program with status code 1.
// If log is nil, the error is written to stderr instead.
func exitWithError(log *logger.Logger, msg string) {
	if log != nil {
		log.Errorf(msg)
	} else {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	}
	os.Exit(1)
}

// networkInOrganization reports whether the network ID appears in the
// organization's network list.
func networkInOrganization(networkID string, networks []meraki.Network) bool {
	for _, n := range networks {
		if n.ID == networkID {
			return true
		}
	}
	return false
}

// printUsage writes help text to the specified file.
func printUsage(w *os.File) {
	fmt.Fprintln(w, "migrate-meraki2nile - Export wired Meraki clients to a Nile migration CSV")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  migrate-meraki2nile --api-key <key> --org-id <org> --network-id <net> [--output file.csv] [--timespan 86400]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --api-key <key>       Meraki Dashboard API key (required)")
	fmt.Fprintln(w, "  --org-id <id>         Meraki organization ID (required)")
	fmt.Fprintln(w, "  --network-id <id>     Meraki network ID to export (required)")
	fmt.Fprintln(w, "  --output <file>       Output CSV file (default migration_clients.csv)")
	fmt.Fprintln(w, "  --timespan <seconds>  History window in seconds (default 86400)")
	fmt.Fprintln(w, "  --base-url <url>      API base URL (default https://api.meraki.com/api/v1)")
	fmt.Fprintln(w, "  --log-file <file>     Log file path")
	fmt.Fprintln(w, "  --log-level <level>   DEBUG | INFO | WARNING | ERROR (default INFO)")
	fmt.Fprintln(w, "  --verbose             Show retrieval progress")
	fmt.Fprintln(w, "  --version             Show version and exit")
	fmt.Fprintln(w, "  --help                Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MERAKI_API_KEY     Meraki Dashboard API key")
	fmt.Fprintln(w, "  MERAKI_ORG_ID      Default organization ID")
	fmt.Fprintln(w, "  MERAKI_NETWORK_ID  Default network ID")
	fmt.Fprintln(w, "  MERAKI_BASE_URL    API base URL")
	fmt.Fprintln(w, "  LOG_FILE           Log file path")
	fmt.Fprintln(w, "  LOG_LEVEL          DEBUG | INFO | WARNING | ERROR")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  migrate-meraki2nile --api-key $MERAKI_API_KEY --org-id 123456 --network-id L_987654 --output clients.csv")
	fmt.Fprintln(w, "  migrate-meraki2nile --org-id 123456 --network-id L_987654 --timespan 604800 --verbose")
}

// printVersion writes version and build information to the specified file.
func printVersion(w *os.File) {
	fmt.Fprintf(w, "migrate-meraki2nile version %s\n", Version)
	fmt.Fprintf(w, "  Commit:     %s\n", Commit)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Repository: %s\n", RepositoryURL)
}
