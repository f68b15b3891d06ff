package cmd

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rohmanhakim/robotstxt"
	"github.com/rohmanhakim/robotstxt/internal/build"
	"github.com/rohmanhakim/robotstxt/internal/config"
	"github.com/rohmanhakim/robotstxt/pkg/fileutil"
	"github.com/rohmanhakim/robotstxt/pkg/hashutil"
	"github.com/rohmanhakim/robotstxt/pkg/urlutil"
	"github.com/spf13/cobra"
)

// Exit codes, matching the original robots_main.cc convention of using
// the boolean verdict as a process exit code, extended with a dedicated
// code for usage/file errors so scripts can tell "disallowed" apart from
// "could not evaluate at all".
const (
	ExitAllowed    = 0
	ExitDisallowed = 1
	ExitError      = 2
)

var (
	cfgFile  string
	report   bool
	hashAlgo string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "robots <robots-file> <user-agent>[,<user-agent>] <url>",
	Version: build.FullVersion(),
	Short:   "Check whether a URL is allowed by a robots.txt file.",
	Long: `robots evaluates a URL against a local robots.txt file using
Google's robots.txt parsing and matching rules.

Usage (single user-agent):
    robots <robots-file> <user-agent> <url>

Usage (pair of user-agents, most specific first):
    robots <robots-file> <specific-agent>,<general-agent> <url>

With a pair, the specific agent's own group decides the verdict if the
document addresses one to it; otherwise the general agent's group is
used as a fallback.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		code := Run(os.Stdout, os.Stderr, args[0], args[1], args[2])
		os.Exit(code)
	},
}

// Run evaluates args[0] (robots.txt path), args[1] (user-agent, or a
// comma-separated specific,general pair) and args[2] (url) against the
// current flag values, writing the verdict or --report diagnostics to
// out and any error to errOut. It never calls os.Exit so it can be
// exercised directly from tests.
func Run(out, errOut io.Writer, robotsPath, agentArg, targetURL string) int {
	agents := splitAgents(agentArg)

	cfg, err := buildConfig(robotsPath, agents, targetURL)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %s\n", err)
		return ExitError
	}

	document, readErr := fileutil.ReadRobotsFile(cfg.RobotsPath())
	if readErr != nil {
		fmt.Fprintf(errOut, "Error: %s\n", readErr)
		return ExitError
	}

	if cfg.Report() {
		printReport(out, document, cfg)
		return ExitAllowed
	}

	allowed := evaluate(document, cfg.Agents(), canonicalizeURL(cfg.URL()))

	verdict := "DISALLOWED"
	exitCode := ExitDisallowed
	if allowed {
		verdict = "ALLOWED"
		exitCode = ExitAllowed
	}
	fmt.Fprintf(out, "user-agent '%s' with URI '%s': %s\n", agentArg, targetURL, verdict)
	return exitCode
}

// evaluate runs the Match Engine: a two-agent list uses
// Matcher.IsAllowedTuple (most specific first with fallback), and any
// other count uses Matcher.IsAllowed directly.
func evaluate(document []byte, agents []string, targetURL string) bool {
	m := robotstxt.New()
	if len(agents) == 2 {
		return m.IsAllowedTuple(document, agents[0], agents[1], targetURL)
	}
	return m.IsAllowed(document, agents, targetURL)
}

// canonicalizeURL applies urlutil.Canonicalize's scheme/host/fragment
// normalization ahead of matching. A URL that fails to parse is passed
// through unchanged — internal/urlpath.ExtractPath works directly on
// raw bytes and does not require a valid net/url.URL to extract a path.
func canonicalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	canonical := urlutil.Canonicalize(*parsed)
	return canonical.String()
}

func printReport(out io.Writer, document []byte, cfg config.Config) {
	obs := robotstxt.NewReportObserver(document, cfg.HashAlgo())
	robotstxt.Parse(document, obs)
	summary := obs.Summary()

	fmt.Fprintf(out, "Fingerprint (%s): %s\n", summary.FingerprintAlgo, summary.Fingerprint)
	fmt.Fprintf(out, "Total lines: %d\n", summary.TotalLines)
	fmt.Fprintf(out, "Comment lines: %d\n", summary.CommentCount)
	fmt.Fprintf(out, "Empty lines: %d\n", summary.EmptyCount)
	fmt.Fprintf(out, "Lines too long: %d\n", summary.TooLongCount)
	fmt.Fprintf(out, "user-agent directives: %d\n", summary.UserAgentCount)
	fmt.Fprintf(out, "allow directives: %d\n", summary.AllowCount)
	fmt.Fprintf(out, "disallow directives: %d\n", summary.DisallowCount)
	fmt.Fprintf(out, "sitemap directives: %d\n", summary.SitemapCount)
	fmt.Fprintf(out, "unknown directives: %d\n", summary.UnknownCount)
	fmt.Fprintf(out, "unused (recognized but unsupported) directives: %d\n", summary.UnusedCount)
}

// splitAgents explodes a comma-separated user-agent pair the way
// robots_main.cc does, trimming the incidental whitespace a user might
// type around the comma.
func splitAgents(arg string) []string {
	parts := strings.Split(arg, ",")
	agents := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			agents = append(agents, p)
		}
	}
	return agents
}

func buildConfig(robotsPath string, agents []string, targetURL string) (config.Config, error) {
	if cfgFile != "" {
		return config.WithConfigFile(cfgFile)
	}
	return config.WithDefault(robotsPath, agents, targetURL).
		WithReport(report).
		WithHashAlgo(hashutil.HashAlgo(hashAlgo)).
		Build()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().BoolVar(&report, "report", false, "print a diagnostics report instead of an allow/disallow verdict")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash", "sha256", "fingerprint algorithm for --report output (sha256 or blake3)")
}

func ResetFlags() {
	cfgFile = ""
	report = false
	hashAlgo = "sha256"
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetReportForTest(r bool) {
	report = r
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}
