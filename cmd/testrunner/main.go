// Command testrunner runs compiled harness test binaries: a unit pass over
// every package, then the remote integration test against FINSEC_BASE_URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/tbeaudouin05/finsec-harness/api/logging"
)

type options struct {
	testsDir        string
	workDir         string
	short           bool
	pkgParallel     int
	count           int
	integrationRun  string
	integrationPath string
	verbose         bool
}

func main() {
	var o options
	flag.StringVar(&o.testsDir, "tests-dir", "/app/tests", "directory containing compiled test binaries")
	flag.StringVar(&o.workDir, "work-dir", "/app", "fallback working directory for binaries without a package directory")
	flag.BoolVar(&o.short, "short", false, "run tests with -test.short (skips remote integration tests)")
	flag.IntVar(&o.pkgParallel, "pkg-parallel", runtime.NumCPU(), "number of packages to run in parallel")
	flag.IntVar(&o.count, "count", 1, "pass -test.count to disable caching when set to 1")
	flag.StringVar(&o.integrationRun, "integration-run", "TestSpendingAnalyticsHTTP_Remote_Integration", "regex of integration test(s) to run with -test.run; empty skips the pass")
	flag.StringVar(&o.integrationPath, "integration-path", "api/router", "relative package path of the integration test binary")
	flag.BoolVar(&o.verbose, "v", true, "add -test.v to test binaries")
	flag.Parse()

	logging.Setup(os.Stderr, os.Getenv("LOG_LEVEL"), false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		slog.Error("test run failed", "error", err)
		stop()
		os.Exit(1)
	}
	slog.Info("all tests passed")
}

func run(ctx context.Context, o options) error {
	bins, err := collectTestBinaries(o.testsDir)
	if err != nil {
		return err
	}
	if len(bins) == 0 {
		return fmt.Errorf("no test binaries found in %s", o.testsDir)
	}

	var integrationBin string
	if o.integrationRun != "" && !o.short {
		if o.integrationPath == "" {
			return errors.New("integration-path is required when integration-run is set")
		}
		integrationBin = filepath.Join(o.testsDir, filepath.FromSlash(o.integrationPath)+".test")
		if _, err := os.Stat(integrationBin); err != nil {
			return fmt.Errorf("integration binary not found at %s: %w", integrationBin, err)
		}
	}

	// The unit pass runs every package in -short mode so remote tests skip;
	// the integration package is still included for its local tests.
	slog.Info("running unit tests", "packages", len(bins))
	unitArgs := testArgs(o.verbose, true, o.count, 0)
	if err := runBinaries(ctx, bins, unitArgs, o.pkgParallel, o.workDir); err != nil {
		return err
	}

	if integrationBin == "" {
		slog.Info("integration pass skipped")
		return nil
	}
	if os.Getenv("FINSEC_BASE_URL") == "" {
		slog.Warn("FINSEC_BASE_URL is not set; integration tests target the default local API")
	}
	slog.Info("running integration tests", "package", o.integrationPath, "run", o.integrationRun)
	args := testArgs(o.verbose, false, o.count, 1)
	args = append(args, "-test.run", o.integrationRun)
	return runBinaries(ctx, []string{integrationBin}, args, 1, o.workDir)
}

func collectTestBinaries(root string) ([]string, error) {
	var bins []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".test") {
			bins = append(bins, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(bins)
	return bins, nil
}

func testArgs(verbose, short bool, count, testParallel int) []string {
	args := []string{}
	if verbose {
		args = append(args, "-test.v")
	}
	if short {
		args = append(args, "-test.short")
	}
	if count > 0 {
		args = append(args, fmt.Sprintf("-test.count=%d", count))
	}
	if testParallel > 0 {
		args = append(args, fmt.Sprintf("-test.parallel=%d", testParallel))
	}
	return args
}

// binaryDir is the package directory next to a test binary, so tests that
// read testdata/ or walk up to .env find them.
func binaryDir(bin, fallback string) string {
	if wd := strings.TrimSuffix(bin, ".test"); wd != bin {
		if fi, err := os.Stat(wd); err == nil && fi.IsDir() {
			return wd
		}
	}
	return fallback
}

func runBinaries(ctx context.Context, bins []string, args []string, parallel int, fallbackDir string) error {
	if len(bins) == 0 {
		return nil
	}
	if parallel < 1 {
		parallel = 1
	}
	sem := make(chan struct{}, parallel)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, b := range bins {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			cmd := exec.CommandContext(ctx, b, args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			cmd.Env = os.Environ()
			cmd.Dir = binaryDir(b, fallbackDir)
			slog.Debug("exec", "binary", b, "args", strings.Join(args, " "), "dir", cmd.Dir)
			if err := cmd.Run(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s failed: %w", b, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
