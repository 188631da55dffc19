package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"webmark/internal/config"
)

const (
	// diskSpaceFloorBytes is the minimum free space required under the notes
	// directory. Screenshots dominate disk use and a full run stays well
	// under this.
	diskSpaceFloorBytes = 200 << 20

	endpointProbeTimeout = 5 * time.Second
)

// chromeCandidates are the binary names tried in order when no explicit
// chrome_path is configured.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
}

// CheckDirectoryAccess verifies the directory exists or is creatable and that
// the current user can read, write, and traverse it.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (create failed: %v)", path, err)}
	}

	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (access denied: %v)", path, err)}
	}

	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has room for a run's
// notes and screenshots.
func CheckDiskSpace(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", path, err)}
	}

	free := stat.Bavail * uint64(stat.Bsize)
	if free < diskSpaceFloorBytes {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("%s free under %s, need at least %s", formatBytes(free), path, formatBytes(diskSpaceFloorBytes)),
		}
	}

	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s free", formatBytes(free))}
}

// CheckAPIKey reports whether a credential is configured. A missing key is a
// warning, not a hard failure: the affected steps fail at run time with a
// clearer message.
func CheckAPIKey(name, key, consequence string) Result {
	if strings.TrimSpace(key) == "" {
		return Result{Name: name, Warning: true, Detail: "not configured (" + consequence + ")"}
	}
	return Result{Name: name, Passed: true, Detail: "configured"}
}

// CheckEndpoint probes base URL reachability with a HEAD request. Any HTTP
// response counts as reachable; auth problems surface during the run itself.
func CheckEndpoint(ctx context.Context, name, rawURL string) Result {
	base := strings.TrimRight(strings.TrimSpace(rawURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, endpointProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, base, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("invalid url %s: %v", base, err)}
	}

	client := &http.Client{Timeout: endpointProbeTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable: %v", err)}
	}
	defer resp.Body.Close()

	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (status %d)", resp.StatusCode)}
}

// CheckChromeBinary locates the browser used by the local screenshot backend.
// When screenshots are optional the miss is reported as a warning.
func CheckChromeBinary(cfg *config.Config) Result {
	const name = "Chrome binary"

	candidates := chromeCandidates
	if path := strings.TrimSpace(cfg.Screenshot.ChromePath); path != "" {
		candidates = append([]string{path}, candidates...)
	}

	for _, candidate := range candidates {
		resolved, err := exec.LookPath(candidate)
		if err == nil {
			return Result{Name: name, Passed: true, Detail: resolved}
		}
	}

	return Result{
		Name:    name,
		Warning: cfg.Screenshot.Optional,
		Detail:  "no chrome or chromium binary found in PATH",
	}
}

func formatBytes(n uint64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.0f MB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
