package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// BrowserActuator opens URLs in the local default browser.
type BrowserActuator struct{}

// OpenExternal launches the platform browser for the URL.
func (BrowserActuator) OpenExternal(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	// Detach; the browser outlives the command.
	go func() { _ = cmd.Wait() }()
	return nil
}
