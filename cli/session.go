package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"claim_relay/pkg/logging"
	"claim_relay/wizard"
)

// runSession reads one command per line and feeds it to the controller until
// quit or end of input. Controller errors are already shown by the view.
func runSession(ctx context.Context, ctrl *wizard.Controller, in io.Reader, out io.Writer) error {
	ctrl.Refresh()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if line == "new" || line == "reset" {
			ctrl.Reset()
			continue
		}

		switch ctrl.Snapshot().Screen {
		case wizard.ScreenStart:
			_ = ctrl.GenerateClaim(ctx)
		case wizard.ScreenUpload:
			handleUpload(ctx, ctrl, line, out)
		case wizard.ScreenProducts:
			handleProducts(ctx, ctrl, line, out)
		case wizard.ScreenComplete:
			fmt.Fprintln(out, "Type new to start another claim, or quit.")
		}
	}
	return scanner.Err()
}

func handleUpload(ctx context.Context, ctrl *wizard.Controller, line string, out io.Writer) {
	if line != "" {
		file, err := wizard.FileFromPath(line)
		if err != nil {
			fmt.Fprintf(out, "! %v\n", err)
			return
		}
		if err := ctrl.SelectFile(file); err != nil {
			return
		}
	}
	_ = ctrl.SubmitFile(ctx)
}

func handleProducts(ctx context.Context, ctrl *wizard.Controller, line string, out io.Writer) {
	if line == "done" || line == "submit" {
		claimID, err := ctrl.SubmitProducts(ctx)
		if err != nil && claimID != "" {
			logging.Logger.Warn("claim completed without upstream confirmation", "claimID", claimID, "error", err)
		}
		return
	}
	n, err := strconv.Atoi(line)
	offered := ctrl.Snapshot().Claim.Offered
	if err != nil || n < 1 || n > len(offered) {
		fmt.Fprintf(out, "! enter a number between 1 and %d, or done\n", len(offered))
		return
	}
	_ = ctrl.ToggleProduct(offered[n-1].ID)
}
