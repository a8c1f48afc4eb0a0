package main

import (
	"context"
	"log/slog"

	"stash-scrape/cmd/stash-scrape/commands"
	"stash-scrape/lib/telemetry"
	"stash-scrape/lib/util/serviceutil"
)

func main() {
	telemetry.InitSlog(false)

	ctx := serviceutil.SignalContext()
	tel, err := telemetry.SetupFromEnv(ctx, "stash-scrape")
	if err != nil {
		slog.Warn("failed to set up telemetry", "err", err)
	}
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
