package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"stash-scrape/lib/present"
	"stash-scrape/lib/scrapers/stash"
	"stash-scrape/lib/util/restyutil"
	"stash-scrape/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
)

func run(ctx context.Context, args []string) {
	if scrapeType != "scene" && scrapeType != "gallery" {
		serviceutil.Fatal("unknown scrape type", fmt.Errorf("%q is not one of scene, gallery", scrapeType))
	}
	if isList && len(args) == 0 {
		serviceutil.Fatal("bad arguments", errors.New("--list requires a file path"))
	}

	fmt.Printf("Using config: %s\n", configPath)
	cfg, err := stash.ReadConfig(configPath)
	if err != nil {
		serviceutil.Fatal(fmt.Sprintf("unable to load stash config from %s", configPath), err)
	}

	// checked before any network call so a missing secret fails fast
	if cfg.PasswordSet && cfg.APIKey == "" && password == "" {
		serviceutil.Fatal(
			"password required",
			fmt.Errorf("a password is set for user %q, provide it using `-p password`", cfg.Username),
		)
	}

	opts := stash.ClientOptions{
		BaseURL:   cfg.URL(),
		APIKey:    cfg.APIKey,
		VerifyTLS: verifyTLS,
	}
	if httpDump != "" {
		opts.InstrumentOutput = restyutil.NewFilesystemOutput(httpDump)
	}
	client, err := stash.NewClient(opts)
	if err != nil {
		serviceutil.Fatal("failed to initialize stash client", err)
	}

	if cfg.APIKey == "" && cfg.Username != "" && password != "" {
		fmt.Println("Authenticating with Stash...")
		err := client.LoginUsernamePassword(ctx, cfg.Username, password)
		if err != nil {
			serviceutil.Fatal("failed to authenticate with stash", err)
		}
	}

	if !noReload {
		fmt.Println("Reloading scrapers...")
		reloaded, err := client.ReloadScrapers(ctx)
		if err != nil {
			reportError(err)
		}
		if err != nil || !reloaded {
			fmt.Println("Failed to reload")
			return
		}
	}

	in := bufio.NewReader(os.Stdin)

	if len(args) == 0 {
		runInteractive(ctx, client, in)
		return
	}
	urls, err := collectURLs(args[0], isList)
	if err != nil {
		serviceutil.Fatal("unable to collect urls", err)
	}
	runBatch(ctx, client, in, urls)
}

func runInteractive(ctx context.Context, client *stash.Client, in *bufio.Reader) {
	url, err := prompt(in, "\nEnter first URL to scrape:\n>> ")
	for err == nil && url != "" && ctx.Err() == nil {
		scrapeOne(ctx, client, in, url)
		url, err = prompt(in, "\nEnter next URL to scrape (empty to stop):\n>> ")
	}
}

type scrapeStatus struct {
	url string
	ok  bool
}

func runBatch(ctx context.Context, client *stash.Client, in *bufio.Reader, urls []string) {
	var results []scrapeStatus
	for idx, url := range urls {
		if ctx.Err() != nil {
			break
		}
		if idx > 0 {
			cont, err := ask(in, "\nContinue?", true)
			if err != nil {
				slog.Error("bad answer", "err", err)
				break
			}
			if !cont {
				break
			}
		}
		ok := scrapeOne(ctx, client, in, url)
		results = append(results, scrapeStatus{url: url, ok: ok})
	}

	if len(results) > 1 {
		writeSummary(results)
	}
}

func scrapeOne(ctx context.Context, client *stash.Client, in *bufio.Reader, url string) bool {
	var fields map[string]any
	var err error
	switch scrapeType {
	case "scene":
		fmt.Printf("Scraping scene URL %s\n", url)
		fields, err = client.ScrapeSceneURL(ctx, url)
	case "gallery":
		fmt.Printf("Scraping gallery URL %s\n", url)
		fields, err = client.ScrapeGalleryURL(ctx, url)
	}
	if err != nil {
		reportError(err)
		fmt.Printf("%s : Failed\n", url)
		return false
	}

	fmt.Println()
	if scrapeType == "gallery" {
		present.WriteGallery(os.Stdout, fields)
		return true
	}

	image := present.WriteScene(os.Stdout, fields)
	if image == "" {
		return true
	}
	show, err := ask(in, "\nShow image using default image viewer?", false)
	if err != nil {
		slog.Error("bad answer", "err", err)
		return true
	}
	if show {
		if err := present.PreviewImage(image); err != nil {
			slog.Warn("unable to preview image", "err", err)
		}
	}
	return true
}

// reportError prints a decoded failure for the operator. Every per-url
// failure is non-fatal to the batch.
func reportError(err error) {
	var gqlErrs *stash.GraphQLErrors
	var malformed *stash.MalformedBodyError
	switch {
	case errors.Is(err, stash.ErrEmptyResult):
		// the bare "<url> : Failed" line is all there is to say
	case errors.As(err, &gqlErrs):
		fmt.Println("GraphQL Errors:")
		fmt.Println(gqlErrs.Report())
	case errors.As(err, &malformed):
		fmt.Printf("ERROR: Invalid API response (%d):\n%s\n", malformed.Status, malformed.Body)
	default:
		slog.Error("request failed", "err", err)
	}
}

func writeSummary(results []scrapeStatus) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"URL", "Status"})
	for _, r := range results {
		status := "OK"
		if !r.ok {
			status = "Failed"
		}
		t.AppendRow(table.Row{r.url, status})
	}
	fmt.Println()
	t.Render()
}
