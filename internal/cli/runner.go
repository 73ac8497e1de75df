package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/fetchlist/internal/config"
	"github.com/idilsaglam/fetchlist/internal/fetch"
	"github.com/idilsaglam/fetchlist/internal/fixture"
	"github.com/idilsaglam/fetchlist/internal/model"
	"github.com/idilsaglam/fetchlist/internal/state"
	"github.com/idilsaglam/fetchlist/internal/store/jsonstore"
	"github.com/idilsaglam/fetchlist/internal/tui"
	"github.com/idilsaglam/fetchlist/internal/ui"
)

// Options carry the resolved config and where output goes.
type Options struct {
	Config config.Config
	Out    io.Writer // defaults to os.Stdout
	Err    io.Writer // defaults to os.Stderr
}

func (o *Options) defaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	ui.SetTheme(opt.Config.Theme)
	if opt.Config.NoColor {
		ui.SetColorForcing(false, true)
	}

	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ls":
		return doList(opt)

	case "print":
		return doPrint(a, opt)

	case "serve":
		return doServe(a, opt)

	case "sample":
		if len(a) != 1 {
			ui.FFail(opt.Err, "usage: fetchlist sample <file>")
			return 2
		}
		return doSample(a[0], opt)
	}

	ui.FFail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `fetchlist - fetch, clean and browse a remote list

Usage:
  fetchlist [-url URL] [-theme classic|neon|mono] [-no-color] <subcommand> [args]

Subcommands:
  ls                     Browse the list (interactive TUI, r to re-fetch)
  print [-group] [-progress] [-v]
                         Fetch once and print the cleaned list
  serve [-addr ADDR] [-file FILE] [-path PATH] [-status CODE]
                         Serve a local copy of the endpoint
  sample <file>          Write the built-in sample list to file

Environment:
  %s, %s, %s, %s (also read from ./.env)

Examples:
  fetchlist ls
  fetchlist print -group
  fetchlist serve -addr :8080 &
  fetchlist -url http://localhost:8080/hiring.json ls
`, config.EnvURL, config.EnvTheme, config.EnvLog, config.EnvColor)
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	if err := opt.Config.Validate(); err != nil {
		ui.FFail(opt.Err, err.Error())
		return 2
	}

	// The TUI owns stdout, so diagnostics only go to a file when asked for.
	logger := log.New(io.Discard, "", 0)
	if opt.Config.LogFile != "" {
		f, err := tea.LogToFile(opt.Config.LogFile, "fetchlist")
		if err != nil {
			ui.FFail(opt.Err, "log: "+err.Error())
			return 1
		}
		defer f.Close()
		logger = log.Default()
	}

	h := state.New(fetch.NewClient(opt.Config.Endpoint), state.WithLogger(logger))
	if err := tui.Run(h); err != nil {
		ui.FFail(opt.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

func doPrint(args []string, opt Options) int {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(opt.Err)
	group := fs.Bool("group", false, "group output by list id")
	progress := fs.Bool("progress", false, "show download progress on stderr")
	verbose := fs.Bool("v", false, "log fetch diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := opt.Config.Validate(); err != nil {
		ui.FFail(opt.Err, err.Error())
		return 2
	}

	var copts []fetch.Option
	if *progress {
		copts = append(copts, fetch.WithProgress(opt.Err))
	}
	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(opt.Err, "", log.LstdFlags)
	}

	h := state.New(fetch.NewClient(opt.Config.Endpoint, copts...), state.WithLogger(logger))
	defer h.Close()
	h.TriggerFetch()
	h.Wait()
	if *progress {
		fmt.Fprintln(opt.Err)
	}

	s := h.Snapshot()
	if s.HasErr {
		ui.FFail(opt.Err, s.Err)
		return 1
	}

	var lines []string
	lines = append(lines, headerLine(s.Items), "")
	if *group {
		lines = append(lines, groupLines(s.Items)...)
	} else {
		lines = append(lines, flatLines(s.Items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: browse with `fetchlist ls`"))
	ui.FPanel(opt.Out, lines)
	return 0
}

func doServe(args []string, opt Options) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(opt.Err)
	addr := fs.String("addr", ":8080", "listen address")
	file := fs.String("file", "", "serve this JSON list instead of the built-in sample")
	path := fs.String("path", fixture.DefaultPath, "route for the list")
	status := fs.Int("status", http.StatusOK, "answer the list route with this status")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if http.StatusText(*status) == "" {
		ui.FFail(opt.Err, "serve: unknown status "+strconv.Itoa(*status))
		return 2
	}

	items := fixture.Sample()
	if *file != "" {
		var err error
		if items, err = jsonstore.Load(*file); err != nil {
			ui.FFail(opt.Err, "load: "+err.Error())
			return 1
		}
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           fixture.NewRouter(items, fixture.WithPath(*path), fixture.WithStatus(*status)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	ui.FOK(opt.Out, fmt.Sprintf("serving %d items on %s%s", len(items), *addr, *path))

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			ui.FFail(opt.Err, "serve: "+err.Error())
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			ui.FFail(opt.Err, "shutdown: "+err.Error())
			return 1
		}
	}
	return 0
}

func doSample(path string, opt Options) int {
	if err := jsonstore.Save(path, fixture.Sample()); err != nil {
		ui.FFail(opt.Err, "save: "+err.Error())
		return 1
	}
	ui.FOK(opt.Out, "wrote "+path)
	return 0
}

// -------------- rendering helpers --------------

func headerLine(items []model.ListableItem) string {
	return fmt.Sprintf("%s  %s %d",
		ui.C(ui.Current().Title, "Fetched list"),
		ui.C(ui.Current().Accent, "Total"), len(items),
	)
}

func flatLines(items []model.ListableItem) []string {
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%3d.", i+1)
		glyph := ui.C(ui.Current().Accent, ui.Current().GroupGlyph(it.ListID))
		out = append(out, fmt.Sprintf("%s %s %s", ui.C(ui.Current().Muted, idx), glyph, it.DisplayName()))
	}
	return out
}

// groupLines expects items already sorted by list id.
func groupLines(items []model.ListableItem) []string {
	var lines []string
	for start := 0; start < len(items); {
		end := start
		for end < len(items) && items[end].ListID == items[start].ListID {
			end++
		}
		if start > 0 {
			lines = append(lines, "")
		}
		id := items[start].ListID
		lines = append(lines, ui.C(ui.Current().Accent,
			fmt.Sprintf("%s List %d (%d)", ui.Current().GroupGlyph(id), id, end-start)))
		lines = append(lines, flatLines(items[start:end])...)
		start = end
	}
	return lines
}
