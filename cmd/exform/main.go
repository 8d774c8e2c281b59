package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/exform/exform/internal/cache"
	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/dump"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/irjson"
	"github.com/exform/exform/internal/passes"
	"github.com/exform/exform/internal/pipeline"
)

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		outPath    = flag.String("o", "", "output path (default: stdout)")
		cachePath  = flag.String("cache", "", "path to a rewrite cache database")
		debugFlag  = flag.Bool("debug", false, "emit per-pass notes to stderr")
		dumpTree   = flag.Bool("dump", false, "print the rewritten tree in debug form instead of JSON")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input.json]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Reads an IR tree (JSON), runs the rewrite passes, writes the result.")
		fmt.Fprintln(os.Stderr, "With no input file, reads from stdin.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		pterm.DisableColor()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	data, err := readInput(flag.Args())
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	root, err := irjson.Decode(data)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	var store *cache.Cache
	var treeHash, configHash string
	if *cachePath != "" {
		store, err = cache.Open(*cachePath)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		defer store.Close()

		treeHash, configHash, err = cache.Key(root, cfg)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		if cached, ok, err := store.Get(treeHash, configHash); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		} else if ok {
			if cfg.Debug {
				pterm.Info.Println("cache hit " + treeHash[:12])
			}
			if err := writeOutput(*outPath, cached, *dumpTree); err != nil {
				pterm.Error.Println(err.Error())
				os.Exit(1)
			}
			return
		}
	}

	p := pipeline.New(cfg, passes.Default()...)
	result := p.Run(root)

	if cfg.Debug {
		pterm.Info.Println("run " + result.RunID)
		for _, note := range result.Notes {
			fmt.Fprintf(os.Stderr, "- %s\n", note.String())
		}
	}

	if store != nil {
		if err := store.Put(treeHash, configHash, result.Root); err != nil {
			// A failed cache write is not fatal; the rewrite itself succeeded.
			pterm.Warning.Println(err.Error())
		}
	}

	if err := writeOutput(*outPath, result.Root, *dumpTree); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("Usage: %s <input.json> or pipe from stdin", os.Args[0])
		}
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func writeOutput(path string, root ir.Node, dumpTree bool) error {
	var out []byte
	if dumpTree {
		out = []byte(dump.Tree(root))
	} else {
		var err error
		out, err = irjson.Encode(root)
		if err != nil {
			return err
		}
		out = append(out, '\n')
	}
	if path == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(path, out, 0644)
}
