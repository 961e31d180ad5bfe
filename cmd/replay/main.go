package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/brensch/hypersonic/config"
	"github.com/brensch/hypersonic/store"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("HYPERSONIC_CONFIG"), "Optional YAML config file")
	file := flag.String("file", "", "Session parquet file to replay")
	session := flag.String("session", "", "Session id to look up in the record dir index (default: latest)")
	flag.Parse()

	path := *file
	if path == "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		path, err = resolveSession(cfg.Record.Dir, *session)
		if err != nil {
			log.Fatalf("session: %v", err)
		}
	}

	rows, err := store.ReadTicks(path)
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	if len(rows) == 0 {
		log.Fatalf("%s has no ticks", path)
	}

	p := tea.NewProgram(newModel(path, rows), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("replay: %v", err)
	}
}

func resolveSession(dir, session string) (string, error) {
	idx, err := store.OpenSessionIndex(filepath.Join(dir, store.IndexFile))
	if err != nil {
		return "", err
	}
	defer idx.Close()

	if session == "" {
		e, ok := idx.Latest()
		if !ok {
			return "", fmt.Errorf("no sessions recorded in %s", dir)
		}
		return e.Path, nil
	}

	id, err := uuid.Parse(session)
	if err != nil {
		return "", fmt.Errorf("bad session id: %w", err)
	}
	e, ok := idx.Lookup(id)
	if !ok {
		return "", fmt.Errorf("session %s not found in %s", id, dir)
	}
	return e.Path, nil
}
