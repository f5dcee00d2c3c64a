package catalog

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

//go:embed players.txt
var defaultPlayers string

// Catalog is the fixed list of player names a pick may use. It is never mutated after construction.
type Catalog struct {
	names []string
	set   map[string]struct{}
}

func New(names []string) *Catalog {
	c := &Catalog{set: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := c.set[n]; ok {
			continue
		}
		c.set[n] = struct{}{}
		c.names = append(c.names, n)
	}
	sort.Strings(c.names)
	return c
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, _ := parse(strings.NewReader(defaultPlayers))
	return c
}

// Load reads one name per line. Blank lines and lines starting with # are skipped.
// An empty path means the compiled in list.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open player catalog: %w", err)
	}
	defer f.Close()

	c, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read player catalog %s: %w", path, err)
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("player catalog %s is empty", path)
	}
	return c, nil
}

func parse(r io.Reader) (*Catalog, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(names), nil
}

func (c *Catalog) IsValidName(name string) bool {
	_, ok := c.set[name]
	return ok
}

// Names returns a sorted copy of the catalog.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) Len() int {
	return len(c.names)
}
