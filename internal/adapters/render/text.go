// Package render writes suggested walks in the formats people open them with.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/justzen0/random-walker/internal/domain"
)

// WriteText writes the walk as a plain text note: the Google Maps link
// first, then every coordinate of the path for other mapping tools.
func WriteText(w io.Writer, walk *domain.Walk) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "--- Your Random Walk for Google Maps (%.2f km) ---\n\n", walk.LengthKm())
	fmt.Fprint(bw, "Option 1: Clickable Link (Best for Phones)\n")
	fmt.Fprint(bw, "Copy this entire link and open it in your phone's browser:\n\n")
	fmt.Fprint(bw, walk.MapsURL)
	fmt.Fprint(bw, "\n\n-------------------------------------------------\n\n")
	fmt.Fprint(bw, "Option 2: Full Coordinate List (for other mapping tools)\n\n")
	for i, p := range walk.Path {
		if i > 0 {
			bw.WriteByte('\n')
		}
		bw.WriteString(p.String())
	}
	bw.WriteByte('\n')

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write walk text: %w", err)
	}
	return nil
}

// SaveText writes the text note to path, replacing any previous file.
func SaveText(path string, walk *domain.Walk) error {
	return saveFile(path, func(w io.Writer) error { return WriteText(w, walk) })
}

func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("save %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	return nil
}
