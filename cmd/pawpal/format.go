package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/five82/pawpal/internal/changelog"
	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/rescue"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use text, json or yaml)", s)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return enc.Close()
}

// writeAnimals prints one page of search results as a table.
func writeAnimals(w io.Writer, page rescue.AnimalPage) error {
	if len(page.Animals) == 0 {
		_, err := fmt.Fprintln(w, "No animals found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tBREED\tAGE\tGENDER\tDISTANCE")
	for _, a := range page.Animals {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.SpeciesLabel(), dash(a.Breeds.Label()), dash(a.Age), dash(a.Gender), distanceLabel(a.Distance))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p := page.Pagination
	_, err := fmt.Fprintf(w, "\nPage %d of %d · %d animals\n", max(p.CurrentPage, 1), max(p.TotalPages, 1), p.TotalCount)
	return err
}

func writeFavorites(w io.Writer, favorites []prefs.Favorite, format outputFormat) error {
	switch format {
	case formatJSON:
		return writeJSON(w, favorites)
	case formatYAML:
		return writeYAML(w, favorites)
	}

	if len(favorites) == 0 {
		_, err := fmt.Fprintln(w, "No favorites saved.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tBREED\tADDED")
	for _, f := range favorites {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", f.ID, f.Name, dash(f.Species), dash(f.Breed), f.AddedAt.Local().Format("2006-01-02"))
	}
	return tw.Flush()
}

func writeEntries(w io.Writer, entries []changelog.Entry, format outputFormat) error {
	if entries == nil {
		entries = []changelog.Entry{}
	}
	switch format {
	case formatJSON:
		return writeJSON(w, entries)
	case formatYAML:
		return writeYAML(w, entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No release notes available.")
		return err
	}
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(entry.Version)
		if entry.Date != "" {
			b.WriteString(" (" + entry.Date + ")")
		}
		b.WriteString("\n")
		for _, section := range entry.Sections {
			b.WriteString("\n  " + section.Title + "\n")
			for _, item := range section.Items {
				b.WriteString("    - " + item.Text)
				if item.CommitHash != "" {
					b.WriteString(" (" + item.CommitHash + ")")
				}
				b.WriteString("\n")
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func distanceLabel(d *float64) string {
	if d == nil {
		return "-"
	}
	if *d < 10 {
		return fmt.Sprintf("%.1f mi", *d)
	}
	return fmt.Sprintf("%.0f mi", *d)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
