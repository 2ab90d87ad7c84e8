package sgf

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

func formatBytes(n int64) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.2f MB", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.2f KB", float64(n)/1000)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}

// Report writes a table of every image in the catalog to w, with the encode
// time and the source and encoded sizes, followed by the averages
func (s *SGF) Report(w io.Writer) error {
	entries, err := s.catalog.Entries()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSIZE\tCOLORS\tORDER\tTIME\tSOURCE\tSGF\tRATIO")

	var colors, source, size int64
	var duration time.Duration
	var ratio float64
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\t%s\t%s\t%s\t%.2f%%\n", e.Path, e.Width, e.Height, e.Colors, e.Order, formatDuration(e.Duration), formatBytes(e.SourceSize), formatBytes(int64(e.Size)), e.Ratio())
		colors += int64(e.Colors)
		duration += e.Duration
		source += e.SourceSize
		size += int64(e.Size)
		ratio += e.Ratio()
	}

	if n := int64(len(entries)); n > 0 {
		fmt.Fprintf(tw, "Average\t-\t%d\t-\t%s\t%s\t%s\t%.2f%%\n", colors/n, formatDuration(duration/time.Duration(n)), formatBytes(source/n), formatBytes(size/n), ratio/float64(n))
	}

	return tw.Flush()
}
