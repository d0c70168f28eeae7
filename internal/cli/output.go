package cli

import (
	"fmt"
	"io"
	"time"

	"modeldctl/pkg/client"
	"modeldctl/pkg/types"
)

// renderStream drains a progress stream, printing one line per distinct
// update. Byte counters are appended for layer transfers. The stream is
// always closed, also on error.
func renderStream(out io.Writer, s *client.Stream[types.ProgressUpdate]) error {
	defer s.Close()
	last := ""
	for {
		ev, err := s.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line := ev.Status
		if ev.Total > 0 {
			line = fmt.Sprintf("%s (%s/%s)", ev.Status, formatSize(ev.Completed), formatSize(ev.Total))
		}
		if line == last {
			continue
		}
		fmt.Fprintln(out, line)
		last = line
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func shortDigest(d string) string {
	const prefix = "sha256:"
	if len(d) > len(prefix)+12 {
		return d[len(prefix) : len(prefix)+12]
	}
	return d
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
