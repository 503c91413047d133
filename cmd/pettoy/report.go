package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pettoy/internal/automation"
	"github.com/san-kum/pettoy/internal/metrics"
	"github.com/san-kum/pettoy/internal/sim"
	"github.com/san-kum/pettoy/internal/storage"
	"github.com/san-kum/pettoy/internal/viz"
)

func printSeries(out io.Writer, series *metrics.Series) {
	plots := []struct {
		data    []float64
		caption string
	}{
		{series.Energy, "energy per second"},
		{series.Shapes, "shapes per second"},
	}

	for _, p := range plots {
		if len(p.data) == 0 {
			continue
		}
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
}

func printReport(out io.Writer, r *automation.Report) error {
	fmt.Fprintln(out, viz.HeaderStyle.Render(fmt.Sprintf("session (seed %d)", r.Seed)))
	printSeries(out, r.Series)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "elapsed\t%.1fs\n", r.Stats.Elapsed)
	fmt.Fprintf(w, "frames\t%d\n", r.Stats.Frames)
	fmt.Fprintf(w, "keys accepted\t%d\n", r.Stats.Accepted)
	fmt.Fprintf(w, "keys debounced\t%d\n", r.Stats.Debounced)
	fmt.Fprintf(w, "keys ignored\t%d\n", r.Stats.Ignored)
	fmt.Fprintf(w, "final shapes\t%d\n", r.Final.Shapes)
	fmt.Fprintf(w, "final energy\t%.2f\n", r.Final.Energy)
	fmt.Fprintf(w, "exit combo\t%v\n", r.Exited)
	for _, a := range sim.Actions {
		fmt.Fprintf(w, "action %s\t%d\n", a, r.Stats.Actions[a])
	}

	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, r.Metrics[name])
	}
	return w.Flush()
}

func printEnsemble(out io.Writer, reports []*automation.Report) error {
	fmt.Fprintln(out, viz.HeaderStyle.Render(fmt.Sprintf("%d sessions", len(reports))))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tACCEPTED\tDEBOUNCED\tPEAK ENERGY\tFINAL ENERGY\tSHAPES")

	var accepted, peak float64
	for _, r := range reports {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\t%.2f\t%d\n",
			r.Seed, r.Stats.Accepted, r.Stats.Debounced, r.Stats.PeakEnergy, r.Final.Energy, r.Final.Shapes)
		accepted += float64(r.Stats.Accepted)
		peak += r.Stats.PeakEnergy
	}
	if n := float64(len(reports)); n > 0 {
		fmt.Fprintf(w, "mean\t%.1f\t\t%.2f\t\t\n", accepted/n, peak/n)
	}
	return w.Flush()
}

func printSessions(out io.Writer, sessions []storage.SessionMetadata) error {
	if len(sessions) == 0 {
		fmt.Fprintln(out, "no sessions")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tSEED\tDURATION\tACCEPTED\tPEAK ENERGY\tTIMESTAMP")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1fs\t%d\t%.2f\t%s\n",
			s.ID, s.Source, s.Seed, s.Duration, s.Accepted, s.PeakEnergy,
			s.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
