package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

var tablePrecisionKs = []int{1, 5, 10, 20, 100}

// WriteTable prints the summaries of one or more runs side by side.
func WriteTable(reports []*Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Retrieval Evaluation ===\n\n")

	writeSummaryTable(tw, reports)
	writeExcluded(tw, reports)

	tw.Flush()
}

func writeSummaryTable(tw *tabwriter.Writer, reports []*Report) {
	header := []string{"Run", "Queries", "MAP", "MRR", "Recall", "NDCG@10", "NDCG@20", "NDCG"}
	for _, k := range tablePrecisionKs {
		header = append(header, fmt.Sprintf("P@%d", k))
	}
	header = append(header, "Good/Max")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, r := range reports {
		s := r.Summary()
		row := []string{
			r.RunName,
			fmt.Sprintf("%d", s.QueryCount),
			fmtScore(s.MAP),
			fmtScore(s.MRR),
			fmtScore(s.Recall),
			fmtScore(s.NDCG10),
			fmtScore(s.NDCG20),
			fmtScore(s.NDCG),
		}
		for _, k := range tablePrecisionKs {
			row = append(row, fmtScore(s.PrecisionAt(k)))
		}
		row = append(row, fmt.Sprintf("%d/%d", s.NumGoodPoints, s.MaxGoodPoints))
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeExcluded(tw *tabwriter.Writer, reports []*Report) {
	for _, r := range reports {
		excluded := r.Excluded()
		if len(excluded) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s: %d queries excluded (no relevant judgments): %s\n",
			r.RunName, len(excluded), strings.Join(excluded, ", "))
	}
}

func fmtScore(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
