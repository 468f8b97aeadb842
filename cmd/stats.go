package cmd

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/snapdoc/snapdoc/internal/adapters/opener"
	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

var statsChart bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics and activity",
	Long: `Analyze the library and display useful statistics.

Includes:
  - Document count and total size
  - Largest and newest documents
  - 6-month activity chart

With --chart an interactive HTML chart is written to the staging cache
and opened in the browser.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsChart, "chart", false, "Write an interactive HTML chart and open it")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := listService.Execute(ctx, services.ListRequest{
		SortBy: "modified",
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list documents"))
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No documents in the library"))
		fmt.Println(ui.FormatInfo("Run 'snapdoc create' or 'snapdoc import' first"))
		return nil
	}

	// Largest document; newest is first due to the modified sort
	largest := resp.Documents[0]
	for _, doc := range resp.Documents {
		if doc.Size > largest.Size {
			largest = doc
		}
	}
	newest := resp.Documents[0]

	avgSize := resp.TotalSize / int64(resp.Total)

	fmt.Println(ui.FormatTitle("Library Analytics"))
	fmt.Println()

	// General stats
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Documents:"), resp.Total)
	fmt.Fprintf(w, "%s\t%s\n", ui.StyleBold.Render("Total Size:"), humanize.Bytes(uint64(resp.TotalSize)))
	fmt.Fprintf(w, "%s\t%s\n", ui.StyleBold.Render("Average Size:"), humanize.Bytes(uint64(avgSize)))
	fmt.Fprintf(w, "%s\t%s (%s)\n", ui.StyleBold.Render("Largest:"), largest.DisplayName(), humanize.Bytes(uint64(largest.Size)))
	fmt.Fprintf(w, "%s\t%s (%s)\n", ui.StyleBold.Render("Newest:"), newest.DisplayName(), humanize.Time(newest.ModifiedAt))
	w.Flush()

	fmt.Println()
	renderMonthlyActivity(resp.Documents)

	if statsChart {
		return writeActivityChart(resp.Documents)
	}

	return nil
}

// renderMonthlyActivity displays a horizontal bar chart of the last six
// months of library activity
func renderMonthlyActivity(docs []domain.Document) {
	fmt.Println(ui.StyleHeader.Render("Activity (Last 6 Months)"))

	counts := make(map[string]int)
	for _, doc := range docs {
		counts[doc.ModifiedAt.Format("2006-01")]++
	}

	// Walk from five months back to the current month. Anchoring on the
	// first of the month keeps AddDate from skipping short months.
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type monthRow struct {
		label string
		count int
	}
	var months []monthRow
	maxCount := 0

	for i := 5; i >= 0; i-- {
		m := firstOfMonth.AddDate(0, -i, 0)
		count := counts[m.Format("2006-01")]
		if count > maxCount {
			maxCount = count
		}
		months = append(months, monthRow{label: m.Format("Jan 2006"), count: count})
	}

	if maxCount == 0 {
		maxCount = 1
	}

	barWidth := 20
	for _, m := range months {
		length := int(math.Ceil(float64(m.count) / float64(maxCount) * float64(barWidth)))
		bar := strings.Repeat("█", length)

		fmt.Printf("%-10s %s %s\n",
			m.label,
			ui.StyleAccent.Render(bar),
			ui.StyleMuted.Render(strconv.Itoa(m.count)),
		)
	}
}

// writeActivityChart renders the full monthly history as an interactive
// HTML bar chart in the staging cache and opens it in the browser
func writeActivityChart(docs []domain.Document) error {
	type bucket struct {
		count int
		bytes int64
	}
	buckets := make(map[string]*bucket)
	for _, doc := range docs {
		key := doc.ModifiedAt.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		b.bytes += doc.Size
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var labels []string
	var docSeries, sizeSeries []opts.BarData
	for _, k := range keys {
		month, err := time.Parse("2006-01", k)
		if err != nil {
			continue
		}
		labels = append(labels, month.Format("Jan 2006"))
		docSeries = append(docSeries, opts.BarData{Value: buckets[k].count})

		mb := float64(buckets[k].bytes) / (1024 * 1024)
		sizeSeries = append(sizeSeries, opts.BarData{Value: math.Round(mb*10) / 10})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Snapdoc Library",
			Subtitle: "Documents and data added per month",
		}),
	)
	bar.SetXAxis(labels).
		AddSeries("Documents", docSeries).
		AddSeries("Megabytes", sizeSeries)

	chartPath := appLibrary.StagingPath("library-stats.html")
	f, err := os.Create(chartPath)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to write chart"))
		return err
	}

	if err := bar.Render(f); err != nil {
		f.Close()
		fmt.Println(ui.FormatError("Failed to render chart"))
		return err
	}
	f.Close()

	fmt.Println()
	fmt.Println(ui.FormatSuccess("Chart written: " + chartPath))

	// The chart is HTML, so bypass the configured PDF viewer
	browser := opener.NewSystemOpener("")
	if err := browser.Open(getContext(), chartPath); err != nil {
		fmt.Println(ui.FormatMuted("Open it in a browser to view."))
	}

	return nil
}
