package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/snapdoc/snapdoc/internal/core/domain"
	"github.com/snapdoc/snapdoc/internal/core/services"
	"github.com/snapdoc/snapdoc/pkg/ui"
)

// GetPreferredEditor returns the editor command from config, env, or default
func GetPreferredEditor() string {
	// 1. Check Config
	if appConfig != nil && appConfig.Editor != "" {
		return appConfig.Editor
	}
	// 2. Check Environment
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	// 3. Fallback
	return "vi"
}

// selectDocument resolves an optional query to a single document. Without a
// query it opens a fuzzy finder over the whole library; with a query it
// searches and prompts when several documents match. Returns nil (and no
// error) when nothing matched or the user cancelled; the reason has already
// been printed.
func selectDocument(query string) (*domain.Document, error) {
	ctx := getContext()

	if query == "" {
		resp, err := listService.Execute(ctx, services.ListRequest{})
		if err != nil {
			fmt.Println(ui.FormatError("Failed to list documents"))
			return nil, err
		}
		if resp.Total == 0 {
			fmt.Println(ui.FormatWarning("No documents in the library"))
			return nil, nil
		}

		idx, err := fuzzyfinder.Find(
			resp.Documents,
			func(i int) string { return resp.Documents[i].DisplayName() },
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				doc := resp.Documents[i]
				return fmt.Sprintf("Name: %s\nSize: %s\nModified: %s\n\n%s",
					doc.Name,
					humanize.Bytes(uint64(doc.Size)),
					doc.DisplayDate(appConfig.DisplayDateFormat),
					doc.Path)
			}),
		)
		if err != nil {
			fmt.Println(ui.FormatInfo("Operation cancelled."))
			return nil, nil
		}
		return &resp.Documents[idx], nil
	}

	resp, err := listService.Search(ctx, services.SearchRequest{Query: query})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to search documents"))
		return nil, err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No documents found matching: " + query))
		return nil, nil
	}

	if resp.Total == 1 {
		return &resp.Documents[0], nil
	}

	// Multiple matches: numbered selection with a retry loop
	fmt.Println(ui.FormatInfo(fmt.Sprintf("Found %d matches:", resp.Total)))
	fmt.Println()

	for i, doc := range resp.Documents {
		fmt.Printf("  %d. %s %s\n",
			i+1,
			ui.StyleBold.Render(doc.DisplayName()),
			ui.StyleMuted.Render("("+humanize.Bytes(uint64(doc.Size))+", "+humanize.Time(doc.ModifiedAt)+")"))
	}
	fmt.Println()

	var selection int
	for {
		fmt.Print(ui.StyleInfo.Render("Select a document (1-" + strconv.Itoa(resp.Total) + "): "))

		_, err := fmt.Scanln(&selection)
		if err != nil {
			// Clear the buffer on input error
			var discard string
			fmt.Scanln(&discard)
			fmt.Println(ui.FormatWarning("Invalid input. Please enter a number."))
			continue
		}

		if selection < 1 || selection > resp.Total {
			fmt.Println(ui.FormatWarning(fmt.Sprintf("Please enter a number between 1 and %d.", resp.Total)))
			continue
		}

		break
	}
	fmt.Println()

	return &resp.Documents[selection-1], nil
}
