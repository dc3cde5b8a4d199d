package cli

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/sgs/internal/board"
)

func newShowCommand(flags *Flags) *cobra.Command {
	var folder string
	var page int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a folder page and the hotbar as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := flags.LoadSystem()
			if err != nil {
				return err
			}
			b, err := board.New(sys, nil, flags.Logger)
			if err != nil {
				return err
			}
			if folder != "" {
				if err := b.Navigate(folder); err != nil {
					return err
				}
			}
			if page < 1 || page > max(b.Folder().PageCount(), 1) {
				return fmt.Errorf("folder %q has no page %d", b.Folder().Key(), page)
			}
			for range page - 1 {
				b.NextPage()
			}
			renderBoard(cmd.OutOrStdout(), b)
			return nil
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Folder id (default: the startup folder)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number, starting at 1")
	return cmd
}

func renderBoard(out io.Writer, b *board.Board) {
	f := b.Folder()
	title := f.Key()
	if label := b.PageLabel(); label != "" {
		title += "  (page " + label + ")"
	}
	if f.Immediate {
		title += "  [speaks immediately]"
	}
	bold.Fprintln(out, title)

	tbl := uitable.New()
	tbl.Separator = " | "
	tbl.MaxColWidth = 18
	for _, row := range b.Cells() {
		tbl.AddRow(cellTexts(row)...)
	}
	fmt.Fprintln(out, tbl)

	if cells := b.HotbarCells(); cells != nil {
		label := "Hotbar"
		if p := b.HotbarPageLabel(); p != "" {
			label += " (page " + p + ")"
		}
		bold.Fprintln(out, label)
		hot := uitable.New()
		hot.Separator = " | "
		hot.MaxColWidth = 18
		hot.AddRow(cellTexts(cells)...)
		fmt.Fprintln(out, hot)
	}
}

func cellTexts(cells []board.Cell) []interface{} {
	texts := make([]interface{}, len(cells))
	for i, c := range cells {
		switch {
		case c.Empty:
			texts[i] = faint.Sprint("·")
		case c.Button.Navigates():
			texts[i] = c.Button.Label + " →"
		default:
			texts[i] = c.Button.Label
		}
	}
	return texts
}
