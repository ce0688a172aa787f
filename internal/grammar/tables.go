package grammar

import (
	"strings"

	"github.com/dekarrin/rosed"
)

// Render gives the table as text, one row per non-terminal, drawn with borders
// and at most width characters wide. title is used as the header of the
// column holding the sets.
func (st setTable) Render(title string, width int) string {
	data := [][]string{{"Non-Terminal", title}}

	for _, name := range st.names {
		members := make([]string, len(st.sets[name]))
		for i, sym := range st.sets[name] {
			members[i] = sym.String()
		}
		data = append(data, []string{name, "{" + strings.Join(members, ", ") + "}"})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableHeaders:             true,
			TableBorders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// String shows the table with a default width of 80.
func (ft FirstTable) String() string {
	return ft.Render("FIRST", 80)
}

// String shows the table with a default width of 80.
func (ft FollowTable) String() string {
	return ft.Render("FOLLOW", 80)
}
