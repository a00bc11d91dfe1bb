package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/sitecms/internal/client/catalog"
	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/client/validation"
)

var (
	errUsage   = errors.New("usage")
	errBadItem = errors.New("no such item")
)

const summaryWidth = 40

func usageError(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

// parseItem turns the 1-based item number typed by the user into an index.
func parseItem(arg string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: %s (have %d)", errBadItem, arg, n)
	}
	return i - 1, nil
}

// summary is the first non-empty text field, shortened for one-line lists.
func summary(e catalog.Entity, d *models.Draft) string {
	for _, f := range e.Fields {
		if !f.IsString() {
			continue
		}
		if s := strings.TrimSpace(d.Text(f.Name)); s != "" {
			s = strings.Join(strings.Fields(s), " ")
			if utf8.RuneCountInString(s) > summaryWidth {
				s = string([]rune(s)[:summaryWidth-3]) + "..."
			}
			return s
		}
	}
	return "(empty)"
}

func origin(d *models.Draft) string {
	if id, ok := d.ID.ServerID(); ok {
		return "#" + strconv.FormatInt(id, 10)
	}
	return "new"
}

func formatValue(f catalog.Field, d *models.Draft) string {
	switch f.Kind {
	case catalog.KindBool:
		if d.Bool(f.Name) {
			return "yes"
		}
		return "no"
	case catalog.KindInt:
		return strconv.FormatInt(d.Int(f.Name), 10)
	case catalog.KindImage:
		img := d.Image(f.Name)
		if img.Empty() {
			return "(none)"
		}
		return img.String()
	default:
		return d.Text(f.Name)
	}
}

func printList(w io.Writer, e catalog.Entity, ds []*models.Draft, errs validation.ErrorSet) {
	if len(ds) == 0 {
		fmt.Fprintf(w, "No %s yet. Type 'add' to create one.\n", strings.ToLower(e.DisplayName))
		return
	}
	for i, d := range ds {
		mark := " "
		for _, f := range e.Fields {
			if _, bad := errs[validation.Key(f.Name, i)]; bad {
				mark = "!"
				break
			}
		}
		fmt.Fprintf(w, "%s%3d  %-6s %-7s %s\n", mark, i+1, origin(d), d.Status, summary(e, d))
	}
}

func printDraft(w io.Writer, e catalog.Entity, index int, d *models.Draft, errs validation.ErrorSet) {
	fmt.Fprintf(w, "%s %d (%s, %s)\n", e.Singular(), index+1, origin(d), d.Status)
	for _, f := range e.Fields {
		req := ""
		if f.Required {
			req = "*"
		}
		fmt.Fprintf(w, "  %s%s [%s]: %s\n", f.Label, req, f.Name, formatValue(f, d))
		if msg, bad := errs[validation.Key(f.Name, index)]; bad {
			fmt.Fprintf(w, "    ! %s\n", msg)
		}
	}
}
