package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sitecms/internal/client/media"
	"github.com/dmitrijs2005/sitecms/internal/client/services"
	"github.com/dmitrijs2005/sitecms/internal/client/validation"
)

// getMultiline is a seam for tests; by default it delegates to GetMultiline.
var getMultiline = GetMultiline

// confirm is a seam for tests; by default it delegates to Confirm.
var confirm = Confirm

func (a *App) Add(ctx context.Context) error {
	i := a.editor.Add()
	fmt.Fprintf(a.out, "Added %s %d. Fill it with 'set %d <field> <value>'.\n", strings.ToLower(a.editor.Entity().Singular()), i+1, i+1)
	return nil
}

// Set changes one field. Without a value on the command line the value is
// read as multi-line text.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("set <n> <field> [value]")
	}
	i, err := parseItem(args[0], a.editor.Len())
	if err != nil {
		return err
	}
	field := args[1]
	if _, ok := a.editor.Entity().Field(field); !ok {
		return fmt.Errorf("unknown field %q", field)
	}

	value := strings.Join(args[2:], " ")
	if len(args) == 2 {
		value, err = getMultiline(a.reader, "Enter "+field+":", a.out)
		if err != nil {
			return err
		}
	}
	if err := a.editor.SetField(i, field, value); err != nil {
		return err
	}
	a.printItemErrors(i)
	return nil
}

// Image attaches a local image file; it is uploaded on the next save.
func (a *App) Image(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError("image <n> <field> <path>")
	}
	i, err := parseItem(args[0], a.editor.Len())
	if err != nil {
		return err
	}
	u, err := media.Load(args[2], a.config.ImageMaxWidth)
	if err != nil {
		return err
	}
	if err := a.editor.SetImage(i, args[1], u); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Attached %s (%s, %d bytes). It is uploaded on save.\n", u.Filename, u.ContentType, len(u.Data))
	return nil
}

// Toggle flips a yes/no field. Saved items are updated on the Gateway at once.
func (a *App) Toggle(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("toggle <n> <field>")
	}
	i, err := parseItem(args[0], a.editor.Len())
	if err != nil {
		return err
	}
	return a.editor.Toggle(ctx, i, args[1])
}

func (a *App) Errors(ctx context.Context) error {
	errs := a.editor.Errors()
	if len(errs) == 0 {
		fmt.Fprintln(a.out, "No validation errors.")
		return nil
	}
	a.printErrorSet(errs)
	return nil
}

// Save creates or updates one item. The whole collection is validated first.
func (a *App) Save(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("save <n>")
	}
	i, err := parseItem(args[0], a.editor.Len())
	if err != nil {
		return err
	}

	err = a.editor.Save(ctx, i)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		a.printErrorSet(verr.Errors)
	}
	return err
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("delete <n>")
	}
	i, err := parseItem(args[0], a.editor.Len())
	if err != nil {
		return err
	}
	d, err := a.editor.Draft(i)
	if err != nil {
		return err
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete %s %d (%s)?", strings.ToLower(a.editor.Entity().Singular()), i+1, summary(a.editor.Entity(), d)), a.out)
	if err != nil || !ok {
		return err
	}
	return a.editor.Delete(ctx, i)
}

func (a *App) printItemErrors(i int) {
	errs := a.editor.Errors()
	for _, f := range a.editor.Entity().Fields {
		if msg, bad := errs[validation.Key(f.Name, i)]; bad {
			fmt.Fprintf(a.out, "  ! %s\n", msg)
		}
	}
}

func (a *App) printErrorSet(errs validation.ErrorSet) {
	for i := 0; i < a.editor.Len(); i++ {
		for _, f := range a.editor.Entity().Fields {
			if msg, bad := errs[validation.Key(f.Name, i)]; bad {
				fmt.Fprintf(a.out, "  ! item %d: %s\n", i+1, msg)
			}
		}
	}
}
