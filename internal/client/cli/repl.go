package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasEntity() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Entities(ctx context.Context) error
	Use(ctx context.Context, args []string) error
	Reload(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error

	Add(ctx context.Context) error
	Set(ctx context.Context, args []string) error
	Image(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Errors(ctx context.Context) error
	Save(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error

	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Stash(ctx context.Context) error
	Restore(ctx context.Context) error
}

const usage = `Session:
  login                       paste an access token
  logout                      forget the token
  whoami                      show the session
Entities:
  entities                    list content types
  use <name>                  edit a content type
  reload                      re-fetch the collection (drops local edits)
  list                        list items
  show <n>                    show item n
Editing:
  add                         add a new item
  set <n> <field> [value]     set a field (no value: multi-line prompt)
  image <n> <field> <path>    attach an image file
  toggle <n> <field>          flip a yes/no field
  errors                      show validation errors
  save <n>                    create or update item n
  delete <n>                  delete item n
Files:
  export <file>               write items as JSON
  import <file>               read items from JSON
  stash                       keep unsaved new items locally
  restore                     bring stashed items back
Other:
  help | version | exit`

// entityCommands need an entity picked with "use".
var entityCommands = map[string]bool{
	"reload": true, "list": true, "l": true, "show": true,
	"add": true, "set": true, "image": true, "toggle": true, "errors": true,
	"save": true, "delete": true,
	"export": true, "import": true, "stash": true, "restore": true,
}

// runREPL starts the read–eval–print loop of the admin console.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Item numbers are 1-based as shown by "list". Errors returned by handlers
// are printed and the loop goes on. The loop exits on EOF, on ctx
// cancellation, or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("cms> %s > ", statusFn()))
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if entityCommands[cmd] && !a.hasEntity() {
			printlnFn("Pick a content type first: use <name> (see 'entities')")
			continue
		}

		var err error
		switch cmd {
		case "help":
			printlnFn(usage)

		case "version":
			printVersion()

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "entities":
			err = a.Entities(ctx)

		case "use":
			err = a.Use(ctx, args)

		case "reload":
			err = a.Reload(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "show":
			err = a.Show(ctx, args)

		case "add":
			err = a.Add(ctx)

		case "set":
			err = a.Set(ctx, args)

		case "image":
			err = a.Image(ctx, args)

		case "toggle":
			err = a.Toggle(ctx, args)

		case "errors":
			err = a.Errors(ctx)

		case "save":
			err = a.Save(ctx, args)

		case "delete":
			err = a.Delete(ctx, args)

		case "export":
			err = a.Export(ctx, args)

		case "import":
			err = a.Import(ctx, args)

		case "stash":
			err = a.Stash(ctx)

		case "restore":
			err = a.Restore(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
		if readErr != nil {
			return
		}
	}
}
