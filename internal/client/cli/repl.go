package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	mustChangePassword() bool
	needPhoneVerification() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	BindPhone(ctx context.Context) error
	Reset(ctx context.Context) error

	Plans(ctx context.Context) error
	Quota(ctx context.Context) error
	Orders(ctx context.Context, args []string) error

	Projects(ctx context.Context) error
	NewProject(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
	Show(ctx context.Context) error
	EditPage(ctx context.Context, args []string) error
	SavePage(ctx context.Context, args []string) error
	AddPage(ctx context.Context) error
	DeletePage(ctx context.Context, args []string) error
	SetTemplate(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error

	Outline(ctx context.Context) error
	Refine(ctx context.Context, args []string) error
	Descriptions(ctx context.Context) error
	PageDescription(ctx context.Context, args []string) error
	Images(ctx context.Context) error
	PageImage(ctx context.Context, args []string) error

	Export(ctx context.Context, args []string) error
	EditableExport(ctx context.Context) error
	Convert(ctx context.Context, args []string) error

	Materials(ctx context.Context, args []string) error
	Templates(ctx context.Context, args []string) error
	RefFiles(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
	Admin(ctx context.Context, args []string) error
}

// passwdOnly lists the commands allowed while a password change is pending.
var passwdOnly = map[string]bool{
	"help": true, "passwd": true, "whoami": true, "logout": true, "reset": true, "exit": true, "quit": true,
}

// phoneOnly lists the commands allowed while phone verification is pending.
var phoneOnly = map[string]bool{
	"help": true, "bindphone": true, "whoami": true, "logout": true, "reset": true, "exit": true, "quit": true,
}

// runREPL starts a simple read-eval-print loop for the DeckPilot CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// While the account has a pending forced password change or phone
// verification, only the commands that resolve that state are accepted.
//
// Any errors returned by command handlers are printed and otherwise ignored;
// this keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dp> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if a.isLoggedIn() && a.mustChangePassword() && !passwdOnly[cmd] {
			printlnFn("You must change your password first. Use: passwd")
			continue
		}
		if a.isLoggedIn() && a.needPhoneVerification() && !phoneOnly[cmd] {
			printlnFn("You must verify a phone number first. Use: bindphone")
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Account:  whoami, passwd, bindphone, plans, quota, orders, reset, logout")
				printlnFn("Projects: projects, new, open <id>, delete <id>, sync, show, rename <title>, template <id>")
				printlnFn("Pages:    editpage <id>, savepage <id>, addpage, delpage <id>")
				printlnFn("Generate: outline, refine <instruction>, descriptions, pagedesc <id>, images, pageimage <id>")
				printlnFn("Export:   export pptx|pdf, exportedit, convert <pdf path>")
				printlnFn("Assets:   materials, templates, reffiles (each: list|upload|delete)")
				printlnFn("Other:    notifications, admin, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "passwd":
			err = a.ChangePassword(ctx)
		case "bindphone":
			err = a.BindPhone(ctx)
		case "reset":
			err = a.Reset(ctx)

		case "plans":
			err = a.Plans(ctx)
		case "quota":
			err = a.Quota(ctx)
		case "orders":
			err = a.Orders(ctx, args)

		case "projects":
			err = a.Projects(ctx)
		case "new":
			err = a.NewProject(ctx)
		case "open":
			err = a.Open(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "sync":
			err = a.Sync(ctx)
		case "show":
			err = a.Show(ctx)
		case "editpage":
			err = a.EditPage(ctx, args)
		case "savepage":
			err = a.SavePage(ctx, args)
		case "addpage":
			err = a.AddPage(ctx)
		case "delpage":
			err = a.DeletePage(ctx, args)
		case "template":
			err = a.SetTemplate(ctx, args)
		case "rename":
			err = a.Rename(ctx, args)

		case "outline":
			err = a.Outline(ctx)
		case "refine":
			err = a.Refine(ctx, args)
		case "descriptions":
			err = a.Descriptions(ctx)
		case "pagedesc":
			err = a.PageDescription(ctx, args)
		case "images":
			err = a.Images(ctx)
		case "pageimage":
			err = a.PageImage(ctx, args)

		case "export":
			err = a.Export(ctx, args)
		case "exportedit":
			err = a.EditableExport(ctx)
		case "convert":
			err = a.Convert(ctx, args)

		case "materials":
			err = a.Materials(ctx, args)
		case "templates":
			err = a.Templates(ctx, args)
		case "reffiles":
			err = a.RefFiles(ctx, args)
		case "notifications":
			err = a.Notifications(ctx, args)
		case "admin":
			err = a.Admin(ctx, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
