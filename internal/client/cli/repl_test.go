package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn    bool
	forcePasswd bool
	forcePhone  bool

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool            { return f.loggedIn }
func (f *fakeExec) mustChangePassword() bool    { return f.forcePasswd }
func (f *fakeExec) needPhoneVerification() bool { return f.forcePhone }

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami") }
func (f *fakeExec) ChangePassword(context.Context) error {
	f.forcePasswd = false
	return f.record("passwd")
}
func (f *fakeExec) BindPhone(context.Context) error {
	f.forcePhone = false
	return f.record("bindphone")
}
func (f *fakeExec) Reset(context.Context) error {
	f.loggedIn = false
	return f.record("reset")
}

func (f *fakeExec) Plans(context.Context) error                { return f.record("plans") }
func (f *fakeExec) Quota(context.Context) error                { return f.record("quota") }
func (f *fakeExec) Orders(_ context.Context, _ []string) error { return f.record("orders") }

func (f *fakeExec) Projects(context.Context) error             { return f.record("projects") }
func (f *fakeExec) NewProject(context.Context) error           { return f.record("new") }
func (f *fakeExec) Open(_ context.Context, _ []string) error   { return f.record("open") }
func (f *fakeExec) Delete(_ context.Context, _ []string) error { return f.record("delete") }
func (f *fakeExec) Sync(context.Context) error                 { return f.record("sync") }
func (f *fakeExec) Show(context.Context) error                 { return f.record("show") }
func (f *fakeExec) EditPage(_ context.Context, _ []string) error { return f.record("editpage") }
func (f *fakeExec) SavePage(_ context.Context, _ []string) error { return f.record("savepage") }
func (f *fakeExec) AddPage(context.Context) error              { return f.record("addpage") }
func (f *fakeExec) DeletePage(_ context.Context, _ []string) error { return f.record("delpage") }
func (f *fakeExec) SetTemplate(_ context.Context, _ []string) error { return f.record("template") }
func (f *fakeExec) Rename(_ context.Context, _ []string) error { return f.record("rename") }

func (f *fakeExec) Outline(context.Context) error              { return f.record("outline") }
func (f *fakeExec) Refine(_ context.Context, _ []string) error { return f.record("refine") }
func (f *fakeExec) Descriptions(context.Context) error         { return f.record("descriptions") }
func (f *fakeExec) PageDescription(_ context.Context, _ []string) error {
	return f.record("pagedesc")
}
func (f *fakeExec) Images(context.Context) error                  { return f.record("images") }
func (f *fakeExec) PageImage(_ context.Context, _ []string) error { return f.record("pageimage") }

func (f *fakeExec) Export(_ context.Context, _ []string) error { return f.record("export") }
func (f *fakeExec) EditableExport(context.Context) error       { return f.record("exportedit") }
func (f *fakeExec) Convert(_ context.Context, _ []string) error { return f.record("convert") }

func (f *fakeExec) Materials(_ context.Context, _ []string) error { return f.record("materials") }
func (f *fakeExec) Templates(_ context.Context, _ []string) error { return f.record("templates") }
func (f *fakeExec) RefFiles(_ context.Context, _ []string) error  { return f.record("reffiles") }
func (f *fakeExec) Notifications(_ context.Context, _ []string) error {
	return f.record("notifications")
}
func (f *fakeExec) Admin(_ context.Context, _ []string) error { return f.record("admin") }

func silencePrintln(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"open p1",
		"show",
		"outline",
		"images",
		"sync",
		"export pptx",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "open", "show", "outline", "images", "sync", "export"}
	if len(exec.calls) != len(wantOrder) {
		t.Fatalf("calls mismatch: %+v", exec.calls)
	}
	for i, want := range wantOrder {
		if exec.calls[i] != want {
			t.Fatalf("call %d = %q, want %q (%+v)", i, exec.calls[i], want, exec.calls)
		}
	}
}

func TestRunREPL_MembershipAndProjectCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"plans",
		"quota",
		"orders",
		"orders new plan-1",
		"delete p1",
		"reset",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"plans", "quota", "orders", "orders", "delete", "reset"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: %+v", exec.calls)
	}
	for i, w := range want {
		if exec.calls[i] != w {
			t.Fatalf("call %d = %q, want %q", i, exec.calls[i], w)
		}
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader(""))

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("no commands expected, got %+v", exec.calls)
	}
}

func TestRunREPL_PasswordGateBlocksCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"projects", // blocked
		"images",   // blocked
		"whoami",   // allowed
		"passwd",   // allowed, clears the gate
		"projects", // now allowed
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true, forcePasswd: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"whoami", "passwd", "projects"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: %+v", exec.calls)
	}
	for i, w := range want {
		if exec.calls[i] != w {
			t.Fatalf("call %d = %q, want %q", i, exec.calls[i], w)
		}
	}
}

func TestRunREPL_PhoneGateBlocksCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"sync",      // blocked
		"bindphone", // allowed, clears the gate
		"sync",      // now allowed
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true, forcePhone: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"bindphone", "sync"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: %+v", exec.calls)
	}
	for i, w := range want {
		if exec.calls[i] != w {
			t.Fatalf("call %d = %q, want %q", i, exec.calls[i], w)
		}
	}
}

func TestRunREPL_GatesIgnoredWhenLoggedOut(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("register\nexit\n")

	exec := &fakeExec{loggedIn: false, forcePasswd: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "register" {
		t.Fatalf("calls mismatch: %+v", exec.calls)
	}
}
