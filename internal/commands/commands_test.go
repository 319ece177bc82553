package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"

	"github.com/gerunddev/gitpick/internal/config"
	"github.com/gerunddev/gitpick/internal/git"
	"github.com/gerunddev/gitpick/internal/history"
	"github.com/gerunddev/gitpick/internal/picker"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// =============================================================================
// Fakes
// =============================================================================

// fakeGit serves canned listings and records every mutating call.
type fakeGit struct {
	current  string
	branches []git.Branch
	commits  []git.Commit
	tags     []git.Tag
	remotes  []git.Remote

	// errs maps a recorded call (e.g. "delete old") to the error it returns.
	errs  map[string]error
	calls []string

	includeRemote bool
	limit         int
}

func (f *fakeGit) do(format string, args ...any) error {
	call := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, call)
	return f.errs[call]
}

func (f *fakeGit) CurrentBranch(ctx context.Context) (string, error) { return f.current, nil }

func (f *fakeGit) Branches(ctx context.Context, includeRemote bool) ([]git.Branch, error) {
	f.includeRemote = includeRemote
	if includeRemote {
		return f.branches, nil
	}
	var local []git.Branch
	for _, b := range f.branches {
		if !b.Remote {
			local = append(local, b)
		}
	}
	return local, nil
}

func (f *fakeGit) Commits(ctx context.Context, limit int) ([]git.Commit, error) {
	f.limit = limit
	return f.commits, nil
}

func (f *fakeGit) Tags(ctx context.Context) ([]git.Tag, error)       { return f.tags, nil }
func (f *fakeGit) Remotes(ctx context.Context) ([]git.Remote, error) { return f.remotes, nil }

func (f *fakeGit) Checkout(ctx context.Context, b string) error { return f.do("checkout %s", b) }
func (f *fakeGit) CheckoutTracking(ctx context.Context, b string) error {
	return f.do("track %s", b)
}
func (f *fakeGit) CheckoutDetached(ctx context.Context, rev string) error {
	return f.do("detach %s", rev)
}
func (f *fakeGit) DeleteBranch(ctx context.Context, name string, force bool) error {
	if force {
		return f.do("force-delete %s", name)
	}
	return f.do("delete %s", name)
}
func (f *fakeGit) ResetHard(ctx context.Context, rev string) error { return f.do("reset %s", rev) }
func (f *fakeGit) Fetch(ctx context.Context, remote string) error  { return f.do("fetch %s", remote) }
func (f *fakeGit) CherryPick(ctx context.Context, rev string) error {
	return f.do("cherry-pick %s", rev)
}
func (f *fakeGit) Revert(ctx context.Context, rev string) error    { return f.do("revert %s", rev) }
func (f *fakeGit) DeleteTag(ctx context.Context, name string) error { return f.do("delete-tag %s", name) }
func (f *fakeGit) PushTag(ctx context.Context, remote, name string) error {
	return f.do("push %s %s", remote, name)
}
func (f *fakeGit) RemoveRemote(ctx context.Context, name string) error {
	return f.do("remove-remote %s", name)
}
func (f *fakeGit) Show(ctx context.Context, rev string) error { return f.do("show %s", rev) }

// fakeConfirmer answers from a queue and records the prompts.
type fakeConfirmer struct {
	answers []bool
	prompts []string
}

func (c *fakeConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	if len(c.answers) == 0 {
		return false, nil
	}
	a := c.answers[0]
	c.answers = c.answers[1:]
	return a, nil
}

// scriptedTerminal feeds key presses to the picker model.
type scriptedTerminal struct {
	keys []tea.KeyMsg
}

func (s *scriptedTerminal) Run(ctx context.Context, m tea.Model) (tea.Model, error) {
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	for _, k := range s.keys {
		var cmd tea.Cmd
		m, cmd = m.Update(k)
		if cmd != nil {
			if _, ok := cmd().(tea.QuitMsg); ok {
				break
			}
		}
	}
	return m, nil
}

func (s *scriptedTerminal) Release() error { return nil }

func keys(parts ...interface{}) []tea.KeyMsg {
	var out []tea.KeyMsg
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			for _, r := range v {
				out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			}
		case tea.KeyType:
			out = append(out, tea.KeyMsg{Type: v})
		}
	}
	return out
}

type fixture struct {
	env     *Env
	git     *fakeGit
	confirm *fakeConfirmer
	store   *history.Store
	out     *bytes.Buffer
	copied  []string
}

// newFixture returns an Env whose picker sessions play the given scripts in
// order. Sessions beyond the scripts cancel.
func newFixture(t *testing.T, sessions ...[]tea.KeyMsg) *fixture {
	t.Helper()

	store, err := history.New(":memory:")
	if err != nil {
		t.Fatalf("history.New() returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	f := &fixture{
		git: &fakeGit{
			current: "main",
			branches: []git.Branch{
				{Name: "main", Current: true},
				{Name: "feature", Date: "2 days ago", Subject: "add feature"},
				{Name: "origin/main", Remote: true},
			},
			commits: []git.Commit{
				{Hash: "aaa111full", ShortHash: "aaa111", Author: "Ada", Date: "1 hour ago", Subject: "fix parser"},
				{Hash: "bbb222full", ShortHash: "bbb222", Author: "Ada", Date: "2 hours ago", Subject: "add lexer"},
			},
			tags:    []git.Tag{{Name: "v1.1.0"}, {Name: "v1.0.0", Subject: "first"}},
			remotes: []git.Remote{{Name: "origin", URL: "git@example.com:me/repo.git"}},
			errs:    map[string]error{},
		},
		confirm: &fakeConfirmer{},
		store:   store,
		out:     &bytes.Buffer{},
	}

	cfg := config.DefaultConfig()
	cfg.Remote = "upstream"
	f.env = &Env{
		Config:  cfg,
		Git:     f.git,
		History: store,
		Repo:    "/repo",
		Confirm: f.confirm,
		Clipboard: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
		Out:    f.out,
		Output: &bytes.Buffer{},
		Getenv: func(string) string { return "" },
		Terminal: func() picker.Terminal {
			if len(sessions) == 0 {
				return &scriptedTerminal{keys: keys(tea.KeyCtrlC)}
			}
			next := sessions[0]
			sessions = sessions[1:]
			return &scriptedTerminal{keys: next}
		},
	}
	return f
}

func (f *fixture) wantCalls(t *testing.T, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, f.git.calls); diff != "" {
		t.Errorf("git calls mismatch (-want +got):\n%s", diff)
	}
}

func (f *fixture) lastAction(t *testing.T, command string) string {
	t.Helper()
	action, err := f.store.LastAction(command, "/repo")
	if errors.Is(err, history.ErrNotFound) {
		return ""
	}
	if err != nil {
		t.Fatalf("LastAction() returned error: %v", err)
	}
	return action
}

// =============================================================================
// Branch
// =============================================================================

func TestBranch_CheckoutLocal(t *testing.T) {
	f := newFixture(t, keys(tea.KeyDown, tea.KeyEnter))

	if err := f.env.Branch(context.Background(), BranchOptions{}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	f.wantCalls(t, "checkout feature")
	if !strings.Contains(f.out.String(), "Switched to branch feature") {
		t.Errorf("output = %q", f.out.String())
	}
	if got := f.lastAction(t, "branch"); got != "checkout" {
		t.Errorf("recorded action = %q, want checkout", got)
	}
}

func TestBranch_CurrentBranchOffersCopy(t *testing.T) {
	f := newFixture(t, keys(tea.KeyEnter))

	if err := f.env.Branch(context.Background(), BranchOptions{}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	f.wantCalls(t)
	if diff := cmp.Diff([]string{"main"}, f.copied); diff != "" {
		t.Errorf("copied mismatch (-want +got):\n%s", diff)
	}
}

func TestBranch_QueryFilters(t *testing.T) {
	f := newFixture(t, keys(tea.KeyEnter))

	if err := f.env.Branch(context.Background(), BranchOptions{Query: "feat"}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	f.wantCalls(t, "checkout feature")
}

func TestBranch_DeleteConfirmed(t *testing.T) {
	f := newFixture(t, keys("feat", tea.KeyRight, tea.KeyRight, tea.KeyEnter))
	f.confirm.answers = []bool{true}

	if err := f.env.Branch(context.Background(), BranchOptions{}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	f.wantCalls(t, "delete feature")
	if diff := cmp.Diff([]string{"Delete branch feature?"}, f.confirm.prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestBranch_DeleteDeclined(t *testing.T) {
	f := newFixture(t, keys("feat", tea.KeyRight, tea.KeyRight, tea.KeyEnter))
	f.confirm.answers = []bool{false}

	err := f.env.Branch(context.Background(), BranchOptions{})
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("Branch() error = %v, want ErrDeclined", err)
	}
	f.wantCalls(t)
	if got := f.lastAction(t, "branch"); got != "" {
		t.Errorf("declined action was recorded as %q", got)
	}
}

func TestBranch_DeleteUnmergedAsksToForce(t *testing.T) {
	f := newFixture(t, keys("feat", tea.KeyRight, tea.KeyRight, tea.KeyEnter))
	f.confirm.answers = []bool{true, true}
	f.git.errs["delete feature"] = errors.New("git branch failed: error: the branch 'feature' is not fully merged")

	if err := f.env.Branch(context.Background(), BranchOptions{}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	f.wantCalls(t, "delete feature", "force-delete feature")
	if len(f.confirm.prompts) != 2 {
		t.Errorf("prompts = %v, want two", f.confirm.prompts)
	}
}

func TestBranch_GitErrorPropagates(t *testing.T) {
	f := newFixture(t, keys(tea.KeyDown, tea.KeyEnter))
	boom := errors.New("checkout conflict")
	f.git.errs["checkout feature"] = boom

	if err := f.env.Branch(context.Background(), BranchOptions{}); !errors.Is(err, boom) {
		t.Fatalf("Branch() error = %v, want %v", err, boom)
	}
}

func TestBranch_RemoteActions(t *testing.T) {
	tests := []struct {
		name    string
		keys    []tea.KeyMsg
		answers []bool
		want    []string
	}{
		{"checkout tracking", keys("origin", tea.KeyEnter), nil, []string{"track origin/main"}},
		{"reset confirmed", keys("origin", tea.KeyRight, tea.KeyEnter), []bool{true}, []string{"reset origin/main"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.keys)
			f.confirm.answers = tt.answers

			if err := f.env.Branch(context.Background(), BranchOptions{IncludeRemote: true}); err != nil {
				t.Fatalf("Branch() returned error: %v", err)
			}
			if !f.git.includeRemote {
				t.Error("remote branches were not requested")
			}
			f.wantCalls(t, tt.want...)
		})
	}
}

func TestBranch_FetchWithoutMatch(t *testing.T) {
	f := newFixture(t, keys("zzz", tea.KeyEnter))

	if err := f.env.Branch(context.Background(), BranchOptions{}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	f.wantCalls(t, "fetch ")
	if got := f.lastAction(t, "branch"); got != "fetch" {
		t.Errorf("recorded action = %q, want fetch", got)
	}
}

func TestBranch_DefaultActionFromHistory(t *testing.T) {
	f := newFixture(t, keys(tea.KeyEnter))
	if err := f.store.Record(&history.Entry{Command: "branch", Action: "copy", Item: "x", Repo: "/repo"}); err != nil {
		t.Fatal(err)
	}

	if err := f.env.Branch(context.Background(), BranchOptions{Query: "feat"}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	f.wantCalls(t)
	if diff := cmp.Diff([]string{"feature"}, f.copied); diff != "" {
		t.Errorf("copied mismatch (-want +got):\n%s", diff)
	}
}

func TestBranch_Cancel(t *testing.T) {
	f := newFixture(t, keys(tea.KeyCtrlC))

	err := f.env.Branch(context.Background(), BranchOptions{})
	if !errors.Is(err, picker.ErrCancelled) {
		t.Fatalf("Branch() error = %v, want ErrCancelled", err)
	}
	f.wantCalls(t)
}

func TestBranch_Empty(t *testing.T) {
	f := newFixture(t)
	f.git.branches = nil

	if err := f.env.Branch(context.Background(), BranchOptions{}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	if !strings.Contains(f.out.String(), "No branches found") {
		t.Errorf("output = %q", f.out.String())
	}
}

func TestBranch_BackOnlyWhenAllowed(t *testing.T) {
	f := newFixture(t, keys(tea.KeyEsc))
	if err := f.env.Branch(context.Background(), BranchOptions{AllowBack: true}); !errors.Is(err, ErrBack) {
		t.Fatalf("Branch() error = %v, want ErrBack", err)
	}
}

func TestRenderBranch(t *testing.T) {
	tests := []struct {
		b    git.Branch
		want string
	}{
		{git.Branch{Name: "main", Current: true}, "* main"},
		{git.Branch{Name: "feat", Date: "now", Subject: "wip"}, "  feat  now · wip"},
	}
	for _, tt := range tests {
		if got := renderBranch(tt.b); got != tt.want {
			t.Errorf("renderBranch(%+v) = %q, want %q", tt.b, got, tt.want)
		}
	}
}

// =============================================================================
// Log
// =============================================================================

func TestLog_Actions(t *testing.T) {
	tests := []struct {
		name    string
		keys    []tea.KeyMsg
		answers []bool
		want    []string
		wantErr error
	}{
		{"show", keys(tea.KeyEnter), nil, []string{"show aaa111full"}, nil},
		{"checkout", keys(tea.KeyRight, tea.KeyEnter), nil, []string{"detach aaa111full"}, nil},
		{"cherry-pick", keys("lexer", tea.KeyRight, tea.KeyRight, tea.KeyRight, tea.KeyEnter), nil, []string{"cherry-pick bbb222full"}, nil},
		{"revert confirmed", keys(tea.KeyRight, tea.KeyRight, tea.KeyRight, tea.KeyRight, tea.KeyEnter), []bool{true}, []string{"revert aaa111full"}, nil},
		{"revert declined", keys(tea.KeyRight, tea.KeyRight, tea.KeyRight, tea.KeyRight, tea.KeyEnter), []bool{false}, nil, ErrDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.keys)
			f.confirm.answers = tt.answers

			err := f.env.Log(context.Background(), LogOptions{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Log() error = %v, want %v", err, tt.wantErr)
			}
			f.wantCalls(t, tt.want...)
		})
	}
}

func TestLog_CopyHash(t *testing.T) {
	f := newFixture(t, keys(tea.KeyRight, tea.KeyRight, tea.KeyEnter))

	if err := f.env.Log(context.Background(), LogOptions{}); err != nil {
		t.Fatalf("Log() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"aaa111full"}, f.copied); diff != "" {
		t.Errorf("copied mismatch (-want +got):\n%s", diff)
	}
}

func TestLog_Limit(t *testing.T) {
	f := newFixture(t, keys(tea.KeyEnter), keys(tea.KeyEnter))

	if err := f.env.Log(context.Background(), LogOptions{}); err != nil {
		t.Fatalf("Log() returned error: %v", err)
	}
	if f.git.limit != 50 {
		t.Errorf("limit = %d, want configured 50", f.git.limit)
	}

	if err := f.env.Log(context.Background(), LogOptions{Limit: 5}); err != nil {
		t.Fatalf("Log() returned error: %v", err)
	}
	if f.git.limit != 5 {
		t.Errorf("limit = %d, want 5", f.git.limit)
	}
}

func TestLog_SearchByHash(t *testing.T) {
	f := newFixture(t, keys("bbb", tea.KeyEnter))

	if err := f.env.Log(context.Background(), LogOptions{}); err != nil {
		t.Fatalf("Log() returned error: %v", err)
	}
	f.wantCalls(t, "show bbb222full")
}

// =============================================================================
// Tag and Remote
// =============================================================================

func TestTag_Actions(t *testing.T) {
	tests := []struct {
		name    string
		keys    []tea.KeyMsg
		answers []bool
		want    []string
	}{
		{"checkout", keys(tea.KeyEnter), nil, []string{"detach v1.1.0"}},
		{"push to configured remote", keys(tea.KeyRight, tea.KeyRight, tea.KeyEnter), nil, []string{"push upstream v1.1.0"}},
		{"delete", keys("1.0", tea.KeyRight, tea.KeyRight, tea.KeyRight, tea.KeyEnter), []bool{true}, []string{"delete-tag v1.0.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.keys)
			f.confirm.answers = tt.answers

			if err := f.env.Tag(context.Background(), TagOptions{}); err != nil {
				t.Fatalf("Tag() returned error: %v", err)
			}
			f.wantCalls(t, tt.want...)
		})
	}
}

func TestRemote_Actions(t *testing.T) {
	f := newFixture(t, keys(tea.KeyEnter))
	if err := f.env.Remote(context.Background(), RemoteOptions{}); err != nil {
		t.Fatalf("Remote() returned error: %v", err)
	}
	f.wantCalls(t, "fetch origin")

	f = newFixture(t, keys(tea.KeyRight, tea.KeyEnter))
	if err := f.env.Remote(context.Background(), RemoteOptions{}); err != nil {
		t.Fatalf("Remote() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"git@example.com:me/repo.git"}, f.copied); diff != "" {
		t.Errorf("copied mismatch (-want +got):\n%s", diff)
	}

	f = newFixture(t, keys(tea.KeyRight, tea.KeyRight, tea.KeyEnter))
	f.confirm.answers = []bool{true}
	if err := f.env.Remote(context.Background(), RemoteOptions{}); err != nil {
		t.Fatalf("Remote() returned error: %v", err)
	}
	f.wantCalls(t, "remove-remote origin")
}

func TestCopy_ClipboardUnavailable(t *testing.T) {
	f := newFixture(t, keys(tea.KeyRight, tea.KeyEnter))
	f.env.Clipboard = nil

	if err := f.env.Remote(context.Background(), RemoteOptions{}); err == nil {
		t.Fatal("Remote() should fail without a clipboard")
	}
}

// =============================================================================
// History
// =============================================================================

func TestShowHistory_Disabled(t *testing.T) {
	f := newFixture(t)
	f.env.History = nil

	if err := f.env.ShowHistory(context.Background(), HistoryOptions{}); !errors.Is(err, ErrHistoryDisabled) {
		t.Fatalf("ShowHistory() error = %v, want ErrHistoryDisabled", err)
	}
}

func TestShowHistory_CopyAndClear(t *testing.T) {
	f := newFixture(t, keys(tea.KeyEnter), keys(tea.KeyRight, tea.KeyRight, tea.KeyEnter))
	f.confirm.answers = []bool{true}
	for _, item := range []string{"main", "feature"} {
		if err := f.store.Record(&history.Entry{Command: "branch", Action: "checkout", Item: item, Repo: "/repo"}); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.env.ShowHistory(context.Background(), HistoryOptions{}); err != nil {
		t.Fatalf("ShowHistory() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"feature"}, f.copied); diff != "" {
		t.Errorf("copied mismatch (-want +got):\n%s", diff)
	}

	if err := f.env.ShowHistory(context.Background(), HistoryOptions{}); err != nil {
		t.Fatalf("ShowHistory() returned error: %v", err)
	}
	entries, err := f.store.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("history has %d entries after clear", len(entries))
	}
}

func TestShowHistory_RemoveEntry(t *testing.T) {
	f := newFixture(t, keys(tea.KeyRight, tea.KeyEnter))
	for _, item := range []string{"main", "feature"} {
		if err := f.store.Record(&history.Entry{Command: "branch", Action: "checkout", Item: item, Repo: "/repo"}); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.env.ShowHistory(context.Background(), HistoryOptions{}); err != nil {
		t.Fatalf("ShowHistory() returned error: %v", err)
	}

	entries, err := f.store.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	var items []string
	for _, e := range entries {
		items = append(items, e.Item)
	}
	if diff := cmp.Diff([]string{"main"}, items); diff != "" {
		t.Errorf("remaining entries mismatch (-want +got):\n%s", diff)
	}
	if len(f.confirm.prompts) != 0 {
		t.Errorf("removing one entry asked for confirmation: %v", f.confirm.prompts)
	}
	if !strings.Contains(f.out.String(), "Removed checkout feature") {
		t.Errorf("output = %q", f.out.String())
	}
}

func TestShowHistory_RemoveMissingEntry(t *testing.T) {
	f := newFixture(t, keys(tea.KeyRight, tea.KeyEnter))
	entry := &history.Entry{Command: "tag", Action: "push", Item: "v1.0.0", Repo: "/repo"}
	if err := f.store.Record(entry); err != nil {
		t.Fatal(err)
	}
	f.env.History = staleHistory{f.store}

	err := f.env.ShowHistory(context.Background(), HistoryOptions{})
	if !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("ShowHistory() error = %v, want ErrNotFound", err)
	}
}

// staleHistory is cleared by another process right after it is listed.
type staleHistory struct {
	*history.Store
}

func (s staleHistory) Recent(limit int) ([]*history.Entry, error) {
	entries, err := s.Store.Recent(limit)
	if err != nil {
		return nil, err
	}
	if _, err := s.Store.Clear(); err != nil {
		return nil, err
	}
	return entries, nil
}

func TestShowHistory_Empty(t *testing.T) {
	f := newFixture(t)
	if err := f.env.ShowHistory(context.Background(), HistoryOptions{}); err != nil {
		t.Fatalf("ShowHistory() returned error: %v", err)
	}
	if !strings.Contains(f.out.String(), "History is empty") {
		t.Errorf("output = %q", f.out.String())
	}
}

// =============================================================================
// Menu
// =============================================================================

func TestMenu_OpensCommand(t *testing.T) {
	f := newFixture(t,
		keys("log", tea.KeyEnter),
		keys(tea.KeyEnter),
	)

	if err := f.env.Menu(context.Background()); err != nil {
		t.Fatalf("Menu() returned error: %v", err)
	}
	f.wantCalls(t, "show aaa111full")
}

func TestMenu_BackReturnsToMenu(t *testing.T) {
	f := newFixture(t,
		keys("tag", tea.KeyEnter),
		keys(tea.KeyEsc),
		keys("remote", tea.KeyEnter),
		keys(tea.KeyEnter),
	)

	if err := f.env.Menu(context.Background()); err != nil {
		t.Fatalf("Menu() returned error: %v", err)
	}
	f.wantCalls(t, "fetch origin")
}

func TestMenu_Cancel(t *testing.T) {
	f := newFixture(t, keys(tea.KeyCtrlC))

	if err := f.env.Menu(context.Background()); !errors.Is(err, picker.ErrCancelled) {
		t.Fatalf("Menu() error = %v, want ErrCancelled", err)
	}
}

func TestMenu_HistoryEntryDependsOnStore(t *testing.T) {
	f := newFixture(t)
	if got := len(f.env.menuEntries()); got != 5 {
		t.Errorf("menu has %d entries, want 5", got)
	}
	f.env.History = nil
	if got := len(f.env.menuEntries()); got != 4 {
		t.Errorf("menu without history has %d entries, want 4", got)
	}
}

// =============================================================================
// Non-interactive
// =============================================================================

func TestBranch_NonInteractivePrintsPreview(t *testing.T) {
	f := newFixture(t)
	f.env.Terminal = nil
	f.env.Getenv = func(k string) string {
		if k == "CI" {
			return "1"
		}
		return ""
	}
	var preview bytes.Buffer
	f.env.Output = &preview

	if err := f.env.Branch(context.Background(), BranchOptions{}); err != nil {
		t.Fatalf("Branch() returned error: %v", err)
	}
	f.wantCalls(t)
	if !strings.Contains(preview.String(), "> * main") {
		t.Errorf("preview = %q", preview.String())
	}
}
