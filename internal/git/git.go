// Package git provides a wrapper for the git CLI: listing refs, commits and
// remotes, and the handful of mutating commands the pickers offer.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Error types for git operations.
var (
	// ErrNotRepo is returned when the working directory is not inside a git repository.
	ErrNotRepo = errors.New("not a git repository")
	// ErrCommandNotFound is returned when the git binary is not found in PATH.
	ErrCommandNotFound = errors.New("git command not found")
)

// CommandRunner is the function type used to execute commands whose output
// is captured. It can be replaced in tests to mock command execution.
type CommandRunner func(ctx context.Context, dir string, name string, args ...string) (string, string, error)

// AttachedRunner runs a command connected to the user's terminal, for
// commands that page their output.
type AttachedRunner func(ctx context.Context, dir string, name string, args ...string) error

// defaultCommandRunner executes a command using exec.CommandContext.
func defaultCommandRunner(ctx context.Context, dir string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func defaultAttachedRunner(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Client wraps the git CLI.
type Client struct {
	workDir        string
	commandRunner  CommandRunner
	attachedRunner AttachedRunner
}

// NewClient creates a new git CLI client bound to the specified working directory.
func NewClient(workDir string) *Client {
	return &Client{
		workDir:        workDir,
		commandRunner:  defaultCommandRunner,
		attachedRunner: defaultAttachedRunner,
	}
}

// SetCommandRunner allows setting a custom command runner (for testing).
func (c *Client) SetCommandRunner(runner CommandRunner) {
	c.commandRunner = runner
}

// SetAttachedRunner allows setting a custom attached runner (for testing).
func (c *Client) SetAttachedRunner(runner AttachedRunner) {
	c.attachedRunner = runner
}

// runCommand executes a git command and returns its stdout.
func (c *Client) runCommand(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := c.commandRunner(ctx, c.workDir, "git", args...)
	if err != nil {
		return "", c.wrapError(args[0], stderr, err)
	}
	return stdout, nil
}

// wrapError converts exec errors into appropriate git error types.
func (c *Client) wrapError(subCommand string, stderr string, err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		if errors.Is(execErr.Err, exec.ErrNotFound) {
			return ErrCommandNotFound
		}
	}

	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}

	if strings.Contains(strings.ToLower(stderr), "not a git repository") {
		return ErrNotRepo
	}

	return fmt.Errorf("git %s failed: %s: %w", subCommand, strings.TrimSpace(stderr), err)
}

// fieldSep separates fields in the formats below. git expands %00 (for-each-ref)
// and %x00 (log) to a NUL byte, which cannot appear in ref names or subjects.
const fieldSep = "\x00"

// Branch is a local or remote-tracking branch.
type Branch struct {
	Name     string
	Remote   bool
	Current  bool
	Upstream string
	// Date is the relative committer date of the tip, e.g. "2 days ago".
	Date    string
	Subject string
}

// Commit is one entry of the history.
type Commit struct {
	Hash      string
	ShortHash string
	Author    string
	Date      string
	Subject   string
}

// Tag is a tag with the subject of its annotation or target commit.
type Tag struct {
	Name    string
	Subject string
}

// Remote is a configured remote and its fetch URL.
type Remote struct {
	Name string
	URL  string
}

// RepoRoot returns the absolute path of the top-level directory of the
// working tree.
func (c *Client) RepoRoot(ctx context.Context) (string, error) {
	out, err := c.runCommand(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the checked out branch, or "" when HEAD is detached.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.runCommand(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(out)
	if name == "HEAD" {
		return "", nil
	}
	return name, nil
}

// Branches lists local branches, most recently committed first, followed by
// remote-tracking branches when includeRemote is set.
func (c *Client) Branches(ctx context.Context, includeRemote bool) ([]Branch, error) {
	args := []string{
		"for-each-ref",
		"--sort=-committerdate",
		"--format=%(HEAD)%00%(refname)%00%(refname:short)%00%(upstream:short)%00%(committerdate:relative)%00%(contents:subject)",
		"refs/heads",
	}
	if includeRemote {
		args = append(args, "refs/remotes")
	}
	out, err := c.runCommand(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseBranches(out), nil
}

func parseBranches(out string) []Branch {
	var local, remote []Branch
	for _, line := range lines(out) {
		f := strings.SplitN(line, fieldSep, 6)
		if len(f) < 6 {
			continue
		}
		ref := f[1]
		isRemote := strings.HasPrefix(ref, "refs/remotes/")
		// The symbolic origin/HEAD is not a branch.
		if isRemote && strings.HasSuffix(ref, "/HEAD") {
			continue
		}
		b := Branch{
			Name:     f[2],
			Remote:   isRemote,
			Current:  f[0] == "*",
			Upstream: f[3],
			Date:     f[4],
			Subject:  f[5],
		}
		if isRemote {
			remote = append(remote, b)
		} else {
			local = append(local, b)
		}
	}
	return append(local, remote...)
}

// Commits returns up to limit commits reachable from HEAD, newest first.
func (c *Client) Commits(ctx context.Context, limit int) ([]Commit, error) {
	args := []string{"log", "--format=%H%x00%h%x00%an%x00%ar%x00%s"}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	out, err := c.runCommand(ctx, args...)
	if err != nil {
		// A repository without commits has nothing to list.
		if strings.Contains(err.Error(), "does not have any commits") {
			return nil, nil
		}
		return nil, err
	}

	var commits []Commit
	for _, line := range lines(out) {
		f := strings.SplitN(line, fieldSep, 5)
		if len(f) < 5 {
			continue
		}
		commits = append(commits, Commit{
			Hash:      f[0],
			ShortHash: f[1],
			Author:    f[2],
			Date:      f[3],
			Subject:   f[4],
		})
	}
	return commits, nil
}

// Tags lists tags, newest first.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	out, err := c.runCommand(ctx,
		"for-each-ref",
		"--sort=-creatordate",
		"--format=%(refname:short)%00%(contents:subject)",
		"refs/tags",
	)
	if err != nil {
		return nil, err
	}

	var tags []Tag
	for _, line := range lines(out) {
		name, subject, _ := strings.Cut(line, fieldSep)
		tags = append(tags, Tag{Name: name, Subject: subject})
	}
	return tags, nil
}

// Remotes lists configured remotes with their fetch URLs.
func (c *Client) Remotes(ctx context.Context) ([]Remote, error) {
	out, err := c.runCommand(ctx, "remote", "-v")
	if err != nil {
		return nil, err
	}

	var remotes []Remote
	for _, line := range lines(out) {
		// origin	git@example.com:repo.git (fetch)
		f := strings.Fields(line)
		if len(f) != 3 || f[2] != "(fetch)" {
			continue
		}
		remotes = append(remotes, Remote{Name: f[0], URL: f[1]})
	}
	return remotes, nil
}

// Checkout switches to the given branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	_, err := c.runCommand(ctx, "checkout", branch)
	return err
}

// CheckoutTracking creates a local branch tracking the remote-tracking
// branch remoteBranch (e.g. "origin/feature") and switches to it.
func (c *Client) CheckoutTracking(ctx context.Context, remoteBranch string) error {
	_, err := c.runCommand(ctx, "checkout", "--track", remoteBranch)
	return err
}

// CheckoutDetached checks out rev with a detached HEAD.
func (c *Client) CheckoutDetached(ctx context.Context, rev string) error {
	_, err := c.runCommand(ctx, "checkout", "--detach", rev)
	return err
}

// DeleteBranch deletes a local branch. Unless force is set git refuses to
// delete a branch that is not fully merged.
func (c *Client) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := c.runCommand(ctx, "branch", flag, name)
	return err
}

// ResetHard resets the current branch and working tree to rev.
func (c *Client) ResetHard(ctx context.Context, rev string) error {
	_, err := c.runCommand(ctx, "reset", "--hard", rev)
	return err
}

// Fetch fetches from remote, or from all remotes when remote is empty.
func (c *Client) Fetch(ctx context.Context, remote string) error {
	args := []string{"fetch", "--prune"}
	if remote == "" {
		args = append(args, "--all")
	} else {
		args = append(args, remote)
	}
	_, err := c.runCommand(ctx, args...)
	return err
}

// CherryPick applies the commit rev on top of HEAD.
func (c *Client) CherryPick(ctx context.Context, rev string) error {
	_, err := c.runCommand(ctx, "cherry-pick", rev)
	return err
}

// Revert creates a commit undoing rev.
func (c *Client) Revert(ctx context.Context, rev string) error {
	_, err := c.runCommand(ctx, "revert", "--no-edit", rev)
	return err
}

// DeleteTag deletes a local tag.
func (c *Client) DeleteTag(ctx context.Context, name string) error {
	_, err := c.runCommand(ctx, "tag", "-d", name)
	return err
}

// PushTag pushes a single tag to remote.
func (c *Client) PushTag(ctx context.Context, remote, name string) error {
	_, err := c.runCommand(ctx, "push", remote, "refs/tags/"+name)
	return err
}

// RemoveRemote removes a remote and its remote-tracking branches.
func (c *Client) RemoveRemote(ctx context.Context, name string) error {
	_, err := c.runCommand(ctx, "remote", "remove", name)
	return err
}

// Show displays rev with git's pager, attached to the terminal.
func (c *Client) Show(ctx context.Context, rev string) error {
	if err := c.attachedRunner(ctx, c.workDir, "git", "show", rev); err != nil {
		return c.wrapError("show", "", err)
	}
	return nil
}

// lines splits command output into non-empty lines.
func lines(out string) []string {
	var result []string
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimRight(l, "\r")
		if l != "" {
			result = append(result, l)
		}
	}
	return result
}
