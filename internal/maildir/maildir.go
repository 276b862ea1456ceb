// Package maildir inspects an Apple Mail directory tree on disk: the
// per-account folders under a version directory (e.g. ~/Library/Mail/V10)
// and the mailbox directories inside them.
package maildir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

// Account is one account folder under the Mail version directory.
type Account struct {
	// Name is the folder name. In modern layouts this is the account's
	// UUID; legacy layouts use readable names like "IMAP-user@host".
	Name string

	// DisplayName is read from the account's Info.plist when present.
	// Best-effort; empty when the plist is missing or unreadable.
	DisplayName string

	// MailboxCount is the number of .mbox/.imapmbox directories directly
	// inside the account folder.
	MailboxCount int
}

// ListAccounts returns the account folders under a version directory,
// sorted by name. Hidden entries and plain files are skipped.
func ListAccounts(versionDir string) ([]Account, error) {
	entries, err := os.ReadDir(versionDir)
	if err != nil {
		return nil, fmt.Errorf("read version dir: %w", err)
	}

	var accounts []Account
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dir := filepath.Join(versionDir, e.Name())
		accounts = append(accounts, Account{
			Name:         e.Name(),
			DisplayName:  readDisplayName(dir),
			MailboxCount: countMailboxes(dir),
		})
	}
	return accounts, nil
}

// accountInfo is the subset of an account Info.plist we care about.
type accountInfo struct {
	DisplayName string `plist:"DisplayName"`
	AccountName string `plist:"AccountName"`
}

// readDisplayName reads the account display name from Info.plist.
// Returns "" when the file is absent or malformed.
func readDisplayName(accountDir string) string {
	data, err := os.ReadFile(filepath.Join(accountDir, "Info.plist"))
	if err != nil {
		return ""
	}

	var info accountInfo
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return ""
	}
	if info.DisplayName != "" {
		return info.DisplayName
	}
	return info.AccountName
}

// countMailboxes counts mailbox directories directly inside an account
// folder.
func countMailboxes(accountDir string) int {
	entries, err := os.ReadDir(accountDir)
	if err != nil {
		return 0
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() && isMailboxName(e.Name()) {
			n++
		}
	}
	return n
}

// isMailboxName reports whether a directory name looks like an Apple Mail
// mailbox (.mbox or .imapmbox suffix).
func isMailboxName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".mbox") || strings.HasSuffix(lower, ".imapmbox")
}
