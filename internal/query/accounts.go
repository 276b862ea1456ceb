package query

import (
	"context"

	"github.com/envmail/envmail/internal/maildir"
)

// ListAccounts reports the mail accounts found in the configured Mail
// version directory. A missing version directory is reported in the text,
// never raised: the common cause is a wrong mail.version setting.
func (e *EnvelopeEngine) ListAccounts(ctx context.Context) (string, error) {
	_ = ctx // filesystem-only operation

	var r report

	accounts, err := maildir.ListAccounts(e.cfg.VersionDir())
	if err != nil {
		r.addf("No %s mail directory found", e.cfg.Mail.Version)
		r.addf("Searched in: %s", e.cfg.Mail.Directory)
		r.add("Try updating mail.version in the configuration (common values: V10, V9, V8)")
		return r.String(), nil
	}

	r.addf("Mail accounts found in %s:", e.cfg.Mail.Version)
	for _, acc := range accounts {
		switch {
		case acc.DisplayName != "" && acc.MailboxCount > 0:
			r.addf("  - %s (%s, %d mailboxes)", acc.Name, acc.DisplayName, acc.MailboxCount)
		case acc.DisplayName != "":
			r.addf("  - %s (%s)", acc.Name, acc.DisplayName)
		case acc.MailboxCount > 0:
			r.addf("  - %s (%d mailboxes)", acc.Name, acc.MailboxCount)
		default:
			r.addf("  - %s", acc.Name)
		}
	}
	return r.String(), nil
}
