package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/platform/config"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
	"github.com/SscSPs/multicurrency_ledger/pkg/database"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

func commands(open opener, logger *slog.Logger) []subcommands.Command {
	return []subcommands.Command{
		&runDueCmd{open: open, out: os.Stdout, now: time.Now},
		&listPendingCmd{open: open, out: os.Stdout},
		&approveCmd{open: open, out: os.Stdout},
		&fundReserveCmd{open: open, out: os.Stdout},
		&createSubAccountCmd{open: open, out: os.Stdout},
		&migrateCmd{logger: logger},
	}
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type runDueCmd struct {
	open   opener
	out    io.Writer
	now    func() time.Time
	date   string
	asJSON bool
}

func (*runDueCmd) Name() string     { return "run-due" }
func (*runDueCmd) Synopsis() string { return "execute every scheduled transfer due on a date" }
func (*runDueCmd) Usage() string {
	return `ledgerctl run-due [-date YYYY-MM-DD] [-json]

  Runs the scheduler batch once. Each due transfer is attempted independently;
  failures are alerted and reported but do not change the exit status. The
  command fails only when the due list cannot be loaded.
`
}

func (c *runDueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "run date, defaults to today (UTC)")
	f.BoolVar(&c.asJSON, "json", false, "print the batch report as JSON")
}

func (c *runDueCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	runDate := domain.TruncateToDate(c.now().UTC())
	if c.date != "" {
		d, err := domain.ParseDate(c.date)
		if err != nil {
			return fail("invalid -date %q: expected YYYY-MM-DD", c.date)
		}
		runDate = d
	}

	svc, closeFn, err := c.open(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer closeFn()

	report, err := svc.Scheduler.RunDueTransfers(ctx, runDate)
	if err != nil {
		return fail("failed to load due transfers: %v", err)
	}

	if c.asJSON {
		if err := writeJSON(c.out, report); err != nil {
			return fail("%v", err)
		}
		return subcommands.ExitSuccess
	}

	fmt.Fprintf(c.out, "%s: %d due, %d succeeded, %d failed\n",
		report.RunDate.Format(time.DateOnly), report.Due, report.Succeeded, report.Failed)
	for _, o := range report.Outcomes {
		switch {
		case o.Succeeded() && o.NextScheduledDate != nil:
			fmt.Fprintf(c.out, "  ok    %s next %s\n", o.ScheduledTransferID, o.NextScheduledDate.Format(time.DateOnly))
		case o.Succeeded():
			fmt.Fprintf(c.out, "  ok    %s\n", o.ScheduledTransferID)
		default:
			fmt.Fprintf(c.out, "  FAIL  %s %s\n", o.ScheduledTransferID, o.Error)
		}
	}
	return subcommands.ExitSuccess
}

type listPendingCmd struct {
	open   opener
	out    io.Writer
	asJSON bool
}

func (*listPendingCmd) Name() string     { return "list-pending" }
func (*listPendingCmd) Synopsis() string { return "list staged top-ups awaiting approval" }
func (*listPendingCmd) Usage() string {
	return `ledgerctl list-pending [-json]
`
}

func (c *listPendingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print JSON instead of a table")
}

func (c *listPendingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeFn, err := c.open(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer closeFn()

	pending, err := svc.TopUp.ListPending(ctx)
	if err != nil {
		return fail("failed to list pending top-ups: %v", err)
	}

	if c.asJSON {
		if err := writeJSON(c.out, dto.ToListPendingTopUpResponse(pending)); err != nil {
			return fail("%v", err)
		}
		return subcommands.ExitSuccess
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tACCOUNT\tAMOUNT\tSTAGED")
	for _, p := range pending {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.PendingTopUpID, p.AccountID,
			utils.FormatMoney(p.Amount, p.CurrencyCode), p.CreatedAt.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

type approveCmd struct {
	open opener
	out  io.Writer
}

func (*approveCmd) Name() string     { return "approve" }
func (*approveCmd) Synopsis() string { return "approve a staged top-up, funding it from the reserve" }
func (*approveCmd) Usage() string {
	return `ledgerctl approve <pending-topup-id>
`
}

func (*approveCmd) SetFlags(*flag.FlagSet) {}

func (c *approveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return subcommands.ExitUsageError
	}

	svc, closeFn, err := c.open(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer closeFn()

	txn, err := svc.TopUp.Approve(ctx, f.Arg(0))
	if err != nil {
		return fail("approval failed: %v", err)
	}
	fmt.Fprintf(c.out, "approved %s: transaction %s credited %s\n",
		f.Arg(0), txn.TransactionID, utils.FormatMoney(txn.CreditAmount, txn.CurrencyCode))
	return subcommands.ExitSuccess
}

type fundReserveCmd struct {
	open     opener
	out      io.Writer
	currency string
	amount   string
}

func (*fundReserveCmd) Name() string     { return "fund-reserve" }
func (*fundReserveCmd) Synopsis() string { return "credit the reserve account without a source" }
func (*fundReserveCmd) Usage() string {
	return `ledgerctl fund-reserve -currency USD -amount 1000.00

  Records a FUNDING transaction on the reserve account's sub-account in the
  currency. Approved top-ups are paid out of these funds.
`
}

func (c *fundReserveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "currency code")
	f.StringVar(&c.amount, "amount", "", "positive decimal amount")
}

func (c *fundReserveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return fail("invalid -amount %q", c.amount)
	}
	currency := domain.NormalizeCurrency(c.currency)

	svc, closeFn, err := c.open(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer closeFn()

	txn, err := svc.Transfer.TopUp(ctx, domain.ReserveAccountID, amount, currency)
	if err != nil {
		return fail("funding failed: %v", err)
	}
	fmt.Fprintf(c.out, "funded reserve with %s (transaction %s)\n", utils.FormatMoney(amount, currency), txn.TransactionID)
	return subcommands.ExitSuccess
}

type createSubAccountCmd struct {
	open      opener
	out       io.Writer
	accountID string
	currency  string
}

func (*createSubAccountCmd) Name() string { return "create-sub-account" }
func (*createSubAccountCmd) Synopsis() string {
	return "open a zero-balance sub-account for an account"
}
func (*createSubAccountCmd) Usage() string {
	return `ledgerctl create-sub-account -account <account-id> -currency EUR
`
}

func (c *createSubAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.accountID, "account", domain.ReserveAccountID, "account ID, defaults to the reserve")
	f.StringVar(&c.currency, "currency", "", "currency code")
}

func (c *createSubAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeFn, err := c.open(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer closeFn()

	sub, err := svc.Account.CreateSubAccount(ctx, c.accountID, dto.CreateSubAccountRequest{CurrencyCode: domain.NormalizeCurrency(c.currency)})
	if err != nil {
		return fail("could not create sub-account: %v", err)
	}
	fmt.Fprintf(c.out, "created %s sub-account %s for %s\n", sub.CurrencyCode, sub.SubAccountID, sub.AccountID)
	return subcommands.ExitSuccess
}

type migrateCmd struct {
	logger *slog.Logger
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending database migrations" }
func (*migrateCmd) Usage() string {
	return `ledgerctl migrate
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fail("%v", err)
	}
	if cfg.UsesMemoryStore() {
		return fail("migrate requires DB_DRIVER=postgres")
	}
	if err := database.RunMigrations(c.logger, cfg.DatabaseURL); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}
