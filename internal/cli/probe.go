package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/opencart-qa/storefront-e2e/internal/config"
	"github.com/opencart-qa/storefront-e2e/internal/dataset"
	"github.com/opencart-qa/storefront-e2e/internal/fixtures"
	"github.com/opencart-qa/storefront-e2e/internal/pages"
	"github.com/opencart-qa/storefront-e2e/internal/session"
)

// ErrNotLoggedIn is returned by RunLoginCheck when the account page does not
// show a logged-in user.
var ErrNotLoggedIn = errors.New("login check failed: user not logged in")

// RunCheckData parses the registration CSV at path and prints its records.
func RunCheckData(path string, out io.Writer) error {
	records, err := dataset.LoadRegistrations(path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFIRST NAME\tLAST NAME\tTELEPHONE\tNEWSLETTER")
	for i, rec := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", i+1, rec.FirstName, rec.LastName, rec.Telephone, rec.WantsNewsletter())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d registration records in %s\n", len(records), path)
	return nil
}

// LoginReport is what RunLoginCheck observed after logging in.
type LoginReport struct {
	BaseURL  string
	Title    string
	LoggedIn bool
}

// RunLoginCheck launches the configured browser, logs in with creds and
// reports the account page state. Without a base URL it runs against a
// stub storefront.
func RunLoginCheck(cfg config.SuiteConfig, creds config.Credentials, logger *zap.Logger, out io.Writer) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	stopTarget, err := ResolveTarget(&cfg, creds, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, stopTarget())
	}()

	rt, err := session.Launch(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, rt.Close())
	}()

	report := LoginReport{BaseURL: cfg.BaseURL}
	err = fixtures.WithHomePage(rt, creds, func(home *pages.HomePage) error {
		title, err := home.Title()
		if err != nil {
			return err
		}
		report.Title = title
		report.LoggedIn = true
		return nil
	})
	if errors.Is(err, fixtures.ErrNotLoggedIn) {
		err = ErrNotLoggedIn
	}

	fmt.Fprintf(out, "storefront: %s\nlogged in:  %t\ntitle:      %s\n", report.BaseURL, report.LoggedIn, report.Title)
	return err
}
