package main

import (
	"encoding/json"
	"flag"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/onebus/fleet-console/config"
	"github.com/onebus/fleet-console/internal/session"
)

type loginOptions struct {
	Email    string
	Password string
}

func parseLoginFlags(cmdCtx *commandContext, args []string) (loginOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var opts loginOptions
	fs.StringVar(&opts.Email, "email", "", "Account email (required)")
	fs.StringVar(&opts.Password, "password", "", "Password; FLEET_PASSWORD or a prompt are used when empty")
	if err := fs.Parse(args); err != nil {
		return loginOptions{}, usageError("%v", err)
	}
	opts.Email = strings.TrimSpace(opts.Email)
	if opts.Email == "" {
		return loginOptions{}, usageError("-email is required")
	}
	if opts.Password == "" {
		opts.Password = os.Getenv("FLEET_PASSWORD")
	}
	return opts, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	if opts.Password == "" {
		if err := writef(cmdCtx.Err, "Password: "); err != nil {
			return err
		}
		if opts.Password, err = cmdCtx.readLine(); err != nil {
			return err
		}
	}

	app, err := cmdCtx.app()
	if err != nil {
		return err
	}
	if err := app.API.Login(cmdCtx.Ctx, opts.Email, opts.Password); err != nil {
		return err
	}
	tok, err := app.Session.Current(cmdCtx.Ctx)
	if err != nil {
		return err
	}

	if err := writef(cmdCtx.Out, "Logged in as %s; session valid until %s.\n",
		opts.Email, tok.Expiry.Local().Format(time.DateTime)); err != nil {
		return err
	}
	if cmdCtx.Config.Session.Store == config.SessionStoreMemory {
		cmdCtx.Logger.Warn().Msg("session kept in memory only; set SESSION_STORE=redis to reuse it across commands")
	}
	return nil
}

func runLogout(cmdCtx *commandContext, _ []string) error {
	app, err := cmdCtx.app()
	if err != nil {
		return err
	}
	if err := app.API.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, "Logged out.")
}

func runWhoami(cmdCtx *commandContext, _ []string) error {
	app, err := cmdCtx.app()
	if err != nil {
		return err
	}
	tok, err := app.Session.Current(cmdCtx.Ctx)
	if err != nil {
		return err
	}

	if err := writef(cmdCtx.Out, "Session valid until %s.\n", tok.Expiry.Local().Format(time.DateTime)); err != nil {
		return err
	}
	claims, err := session.Claims(tok.AccessToken)
	if err != nil {
		return writeln(cmdCtx.Out, "Token is opaque; no claims to show.")
	}

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := json.Marshal(claims[k])
		if err != nil {
			return err
		}
		if err := writef(cmdCtx.Out, "  %-12s %s\n", k, v); err != nil {
			return err
		}
	}
	return nil
}
