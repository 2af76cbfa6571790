// Command rstoken mints report-service bearers signed with AUTH_SECRET.
//
//	rstoken -role admin -sub reverse-proxy -ttl 1h
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"report-service/internal"
	"report-service/internal/config"
)

var osExit = os.Exit

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Print(err)
		osExit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("rstoken", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	role := fs.String("role", "admin", "role claim")
	sub := fs.String("sub", "", "subject claim")
	ttl := fs.Duration("ttl", time.Hour, "lifetime; 0 omits exp")
	issuer := fs.String("issuer", internal.DefaultIssuer, "issuer claim")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(out, "usage: rstoken [flags]")
			fs.SetOutput(out)
			fs.PrintDefaults()
			return nil
		}
		return err
	}
	if *ttl < 0 {
		return fmt.Errorf("negative ttl: %s", *ttl)
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		return err
	}

	tok, err := internal.IssueToken(cfg.AuthSecret, internal.TokenOptions{
		Subject: *sub,
		Role:    *role,
		TTL:     *ttl,
		Issuer:  *issuer,
	}, time.Now())
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(out, tok)
	return nil
}
