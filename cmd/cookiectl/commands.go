package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/dmitrymomot/cookiesync/pkg/secrets"
	"github.com/dmitrymomot/cookiesync/pkg/surfacesync"
)

var commands = []cli.Command{
	{
		Name:   "hosts",
		Usage:  "list hosts holding live cookies",
		Action: withEngine(listHosts),
	},
	{
		Name:      "header",
		Usage:     "print the stored Cookie header of a host",
		ArgsUsage: "<host>",
		Action:    withEngine(printHeader),
	},
	{
		Name:      "records",
		Aliases:   []string{"map"},
		Usage:     "print the stored cookies of a host with their expiry",
		ArgsUsage: "<host>",
		Action:    withEngine(printRecords),
	},
	{
		Name:      "save",
		Usage:     "record Set-Cookie lines for a host as if a response carried them",
		ArgsUsage: "<host> <set-cookie>...",
		Action:    withEngine(saveCookies),
	},
	{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "delete one cookie of a host",
		ArgsUsage: "<host> <name>",
		Action:    withEngine(removeCookie),
	},
	{
		Name:   "clear",
		Usage:  "delete every stored cookie",
		Action: withEngine(clearStore),
	},
	{
		Name:  "pref",
		Usage: "manage the webview cookie preference",
		Subcommands: []cli.Command{
			{
				Name:   "show",
				Action: withEngine(showPreference),
			},
			{
				Name:      "set",
				ArgsUsage: "<cookie header>",
				Action:    withEngine(setPreference),
			},
			{
				Name:   "clear",
				Action: withEngine(clearPreference),
			},
		},
	},
	{
		Name:      "fetch",
		Usage:     "GET a URL through the cookie pipeline",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "cookie", Usage: "explicit Cookie header for the request"},
		},
		Action: withEngine(fetch),
	},
	{
		Name:      "sync",
		Usage:     "show the cookies a browsing surface would receive before navigating to a URL",
		ArgsUsage: "<url>",
		Action:    withEngine(syncPreview),
	},
	{
		Name:  "ping",
		Usage: "check that the backend is reachable",
		Action: withEngine(func(s *session, _ *cli.Context) error {
			if err := s.engine.Healthcheck(s.ctx); err != nil {
				return err
			}
			s.printf("ok\n")
			return nil
		}),
	},
	{
		Name:  "keygen",
		Usage: "print a new base64 encryption key for STORE_ENCRYPTION_KEY",
		Action: func(c *cli.Context) error {
			key, err := secrets.GenerateKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, base64.StdEncoding.EncodeToString(key))
			return nil
		},
	},
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		return fmt.Errorf("%w: %s %s", errUsage, c.Command.FullName(), c.Command.ArgsUsage)
	}
	return nil
}

func listHosts(s *session, _ *cli.Context) error {
	hosts, err := s.engine.Store().Hosts(s.ctx)
	if err != nil {
		return err
	}
	for _, h := range hosts {
		s.printf("%s\n", h)
	}
	return nil
}

func printHeader(s *session, c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	header, err := s.engine.Store().CookieHeader(s.ctx, c.Args().First())
	if err != nil {
		return err
	}
	s.printf("%s\n", header)
	return nil
}

func printRecords(s *session, c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	records, err := s.engine.Store().Records(s.ctx, c.Args().First())
	if err != nil {
		return err
	}
	for _, r := range records {
		expiry := "session"
		if !r.Session {
			expiry = r.ExpiresAt.UTC().Format(time.RFC3339)
		}
		s.printf("%s=%s\t%s\n", r.Name, r.Value, expiry)
	}
	return nil
}

func saveCookies(s *session, c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	args := c.Args()
	return s.engine.Store().SaveFromResponse(s.ctx, args.First(), args.Tail())
}

func removeCookie(s *session, c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	return s.engine.Store().Remove(s.ctx, c.Args().Get(0), c.Args().Get(1))
}

func clearStore(s *session, _ *cli.Context) error {
	return s.engine.Store().Clear(s.ctx)
}

func showPreference(s *session, _ *cli.Context) error {
	raw, err := s.engine.Preference().Raw(s.ctx)
	if err != nil {
		return err
	}
	s.printf("%s\n", raw)
	return nil
}

func setPreference(s *session, c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	return s.engine.Preference().Save(s.ctx, strings.Join(c.Args(), "; "))
}

func clearPreference(s *session, _ *cli.Context) error {
	return s.engine.Preference().Clear(s.ctx)
}

func fetch(s *session, c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(s.ctx, http.MethodGet, c.Args().First(), nil)
	if err != nil {
		return err
	}
	if v := c.String("cookie"); v != "" {
		req.Header.Set("Cookie", v)
	}

	resp, err := s.engine.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return err
	}

	s.printf("%s %d bytes\n", resp.Status, n)
	for _, line := range resp.Header.Values("Set-Cookie") {
		s.printf("set-cookie: %s\n", line)
	}
	return nil
}

// syncPreview runs the surface sync against the engine's fresh in-memory
// jar and prints what each host received.
func syncPreview(s *session, c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	target := c.Args().First()

	known, err := s.cfg.Sync.KnownHosts()
	if err != nil {
		return err
	}
	if err := s.engine.PrepareNavigation(s.ctx, target); err != nil {
		return err
	}
	jar := s.engine.Jar()
	for _, host := range surfacesync.Hosts(target, known) {
		base := surfacesync.BaseURL(host)
		s.printf("%s\t%s\n", base, jar.Cookie(base+"/"))
	}
	return nil
}
