package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"hotel_finder/internal/adapters/finderapi"
	"hotel_finder/internal/client"
	"hotel_finder/internal/domain"
	"hotel_finder/internal/shared"
)

func apiClient(c *cli.Command) (*finderapi.Client, error) {
	return finderapi.New(c.String("api"), c.Int("rps"))
}

// searchCommand reads the search box from stdin: every line replaces the
// current text and results follow once typing pauses.
func searchCommand(cfg shared.Config) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Interactive search; each input line replaces the query",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "How long input must stay unchanged before searching",
				Value: cfg.Debounce,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			return interactive(ctx, api, os.Stdin, os.Stdout, c.Duration("debounce"))
		},
	}
}

func interactive(ctx context.Context, api client.Fetcher, in io.Reader, out io.Writer, delay time.Duration) error {
	s := client.NewSearcher(api, func(sn client.Snapshot) {
		if !sn.Settled() {
			return
		}
		if sn.Query == "" {
			fmt.Fprintln(out, "(cleared)")
			return
		}
		fmt.Fprint(out, client.RenderResults(sn))
	})
	d := client.NewDebouncer[string](delay)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(runCtx, d.C())
	}()

	fmt.Fprintln(out, "Search accommodation... (one query per line, Ctrl-D to quit)")
	lines, scanErr := scanLines(ctx, in)

	var last string
	var typed bool
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case l, ok := <-lines:
			if !ok {
				break loop
			}
			last, typed = l, true
			d.Set(l)
		}
	}

	d.Stop()
	cancel()
	<-done

	// input ended inside a debounce window: run the pending value directly
	if typed && ctx.Err() == nil && s.Snapshot().Query != last {
		s.Query(ctx, last)
	}

	select {
	case err := <-scanErr:
		return err
	default:
		return nil
	}
}

// scanLines streams trimmed input lines until in ends or ctx is done. The error
// channel receives the scanner error once in is exhausted.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Run one search and print the three result sections",
		ArgsUsage: "<text>",
		Action: func(ctx context.Context, c *cli.Command) error {
			q := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if q == "" {
				return errors.New("query text is required")
			}
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			sn, _ := client.NewSearcher(api, nil).Query(ctx, q)
			fmt.Print(client.RenderResults(sn))
			return nil
		},
	}
}

func hotelCommand() *cli.Command {
	return detailCommand(domain.Hotels, "hotel", func(api *finderapi.Client) client.Loader[domain.Hotel] {
		return api.GetHotel
	}, client.HotelFields)
}

func cityCommand() *cli.Command {
	return detailCommand(domain.Cities, "city", func(api *finderapi.Client) client.Loader[domain.City] {
		return api.GetCity
	}, client.CityFields)
}

func countryCommand() *cli.Command {
	return detailCommand(domain.Countries, "country", func(api *finderapi.Client) client.Loader[domain.Country] {
		return api.GetCountry
	}, client.CountryFields)
}

func detailCommand[T any](coll domain.Collection, name string, loader func(*finderapi.Client) client.Loader[T], fields func(*T) [][2]string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("Show one %s by id", name),
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, c *cli.Command) error {
			id := c.Args().First()
			if id == "" {
				return fmt.Errorf("%s id is required", name)
			}
			api, err := apiClient(c)
			if err != nil {
				return err
			}
			page := client.NewDetailPage(id, loader(api))
			defer page.Close()

			page.Open(ctx)
			st, err := page.Wait(ctx)
			if err != nil {
				return err
			}
			if st.Status == client.DetailFailed {
				log.Error().Err(st.Err).Str("collection", coll.String()).Str("id", id).Msg("fetch failed")
			}
			fmt.Print(client.RenderDetail(coll, st, fields))
			return nil
		},
	}
}
