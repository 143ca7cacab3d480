package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/justsurfingit/jobboard/internal/client"
	"github.com/justsurfingit/jobboard/internal/listing"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/justsurfingit/jobboard/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const moreFromCompanyLimit = 3

type browseOptions struct {
	api        string
	userToken  string
	title      string
	location   string
	categories []string
	locations  []string
	page       int
	pageSize   int
	order      string
	show       string
	apply      string
}

var browseOpts browseOptions

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search and page through the public job list",
	Example: `  jobboard browse --title engineer --category Programming --loc Remote --page 2
  jobboard browse --show <job-id> --user-token $SESSION
  jobboard browse --apply <job-id> --user-token $SESSION`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := browseOpts
		if opts.api == "" {
			opts.api = cfg.APIURL
		}
		if opts.pageSize == 0 {
			opts.pageSize = cfg.PageSize
		}
		return browse(cmd.Context(), opts, os.Stdout)
	},
}

func init() {
	f := browseCmd.Flags()
	f.StringVar(&browseOpts.api, "api", "", "API base URL (default API_URL)")
	f.StringVar(&browseOpts.userToken, "user-token", "", "identity-provider session token for applying")
	f.StringVar(&browseOpts.title, "title", "", "match titles containing this text")
	f.StringVar(&browseOpts.location, "location", "", "match locations containing this text")
	f.StringSliceVar(&browseOpts.categories, "category", nil, "only these categories (repeatable)")
	f.StringSliceVar(&browseOpts.locations, "loc", nil, "only these locations (repeatable)")
	f.IntVar(&browseOpts.page, "page", 1, "page to show")
	f.IntVar(&browseOpts.pageSize, "page-size", 0, "jobs per page (default PAGE_SIZE)")
	f.StringVar(&browseOpts.order, "order", listing.OrderReverse.String(), "reverse or posted-desc")
	f.StringVar(&browseOpts.show, "show", "", "show one job in full")
	f.StringVar(&browseOpts.apply, "apply", "", "apply to a job")
}

func browse(ctx context.Context, opts browseOptions, w io.Writer) error {
	order, err := parseOrder(opts.order)
	if err != nil {
		return err
	}

	api := client.New(opts.api, client.WithUserToken(opts.userToken))
	if opts.apply != "" {
		if err := api.Apply(ctx, opts.apply); err != nil {
			return err
		}
		fmt.Fprintln(w, "Job applied successfully")
		return nil
	}

	s := listing.NewSession(listing.WithOrder(order), listing.WithPageCapacity(opts.pageSize))

	tok := s.BeginFetch()
	jobs, err := api.JobList(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("job list fetch failed")
		s.FailFetch(tok, err)
	} else {
		s.ResolveFetch(tok, jobs)
	}

	if opts.show != "" {
		return showJob(ctx, api, s.Jobs(), opts, w)
	}

	f := listing.FilterState{}.SetTitleQuery(opts.title).SetLocationQuery(opts.location)
	for _, c := range opts.categories {
		if !f.HasCategory(c) {
			f = f.ToggleCategory(c)
		}
	}
	for _, l := range opts.locations {
		if !f.HasLocation(l) {
			f = f.ToggleLocation(l)
		}
	}
	s.ApplyFilters(f)
	v := s.GoToPage(opts.page)

	fmt.Fprint(w, render.View(v))
	return nil
}

func showJob(ctx context.Context, api *client.Client, jobs []models.Job, opts browseOptions, w io.Writer) error {
	var job *models.Job
	for i := range jobs {
		if jobs[i].ID == opts.show {
			job = &jobs[i]
			break
		}
	}
	if job == nil {
		return fmt.Errorf("job %s not found", opts.show)
	}

	fmt.Fprintln(w, render.Card(*job))
	if desc, err := render.Description(job.Description); err == nil {
		fmt.Fprintln(w, desc)
	}

	var apps []models.JobApplication
	if opts.userToken != "" {
		var err error
		apps, err = api.Applications(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("could not load your applications")
		} else if listing.AlreadyApplied(job.ID, apps) {
			fmt.Fprintln(w, "\nYou have already applied for this job.")
		}
	}

	more := listing.MoreFromCompany(*job, jobs, apps, moreFromCompanyLimit)
	if len(more) > 0 {
		fmt.Fprintln(w, "\nMore jobs from this company:")
		for _, j := range more {
			fmt.Fprintln(w, render.Card(j))
		}
	}
	return nil
}

func parseOrder(s string) (listing.Order, error) {
	switch s {
	case "", listing.OrderReverse.String():
		return listing.OrderReverse, nil
	case listing.OrderPostedAtDesc.String():
		return listing.OrderPostedAtDesc, nil
	}
	return 0, fmt.Errorf("unknown order %q (want %s or %s)", s, listing.OrderReverse, listing.OrderPostedAtDesc)
}
