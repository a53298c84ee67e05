package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/generator"
	"github.com/jonesrussell/north-cloud/social-planner/internal/planner"
)

type generateFlags struct {
	name      string
	industry  string
	tone      string
	services  []string
	phone     string
	frequency int
	types     []string
	seed      uint64
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "business name")
	cmd.Flags().StringVar(&f.industry, "industry", string(domain.IndustryGeneral), "business industry")
	cmd.Flags().StringVar(&f.tone, "tone", "", "post tone (defaults to professional)")
	cmd.Flags().StringSliceVar(&f.services, "services", nil, "services offered")
	cmd.Flags().StringVar(&f.phone, "phone", "", "contact phone")
	cmd.Flags().IntVar(&f.frequency, "frequency", 3, "number of posts")
	cmd.Flags().StringSliceVar(&f.types, "types", nil, "post types in order (promo, tip, update, insight)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for reproducible output (0 picks one)")
}

func (f *generateFlags) generate(cmd *cobra.Command, opts *rootOptions) ([]domain.Post, error) {
	if f.frequency < 1 || f.frequency > planner.MaxFrequency {
		return nil, &planner.ValidationError{
			Field:   "frequency",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", planner.MaxFrequency, f.frequency),
		}
	}

	profile := domain.BusinessProfile{
		Name:        f.name,
		Industry:    domain.ParseIndustry(f.industry),
		ToneOfVoice: domain.ParseTone(f.tone),
		Services:    f.services,
		ContactInfo: domain.ContactInfo{Phone: f.phone},
	}
	prefs := domain.PostPreferences{Tone: domain.Tone(f.tone), Frequency: f.frequency}
	for _, name := range f.types {
		t, _ := domain.ParsePostType(name)
		prefs.PostTypes = append(prefs.PostTypes, t)
	}

	log := opts.quietLogger()
	gen := generator.New(nil, log, nil)
	if f.seed != 0 {
		gen = generator.NewSeeded(f.seed, log, nil)
	}
	return gen.Generate(cmd.Context(), profile, prefs, nil), nil
}

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate posts for a business described by flags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, err := flags.generate(cmd, opts)
			if err != nil {
				return err
			}
			renderPosts(cmd.OutOrStdout(), posts)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newScheduleCommand(opts *rootOptions) *cobra.Command {
	flags := &generateFlags{}
	var (
		days  []string
		start string
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate posts and lay them out over a week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var startAt time.Time
			if start != "" {
				var err error
				startAt, err = time.ParseInLocation(domain.DateLayout, start, time.Local)
				if err != nil {
					return &planner.ValidationError{Field: "start", Message: "must be formatted YYYY-MM-DD"}
				}
			}

			posts, err := flags.generate(cmd, opts)
			if err != nil {
				return err
			}
			schedule, err := planner.Schedule(posts, flags.frequency, days, startAt)
			if err != nil {
				return err
			}
			renderSchedule(cmd.OutOrStdout(), schedule)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&days, "days", nil, "preferred posting days (monday..sunday)")
	cmd.Flags().StringVar(&start, "start", "", "first day of the week, YYYY-MM-DD (default today)")
	return cmd
}
