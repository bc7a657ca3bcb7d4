package main

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/store"
)

var (
	runURLs       []string
	runMaxResults int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract and score leads from a list of website URLs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		urls := runURLs
		if len(urls) == 0 {
			urls = cfg.Run.StartURLs
		}
		if len(urls) == 0 {
			return eris.New("no URLs given: pass --url or set run.start_urls")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		pcfg := runConfig()
		pcfg.RunID = uuid.New().String()
		if runMaxResults > 0 {
			pcfg.MaxResults = runMaxResults
		}

		if err := st.CreateRun(ctx, &store.Run{
			ID:       pcfg.RunID,
			Kind:     store.RunKindLeads,
			Industry: pcfg.Industry,
			Location: pcfg.Location,
			Target:   pcfg.MaxResults,
		}); err != nil {
			return err
		}

		p := pipeline.NewLeadPipeline(initNavigator(), st, pcfg)
		summary, leads, err := p.Run(ctx, urls)
		if err != nil {
			return err
		}

		if err := st.CompleteRun(ctx, summary); err != nil {
			return err
		}

		for i := range leads {
			zap.L().Info("lead",
				zap.String("company", derefOr(leads[i].CompanyName, "?")),
				zap.String("url", leads[i].WebsiteURL),
				zap.Int("score", leads[i].LeadScore),
			)
		}
		zap.L().Info("run finished",
			zap.String("run_id", summary.RunID),
			zap.Int("found", summary.Found),
			zap.Int("target", summary.Target),
		)
		return nil
	},
}

func derefOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

func init() {
	runCmd.Flags().StringSliceVar(&runURLs, "url", nil, "website URL to process (repeatable)")
	runCmd.Flags().IntVar(&runMaxResults, "max", 0, "maximum leads to accept (default from config)")
	rootCmd.AddCommand(runCmd)
}
