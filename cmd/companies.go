package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/store"
)

var (
	companiesIndustry   string
	companiesLocation   string
	companiesMaxResults int
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Discover companies for an industry and location from search listings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		pcfg := runConfig()
		pcfg.RunID = uuid.New().String()
		if companiesIndustry != "" {
			pcfg.Industry = companiesIndustry
		}
		if companiesLocation != "" {
			pcfg.Location = companiesLocation
		}
		if companiesMaxResults > 0 {
			pcfg.MaxResults = companiesMaxResults
		}

		if err := st.CreateRun(ctx, &store.Run{
			ID:       pcfg.RunID,
			Kind:     store.RunKindCompanies,
			Industry: pcfg.Industry,
			Location: pcfg.Location,
			Target:   pcfg.MaxResults,
		}); err != nil {
			return err
		}

		p := pipeline.NewCompanyPipeline(initNavigator(), st, pcfg, nil)
		summary, companies, err := p.Run(ctx)
		if err != nil {
			return err
		}

		if err := st.CompleteRun(ctx, summary); err != nil {
			return err
		}

		for i := range companies {
			zap.L().Info("company",
				zap.String("name", companies[i].CompanyName),
				zap.String("domain", companies[i].DomainOrNA()),
			)
		}
		zap.L().Info("discovery finished",
			zap.String("run_id", summary.RunID),
			zap.Int("found", summary.Found),
			zap.Int("target", summary.Target),
			zap.Strings("warnings", summary.Warnings),
		)
		return nil
	},
}

func init() {
	companiesCmd.Flags().StringVar(&companiesIndustry, "industry", "", "industry to search (default from config)")
	companiesCmd.Flags().StringVar(&companiesLocation, "location", "", "location to search (default from config)")
	companiesCmd.Flags().IntVar(&companiesMaxResults, "max", 0, "maximum companies to collect (default from config)")
	rootCmd.AddCommand(companiesCmd)
}
