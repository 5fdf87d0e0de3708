package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/application/assessment"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/storage/minio"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
	dto "github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

// NewCorpusCmd creates the corpus command group.
func NewCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect, rank and build reference corpora",
	}
	cmd.AddCommand(newCorpusInspectCmd(), newCorpusRankCmd(), newCorpusBuildCmd())
	return cmd
}

func newCorpusInspectCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the loaded corpus bounds and records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			if cliCtx.Client != nil {
				sum, err := cliCtx.Client.Assessments().Corpus(ctx)
				if err != nil {
					return err
				}
				if output == "json" {
					return printJSON(cmd, sum)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded: %t\nRecords: %d\n", sum.Loaded, sum.Records)
				return nil
			}

			a, err := cliCtx.localApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			c := a.Engine.Corpus()
			sum := assessment.Summary(c)
			if output == "json" {
				return printJSON(cmd, struct {
					Summary dto.CorpusSummary        `json:"summary"`
					Records []corpus.ReferenceRecord `json:"records"`
				}{sum, c.Records()})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Loaded: %t\nRecords: %d\n\n", sum.Loaded, sum.Records)
			features := make([]string, 0, len(sum.Bounds))
			for f := range sum.Bounds {
				features = append(features, f)
			}
			sort.Strings(features)
			boundRows := make([][]string, 0, len(features))
			for _, f := range features {
				r := sum.Bounds[f]
				boundRows = append(boundRows, []string{f, fmtFloat(r.Min), fmtFloat(r.Max)})
			}
			fmt.Fprint(w, FormatTable([]string{"FEATURE", "MIN", "MAX"}, boundRows))
			fmt.Fprintln(w)

			rows := make([][]string, 0, c.Len())
			for _, r := range c.Records() {
				rows = append(rows, []string{
					r.DisplayName(), r.MaterialType.String(),
					fmtFloat(r.HeatFlux), fmtFloat(r.TimeToIgn), fmtFloat(r.FlowFactor), fmtFloat(r.RiskScore),
				})
			}
			fmt.Fprint(w, FormatTable([]string{"MATERIAL", "TYPE", "HEAT FLUX", "TIME TO IGN", "FLOW", "RISK"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	return cmd
}

func newCorpusRankCmd() *cobra.Command {
	def := material.DefaultInput()
	var (
		materialType string
		temperature  float64
		exposureTime float64
		environment  string
		limit        int
		output       string
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank every corpus record by distance to an input",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if cliCtx.Client != nil {
				return errors.New(errors.ErrCodeNotImplemented, "corpus rank runs in-process only")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			a, err := cliCtx.localApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			in := material.InputSpec{
				MaterialType: material.ParseMaterialType(materialType),
				Temperature:  temperature,
				ExposureTime: exposureTime,
				Environment:  material.ParseEnvironment(environment),
			}
			matches := a.Engine.Rank(in)
			if limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}
			if output == "json" {
				return printJSON(cmd, matches)
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Corpus is empty.")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for i, m := range matches {
				rows = append(rows, []string{
					strconv.Itoa(i + 1), m.Record.DisplayName(),
					strconv.FormatFloat(m.Distance, 'f', 4, 64),
					strconv.FormatFloat(m.Similarity, 'f', 4, 64),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatTable([]string{"#", "MATERIAL", "DISTANCE", "SIMILARITY"}, rows))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&materialType, "material", def.MaterialType.String(), "material type (polymer, composite, generic)")
	f.Float64Var(&temperature, "temperature", def.Temperature, "exposure temperature in degrees C")
	f.Float64Var(&exposureTime, "exposure", def.ExposureTime, "exposure time in minutes")
	f.StringVar(&environment, "environment", def.Environment.String(), "environment (open-air, enclosed)")
	f.IntVar(&limit, "limit", 0, "show at most this many records (0 = all)")
	f.StringVarP(&output, "output", "o", "text", "output format (text, json)")
	return cmd
}

func newCorpusBuildCmd() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a corpus document from a raw specimen CSV",
		Example: `  mfrrisk corpus build --input specimens.csv --output configs/reference_corpus.json
  mfrrisk corpus build --input specimens.csv --output s3://mfr-corpus/reference_corpus.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			f, err := os.Open(input)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeBadRequest, "cannot open input").WithDetail(input)
			}
			defer f.Close()

			c, report, err := corpus.BuildFromCSV(f)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeBadRequest, "cannot build corpus").WithDetail(input)
			}
			for _, issue := range report.Issues {
				cliCtx.Logger.Warn(issue)
			}

			format := corpus.FormatFromName(output)
			data, err := corpus.Encode(c, format)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeSerialization, "cannot encode corpus")
			}

			if minio.IsObjectURI(output) {
				ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
				defer cancel()
				a, err := cliCtx.localApp(ctx)
				if err != nil {
					return err
				}
				defer a.Close()
				store, err := a.ObjectStore()
				if err != nil {
					return err
				}
				if err := minio.Upload(ctx, store, output, store.DefaultBucket(), data, format); err != nil {
					return err
				}
			} else if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(err, errors.ErrCodeStorageError, "cannot write corpus").WithDetail(output)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s (%d skipped)\n", report.Records, output, report.Skipped)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&input, "input", "", "raw specimen CSV")
	f.StringVar(&output, "output", "", "destination file or s3://bucket/key")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

//Personal.AI order the ending
