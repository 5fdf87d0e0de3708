package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/application/assessment"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	dto "github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

type assessOptions struct {
	materialType string
	temperature  float64
	exposureTime float64
	environment  string
	source       string
	insights     bool
	output       string
}

// NewAssessCmd creates the assess command.
func NewAssessCmd() *cobra.Command {
	def := material.DefaultInput()
	opts := &assessOptions{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score the fire risk of a material under an exposure",
		Long: "Compute the risk score, risk class and resistance index for a material and\n" +
			"list the closest specimens from the reference corpus.",
		Example: `  mfrrisk assess --material polymer --temperature 500 --exposure 30 --environment open-air
  mfrrisk assess --material composite --temperature 800 --exposure 45 --environment enclosed --insights
  mfrrisk assess --server http://localhost:8080 --source remote --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.materialType, "material", def.MaterialType.String(), "material type (polymer, composite, generic)")
	f.Float64Var(&opts.temperature, "temperature", def.Temperature, "exposure temperature in degrees C")
	f.Float64Var(&opts.exposureTime, "exposure", def.ExposureTime, "exposure time in minutes")
	f.StringVar(&opts.environment, "environment", def.Environment.String(), "environment (open-air, enclosed)")
	f.StringVar(&opts.source, "source", "", "score source (local, remote); default from config")
	f.BoolVar(&opts.insights, "insights", false, "also print material insights")
	f.StringVarP(&opts.output, "output", "o", "text", "output format (text, json)")
	return cmd
}

// assessOutput is the JSON shape of the assess command.
type assessOutput struct {
	Assessment dto.Response  `json:"assessment"`
	Insights   *dto.Insights `json:"insights,omitempty"`
}

func runAssess(cmd *cobra.Command, opts *assessOptions) error {
	if err := validateOutput(opts.output); err != nil {
		return err
	}
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	req := dto.NewRequest(opts.materialType, opts.temperature, opts.exposureTime, opts.environment)
	req.Source = opts.source
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
	defer cancel()

	var out assessOutput
	if cliCtx.Client != nil {
		resp, err := cliCtx.Client.Assessments().Create(ctx, req)
		if err != nil {
			return err
		}
		out.Assessment = *resp
		if opts.insights {
			ins, err := cliCtx.Client.Assessments().Insights(ctx, opts.materialType)
			if err != nil {
				return err
			}
			out.Insights = ins
		}
	} else {
		a, err := cliCtx.localApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		src := a.Engine.DefaultSource()
		if opts.source != "" {
			if src, err = assessment.ParseSource(opts.source); err != nil {
				return err
			}
		}
		in := assessment.ToInput(req)
		res, err := a.Engine.Assess(ctx, in, src)
		if err != nil {
			return err
		}
		out.Assessment = res.Response()
		if opts.insights {
			ins := assessment.InsightsResponse(in.MaterialType)
			out.Insights = &ins
		}
	}

	if opts.output == "json" {
		return printJSON(cmd, out)
	}
	renderAssessment(cmd.OutOrStdout(), out)
	return nil
}

func renderAssessment(w io.Writer, out assessOutput) {
	r := out.Assessment.Result
	fmt.Fprintf(w, "Risk Score:       %d / 100\n", r.RiskScore)
	fmt.Fprintf(w, "Risk Class:       %s\n", r.RiskClass)
	fmt.Fprintf(w, "Resistance Index: %d\n", r.ResistanceIndex)
	fmt.Fprintf(w, "Source:           %s\n", out.Assessment.Source)
	fmt.Fprintf(w, "Confidence:       %s\n", r.ConfidenceLevel)
	if d := out.Assessment.Confidence.SimilarityDetail; d != "" {
		fmt.Fprintf(w, "                  %s\n", d)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Comparison)
	fmt.Fprintln(w, r.Interpretation)
	fmt.Fprintln(w)

	if len(r.ComparableMaterials) == 0 {
		fmt.Fprintln(w, "No comparable materials available.")
	} else {
		rows := make([][]string, 0, len(r.ComparableMaterials))
		for _, c := range r.ComparableMaterials {
			rows = append(rows, []string{c.Name, c.SimilarityLevel, c.RelativeRisk})
		}
		fmt.Fprint(w, FormatTable([]string{"MATERIAL", "SIMILARITY", "RELATIVE RISK"}, rows))
	}

	if ins := out.Insights; ins != nil {
		fmt.Fprintln(w)
		if len(ins.Properties) > 0 {
			fmt.Fprintf(w, "Properties (%s):\n", ins.MaterialType)
			writeBullets(w, ins.Properties)
		}
		fmt.Fprintln(w, "Assumptions:")
		writeBullets(w, ins.Assumptions)
		fmt.Fprintln(w, "Limitations:")
		for _, l := range ins.Limitations {
			fmt.Fprintf(w, "  - %s: %s\n", l.Title, l.Text)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimSpace(out.Assessment.Disclaimer))
}

func writeBullets(w io.Writer, items []string) {
	for _, s := range items {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

//Personal.AI order the ending
