package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cropadvisor/entities"
	"cropadvisor/pkg/scoring"
)

const maxAlternatives = 3

type recommendOutput struct {
	Primary         entities.ScoredCrop   `json:"primary"`
	Alternatives    []entities.ScoredCrop `json:"alternatives"`
	Recommendations []entities.ScoredCrop `json:"recommendations"`
	Advice          entities.Advice       `json:"advice"`
	Params          entities.ParameterSet `json:"params"`
}

func newRecommendCmd(root *rootOpts) *cobra.Command {
	var (
		p          entities.ParameterSet
		useSample  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank crops for one reading",
		Example: "  cropctl recommend --rainfall 1500 --humidity 70 --temperature 28 --nitrogen 80 --phosphorus 50\n" +
			"  cropctl recommend --sample --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if useSample {
				// explicit flags still win over the sample values
				s := entities.SampleParameters()
				f := cmd.Flags()
				if !f.Changed("rainfall") {
					p.Rainfall = s.Rainfall
				}
				if !f.Changed("humidity") {
					p.Humidity = s.Humidity
				}
				if !f.Changed("temperature") {
					p.Temperature = s.Temperature
				}
				if !f.Changed("phosphorus") {
					p.Phosphorus = s.Phosphorus
				}
				if !f.Changed("nitrogen") {
					p.Nitrogen = s.Nitrogen
				}
			}
			if err := p.Validate(); err != nil {
				return err
			}

			cat, err := root.catalog(log)
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			recs := scoring.NewRanker(cat).Recommend(p)
			advice := scoring.Advise(p)
			log.Debug("ranked", zap.String("primary", recs[0].Name), zap.Float64("suitability", recs[0].Suitability))

			if jsonOutput {
				out := recommendOutput{
					Primary:         recs[0],
					Alternatives:    alternatives(recs),
					Recommendations: recs,
					Advice:          advice,
					Params:          p,
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRecommendation(p, recs, advice))
			return nil
		},
	}

	cmd.Flags().Float64Var(&p.Rainfall, "rainfall", 0, "annual rainfall in mm (0-5000)")
	cmd.Flags().Float64Var(&p.Humidity, "humidity", 0, "relative humidity in % (0-100)")
	cmd.Flags().Float64Var(&p.Temperature, "temperature", 0, "average temperature in °C (-10 to 50)")
	cmd.Flags().Float64Var(&p.Phosphorus, "phosphorus", 0, "soil phosphorus in mg/kg (0-500)")
	cmd.Flags().Float64Var(&p.Nitrogen, "nitrogen", 0, "soil nitrogen in mg/kg (0-500)")
	cmd.Flags().BoolVar(&useSample, "sample", false, "start from the demo reading")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func alternatives(recs []entities.ScoredCrop) []entities.ScoredCrop {
	if len(recs) <= 1 {
		return []entities.ScoredCrop{}
	}
	rest := recs[1:]
	if len(rest) > maxAlternatives {
		rest = rest[:maxAlternatives]
	}
	return rest
}
