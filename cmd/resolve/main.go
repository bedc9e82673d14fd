package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/locality-resolver/app/config"
	"github.com/locality-resolver/app/services"
	"github.com/locality-resolver/internal/geocoder"
	"github.com/locality-resolver/internal/locality"
)

// resultLine is one line of CLI output.
type resultLine struct {
	Input       string `json:"input"`
	City        string `json:"city,omitempty"`
	Address     string `json:"address,omitempty"`
	PlaceID     string `json:"placeId,omitempty"`
	Stage       string `json:"stage,omitempty"`
	Error       string `json:"error,omitempty"`
	Message     string `json:"message,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:   "resolve [address...]",
		Short: "Resolve Indian addresses to their city",
		Long: `Geocodes each address with the configured provider and prints the city
the classifier picks, one JSON object per line.

Examples:
  # Resolve two addresses
  LOCATIONIQ_API_KEY=... resolve "Hill Road, Bandra West" "MG Road, Pune"

  # Resolve addresses read from a file
  resolve --stdin < addresses.txt

  # Run only the classifier on a provider display name
  resolve --classify-only --city Bandra --suburb Bandra "Bandra, Mumbai, Maharashtra, India"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}

	f := cmd.Flags()
	f.String("api-key", "", "provider API key (default: $LOCATIONIQ_API_KEY)")
	f.String("base-url", geocoder.DefaultBaseURL, "provider base URL")
	f.Duration("timeout", geocoder.DefaultTimeout, "provider request timeout")
	f.String("policy", "", "locality policy file (default: config/locality.yaml if present)")
	f.Bool("stdin", false, "read addresses from stdin, one per line")
	f.Bool("classify-only", false, "classify display names offline without calling the provider")
	f.Bool("verbose", false, "log debug output to stderr")

	f.String("city", "", "address.city for --classify-only")
	f.String("county", "", "address.county for --classify-only")
	f.String("suburb", "", "address.suburb for --classify-only")
	f.String("city-district", "", "address.city_district for --classify-only")
	f.String("town", "", "address.town for --classify-only")
	f.String("village", "", "address.village for --classify-only")

	_ = v.BindPFlag("provider.api_key", f.Lookup("api-key"))
	_ = v.BindPFlag("provider.base_url", f.Lookup("base-url"))
	_ = v.BindPFlag("provider.timeout", f.Lookup("timeout"))
	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f := cmd.Flags()
	verbose, _ := f.GetBool("verbose")
	log, err := newLogger(verbose)
	if err != nil {
		return eris.Wrap(err, "init logger")
	}
	defer func() { _ = log.Sync() }()

	policyPath, _ := f.GetString("policy")
	if policyPath == "" {
		policyPath = v.GetString("locality.config_path")
	}
	localityCfg, err := config.Load(policyPath)
	if err != nil {
		return eris.Wrapf(err, "load locality policy %s", policyPath)
	}
	classifier := localityCfg.Classifier()

	inputs := args
	if fromStdin, _ := f.GetBool("stdin"); fromStdin {
		lines, err := readLines(cmd.InOrStdin())
		if err != nil {
			return eris.Wrap(err, "read stdin")
		}
		inputs = append(inputs, lines...)
	}
	if len(inputs) == 0 {
		return eris.New("no addresses given")
	}

	enc := json.NewEncoder(cmd.OutOrStdout())

	if classifyOnly, _ := f.GetBool("classify-only"); classifyOnly {
		return classifyAll(enc, classifier, detailsFromFlags(cmd), inputs)
	}

	provider, err := geocoder.NewClient(config.ProviderOptions(v), log)
	if err != nil {
		return eris.Wrap(err, "init geocoding client")
	}
	svc := services.NewLocalityService(provider, classifier, config.ServiceConfig(v), log)
	return resolveAll(ctx, enc, svc, inputs)
}

func resolveAll(ctx context.Context, enc *json.Encoder, svc *services.LocalityService, inputs []string) error {
	failed := 0
	for _, input := range inputs {
		line := resultLine{Input: input}
		loc, err := svc.Resolve(ctx, input, services.ResolveOptions{})
		if err != nil {
			rerr := services.AsResolveError(err)
			line.Error = string(rerr.Kind)
			line.Message = rerr.Message
			failed++
		} else {
			line.City = loc.City
			line.Address = loc.Address
			line.PlaceID = loc.PlaceID
		}
		if err := enc.Encode(line); err != nil {
			return eris.Wrap(err, "write result")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if failed > 0 {
		return eris.Errorf("%d of %d addresses could not be resolved", failed, len(inputs))
	}
	return nil
}

func classifyAll(enc *json.Encoder, classifier *locality.Classifier, d locality.Details, displayNames []string) error {
	failed := 0
	for _, name := range displayNames {
		line := resultLine{Input: name, DisplayName: name}
		match, ok := classifier.Classify(d, locality.SplitDisplayName(name))
		if ok {
			line.City = match.City
			line.Stage = match.Stage.String()
		} else {
			line.Error = string(services.KindNoCityFound)
			line.Message = "could not determine a city"
			failed++
		}
		if err := enc.Encode(line); err != nil {
			return eris.Wrap(err, "write result")
		}
	}
	if failed > 0 {
		return eris.Errorf("%d of %d display names had no city", failed, len(displayNames))
	}
	return nil
}

func detailsFromFlags(cmd *cobra.Command) locality.Details {
	f := cmd.Flags()
	get := func(name string) string {
		s, _ := f.GetString(name)
		return s
	}
	return locality.Details{
		City:         get("city"),
		County:       get("county"),
		Suburb:       get("suburb"),
		CityDistrict: get("city-district"),
		Town:         get("town"),
		Village:      get("village"),
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
