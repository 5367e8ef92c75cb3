package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/qfactor/qfactor"
	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/period"
)

func factorCommand() cli.Command {
	return cli.Command{
		Name:  "factor",
		Usage: "split n by trial division, a smooth-relation sieve or phase samples",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "trial",
				Usage: "factor `N` by trial division",
			},
			cli.StringFlag{
				Name:  "sieve",
				Usage: "factor `N` from a congruence of squares among smooth relations",
			},
			cli.StringFlag{
				Name:  "period",
				Usage: "factor `N` from the periods encoded by phase samples",
			},
			cli.Uint64Flag{
				Name:  "bound",
				Usage: "smoothness bound of the sieve",
			},
			cli.StringFlag{
				Name:  "window-start",
				Usage: "first x of the sieve window, default isqrt(N)+1",
			},
			cli.IntFlag{
				Name:  "window-size",
				Usage: "number of x values sieved",
			},
			cli.IntFlag{
				Name:  "workers",
				Usage: "goroutines used by the sieve, 0 uses every CPU",
			},
			cli.StringFlag{
				Name:  "base",
				Usage: "comma separated bases a tried in order",
			},
			cli.StringFlag{
				Name:  "phase",
				Usage: "comma separated phase samples v, or a:v to bind a sample to base a",
			},
			cli.UintFlag{
				Name:  "bits",
				Usage: "register width of the phase samples, default 2*ceil(log2 N)",
			},
		},
		Action: factorAction,
	}
}

func factorAction(c *cli.Context) error {
	var modes []string
	for _, mode := range []string{"trial", "sieve", "period"} {
		if c.IsSet(mode) {
			modes = append(modes, mode)
		}
	}
	if len(modes) != 1 {
		return usageError("exactly one of --trial, --sieve and --period is required, got %d", len(modes))
	}

	n, err := parseInt(modes[0], c.String(modes[0]))
	if err != nil {
		return exitError(err)
	}
	switch modes[0] {
	case "trial":
		return runTrial(c, n)
	case "sieve":
		return runSieve(c, n)
	default:
		return runPeriod(c, n)
	}
}

func runTrial(c *cli.Context, n *big.Int) error {
	d, cofactor, ok, err := qfactor.TrialDivision(n)
	if err != nil {
		return exitError(err)
	}
	if !ok {
		return cli.NewExitError(fmt.Sprintf("%s is prime", n), exitFailure)
	}
	fmt.Fprintf(c.App.Writer, "%s = %s * %s\n", n, d, cofactor)
	return nil
}

func runSieve(c *cli.Context, n *big.Int) error {
	params := configFrom(c).Sieve
	if c.IsSet("bound") {
		params.Bound = c.Uint64("bound")
	}
	if c.IsSet("window-start") {
		start, err := parseInt("window-start", c.String("window-start"))
		if err != nil {
			return exitError(err)
		}
		params.Start = start
	}
	if c.IsSet("window-size") {
		params.Size = c.Int("window-size")
	}
	if c.IsSet("workers") {
		params.Workers = c.Int("workers")
	}

	split, err := qfactor.SieveFactor(contextFrom(c), n, params)
	if err != nil {
		return exitError(err)
	}
	if err := qfactor.CheckSplit(n, split.Factor, split.Cofactor); err != nil {
		return exitError(err)
	}
	fmt.Fprintf(c.App.Writer, "%s = %s * %s (x1 = %s, x2 = %s)\n", n, split.Factor, split.Cofactor, split.X1, split.X2)
	return nil
}

func runPeriod(c *cli.Context, n *big.Int) error {
	cfg := configFrom(c).Period
	bases := cfg.Bases
	if c.IsSet("base") {
		var err error
		if bases, err = parseIntList("base", c.String("base")); err != nil {
			return exitError(err)
		}
	}
	bits := cfg.Bits
	if c.IsSet("bits") {
		bits = c.Uint("bits")
	}
	if bits == 0 {
		bits = period.RecommendedBits(n)
	}
	source, err := parsePhases(c.String("phase"), bases, bits)
	if err != nil {
		return exitError(err)
	}

	finder := &period.Finder{Source: source}
	factors, err := finder.Factor(contextFrom(c), n, bases)
	if err != nil {
		return exitError(err)
	}
	if err := qfactor.CheckSplit(n, factors.Factor, factors.Cofactor); err != nil {
		return exitError(err)
	}
	if factors.Lucky {
		fmt.Fprintf(c.App.Writer, "%s = %s * %s (gcd with base %s)\n", n, factors.Factor, factors.Cofactor, factors.Base)
	} else {
		fmt.Fprintf(c.App.Writer, "%s = %s * %s (base %s, period %s)\n", n, factors.Factor, factors.Cofactor, factors.Base, factors.Period)
	}
	return nil
}

// parsePhases turns "v1,a:v2,..." into per-base samples. Unbound samples apply to every
// base, and each base sees its samples in the order given.
func parsePhases(list string, bases []*big.Int, bits uint) (period.StaticSource, error) {
	source := period.StaticSource{}
	if strings.TrimSpace(list) == "" {
		return source, nil
	}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		var target []*big.Int
		if i := strings.IndexByte(entry, ':'); i >= 0 {
			a, err := parseInt("phase base", entry[:i])
			if err != nil {
				return nil, err
			}
			target = []*big.Int{a}
			entry = entry[i+1:]
		} else {
			target = bases
		}
		v, err := parseInt("phase", entry)
		if err != nil {
			return nil, err
		}
		for _, a := range target {
			key := a.String()
			source[key] = append(source[key], period.Sample{Value: v, Bits: bits})
		}
	}
	return source, nil
}

func parseInt(name, s string) (*big.Int, error) {
	v := new(big.Int)
	if err := v.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return nil, invalidFlag(name, s)
	}
	return v, nil
}

func parseIntList(name, list string) ([]*big.Int, error) {
	var result []*big.Int
	for _, s := range strings.Split(list, ",") {
		v, err := parseInt(name, s)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func parseIntSlice(name, list string) ([]int, error) {
	var result []int
	for _, s := range strings.Split(list, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, invalidFlag(name, s)
		}
		result = append(result, v)
	}
	return result, nil
}
