package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/qfactor/qfactor/big"
	"github.com/qfactor/qfactor/keygen"
	"github.com/qfactor/qfactor/numtheory"
)

func keygenCommand() cli.Command {
	return cli.Command{
		Name:  "keygen",
		Usage: "derive a toy RSA keypair from a seed",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "seed",
				Usage: "non-negative integer `SEED`",
			},
			cli.StringFlag{
				Name:  "features",
				Usage: "comma separated feature vector hashed to the seed",
			},
			cli.Int64Flag{
				Name:  "exponent",
				Usage: "public exponent",
			},
			cli.IntFlag{
				Name:  "attempts",
				Usage: "maximum number of prime pairs tried",
			},
			cli.BoolFlag{
				Name:  "json",
				Usage: "print the keypair as JSON",
			},
		},
		Action: keygenAction,
	}
}

type keygenOutput struct {
	*keygen.Keypair
	Fingerprint string `json:"fingerprint"`
}

func keygenAction(c *cli.Context) error {
	if c.IsSet("seed") == c.IsSet("features") {
		return usageError("exactly one of --seed and --features is required")
	}

	var seed *big.Int
	if c.IsSet("seed") {
		var err error
		if seed, err = parseInt("seed", c.String("seed")); err != nil {
			return exitError(err)
		}
	} else {
		features, err := parseIntSlice("features", c.String("features"))
		if err != nil {
			return exitError(err)
		}
		seed = keygen.SeedFromFeatures(features)
	}

	params := configFrom(c).Keygen
	if c.IsSet("exponent") {
		params.Exponent = c.Int64("exponent")
	}
	if c.IsSet("attempts") {
		params.MaxAttempts = c.Int("attempts")
	}

	k, err := keygen.Derive(seed, &params)
	if err != nil {
		return exitError(err)
	}
	fingerprint, err := k.Fingerprint()
	if err != nil {
		return exitError(err)
	}

	w := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(keygenOutput{Keypair: k, Fingerprint: fingerprint}); err != nil {
			return exitError(err)
		}
		return nil
	}
	fmt.Fprintf(w, "seed: %s\n", seed)
	fmt.Fprintf(w, "public key: n = %s, e = %s\n", k.N, k.E)
	fmt.Fprintf(w, "private key: d = %s\n", k.D)
	fmt.Fprintf(w, "p = %s, q = %s, phi = %s\n", k.P, k.Q, k.Phi)
	fmt.Fprintf(w, "fingerprint: %s\n", fingerprint)
	return nil
}

func invalidFlag(name, value string) error {
	return numtheory.Invalid("--%s: %q is not an integer", name, value)
}
