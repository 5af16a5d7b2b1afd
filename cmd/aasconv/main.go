package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	aaspydantic "github.com/SebBehrendt/aas-pydantic"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "describe":
		describeCmd(os.Args[2:])
	case "convert":
		convertCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `aasconv

Usage:
  aasconv describe -in env.{json,yaml}            print the template types encoded in an environment
  aasconv convert  -in env.{json,yaml} -o out.{json,yaml}   transcode an environment between JSON and YAML`)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func describeCmd(args []string) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	var in string
	var verbose bool
	fs.StringVar(&in, "in", "", "environment file (.json, .yaml)")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	_ = fs.Parse(args)
	if in == "" {
		fs.Usage()
		os.Exit(2)
	}
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	env, err := readEnvironmentFile(in)
	if err != nil {
		log.Error("read environment", zap.String("file", in), zap.Error(err))
		fatal(err)
	}
	conv := aaspydantic.NewConverter(aaspydantic.WithLogger(log))
	types, err := conv.TemplateTypes(env)
	if err != nil {
		fatal(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(types); err != nil {
		fatal(err)
	}
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var in, out string
	var verbose bool
	fs.StringVar(&in, "in", "", "input environment file (.json, .yaml)")
	fs.StringVar(&out, "o", "", "output environment file (.json, .yaml)")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	_ = fs.Parse(args)
	if in == "" || out == "" {
		fs.Usage()
		os.Exit(2)
	}
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	env, err := readEnvironmentFile(in)
	if err != nil {
		log.Error("read environment", zap.String("file", in), zap.Error(err))
		fatal(err)
	}
	if err := writeEnvironmentFile(out, env); err != nil {
		log.Error("write environment", zap.String("file", out), zap.Error(err))
		fatal(err)
	}
	log.Info("converted environment",
		zap.String("in", in),
		zap.String("out", out),
		zap.Int("shells", len(env.Shells)),
		zap.Int("submodels", len(env.Submodels)))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "aasconv:", err)
	os.Exit(1)
}
