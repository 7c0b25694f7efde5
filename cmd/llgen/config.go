package main

import (
	"github.com/npillmayer/predict/ll"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/viperadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tracingKeys are the tracing keys of all packages of this module.
var tracingKeys = []string{
	"predict.ll",
	"predict.parser",
	"predict.scanner",
	"predict.bnf",
	"predict.ebnf",
	"predict.cli",
}

// setupConfig reads an optional configuration file llgen.yaml, binds command
// line flags into the configuration and sets up tracing. The global
// configuration is reachable by gconf afterwards.
func setupConfig(cmd *cobra.Command, verbose bool) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := viperadapter.New("llgen")
	viper.SetConfigName("llgen")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.llgen")
	viper.AddConfigPath("$HOME/.config/llgen")
	configErr := viper.ReadInConfig()
	viper.SetDefault("tracing.adapter", "go")
	viper.SetDefault("tracelevel.root", "Error")
	for _, key := range tracingKeys {
		viper.SetDefault("tracelevel."+key, "Error")
	}
	viper.SetDefault("tracelevel.predict.cli", "Info")
	if verbose {
		for _, key := range tracingKeys {
			conf.Set("tracelevel."+key, "Debug")
		}
	}
	if err := viper.BindPFlag(ll.ConfigKeyLastWins, cmd.Flags().Lookup("lastwins")); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("input"); f != nil {
		if err := viper.BindPFlag("input", f); err != nil {
			return err
		}
	}
	gconf.Initialize(conf)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if configErr != nil {
		tracer().Debugf("no configuration file read: %v", configErr)
	} else {
		tracer().Infof("configuration read from %s", viper.ConfigFileUsed())
	}
	return nil
}
