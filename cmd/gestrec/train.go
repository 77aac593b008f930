package main

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	"github.com/akualab/gestrec"
	"github.com/akualab/gestrec/model"
	"github.com/akualab/gestrec/model/hmm"
	"github.com/akualab/gestrec/selector"
)

var trainCommand = cli.Command{
	Name:      "train",
	ShortName: "t",
	Usage:     "Trains a model bank using a selection strategy.",
	Description: `runs trainer.

You must provide a config file. The default name is "config.yaml".
A sample config file will look like this:

selector: bic
hmm:
  min_n_components: 2
  max_n_components: 10
  n_constant: 3
  random_state: 14
train_set: train.yaml
model_out: models.json

ex:
 $ gestrec train
`,
	Action: trainAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "data-set, d", Usage: "the file with the list of training data files"},
		cli.StringFlag{Name: "model-out, o", Usage: "output model bank filename"},
		cli.StringFlag{Name: "selector, s", Usage: "selection strategy {constant, bic, dic, cv}"},
		cli.IntFlag{Name: "min-n", Usage: "smallest candidate state count, overwrites config file when set"},
		cli.IntFlag{Name: "max-n", Usage: "largest candidate state count, overwrites config file when set"},
		cli.IntFlag{Name: "n-constant", Usage: "state count for the constant strategy and fallback"},
		cli.IntFlag{Name: "max-iterations", Usage: "EM iteration budget"},
	},
}

func trainAction(c *cli.Context) error {

	initApp(c)

	if config == nil {
		return fmt.Errorf("missing config file [%s]", c.GlobalString("config-file"))
	}

	// Validate parameters. Command flags overwrite config file params.
	requiredStringParam(c, "data-set", &config.TrainSet)
	requiredStringParam(c, "model-out", &config.ModelOut)
	requiredStringParam(c, "selector", &config.Selector)
	intParam(c, "min-n", &config.HMM.MinN)
	intParam(c, "max-n", &config.HMM.MaxN)
	intParam(c, "n-constant", &config.HMM.NConstant)
	intParam(c, "max-iterations", &config.HMM.MaxIterations)

	glog.Infof("Read configuration:\n%+v", config)

	// Read training data.
	ds, e := gestrec.ReadDataSetFile(config.TrainSet)
	gestrec.Fatal(e)
	items, e := ds.All()
	gestrec.Fatal(e)
	corpus, e := gestrec.NewCorpus(items)
	gestrec.Fatal(e)
	glog.Infof("Training corpus: %d words, %d items.", corpus.Len(), len(items))

	cfg := selectorConfig(config)
	var opts []hmm.TrainOption
	if config.HMM.MaxIterations > 0 {
		opts = append(opts, hmm.MaxIter(config.HMM.MaxIterations))
	}
	trainer := hmm.NewTrainer(opts...)

	glog.Infof("Selection strategy: %s.", config.Selector)
	models := make(map[string]*hmm.Model)
	for _, word := range corpus.Words() {
		s, e := newSelector(config.Selector, corpus, word, cfg, trainer)
		gestrec.Fatal(e)
		cand, e := s.Select()
		if e != nil {
			glog.Warningf("word [%s]: %s, skipping", word, e)
			continue
		}
		m := cand.Model().(*hmm.Model)
		m.ModelName = word
		models[word] = m
		glog.Infof("word [%s]: selected %d states.", word, cand.N)
	}
	if len(models) == 0 {
		return fmt.Errorf("no word produced a model")
	}

	e = hmm.WriteCollection(models, config.ModelOut)
	gestrec.Fatal(e)
	glog.Infof("Wrote %d models to %s.", len(models), config.ModelOut)
	return nil
}

// selectorConfig maps the run config to selection parameters, filling
// in defaults for unset fields.
func selectorConfig(config *gestrec.Config) selector.Config {

	cfg := selector.DefaultConfig()
	if config.HMM.MinN > 0 {
		cfg.MinN = config.HMM.MinN
	}
	if config.HMM.MaxN > 0 {
		cfg.MaxN = config.HMM.MaxN
	}
	if config.HMM.NConstant > 0 {
		cfg.NConstant = config.HMM.NConstant
	}
	if config.HMM.RandomState != 0 {
		cfg.Seed = config.HMM.RandomState
	}
	cfg.Verbose = config.HMM.Verbose
	return cfg
}

func newSelector(name string, corpus *gestrec.Corpus, word string, cfg selector.Config, fitter model.Fitter) (selector.Selector, error) {

	switch name {
	case "constant":
		return selector.NewConstant(corpus, word, cfg, fitter)
	case "bic":
		return selector.NewBIC(corpus, word, cfg, fitter)
	case "dic":
		return selector.NewDIC(corpus, word, cfg, fitter)
	case "cv":
		return selector.NewCV(corpus, word, cfg, fitter)
	default:
		return nil, fmt.Errorf("unknown selector [%s]", name)
	}
}
